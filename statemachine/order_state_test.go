package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-api/models"
)

func TestParseStatus_Normalization(t *testing.T) {
	cases := []struct {
		in   string
		want models.OrderStatus
	}{
		{"pending", models.StatusPending},
		{"PENDING", models.StatusPending},
		{"  Confirmed ", models.StatusConfirmed},
		{"cooking", models.StatusCooking},
		{"preparing", models.StatusCooking},
		{"Preparing", models.StatusCooking},
		{"IN_PROGRESS", models.StatusCooking},
		{"ready", models.StatusReady},
		{"Delivered", models.StatusDelivered},
		{"COMPLETED", models.StatusCompleted},
		{"cancelled", models.StatusCancelled},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	for _, in := range []string{"", "done", "paid", "shipped"} {
		_, err := ParseStatus(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusConfirmed, models.StatusCooking, true},
		{models.StatusCooking, models.StatusReady, true},
		{models.StatusReady, models.StatusCompleted, true},
		{models.StatusReady, models.StatusDelivered, true},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusCooking, models.StatusCancelled, true},

		{models.StatusPending, models.StatusReady, false},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
		{models.StatusDelivered, models.StatusCompleted, false},
	}
	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestCanTransition_SameStateIsNoop(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusCompleted, models.StatusCancelled,
	} {
		assert.NoError(t, CanTransition(s, s), "%s -> %s", s, s)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusCompleted))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusConfirmed))
	assert.False(t, IsTerminal(models.StatusCooking))
	assert.False(t, IsTerminal(models.StatusReady))
}

func TestValidTransitionsFrom_Terminal(t *testing.T) {
	assert.Empty(t, ValidTransitionsFrom(models.StatusCompleted))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
	assert.NotEmpty(t, ValidTransitionsFrom(models.StatusPending))
}

func TestPaymentTransitions(t *testing.T) {
	assert.NoError(t, CanTransitionPayment(models.PaymentPending, models.PaymentPaid))
	assert.NoError(t, CanTransitionPayment(models.PaymentPending, models.PaymentFailed))
	assert.NoError(t, CanTransitionPayment(models.PaymentPaid, models.PaymentRefunded))
	assert.NoError(t, CanTransitionPayment(models.PaymentPaid, models.PaymentPaid))

	assert.Error(t, CanTransitionPayment(models.PaymentPaid, models.PaymentPending))
	assert.Error(t, CanTransitionPayment(models.PaymentFailed, models.PaymentPaid))
	assert.Error(t, CanTransitionPayment(models.PaymentRefunded, models.PaymentPaid))
	assert.Error(t, CanTransitionPayment(models.PaymentPending, models.PaymentRefunded))
}

func TestParsePaymentStatus(t *testing.T) {
	got, err := ParsePaymentStatus("PAID")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, got)

	_, err = ParsePaymentStatus("settled")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	got, err := ParsePaymentMethod("Card")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCard, got)

	_, err = ParsePaymentMethod("crypto")
	assert.Error(t, err)
}
