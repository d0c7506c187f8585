package statemachine

import (
	"errors"
	"strings"

	"restaurant-api/models"
)

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Claiming a pending order confirms it
	{From: models.StatusPending, To: models.StatusConfirmed},
	// Kitchen flow
	{From: models.StatusConfirmed, To: models.StatusCooking},
	{From: models.StatusCooking, To: models.StatusReady},
	// Completion: a waiter may close out an order straight from
	// confirmed (counter service) or after cooking/ready
	{From: models.StatusConfirmed, To: models.StatusCompleted},
	{From: models.StatusCooking, To: models.StatusCompleted},
	{From: models.StatusReady, To: models.StatusCompleted},
	{From: models.StatusReady, To: models.StatusDelivered},
	// Cancellation is allowed from every non-terminal state
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
	{From: models.StatusCooking, To: models.StatusCancelled},
	{From: models.StatusReady, To: models.StatusCancelled},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// statusAliases maps accepted input spellings onto canonical statuses.
// Input is lowercased before lookup, so matching is case-insensitive.
var statusAliases = map[string]models.OrderStatus{
	"pending":     models.StatusPending,
	"confirmed":   models.StatusConfirmed,
	"cooking":     models.StatusCooking,
	"preparing":   models.StatusCooking,
	"in_progress": models.StatusCooking,
	"ready":       models.StatusReady,
	"delivered":   models.StatusDelivered,
	"completed":   models.StatusCompleted,
	"cancelled":   models.StatusCancelled,
}

// ParseStatus normalizes a status string to its canonical form.
// Returns an error for values outside the enumeration.
func ParseStatus(s string) (models.OrderStatus, error) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", errors.New("unknown order status: " + s)
	}
	return status, nil
}

// IsTerminal reports whether no further status transition is permitted.
func IsTerminal(status models.OrderStatus) bool {
	switch status {
	case models.StatusCompleted, models.StatusCancelled, models.StatusDelivered:
		return true
	}
	return false
}

// TerminalStatuses returns the terminal states, for use in query predicates.
func TerminalStatuses() []models.OrderStatus {
	return []models.OrderStatus{
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusDelivered,
	}
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether an order may move from one state to another.
// A no-op transition (same state) is not a state-machine violation here;
// idempotency decisions belong to the caller.
func CanTransition(from, to models.OrderStatus) error {
	if from == to {
		return nil
	}
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// ── Payment ────────────────────────────────────────────────────────

var paymentTransitions = map[[2]models.PaymentStatus]bool{
	{models.PaymentPending, models.PaymentPaid}:   true,
	{models.PaymentPending, models.PaymentFailed}: true,
	{models.PaymentPaid, models.PaymentRefunded}:  true,
}

// ParsePaymentStatus normalizes a payment-status string.
func ParsePaymentStatus(s string) (models.PaymentStatus, error) {
	switch models.PaymentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case models.PaymentPending:
		return models.PaymentPending, nil
	case models.PaymentPaid:
		return models.PaymentPaid, nil
	case models.PaymentFailed:
		return models.PaymentFailed, nil
	case models.PaymentRefunded:
		return models.PaymentRefunded, nil
	}
	return "", errors.New("unknown payment status: " + s)
}

// CanTransitionPayment checks a payment-status change. Same-state writes
// are allowed (idempotent confirmations).
func CanTransitionPayment(from, to models.PaymentStatus) error {
	if from == to {
		return nil
	}
	if paymentTransitions[[2]models.PaymentStatus{from, to}] {
		return nil
	}
	return errors.New("invalid payment transition: " + string(from) + " -> " + string(to))
}

// ParsePaymentMethod normalizes a payment-method string.
func ParsePaymentMethod(s string) (models.PaymentMethod, error) {
	switch models.PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case models.PaymentCash:
		return models.PaymentCash, nil
	case models.PaymentCard:
		return models.PaymentCard, nil
	case models.PaymentOnline:
		return models.PaymentOnline, nil
	}
	return "", errors.New("unknown payment method: " + s)
}
