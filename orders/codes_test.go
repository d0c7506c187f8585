package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-api/models"
)

func TestMintCode_ShortAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := MintCode()
		assert.Len(t, code, 8)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestCreateAndVerifyCode(t *testing.T) {
	s := newTestService(t)

	table := 5
	code, err := s.CreateCode(7, &table)
	require.NoError(t, err)
	assert.False(t, code.IsUsed)
	require.NotNil(t, code.WaiterID)
	assert.EqualValues(t, 7, *code.WaiterID)

	verified, err := s.VerifyCode(code.Code)
	require.NoError(t, err)
	assert.Equal(t, code.Code, verified.Code)

	_, err = s.VerifyCode("ZZZZZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrePrintedCode_ConsumedOnceAndSuppliesTable(t *testing.T) {
	s := newTestService(t)
	d1, _ := seedDishes(t, s)

	table := 9
	code, err := s.CreateCode(7, &table)
	require.NoError(t, err)

	order, err := s.Create(CreateOrderInput{
		OrderCode: code.Code,
		Items:     []ItemInput{{DishID: d1.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, code.Code, order.OrderCode)
	// The ticket was printed for table 9; the order adopts it.
	require.NotNil(t, order.TableNumber)
	assert.Equal(t, 9, *order.TableNumber)

	var consumed models.OrderCode
	require.NoError(t, s.db.Where("code = ?", code.Code).First(&consumed).Error)
	assert.True(t, consumed.IsUsed)
	require.NotNil(t, consumed.OrderID)
	assert.Equal(t, order.ID, *consumed.OrderID)

	// A second order cannot bind the same ticket.
	_, err = s.Create(CreateOrderInput{
		OrderCode: code.Code,
		Items:     []ItemInput{{DishID: d1.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrConflict)

	// And a consumed code no longer verifies.
	_, err = s.VerifyCode(code.Code)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateOrder_UnknownTicketCode(t *testing.T) {
	s := newTestService(t)
	d1, _ := seedDishes(t, s)

	_, err := s.Create(CreateOrderInput{
		OrderCode: "BADTICKT",
		Items:     []ItemInput{{DishID: d1.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMintedCode_RecordedAsConsumed(t *testing.T) {
	s := newTestService(t)
	order := createTestOrder(t, s, 3)

	var code models.OrderCode
	require.NoError(t, s.db.Where("code = ?", order.OrderCode).First(&code).Error)
	assert.True(t, code.IsUsed)
	require.NotNil(t, code.OrderID)
	assert.Equal(t, order.ID, *code.OrderID)
}

func TestDeleteCode(t *testing.T) {
	s := newTestService(t)
	d1, _ := seedDishes(t, s)

	code, err := s.CreateCode(7, nil)
	require.NoError(t, err)
	require.NoError(t, s.DeleteCode(code.Code))
	assert.ErrorIs(t, s.DeleteCode(code.Code), ErrNotFound)

	// A consumed code cannot be deleted.
	used, err := s.CreateCode(7, nil)
	require.NoError(t, err)
	_, err = s.Create(CreateOrderInput{
		OrderCode: used.Code,
		Items:     []ItemInput{{DishID: d1.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, s.DeleteCode(used.Code), ErrConflict)
}

func TestListCodes_ScopedToWaiter(t *testing.T) {
	s := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := s.CreateCode(7, nil)
		require.NoError(t, err)
	}
	_, err := s.CreateCode(9, nil)
	require.NoError(t, err)

	mine, err := s.ListCodes(7)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}
