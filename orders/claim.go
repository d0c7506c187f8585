package orders

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"restaurant-api/models"
	"restaurant-api/statemachine"
)

// ClaimByCode atomically assigns the caller as the order's waiter, given
// only the short code from the ticket. A pending order is confirmed as part
// of the claim. At most one of N racing claimants wins: the assignment is a
// single conditional UPDATE and losers get ErrConflict, never a silent
// partial result. Re-claiming by the current holder is a no-op success.
func (s *Service) ClaimByCode(code string, waiterID uint, isAdmin bool) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("order_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("no order for code %q", code)
		}
		return nil, err
	}
	return s.claim(order.ID, waiterID, isAdmin)
}

// Take is the claim by direct order id, used from the waiter's order list
// instead of a scanned code. Same guarantees as ClaimByCode.
func (s *Service) Take(orderID uint, waiterID uint, isAdmin bool) (*models.Order, error) {
	return s.claim(orderID, waiterID, isAdmin)
}

// claim performs the compare-and-swap assignment:
//
//	UPDATE orders SET waiter_id = ?, status = confirmed-if-pending
//	WHERE id = ? AND status not terminal AND (waiter_id IS NULL OR waiter_id = ?)
//
// and decides the outcome from the affected-row count. Zero rows means the
// caller lost; a single re-read classifies the loss into the precise error.
func (s *Service) claim(orderID uint, waiterID uint, isAdmin bool) (*models.Order, error) {
	q := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Where("status NOT IN ?", statemachine.TerminalStatuses())
	if !isAdmin {
		q = q.Where("(waiter_id IS NULL OR waiter_id = ?)", waiterID)
	}
	res := q.Updates(map[string]interface{}{
		"waiter_id": waiterID,
		"status": gorm.Expr(
			"CASE WHEN status = ? THEN ? ELSE status END",
			models.StatusPending, models.StatusConfirmed,
		),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.classifyClaimFailure(orderID, waiterID)
	}
	return s.Get(orderID)
}

// classifyClaimFailure re-reads the row once, purely to report why the
// conditional update matched nothing.
func (s *Service) classifyClaimFailure(orderID uint, waiterID uint) error {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("order %d", orderID)
		}
		return err
	}
	if statemachine.IsTerminal(order.Status) {
		return conflictf("cannot claim a finished order (order %d is %s)", order.ID, order.Status)
	}
	if order.WaiterID != nil && *order.WaiterID != waiterID {
		return conflictf("order %d already claimed by waiter %d", order.ID, *order.WaiterID)
	}
	return conflictf("order %d could not be claimed", order.ID)
}

// ConfirmPayment marks the order paid, optionally recording the payment
// method. Only the assigned waiter or an admin may confirm. Confirming an
// already-paid order is a no-op success; failed or refunded payments
// conflict.
func (s *Service) ConfirmPayment(orderID uint, waiterID uint, isAdmin bool, method string) (*models.Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if err := requireAssigned(order, waiterID, isAdmin); err != nil {
		return nil, err
	}
	if order.PaymentStatus == models.PaymentPaid {
		return order, nil
	}

	updates := map[string]interface{}{"payment_status": models.PaymentPaid}
	if method != "" {
		pm, err := statemachine.ParsePaymentMethod(method)
		if err != nil {
			return nil, validationf("%v", err)
		}
		updates["payment_method"] = pm
	}

	q := s.db.Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, models.PaymentPending)
	if !isAdmin {
		q = q.Where("waiter_id = ?", waiterID)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		fresh, err := s.Get(orderID)
		if err != nil {
			return nil, err
		}
		// The order may have been reassigned between the read and the
		// guarded update.
		if err := requireAssigned(fresh, waiterID, isAdmin); err != nil {
			return nil, err
		}
		if fresh.PaymentStatus == models.PaymentPaid {
			return fresh, nil
		}
		return nil, conflictf("order %d payment is %s, cannot confirm", orderID, fresh.PaymentStatus)
	}
	return s.Get(orderID)
}

// Complete closes the order. Payment must already be confirmed; this is a
// deliberate tightening over looser "complete first, settle later" flows.
// CompletedAt is written exactly once, by the transition itself. Completing
// an already-completed order is a no-op success.
func (s *Service) Complete(orderID uint, waiterID uint, isAdmin bool) (*models.Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if err := requireAssigned(order, waiterID, isAdmin); err != nil {
		return nil, err
	}
	if order.Status == models.StatusCompleted || order.Status == models.StatusDelivered {
		return order, nil
	}
	if order.Status == models.StatusCancelled {
		return nil, conflictf("order %d is cancelled", orderID)
	}
	if order.PaymentStatus != models.PaymentPaid {
		return nil, conflictf("order %d is not paid, confirm payment before completing", orderID)
	}

	completable := []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusCooking,
		models.StatusReady,
	}
	q := s.db.Model(&models.Order{}).
		Where("id = ? AND payment_status = ? AND status IN ?", orderID, models.PaymentPaid, completable)
	if !isAdmin {
		q = q.Where("waiter_id = ?", waiterID)
	}
	res := q.Updates(map[string]interface{}{
		"status":       models.StatusCompleted,
		"completed_at": time.Now(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		fresh, err := s.Get(orderID)
		if err != nil {
			return nil, err
		}
		if fresh.Status == models.StatusCompleted || fresh.Status == models.StatusDelivered {
			return fresh, nil
		}
		return nil, conflictf("order %d is %s and cannot be completed", orderID, fresh.Status)
	}
	return s.Get(orderID)
}

// Cancel moves a non-terminal order to cancelled. Clients may cancel their
// own order while it is still pending or confirmed; waiters and admins may
// cancel any non-terminal order.
func (s *Service) Cancel(orderID uint, callerID uint, role models.UserRole) (*models.Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	cancellable := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusCooking,
		models.StatusReady,
	}
	if role == models.RoleClient {
		if order.UserID == nil || *order.UserID != callerID {
			return nil, forbiddenf("order %d does not belong to you", orderID)
		}
		cancellable = []models.OrderStatus{models.StatusPending, models.StatusConfirmed}
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, cancellable).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		fresh, err := s.Get(orderID)
		if err != nil {
			return nil, err
		}
		return nil, conflictf("order %d is %s and cannot be cancelled", orderID, fresh.Status)
	}
	return s.Get(orderID)
}

func requireAssigned(order *models.Order, waiterID uint, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if order.WaiterID == nil {
		return forbiddenf("order %d has no assigned waiter, take it first", order.ID)
	}
	if *order.WaiterID != waiterID {
		return forbiddenf("order %d is assigned to waiter %d", order.ID, *order.WaiterID)
	}
	return nil
}
