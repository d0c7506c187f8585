package orders

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"restaurant-api/models"
	"restaurant-api/statemachine"
)

// Service owns the order lifecycle: creation with snapshot pricing,
// partial updates with state-machine enforcement, the code-claim protocol
// and the waiter workflow. All mutations on contended fields go through
// single conditional UPDATEs checked by affected-row count.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type ItemInput struct {
	DishID              uint   `json:"dish_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

type CreateOrderInput struct {
	UserID          *uint
	TableNumber     *int
	ReservationCode string
	OrderCode       string // pre-printed ticket code; minted fresh when empty
	IsUrgent        bool
	IsGroupOrder    bool
	Items           []ItemInput
}

// Create persists a new pending order with snapshot-priced items, resolves
// the table number from a reservation code when one is given, and binds an
// order code — all in one transaction.
func (s *Service) Create(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, validationf("order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, validationf("dish %d: quantity must be positive", it.DishID)
		}
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tableNumber := in.TableNumber
		if in.ReservationCode != "" {
			var res models.Reservation
			if err := tx.Where("reservation_code = ?", in.ReservationCode).First(&res).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("reservation %q", in.ReservationCode)
				}
				return err
			}
			tn := res.TableNumber
			tableNumber = &tn
		}

		items, total, err := s.buildItems(tx, in.Items)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:        in.UserID,
			TableNumber:   tableNumber,
			Status:        models.StatusPending,
			PaymentStatus: models.PaymentPending,
			TotalAmount:   total,
			IsUrgent:      in.IsUrgent,
			IsGroupOrder:  in.IsGroupOrder,
			Items:         items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return s.bindCode(tx, &order, in.OrderCode)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(order.ID)
}

// buildItems snapshots the current dish price into each line item and
// returns the computed total.
func (s *Service) buildItems(tx *gorm.DB, inputs []ItemInput) ([]models.OrderItem, float64, error) {
	var items []models.OrderItem
	var total float64
	for _, it := range inputs {
		var dish models.Dish
		if err := tx.First(&dish, it.DishID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, notFoundf("dish %d", it.DishID)
			}
			return nil, 0, err
		}
		if !dish.IsAvailable {
			return nil, 0, validationf("dish %q is not available", dish.Name)
		}
		total += dish.Price * float64(it.Quantity)
		items = append(items, models.OrderItem{
			DishID:              dish.ID,
			Quantity:            it.Quantity,
			Price:               dish.Price,
			SpecialInstructions: it.SpecialInstructions,
		})
	}
	return items, total, nil
}

type UpdateOrderInput struct {
	Status        *string      `json:"status"`
	PaymentStatus *string      `json:"payment_status"`
	PaymentMethod *string      `json:"payment_method"`
	TableNumber   *int         `json:"table_number"`
	IsUrgent      *bool        `json:"is_urgent"`
	IsGroupOrder  *bool        `json:"is_group_order"`
	Items         *[]ItemInput `json:"items"`
}

// Update applies a partial update. Enum fields are validated before any
// write so an invalid value never leaves a partial result. When Items is
// present the full line-item set is replaced and the total recomputed,
// atomically with the rest of the update.
func (s *Service) Update(orderID uint, in UpdateOrderInput) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("order %d", orderID)
			}
			return err
		}

		updates := map[string]interface{}{}

		if in.Status != nil {
			status, err := statemachine.ParseStatus(*in.Status)
			if err != nil {
				return validationf("%v", err)
			}
			if statemachine.IsTerminal(order.Status) && status != order.Status {
				return conflictf("order %d is %s and cannot change status", order.ID, order.Status)
			}
			if err := statemachine.CanTransition(order.Status, status); err != nil {
				return conflictf("%v", err)
			}
			updates["status"] = status
			if (status == models.StatusCompleted || status == models.StatusDelivered) && order.CompletedAt == nil {
				updates["completed_at"] = time.Now()
			}
		}

		if in.PaymentStatus != nil {
			ps, err := statemachine.ParsePaymentStatus(*in.PaymentStatus)
			if err != nil {
				return validationf("%v", err)
			}
			if err := statemachine.CanTransitionPayment(order.PaymentStatus, ps); err != nil {
				return conflictf("%v", err)
			}
			updates["payment_status"] = ps
		}

		if in.PaymentMethod != nil {
			pm, err := statemachine.ParsePaymentMethod(*in.PaymentMethod)
			if err != nil {
				return validationf("%v", err)
			}
			updates["payment_method"] = pm
		}

		if in.TableNumber != nil {
			updates["table_number"] = *in.TableNumber
		}
		if in.IsUrgent != nil {
			updates["is_urgent"] = *in.IsUrgent
		}
		if in.IsGroupOrder != nil {
			updates["is_group_order"] = *in.IsGroupOrder
		}

		if in.Items != nil {
			if len(*in.Items) == 0 {
				return validationf("order must contain at least one item")
			}
			for _, it := range *in.Items {
				if it.Quantity <= 0 {
					return validationf("dish %d: quantity must be positive", it.DishID)
				}
			}
			items, total, err := s.buildItems(tx, *in.Items)
			if err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = order.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			updates["total_amount"] = total
		}

		if len(updates) == 0 {
			updates["updated_at"] = time.Now()
		}

		// Guard against a concurrent status change between read and write.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflictf("order %d was modified concurrently", order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(orderID)
}

// Delete removes the order and its line items. Hard delete, no soft-delete.
func (s *Service) Delete(orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, orderID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFoundf("order %d", orderID)
		}
		return nil
	})
}

// Get loads an order with its items.
func (s *Service) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items.Dish").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("order %d", orderID)
		}
		return nil, err
	}
	return &order, nil
}

type ListFilter struct {
	UserID    *uint
	WaiterID  *uint
	Status    *models.OrderStatus
	Unclaimed bool
}

// List returns orders matching the filter, newest first.
func (s *Service) List(f ListFilter) ([]models.Order, error) {
	q := s.db.Preload("Items.Dish")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.WaiterID != nil {
		q = q.Where("waiter_id = ?", *f.WaiterID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Unclaimed {
		q = q.Where("waiter_id IS NULL").Where("status NOT IN ?", statemachine.TerminalStatuses())
	}
	var orders []models.Order
	if err := q.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
