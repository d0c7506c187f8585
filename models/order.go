package models

import "time"

// OrderStatus represents all possible states of a restaurant order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks the payment lifecycle independently of order status
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the customer settles the bill
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

type Order struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	UserID        *uint         `json:"user_id"` // nil for guest orders
	User          *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	WaiterID      *uint         `json:"waiter_id"` // nil until claimed
	Waiter        *User         `json:"waiter,omitempty" gorm:"foreignKey:WaiterID"`
	TableNumber   *int          `json:"table_number"`
	OrderCode     string        `json:"order_code" gorm:"index"`
	Status        OrderStatus   `json:"status" gorm:"not null;default:'pending';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TotalAmount   float64       `json:"total_amount"`
	IsUrgent      bool          `json:"is_urgent" gorm:"default:false"`
	IsGroupOrder  bool          `json:"is_group_order" gorm:"default:false"`
	Items         []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CompletedAt   *time.Time    `json:"completed_at"` // set exactly once
}

type OrderItem struct {
	ID                  uint    `json:"id" gorm:"primaryKey"`
	OrderID             uint    `json:"order_id" gorm:"not null;index"`
	DishID              uint    `json:"dish_id" gorm:"not null"`
	Dish                Dish    `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Quantity            int     `json:"quantity" gorm:"not null"`
	Price               float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	SpecialInstructions string  `json:"special_instructions"`
}

// OrderCode is a claim token printed on a ticket or QR sticker.
// It is consumed exactly once when bound to an order.
type OrderCode struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"uniqueIndex;not null"`
	TableNumber *int      `json:"table_number"`
	WaiterID    *uint     `json:"waiter_id"` // waiter who printed the ticket, nil when minted inline
	IsUsed      bool      `json:"is_used" gorm:"not null;default:false"`
	OrderID     *uint     `json:"order_id"` // set when consumed
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
