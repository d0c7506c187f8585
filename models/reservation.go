package models

import "time"

type Reservation struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null"`
	User            User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ReservationCode string    `json:"reservation_code" gorm:"uniqueIndex;not null"`
	TableNumber     int       `json:"table_number" gorm:"not null"`
	Guests          int       `json:"guests" gorm:"default:1"`
	ReservedFor     time.Time `json:"reserved_for"`
	Status          string    `json:"status" gorm:"default:'active'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
