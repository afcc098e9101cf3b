package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is created exactly once per checkout and never mutated afterwards.
// Total carries the amount confirmed by the payment gateway.
type Order struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	Total     int64       `gorm:"not null" json:"total"`
	Charge    string      `gorm:"not null" json:"charge"`
	UserID    string      `gorm:"index;not null" json:"-"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is an immutable snapshot of a cart item taken at checkout time.
// Later edits to the Product do not touch it.
type OrderItem struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Price       int64         `gorm:"not null" json:"price"`
	Quantity    int           `gorm:"not null" json:"quantity"`
	PhotoID     *string       `gorm:"index" json:"-"`
	Photo       *ProductImage `json:"photo"`
	OrderID     string        `gorm:"index;not null" json:"-"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
