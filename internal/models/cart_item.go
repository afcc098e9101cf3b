package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem lives only between "add to cart" and checkout, when it is
// deleted in favor of an OrderItem snapshot. ProductID may dangle if the
// product was deleted after the item was added.
type CartItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	ProductID *string   `gorm:"index" json:"-"`
	Product   *Product  `json:"product"`
	UserID    string    `gorm:"index;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
