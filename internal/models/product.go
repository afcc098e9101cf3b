package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductStatusDraft       = "DRAFT"
	ProductStatusAvailable   = "AVAILABLE"
	ProductStatusUnavailable = "UNAVAILABLE"
)

type Product struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Status      string        `gorm:"index;default:DRAFT" json:"status"`
	Price       int64         `gorm:"not null" json:"price"` // smallest currency unit
	PhotoID     *string       `gorm:"index" json:"-"`
	Photo       *ProductImage `json:"photo"`
	UserID      string        `gorm:"index;not null" json:"-"`
	CreatedAt   time.Time     `json:"-"`
	UpdatedAt   time.Time     `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type ProductImage struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Image   string `gorm:"not null" json:"image"`
	AltText string `json:"altText"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
