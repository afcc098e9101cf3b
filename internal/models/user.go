package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	RoleID    *string    `gorm:"index" json:"-"`
	Role      *Role      `json:"role"`
	Cart      []CartItem `gorm:"foreignKey:UserID" json:"cart"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"orders"`
	CreatedAt time.Time  `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
