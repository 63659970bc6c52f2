package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item owned by a user.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description *string         `json:"description,omitempty" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImagePath   *string         `json:"image_path,omitempty" gorm:"size:255"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
