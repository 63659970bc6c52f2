package model

import "time"

// Post represents a piece of content attached to a product. A post has no
// owner column of its own: ownership is derived from the parent product.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"size:255;not null"`
	ImagePath *string   `json:"image_path,omitempty" gorm:"size:255"`
	Likes     uint      `json:"likes" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}
