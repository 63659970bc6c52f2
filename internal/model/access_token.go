package model

import "time"

// AccessToken is a persisted bearer credential. Only a SHA-256 digest of the
// secret half is stored; the plaintext handed to clients is "<id>|<secret>".
type AccessToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	CreatedAt time.Time `json:"created_at"`
}
