package models

import "time"

// Profile mirrors one row of the profiles table. The primary key is the
// identity provider's user id, shared with the auth service.
type Profile struct {
	ID            string    `gorm:"primaryKey"`
	Email         string    `gorm:"not null"`
	FullName      string    `gorm:"not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
