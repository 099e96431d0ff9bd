package models

import "time"

// UserDetails is the profile record owned by exactly one User. It is created
// empty at signup and removed when its owner is dropped.
type UserDetails struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50" json:"name"`
	Lastname  string    `gorm:"size:255" json:"lastname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
