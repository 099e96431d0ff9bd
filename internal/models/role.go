package models

import "time"

// Built-in role names. GENERAL is assigned to every fresh signup.
const (
	RoleGeneral       = "GENERAL"
	RoleAdministrador = "ADMINISTRADOR"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:25;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Status      string    `gorm:"size:8;not null;default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
