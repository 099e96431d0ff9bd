package models

import "time"

// Account status values. Soft-delete is a status flip, never a row removal.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// ValidStatus reports whether s is one of the two supported status strings.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

// User is an account row. Username and email are unique across all rows
// regardless of status; emails of inactive accounts are never reused.
type User struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Username  string      `gorm:"size:25;not null;uniqueIndex" json:"username"`
	Email     string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string      `gorm:"not null" json:"-"`
	Status    string      `gorm:"size:8;not null;default:'ACTIVE'" json:"status"`
	DetailsID uint        `gorm:"not null" json:"-"`
	Details   UserDetails `gorm:"foreignKey:DetailsID" json:"details"`
	Roles     []Role      `gorm:"many2many:user_roles" json:"roles"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// HasRole tests role membership by name. Two role rows sharing a name are
// the same membership as far as assignment is concerned.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the user's role-name set in insertion order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
