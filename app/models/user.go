package models

import "gorm.io/gorm"

// Roles. Staff accounts may use the admin maintenance endpoints.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
)

// User is a registered shopper. The original storefront logs in by phone
// number, so phone is unique alongside email.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"             json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone    string `gorm:"uniqueIndex;size:15;not null"  json:"phone"`
	Password string `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;default:user"          json:"role"`
}

// IsStaff reports whether the user may access the admin surface.
func (u *User) IsStaff() bool { return u.Role == RoleStaff }
