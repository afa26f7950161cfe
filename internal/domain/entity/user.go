package entity

import (
	"github.com/google/uuid"
)

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User is an employee operating the point of sale
type User struct {
	Model
	BusinessID *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	FirstName  string     `gorm:"size:255;not null" json:"first_name"`
	LastName   string     `gorm:"size:255" json:"last_name"`
	Email      string     `gorm:"size:255;unique;not null" json:"email"`
	Password   string     `gorm:"size:255" json:"-"`
	Role       string     `gorm:"size:50;not null;default:'cashier'" json:"role"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Roles returns the role list carried in access tokens
func (u *User) Roles() []string {
	if u.Role == "" {
		return []string{RoleCashier}
	}
	return []string{u.Role}
}
