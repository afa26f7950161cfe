package request

import "github.com/google/uuid"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a registration request. Staff of a business
// carry its id; users without one administer the catalog of every business.
type RegisterRequest struct {
	BusinessID      *uuid.UUID `json:"business_id"`
	FirstName       string     `json:"first_name" binding:"required,min=2,max=255"`
	LastName        string     `json:"last_name" binding:"required,min=2,max=255"`
	Email           string     `json:"email" binding:"required,email"`
	Password        string     `json:"password" binding:"required,min=8"`
	PasswordConfirm string     `json:"password_confirm" binding:"required,eqfield=Password"`
	Role            string     `json:"role" binding:"omitempty,oneof=admin cashier"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
