package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukkanpos/backoffice-api/internal/policy"
)

// User is an account that can sign in to the dashboard.
// The password hash is never serialized in responses.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         policy.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRoleRequest is the payload for reassigning a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}
