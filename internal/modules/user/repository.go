package user

import (
	"context"

	"github.com/dukkanpos/backoffice-api/internal/policy"
)

// Repository defines data access for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role policy.Role) (*User, error)
	Count(ctx context.Context) (int, error)
}
