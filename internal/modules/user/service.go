package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/policy"
)

const minPasswordLength = 8

// Service defines user account business logic.
type Service interface {
	// Register creates a new account. The very first account becomes ADMIN,
	// every later one starts as CUSTOMER.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)

	// UpdateRole reassigns a user's role. The acting admin may never change
	// their own role.
	UpdateRole(ctx context.Context, actorID uuid.UUID, targetID string, req UpdateRoleRequest) (*User, error)
}

type service struct {
	repo       Repository
	bcryptCost int
}

// NewService creates a new user service.
func NewService(repo Repository, bcryptCost int) Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{repo: repo, bcryptCost: bcryptCost}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email %s is already in use", email)
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err, "hash password")
	}

	role := policy.RoleCustomer
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = policy.RoleAdmin
	}

	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateRole(ctx context.Context, actorID uuid.UUID, targetID string, req UpdateRoleRequest) (*User, error) {
	role, err := policy.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(targetID)
	if err != nil {
		return nil, apperr.Validation("invalid user id: %s", targetID)
	}
	if uid == actorID {
		return nil, apperr.Unauthorized("admins cannot change their own role")
	}
	return s.repo.UpdateRole(ctx, uid.String(), role)
}
