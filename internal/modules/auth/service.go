package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/modules/user"
)

// Service defines the authentication business logic.
type Service interface {
	// Login verifies credentials and returns a session token with the user.
	Login(ctx context.Context, email, password string) (string, *user.User, error)
}

type service struct {
	userRepo user.Repository
	tokens   *TokenManager
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, tokens *TokenManager) Service {
	return &service{userRepo: userRepo, tokens: tokens}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return "", nil, apperr.Unauthorized("invalid credentials")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}
	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
