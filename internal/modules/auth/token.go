package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/policy"
)

// Claims are the session token claims: subject is the user id, plus the role
// so authorization never needs a database round trip.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenManager issues and parses HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user id and role.
func (m *TokenManager) Issue(userID uuid.UUID, role policy.Role) (string, error) {
	claims := &Claims{
		Role: string(role),
		StandardClaims: jwt.StandardClaims{
			Subject:   userID.String(),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(m.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperr.Internal(err, "sign token")
	}
	return signed, nil
}

// Parse validates a token and returns the actor it identifies. The role
// claim is re-validated against the closed role set at this boundary.
func (m *TokenManager) Parse(tokenString string) (policy.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthorized("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return policy.Actor{}, apperr.Unauthorized("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return policy.Actor{}, apperr.Unauthorized("invalid token subject")
	}
	role, err := policy.ParseRole(claims.Role)
	if err != nil {
		return policy.Actor{}, apperr.Unauthorized("invalid token role")
	}
	return policy.Actor{ID: userID, Role: role}, nil
}
