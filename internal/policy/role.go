package policy

import (
	"strings"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
)

// Role is the access level of a user. It is parsed once at the system
// boundary and treated as a closed set everywhere else.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(s)); r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return r, nil
	default:
		return "", apperr.Validation("invalid role: %s (allowed: ADMIN, STAFF, CUSTOMER)", s)
	}
}
