package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is a closed set. Route guards compare against these constants, so a
// typo cannot silently grant or deny access.
type Role string

const (
	RoleEmployer  Role = "employer"
	RoleJobseeker Role = "jobseeker"
)

var ErrInvalidRole = errors.New("invalid role")

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleEmployer:
		return RoleEmployer, nil
	case RoleJobseeker:
		return RoleJobseeker, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleJobseeker
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	// Company is set only for employers.
	Company string

	// RefreshToken is the single active session slot. Overwritten on every
	// login/refresh, cleared on logout.
	RefreshToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sanitized strips the fields that must never leave the service.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	return u
}
