package user

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"employer", "Employer", "  JOBSEEKER "} {
		if _, err := ParseRole(raw); err != nil {
			t.Fatalf("ParseRole(%q): %v", raw, err)
		}
	}

	for _, raw := range []string{"", "admin", "job seeker"} {
		if _, err := ParseRole(raw); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("ParseRole(%q): expected ErrInvalidRole, got %v", raw, err)
		}
	}
}

func TestSanitized(t *testing.T) {
	u := User{Name: "A", PasswordHash: "hash", RefreshToken: "token"}
	s := u.Sanitized()
	if s.PasswordHash != "" || s.RefreshToken != "" {
		t.Fatalf("expected secrets stripped, got %+v", s)
	}
	if u.PasswordHash != "hash" {
		t.Fatalf("Sanitized must not mutate the receiver")
	}
}
