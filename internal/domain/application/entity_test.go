package application

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":   StatusPending,
		"Reviewed":  StatusReviewed,
		" ACCEPTED": StatusAccepted,
		"rejected ": StatusRejected,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", raw, got, want)
		}
	}

	for _, raw := range []string{"", "archived", "done"} {
		if _, err := ParseStatus(raw); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("ParseStatus(%q): expected ErrInvalidStatus, got %v", raw, err)
		}
	}
}
