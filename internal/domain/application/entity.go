package application

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a closed set. Any status may follow any other; membership is the
// only constraint.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var ErrInvalidStatus = errors.New("invalid application status")

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusReviewed:
		return StatusReviewed, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	UserID      uuid.UUID
	Status      Status
	CoverLetter string
	Resume      string
	AppliedDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobSummary is the subset of the referenced job attached to a jobseeker's
// application listing.
type JobSummary struct {
	ID       uuid.UUID
	Title    string
	Company  string
	Location string
	Type     string
	Category string
}

// Applicant is the public subset of the applying user attached to an
// employer's applicant listing.
type Applicant struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}
