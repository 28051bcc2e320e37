package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID           uuid.UUID
	Title        string
	Company      string
	Location     string
	Type         string
	Salary       string
	Description  string
	Requirements []string
	Category     string

	// CreatedBy references the posting employer. Only that user may mutate
	// or delete the job.
	CreatedBy uuid.UUID

	PostedDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Poster is the public subset of the job owner attached to job reads.
type Poster struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// Listing pairs a job with its poster for read endpoints.
type Listing struct {
	Job    Job
	Poster Poster
}
