package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("application not found")

	// ErrDuplicate surfaces the (job_id, user_id) unique constraint.
	ErrDuplicate = errors.New("application already submitted")
)

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ExistsByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Application, []JobSummary, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Application, []Applicant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Application, error)
}
