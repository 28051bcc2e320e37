package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// ListFilter narrows the public job listing. Search and Location match
// case-insensitively as substrings; Category and Type match exactly.
type ListFilter struct {
	Search   string
	Location string
	Category string
	Type     string
}

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	GetByIDWithPoster(ctx context.Context, id uuid.UUID) (Listing, error)
	List(ctx context.Context, f ListFilter) ([]Listing, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdateOwned and DeleteOwned apply only when ownerID matches the job's
	// created_by, so a concurrent ownership change cannot slip a write
	// through after the handler's check. They return ErrNotFound when no row
	// matched.
	UpdateOwned(ctx context.Context, j Job, ownerID uuid.UUID) error
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}
