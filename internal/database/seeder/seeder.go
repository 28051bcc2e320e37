package seeder

import (
	"context"

	"jobboard/internal/database"
)

// Seeder populates demo data for local development. Every seeder must be
// idempotent; the runner may execute on every boot.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
