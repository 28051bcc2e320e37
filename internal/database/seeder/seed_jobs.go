package seeder

import (
	"context"

	"github.com/google/uuid"

	"jobboard/internal/database"
)

type DemoJobs struct{}

func (DemoJobs) Name() string { return "demo_jobs" }

func (DemoJobs) Run(ctx context.Context, db database.DB) error {
	const insert = `
		INSERT INTO jobs (id, title, company, location, type, salary, description, requirements, category, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`

	rows := []struct {
		id           uuid.UUID
		title        string
		location     string
		jobType      string
		salary       string
		description  string
		requirements []string
		category     string
	}{
		{
			id:           uuid.MustParse("4f8e2d1a-6b3c-4a9e-8d7f-2c5b1e9a3f03"),
			title:        "Backend Engineer",
			location:     "Remote",
			jobType:      "full-time",
			salary:       "$90k-$120k",
			description:  "Design and operate the services behind our hiring platform.",
			requirements: []string{"Go", "PostgreSQL", "Redis"},
			category:     "engineering",
		},
		{
			id:           uuid.MustParse("9a3c7e5b-2d8f-4c1a-b6e9-4f0d8b2c7a04"),
			title:        "Product Designer",
			location:     "Jakarta",
			jobType:      "contract",
			salary:       "$60k-$80k",
			description:  "Own the candidate-facing application flow end to end.",
			requirements: []string{"Figma", "Prototyping"},
			category:     "design",
		},
	}

	for _, r := range rows {
		if _, err := db.Exec(ctx, insert,
			r.id, r.title, "Acme Corp", r.location, r.jobType, r.salary,
			r.description, r.requirements, r.category, demoEmployerID,
		); err != nil {
			return err
		}
	}
	return nil
}
