package seeder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/database"
)

// Fixed ids keep reseeding idempotent and let the job seeder reference the
// demo employer.
var (
	demoEmployerID  = uuid.MustParse("0b5a1f8e-3c6d-4e2a-9f7b-1d8c2a4e6b01")
	demoJobseekerID = uuid.MustParse("7e2d9c4a-1b8f-4d3e-a6c5-9f0b3e7d2a02")
)

const demoPassword = "password123"

type DemoUsers struct{}

func (DemoUsers) Name() string { return "demo_users" }

func (DemoUsers) Run(ctx context.Context, db database.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	const insert = `
		INSERT INTO users (id, name, email, password_hash, role, company)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING`

	rows := []struct {
		id      uuid.UUID
		name    string
		email   string
		role    string
		company string
	}{
		{demoEmployerID, "Demo Employer", "employer@demo.local", "employer", "Acme Corp"},
		{demoJobseekerID, "Demo Jobseeker", "jobseeker@demo.local", "jobseeker", ""},
	}

	for _, r := range rows {
		if _, err := db.Exec(ctx, insert, r.id, r.name, r.email, string(hash), r.role, r.company); err != nil {
			return err
		}
	}
	return nil
}
