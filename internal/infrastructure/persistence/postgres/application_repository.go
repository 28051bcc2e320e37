package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"
)

type ApplicationRepository struct {
	db database.DB
}

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const selectApplication = `SELECT id, job_id, user_id, status, cover_letter, resume, applied_date, created_at, updated_at FROM applications`

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, user_id, status, cover_letter, resume)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.UserID, a.Status.String(), a.CoverLetter, a.Resume,
	)
	if isUniqueViolation(err) {
		return application.ErrDuplicate
	}
	return err
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, selectApplication+` WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ExistsByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, []application.JobSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.user_id, a.status, a.cover_letter, a.resume,
		        a.applied_date, a.created_at, a.updated_at,
		        j.id, j.title, j.company, j.location, j.type, j.category
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1
		 ORDER BY a.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	apps := make([]application.Application, 0)
	jobs := make([]application.JobSummary, 0)
	for rows.Next() {
		var a application.Application
		var s string
		var js application.JobSummary
		err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &s, &a.CoverLetter, &a.Resume,
			&a.AppliedDate, &a.CreatedAt, &a.UpdatedAt,
			&js.ID, &js.Title, &js.Company, &js.Location, &js.Type, &js.Category,
		)
		if err != nil {
			return nil, nil, err
		}
		a.Status = application.Status(s)
		apps = append(apps, a)
		jobs = append(jobs, js)
	}
	return apps, jobs, rows.Err()
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, []application.Applicant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.user_id, a.status, a.cover_letter, a.resume,
		        a.applied_date, a.created_at, a.updated_at,
		        u.id, u.name, u.email, u.role
		 FROM applications a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	apps := make([]application.Application, 0)
	applicants := make([]application.Applicant, 0)
	for rows.Next() {
		var a application.Application
		var s string
		var ap application.Applicant
		err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &s, &a.CoverLetter, &a.Resume,
			&a.AppliedDate, &a.CreatedAt, &a.UpdatedAt,
			&ap.ID, &ap.Name, &ap.Email, &ap.Role,
		)
		if err != nil {
			return nil, nil, err
		}
		a.Status = application.Status(s)
		apps = append(apps, a)
		applicants = append(applicants, ap)
	}
	return apps, applicants, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, job_id, user_id, status, cover_letter, resume, applied_date, created_at, updated_at`,
		id, status.String(),
	)
	return scanApplication(row)
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var s string
	err := row.Scan(&a.ID, &a.JobID, &a.UserID, &s, &a.CoverLetter, &a.Resume, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(s)
	return a, nil
}
