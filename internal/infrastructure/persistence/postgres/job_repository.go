package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
)

type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

const selectJob = `SELECT id, title, company, location, type, salary, description, requirements, category, created_by, posted_date, created_at, updated_at FROM jobs`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, company, location, type, salary, description, requirements, category, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.Title, j.Company, j.Location, j.Type, j.Salary, j.Description, j.Requirements, j.Category, j.CreatedBy,
	)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, selectJob+` WHERE id = $1`, id)
	return scanJob(row)
}

const selectListing = `SELECT j.id, j.title, j.company, j.location, j.type, j.salary, j.description,
	j.requirements, j.category, j.created_by, j.posted_date, j.created_at, j.updated_at,
	u.id, u.name, u.email, u.role
FROM jobs j
JOIN users u ON u.id = j.created_by`

func (r *JobRepository) GetByIDWithPoster(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	row := r.db.QueryRow(ctx, selectListing+` WHERE j.id = $1`, id)

	var l job.Listing
	err := scanListing(row.Scan, &l)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Listing{}, job.ErrNotFound
		}
		return job.Listing{}, err
	}
	return l, nil
}

func (r *JobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *JobRepository) List(ctx context.Context, f job.ListFilter) ([]job.Listing, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, `j.title ILIKE `+arg("%"+s+"%"))
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		where = append(where, `j.location ILIKE `+arg("%"+s+"%"))
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		where = append(where, `j.category = `+arg(s))
	}
	if s := strings.TrimSpace(f.Type); s != "" {
		where = append(where, `j.type = `+arg(s))
	}

	q := selectListing
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += ` ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Listing, 0)
	for rows.Next() {
		var l job.Listing
		if err := scanListing(rows.Scan, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *JobRepository) UpdateOwned(ctx context.Context, j job.Job, ownerID uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $3, company = $4, location = $5, type = $6, salary = $7,
		     description = $8, requirements = $9, category = $10, updated_at = now()
		 WHERE id = $1 AND created_by = $2`,
		j.ID, ownerID, j.Title, j.Company, j.Location, j.Type, j.Salary, j.Description, j.Requirements, j.Category,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Salary, &j.Description,
		&j.Requirements, &j.Category, &j.CreatedBy, &j.PostedDate, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func scanListing(scan func(dest ...any) error, l *job.Listing) error {
	return scan(
		&l.Job.ID, &l.Job.Title, &l.Job.Company, &l.Job.Location, &l.Job.Type, &l.Job.Salary, &l.Job.Description,
		&l.Job.Requirements, &l.Job.Category, &l.Job.CreatedBy, &l.Job.PostedDate, &l.Job.CreatedAt, &l.Job.UpdatedAt,
		&l.Poster.ID, &l.Poster.Name, &l.Poster.Email, &l.Poster.Role,
	)
}
