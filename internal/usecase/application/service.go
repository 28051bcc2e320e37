package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

var (
	ErrInvalidStatus  = errors.New("invalid application status")
	ErrJobNotFound    = errors.New("job not found")
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied to this job")
	ErrForbidden      = errors.New("not the job owner")
	ErrInternal       = errors.New("internal error")
)

type ApplyInput struct {
	CoverLetter string
	Resume      string
}

type Usecase interface {
	Apply(ctx context.Context, applicant user.User, jobID uuid.UUID, in ApplyInput) (application.Application, error)
	MyApplications(ctx context.Context, userID uuid.UUID) ([]application.Application, []application.JobSummary, error)
	ApplicantsForJob(ctx context.Context, requester user.User, jobID uuid.UUID) ([]application.Application, []application.Applicant, error)
	UpdateStatus(ctx context.Context, requester user.User, applicationID uuid.UUID, status string) (application.Application, error)
}

type Service struct {
	applications application.Repository
	jobs         job.Repository
}

func NewService(applications application.Repository, jobs job.Repository) *Service {
	return &Service{applications: applications, jobs: jobs}
}

func (s *Service) Apply(ctx context.Context, applicant user.User, jobID uuid.UUID, in ApplyInput) (application.Application, error) {
	exists, err := s.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if !exists {
		return application.Application{}, ErrJobNotFound
	}

	applied, err := s.applications.ExistsByJobAndUser(ctx, jobID, applicant.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if applied {
		return application.Application{}, ErrAlreadyApplied
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		UserID:      applicant.ID,
		Status:      application.StatusPending,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Resume:      strings.TrimSpace(in.Resume),
	}

	if err := s.applications.Create(ctx, a); err != nil {
		// The (job_id, user_id) constraint closes the check-then-create
		// window under concurrent submissions.
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}

	created, err := s.applications.GetByID(ctx, a.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	return created, nil
}

func (s *Service) MyApplications(ctx context.Context, userID uuid.UUID) ([]application.Application, []application.JobSummary, error) {
	apps, jobs, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, ErrInternal
	}
	return apps, jobs, nil
}

func (s *Service) ApplicantsForJob(ctx context.Context, requester user.User, jobID uuid.UUID) ([]application.Application, []application.Applicant, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, nil, ErrJobNotFound
		}
		return nil, nil, ErrInternal
	}

	if j.CreatedBy != requester.ID {
		return nil, nil, ErrForbidden
	}

	apps, applicants, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, nil, ErrInternal
	}
	return apps, applicants, nil
}

// UpdateStatus validates the status before any ownership check runs.
// Ownership is transitive: the requester must own the job the application
// references.
func (s *Service) UpdateStatus(ctx context.Context, requester user.User, applicationID uuid.UUID, status string) (application.Application, error) {
	parsed, err := application.ParseStatus(status)
	if err != nil {
		return application.Application{}, ErrInvalidStatus
	}

	a, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}

	if j.CreatedBy != requester.ID {
		return application.Application{}, ErrForbidden
	}

	updated, err := s.applications.UpdateStatus(ctx, applicationID, parsed)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	return updated, nil
}
