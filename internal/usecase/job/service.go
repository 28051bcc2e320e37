package job

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("job not found")
	ErrForbidden    = errors.New("not the job owner")
	ErrInternal     = errors.New("internal error")
)

const listCachePrefix = "jobs:list:"

type CreateInput struct {
	Title        string
	Company      string
	Location     string
	Type         string
	Salary       string
	Description  string
	Requirements []string
	Category     string
}

// UpdateInput carries partial updates; nil fields keep their current value.
type UpdateInput struct {
	Title        *string
	Company      *string
	Location     *string
	Type         *string
	Salary       *string
	Description  *string
	Requirements []string
	Category     *string
}

type Usecase interface {
	Create(ctx context.Context, owner user.User, in CreateInput) (job.Job, error)
	List(ctx context.Context, f job.ListFilter) ([]job.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (job.Listing, error)
	Update(ctx context.Context, requester user.User, id uuid.UUID, in UpdateInput) (job.Job, error)
	Delete(ctx context.Context, requester user.User, id uuid.UUID) error
}

type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Notifier fans job events out to live subscribers. Never blocks the
// request path.
type Notifier interface {
	NotifyJobPosted(j job.Job)
}

type Service struct {
	jobs     job.Repository
	cache    ListCache
	notifier Notifier
	logger   *log.Logger
}

func NewService(jobs job.Repository, cache ListCache, notifier Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{jobs: jobs, cache: cache, notifier: notifier, logger: logger}
}

func (s *Service) Create(ctx context.Context, owner user.User, in CreateInput) (job.Job, error) {
	j := job.Job{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(in.Title),
		Company:      strings.TrimSpace(in.Company),
		Location:     strings.TrimSpace(in.Location),
		Type:         strings.TrimSpace(in.Type),
		Salary:       strings.TrimSpace(in.Salary),
		Description:  strings.TrimSpace(in.Description),
		Requirements: in.Requirements,
		Category:     strings.TrimSpace(in.Category),
		CreatedBy:    owner.ID,
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}

	if anyEmpty(j.Title, j.Company, j.Location, j.Type, j.Salary, j.Description, j.Category) {
		return job.Job{}, ErrInvalidInput
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}

	created, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	s.invalidateListCache(ctx)
	if s.notifier != nil {
		s.notifier.NotifyJobPosted(created)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, f job.ListFilter) ([]job.Listing, error) {
	key := listCacheKey(f)

	var cached []job.Listing
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, items, 0); err != nil {
			s.logger.Printf("job list cache set failed: %v", err)
		}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	l, err := s.jobs.GetByIDWithPoster(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Listing{}, ErrNotFound
		}
		return job.Listing{}, ErrInternal
	}
	return l, nil
}

// Update loads the job to distinguish NOT_FOUND from FORBIDDEN, then applies
// the write conditioned on ownership so a concurrent change cannot bypass
// the check.
func (s *Service) Update(ctx context.Context, requester user.User, id uuid.UUID, in UpdateInput) (job.Job, error) {
	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	if current.CreatedBy != requester.ID {
		return job.Job{}, ErrForbidden
	}

	next := applyUpdate(current, in)
	if anyEmpty(next.Title, next.Company, next.Location, next.Type, next.Salary, next.Description, next.Category) {
		return job.Job{}, ErrInvalidInput
	}

	if err := s.jobs.UpdateOwned(ctx, next, requester.ID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	updated, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	s.invalidateListCache(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, requester user.User, id uuid.UUID) error {
	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if current.CreatedBy != requester.ID {
		return ErrForbidden
	}

	if err := s.jobs.DeleteOwned(ctx, id, requester.ID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, listCachePrefix+"*"); err != nil {
		s.logger.Printf("job list cache invalidation failed: %v", err)
	}
}

func applyUpdate(j job.Job, in UpdateInput) job.Job {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&j.Title, in.Title)
	set(&j.Company, in.Company)
	set(&j.Location, in.Location)
	set(&j.Type, in.Type)
	set(&j.Salary, in.Salary)
	set(&j.Description, in.Description)
	set(&j.Category, in.Category)
	if in.Requirements != nil {
		j.Requirements = in.Requirements
	}
	return j
}

func anyEmpty(fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			return true
		}
	}
	return false
}

func listCacheKey(f job.ListFilter) string {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return listCachePrefix + strings.Join([]string{
		norm(f.Search), norm(f.Location), norm(f.Category), norm(f.Type),
	}, "|")
}
