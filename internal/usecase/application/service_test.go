package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type memAppRepo struct {
	byID map[uuid.UUID]application.Application
	err  error
}

func newMemAppRepo() *memAppRepo {
	return &memAppRepo{byID: make(map[uuid.UUID]application.Application)}
}

func (m *memAppRepo) Create(_ context.Context, a application.Application) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.JobID == a.JobID && existing.UserID == a.UserID {
			return application.ErrDuplicate
		}
	}
	m.byID[a.ID] = a
	return nil
}

func (m *memAppRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	if m.err != nil {
		return application.Application{}, m.err
	}
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *memAppRepo) ExistsByJobAndUser(_ context.Context, jobID, userID uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, a := range m.byID {
		if a.JobID == jobID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAppRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Application, []application.JobSummary, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	var apps []application.Application
	var jobs []application.JobSummary
	for _, a := range m.byID {
		if a.UserID == userID {
			apps = append(apps, a)
			jobs = append(jobs, application.JobSummary{ID: a.JobID})
		}
	}
	return apps, jobs, nil
}

func (m *memAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, []application.Applicant, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	var apps []application.Application
	var applicants []application.Applicant
	for _, a := range m.byID {
		if a.JobID == jobID {
			apps = append(apps, a)
			applicants = append(applicants, application.Applicant{ID: a.UserID})
		}
	}
	return apps, applicants, nil
}

func (m *memAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	if m.err != nil {
		return application.Application{}, m.err
	}
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	m.byID[id] = a
	return a, nil
}

type stubJobRepo struct {
	byID map[uuid.UUID]job.Job
	err  error
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[uuid.UUID]job.Job)}
}

func (m *stubJobRepo) add(ownerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	m.byID[id] = job.Job{ID: id, CreatedBy: ownerID}
	return id
}

func (m *stubJobRepo) Create(_ context.Context, j job.Job) error {
	m.byID[j.ID] = j
	return nil
}

func (m *stubJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	j, ok := m.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *stubJobRepo) GetByIDWithPoster(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	j, err := m.GetByID(ctx, id)
	if err != nil {
		return job.Listing{}, err
	}
	return job.Listing{Job: j}, nil
}

func (m *stubJobRepo) List(_ context.Context, _ job.ListFilter) ([]job.Listing, error) {
	return nil, nil
}

func (m *stubJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.byID[id]
	return ok, nil
}

func (m *stubJobRepo) UpdateOwned(_ context.Context, j job.Job, _ uuid.UUID) error {
	m.byID[j.ID] = j
	return nil
}

func (m *stubJobRepo) DeleteOwned(_ context.Context, id, _ uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func TestApply_JobNotFound(t *testing.T) {
	svc := NewService(newMemAppRepo(), newStubJobRepo())

	_, err := svc.Apply(context.Background(), user.User{ID: uuid.New()}, uuid.New(), ApplyInput{})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApply_DuplicateGuard(t *testing.T) {
	apps := newMemAppRepo()
	jobs := newStubJobRepo()
	svc := NewService(apps, jobs)

	jobID := jobs.add(uuid.New())
	seeker := user.User{ID: uuid.New()}

	first, err := svc.Apply(context.Background(), seeker, jobID, ApplyInput{CoverLetter: "Hi", Resume: "cv.pdf"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if first.Status != application.StatusPending {
		t.Fatalf("expected pending status, got %q", first.Status)
	}

	if _, err := svc.Apply(context.Background(), seeker, jobID, ApplyInput{}); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}

	// A different jobseeker may still apply to the same job.
	other := user.User{ID: uuid.New()}
	if _, err := svc.Apply(context.Background(), other, jobID, ApplyInput{}); err != nil {
		t.Fatalf("second applicant: %v", err)
	}
}

func TestMyApplications(t *testing.T) {
	apps := newMemAppRepo()
	jobs := newStubJobRepo()
	svc := NewService(apps, jobs)

	seeker := user.User{ID: uuid.New()}
	jobA := jobs.add(uuid.New())
	jobB := jobs.add(uuid.New())

	if _, err := svc.Apply(context.Background(), seeker, jobA, ApplyInput{}); err != nil {
		t.Fatalf("apply A: %v", err)
	}
	if _, err := svc.Apply(context.Background(), seeker, jobB, ApplyInput{}); err != nil {
		t.Fatalf("apply B: %v", err)
	}
	if _, err := svc.Apply(context.Background(), user.User{ID: uuid.New()}, jobA, ApplyInput{}); err != nil {
		t.Fatalf("apply other: %v", err)
	}

	mine, summaries, err := svc.MyApplications(context.Background(), seeker.ID)
	if err != nil {
		t.Fatalf("my applications: %v", err)
	}
	if len(mine) != 2 || len(summaries) != 2 {
		t.Fatalf("expected 2 applications with summaries, got %d/%d", len(mine), len(summaries))
	}
}

func TestApplicantsForJob_OwnerGate(t *testing.T) {
	apps := newMemAppRepo()
	jobs := newStubJobRepo()
	svc := NewService(apps, jobs)

	owner := user.User{ID: uuid.New()}
	jobID := jobs.add(owner.ID)

	if _, err := svc.Apply(context.Background(), user.User{ID: uuid.New()}, jobID, ApplyInput{}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, _, err := svc.ApplicantsForJob(context.Background(), user.User{ID: uuid.New()}, jobID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, _, err := svc.ApplicantsForJob(context.Background(), owner, uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	list, applicants, err := svc.ApplicantsForJob(context.Background(), owner, jobID)
	if err != nil {
		t.Fatalf("applicants: %v", err)
	}
	if len(list) != 1 || len(applicants) != 1 {
		t.Fatalf("expected 1 applicant, got %d/%d", len(list), len(applicants))
	}
}

func TestUpdateStatus_ValidatesStatusBeforeOwnership(t *testing.T) {
	apps := newMemAppRepo()
	jobs := newStubJobRepo()
	svc := NewService(apps, jobs)

	owner := user.User{ID: uuid.New()}
	jobID := jobs.add(owner.ID)

	a, err := svc.Apply(context.Background(), user.User{ID: uuid.New()}, jobID, ApplyInput{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	// A bad status is rejected even for a non-owner, before any lookup.
	if _, err := svc.UpdateStatus(context.Background(), user.User{ID: uuid.New()}, a.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), user.User{ID: uuid.New()}, a.ID, "reviewed"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), owner, uuid.New(), "reviewed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown application, got %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), owner, a.ID, "accepted")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("expected accepted, got %q", updated.Status)
	}
}
