package job

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type memJobRepo struct {
	byID   map[uuid.UUID]job.Job
	poster job.Poster
	err    error
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{byID: make(map[uuid.UUID]job.Job)}
}

func (m *memJobRepo) Create(_ context.Context, j job.Job) error {
	if m.err != nil {
		return m.err
	}
	m.byID[j.ID] = j
	return nil
}

func (m *memJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	j, ok := m.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *memJobRepo) GetByIDWithPoster(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	j, err := m.GetByID(ctx, id)
	if err != nil {
		return job.Listing{}, err
	}
	return job.Listing{Job: j, Poster: m.poster}, nil
}

func (m *memJobRepo) List(_ context.Context, _ job.ListFilter) ([]job.Listing, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]job.Listing, 0, len(m.byID))
	for _, j := range m.byID {
		out = append(out, job.Listing{Job: j, Poster: m.poster})
	}
	return out, nil
}

func (m *memJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memJobRepo) UpdateOwned(_ context.Context, j job.Job, ownerID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	current, ok := m.byID[j.ID]
	if !ok || current.CreatedBy != ownerID {
		return job.ErrNotFound
	}
	m.byID[j.ID] = j
	return nil
}

func (m *memJobRepo) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	current, ok := m.byID[id]
	if !ok || current.CreatedBy != ownerID {
		return job.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memCache struct {
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.deletes = append(m.deletes, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type recordingNotifier struct {
	posted []job.Job
}

func (n *recordingNotifier) NotifyJobPosted(j job.Job) {
	n.posted = append(n.posted, j)
}

func validCreateInput() CreateInput {
	return CreateInput{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Location:     "Remote",
		Type:         "full-time",
		Salary:       "$100k",
		Description:  "Build services",
		Requirements: []string{"Go", "PostgreSQL"},
		Category:     "engineering",
	}
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewService(newMemJobRepo(), nil, nil, nil)

	in := validCreateInput()
	in.Salary = "  "
	if _, err := svc.Create(context.Background(), user.User{ID: uuid.New()}, in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreate_SetsOwnerAndNotifies(t *testing.T) {
	repo := newMemJobRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, nil, notifier, nil)

	owner := user.User{ID: uuid.New()}
	j, err := svc.Create(context.Background(), owner, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if j.CreatedBy != owner.ID {
		t.Fatalf("expected owner %s, got %s", owner.ID, j.CreatedBy)
	}
	if len(notifier.posted) != 1 || notifier.posted[0].ID != j.ID {
		t.Fatalf("expected one posted notification for %s, got %+v", j.ID, notifier.posted)
	}
}

func TestList_CachesResults(t *testing.T) {
	repo := newMemJobRepo()
	cache := newMemCache()
	svc := NewService(repo, cache, nil, nil)

	owner := user.User{ID: uuid.New()}
	created, err := svc.Create(context.Background(), owner, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.List(context.Background(), job.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 1 || first[0].Job.ID != created.ID {
		t.Fatalf("unexpected listing: %+v", first)
	}

	// Second call must be served from cache even if storage fails.
	repo.err = errors.New("db down")
	second, err := svc.List(context.Background(), job.ListFilter{})
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if len(second) != 1 || second[0].Job.ID != created.ID {
		t.Fatalf("expected cached listing, got %+v", second)
	}
}

func TestList_DistinctFiltersDistinctKeys(t *testing.T) {
	key1 := listCacheKey(job.ListFilter{Search: "go"})
	key2 := listCacheKey(job.ListFilter{Location: "go"})
	if key1 == key2 {
		t.Fatalf("expected distinct keys, both %q", key1)
	}
	if listCacheKey(job.ListFilter{Search: " Go "}) != listCacheKey(job.ListFilter{Search: "go"}) {
		t.Fatalf("expected normalized key")
	}
}

func TestUpdate_OwnershipMatrix(t *testing.T) {
	repo := newMemJobRepo()
	cache := newMemCache()
	svc := NewService(repo, cache, nil, nil)

	owner := user.User{ID: uuid.New()}
	other := user.User{ID: uuid.New()}
	created, err := svc.Create(context.Background(), owner, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Staff Engineer"

	if _, err := svc.Update(context.Background(), other, created.ID, UpdateInput{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if _, err := svc.Update(context.Background(), owner, uuid.New(), UpdateInput{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, created.ID, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Staff Engineer" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.Company != created.Company {
		t.Fatalf("expected untouched fields kept, got %q", updated.Company)
	}
}

func TestUpdate_RejectsBlankedField(t *testing.T) {
	repo := newMemJobRepo()
	svc := NewService(repo, nil, nil, nil)

	owner := user.User{ID: uuid.New()}
	created, err := svc.Create(context.Background(), owner, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	blank := "   "
	if _, err := svc.Update(context.Background(), owner, created.ID, UpdateInput{Title: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDelete_OwnershipMatrix(t *testing.T) {
	repo := newMemJobRepo()
	svc := NewService(repo, nil, nil, nil)

	owner := user.User{ID: uuid.New()}
	other := user.User{ID: uuid.New()}
	created, err := svc.Create(context.Background(), owner, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), other, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), owner, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMutations_InvalidateListCache(t *testing.T) {
	repo := newMemJobRepo()
	cache := newMemCache()
	svc := NewService(repo, cache, nil, nil)

	owner := user.User{ID: uuid.New()}
	created, err := svc.Create(context.Background(), owner, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.List(context.Background(), job.ListFilter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cache.data) == 0 {
		t.Fatalf("expected cached entry")
	}

	title := "New Title"
	if _, err := svc.Update(context.Background(), owner, created.ID, UpdateInput{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(cache.data) != 0 {
		t.Fatalf("expected cache emptied after update, got %d entries", len(cache.data))
	}
}
