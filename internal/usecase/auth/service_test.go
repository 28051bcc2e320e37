package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
)

type memUserRepo struct {
	byID map[uuid.UUID]user.User
	err  error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[uuid.UUID]user.User)}
}

func (m *memUserRepo) Create(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, err := m.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memUserRepo) Update(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func newTestService(repo *memUserRepo) *Service {
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtSvc)
}

func registerTestUser(t *testing.T, svc *Service, email, role string) user.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
		Role:     role,
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := newTestService(newMemUserRepo())

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"empty name", RegisterInput{Email: "a@b.com", Password: "password123", Role: "jobseeker"}},
		{"empty email", RegisterInput{Name: "A", Password: "password123", Role: "jobseeker"}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.com", Password: "short", Role: "jobseeker"}},
		{"unknown role", RegisterInput{Name: "A", Email: "a@b.com", Password: "password123", Role: "admin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegister_StripsSecrets(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)

	u := registerTestUser(t, svc, "seeker@example.com", "jobseeker")
	if u.PasswordHash != "" || u.RefreshToken != "" {
		t.Fatalf("expected sanitized user, got hash=%q refresh=%q", u.PasswordHash, u.RefreshToken)
	}

	stored, err := repo.GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("stored user: %v", err)
	}
	if stored.PasswordHash == "" {
		t.Fatalf("expected stored password hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_CompanyIgnoredForJobseeker(t *testing.T) {
	svc := newTestService(newMemUserRepo())

	u := registerTestUser(t, svc, "seeker@example.com", "jobseeker")
	if u.Company != "" {
		t.Fatalf("expected empty company for jobseeker, got %q", u.Company)
	}

	e := registerTestUser(t, svc, "employer@example.com", "employer")
	if e.Company != "Acme" {
		t.Fatalf("expected company kept for employer, got %q", e.Company)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMemUserRepo())
	registerTestUser(t, svc, "dup@example.com", "jobseeker")

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Other",
		Email:    "DUP@example.com",
		Password: "password123",
		Role:     "employer",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)
	created := registerTestUser(t, svc, "login@example.com", "jobseeker")

	u, pair, err := svc.Login(context.Background(), LoginInput{Email: "Login@Example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, u.ID)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if u.PasswordHash != "" || u.RefreshToken != "" {
		t.Fatalf("expected sanitized user")
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.RefreshToken != pair.Refresh {
		t.Fatalf("expected refresh token persisted")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(newMemUserRepo())
	registerTestUser(t, svc, "login@example.com", "jobseeker")

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "login@example.com", Password: "wrongpassword"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(newMemUserRepo())

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefresh_RotatesAndInvalidatesOldToken(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)
	registerTestUser(t, svc, "rotate@example.com", "jobseeker")

	_, first, err := svc.Login(context.Background(), LoginInput{Email: "rotate@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Force distinct iat so the rotated token differs from the first.
	time.Sleep(1100 * time.Millisecond)

	second, err := svc.Refresh(context.Background(), first.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.Refresh == first.Refresh {
		t.Fatalf("expected rotated refresh token")
	}

	// The superseded token no longer matches the stored slot.
	if _, err := svc.Refresh(context.Background(), first.Refresh); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for superseded token, got %v", err)
	}

	if _, err := svc.Refresh(context.Background(), second.Refresh); err != nil {
		t.Fatalf("current token should refresh: %v", err)
	}
}

func TestRefresh_RejectsGarbageAndEmpty(t *testing.T) {
	svc := newTestService(newMemUserRepo())

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestRefresh_RejectsAccessTokenAsRefresh(t *testing.T) {
	svc := newTestService(newMemUserRepo())
	registerTestUser(t, svc, "mix@example.com", "jobseeker")

	_, pair, err := svc.Login(context.Background(), LoginInput{Email: "mix@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.Access); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for access token, got %v", err)
	}
}

func TestLogout_ClearsStoredToken(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)
	created := registerTestUser(t, svc, "logout@example.com", "jobseeker")

	_, pair, err := svc.Login(context.Background(), LoginInput{Email: "logout@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), created.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.RefreshToken != "" {
		t.Fatalf("expected cleared refresh token")
	}

	if _, err := svc.Refresh(context.Background(), pair.Refresh); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestService(repo)
	created := registerTestUser(t, svc, "pw@example.com", "jobseeker")

	if err := svc.ChangePassword(context.Background(), created.ID, "password123", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short new password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "wrongpassword", "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "pw@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "pw@example.com", Password: "newpassword1"}); err != nil {
		t.Fatalf("expected new password accepted, got %v", err)
	}
}
