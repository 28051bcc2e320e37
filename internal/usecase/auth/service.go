package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Company  string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	Access  string
	Refresh string
}

type Usecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, error)
	Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error)
	Refresh(ctx context.Context, presentedToken string) (TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type Service struct {
	users user.Repository
	jwt   jwt.Service
}

func NewService(users user.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	role, err := user.ParseRole(in.Role)
	if err != nil {
		return user.User{}, ErrInvalidInput
	}

	company := ""
	if role == user.RoleEmployer {
		company = strings.TrimSpace(in.Company)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Company:      company,
	}

	if err := s.users.Create(ctx, u); err != nil {
		// The unique constraint closes the check-then-create window.
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return created.Sanitized(), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return u.Sanitized(), pair, nil
}

// Refresh rotates the session slot: the presented token must match the
// stored value, and a new pair supersedes it. A superseded token fails the
// comparison even though it was never blacklisted.
func (s *Service) Refresh(ctx context.Context, presentedToken string) (TokenPair, error) {
	presentedToken = strings.TrimSpace(presentedToken)
	if presentedToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := s.jwt.ValidateRefreshToken(presentedToken)
	if err != nil {
		return TokenPair{}, ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrUnauthorized
		}
		return TokenPair{}, ErrInternal
	}

	if u.RefreshToken == "" || u.RefreshToken != presentedToken {
		return TokenPair{}, ErrUnauthorized
	}

	return s.issueTokens(ctx, u)
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUnauthorized
		}
		return ErrInternal
	}

	u.RefreshToken = ""
	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if !isValidPassword(newPassword) {
		return ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUnauthorized
		}
		return ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}

	u.PasswordHash = string(hash)
	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, u user.User) (TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, ErrInternal
	}

	u.RefreshToken = refresh
	if err := s.users.Update(ctx, u); err != nil {
		return TokenPair{}, ErrInternal
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}
