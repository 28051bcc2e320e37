package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	ucauth "jobboard/internal/usecase/auth"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type AuthHandler struct {
	uc ucauth.Usecase

	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Company  string `json:"company"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func NewAuthHandler(uc ucauth.Usecase, accessTokenTTL, refreshTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, accessTokenTTL: accessTokenTTL, refreshTokenTTL: refreshTokenTTL}
}

// RegisterRoutes wires register/login/refresh publicly; the session
// endpoints carry the auth gate as route-level middleware.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, requireAuth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.Refresh)

	r.Post("/logout", requireAuth, h.Logout)
	r.Post("/change-password", requireAuth, h.ChangePassword)
	r.Get("/current-user", requireAuth, h.CurrentUser)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Company:  req.Company,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusCreated, "User registered successfully", dto.NewUserResponse(usr))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	usr, pair, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	h.setTokenCookies(c, pair)
	return response.Success(c, fiber.StatusOK, "Login successful", dto.LoginResponse{
		User:         dto.NewUserResponse(usr),
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	token := strings.TrimSpace(c.Cookies(refreshTokenCookie))
	if token == "" {
		var req refreshRequest
		if err := c.Bind().Body(&req); err == nil {
			token = strings.TrimSpace(req.RefreshToken)
		}
	}

	pair, err := h.uc.Refresh(c.Context(), token)
	if err != nil {
		return mapAuthError(err)
	}

	h.setTokenCookies(c, pair)
	return response.Success(c, fiber.StatusOK, "Access token refreshed successfully", dto.TokenPairResponse{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	if err := h.uc.Logout(c.Context(), usr.ID); err != nil {
		return mapAuthError(err)
	}

	c.ClearCookie(accessTokenCookie, refreshTokenCookie)
	return response.Success(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req changePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if err := h.uc.ChangePassword(c.Context(), usr.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, ucauth.ErrInvalidCredentials) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid current password", err)
		}
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) CurrentUser(c fiber.Ctx) error {
	usr, ok := middleware.UserFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	return response.Success(c, fiber.StatusOK, "Current user info", dto.NewUserResponse(usr))
}

func (h *AuthHandler) setTokenCookies(c fiber.Ctx, pair ucauth.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    pair.Access,
		Expires:  time.Now().Add(h.accessTokenTTL),
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.Refresh,
		Expires:  time.Now().Add(h.refreshTokenTTL),
		HTTPOnly: true,
		Secure:   true,
	})
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "All required fields must be filled", err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "User already exists", err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, ucauth.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
