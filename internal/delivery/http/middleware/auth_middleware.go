package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
)

// CtxUserKey holds the authenticated, sanitized user.User in c.Locals.
const CtxUserKey = "auth_user"

const accessTokenCookie = "accessToken"

type AuthMiddleware struct {
	jwt   jwt.Service
	users user.Repository
}

func NewAuthMiddleware(jwtSvc jwt.Service, users user.Repository) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, users: users}
}

// Middleware is a pure gate: one storage read, no writes. The Authorization
// header wins over the accessToken cookie.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			token = strings.TrimSpace(c.Cookies(accessTokenCookie))
		}
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, "Access token is required", nil)
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid access token", err)
		}

		usr, err := m.users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid access token", err)
		}

		c.Locals(CtxUserKey, usr.Sanitized())
		return c.Next()
	}
}

// UserFromCtx returns the identity attached by the auth middleware.
func UserFromCtx(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(CtxUserKey).(user.User)
	return u, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
