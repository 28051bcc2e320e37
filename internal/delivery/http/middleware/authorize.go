package middleware

import (
	"github.com/gofiber/fiber/v3"

	"jobboard/internal/domain/user"
)

// RequireRoles closes over the allowed set at route-registration time. It is
// a pure predicate over the identity attached by AuthMiddleware: no storage
// access, no side effects.
func RequireRoles(allowed ...user.Role) fiber.Handler {
	set := make(map[user.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(c fiber.Ctx) error {
		usr, ok := UserFromCtx(c)
		if !ok {
			return NewAppError(fiber.StatusForbidden, "Access denied", nil)
		}
		if _, ok := set[usr.Role]; !ok {
			return NewAppError(fiber.StatusForbidden, "Access denied", nil)
		}
		return c.Next()
	}
}
