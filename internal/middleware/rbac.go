package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

const (
	userIDLocal   = "user_id"
	userRoleLocal = "user_role"
)

// CurrentUserProvider exposes the user acting in the current session.
type CurrentUserProvider interface {
	CurrentUser() (models.User, bool)
}

// SessionUser copies the session's current user into the request locals.
// Login is a selection from the user list, so nothing is verified here.
func SessionUser(provider CurrentUserProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, ok := provider.CurrentUser(); ok {
			c.Locals(userIDLocal, user.ID)
			c.Locals(userRoleLocal, string(user.Role))
		}
		return c.Next()
	}
}

// RequireUser rejects requests made while nobody is logged in.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "login required")
		}
		return c.Next()
	}
}

// RequireRole ensures the session user holds one of the allowed roles.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[strings.ToLower(string(role))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "login required")
		}
		if _, ok := allowed[UserRole(c)]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// UserID returns the session user id bound to the request, if any.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(userIDLocal).(string); ok {
		return id
	}
	return ""
}

// UserRole returns the session user role bound to the request, if any.
func UserRole(c *fiber.Ctx) string {
	if role, ok := c.Locals(userRoleLocal).(string); ok {
		return strings.ToLower(role)
	}
	return ""
}
