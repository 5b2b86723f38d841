package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// Middleware validates Bearer tokens and stores the caller identity in the
// request context.
func Middleware(tokenService TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_scopes", claims.Scopes)

		return c.Next()
	}
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(c *fiber.Ctx) (kernel.UserID, bool) {
	userID, ok := c.Locals("user_id").(kernel.UserID)
	return userID, ok
}

// GetUserEmail extracts the authenticated user email from the request context.
func GetUserEmail(c *fiber.Ctx) (kernel.Email, bool) {
	email, ok := c.Locals("user_email").(kernel.Email)
	return email, ok
}

// RequireScope rejects requests whose token lacks the given scope. A scope of
// the form "area:*" grants every action in that area.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scopes, ok := c.Locals("user_scopes").([]string)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Missing token scopes")
		}

		area, _, _ := strings.Cut(scope, ":")
		for _, s := range scopes {
			if s == scope || s == area+":*" {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
	}
}
