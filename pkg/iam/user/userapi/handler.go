package userapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/sift/pkg/iam/auth"
	"github.com/Abraxas-365/sift/pkg/iam/user"
	"github.com/Abraxas-365/sift/pkg/iam/user/usersrv"
)

type UserHandlers struct {
	service *usersrv.Service
}

func NewUserHandlers(service *usersrv.Service) *UserHandlers {
	return &UserHandlers{service: service}
}

func (h *UserHandlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	users := app.Group("/api/v1/auth")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Get("/me", authMiddleware, h.Me)
}

// Register creates a recruiter account
// POST /api/v1/auth/register
func (h *UserHandlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	u, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

// Login exchanges credentials for an access token
// POST /api/v1/auth/login
func (h *UserHandlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	session, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// Me returns the authenticated user's account
// GET /api/v1/auth/me
func (h *UserHandlers) Me(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	u, err := h.service.GetUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(u)
}
