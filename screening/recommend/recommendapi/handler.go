package recommendapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/sift/pkg/iam/auth"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/recommend/recommendsrv"
)

type RecommendHandlers struct {
	service *recommendsrv.Service
}

func NewRecommendHandlers(service *recommendsrv.Service) *RecommendHandlers {
	return &RecommendHandlers{service: service}
}

func (h *RecommendHandlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	roles := app.Group("/api/v1/roles", authMiddleware)
	roles.Get("/:role/skills", h.GetRoleSkills)
	roles.Post("/:role/match", h.MatchRole)
	roles.Post("/suggest", h.SuggestRoles)

	requirements := app.Group("/api/v1/requirements", authMiddleware)
	requirements.Post("/", auth.RequireScope(auth.ScopeRequirementsWrite), h.CreateRequirement)
	requirements.Get("/", auth.RequireScope(auth.ScopeRequirementsRead), h.ListRequirements)
	requirements.Get("/:id", auth.RequireScope(auth.ScopeRequirementsRead), h.GetRequirement)
	requirements.Put("/:id", auth.RequireScope(auth.ScopeRequirementsWrite), h.UpdateRequirement)
	requirements.Delete("/:id", auth.RequireScope(auth.ScopeRequirementsDelete), h.DeleteRequirement)
}

// ============================================================================
// Role Handlers
// ============================================================================

// GetRoleSkills returns the required skills for a role
// GET /api/v1/roles/:role/skills
func (h *RecommendHandlers) GetRoleSkills(c *fiber.Ctx) error {
	role := c.Params("role")
	skills, err := h.service.SkillsForRole(role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"role":   role,
		"skills": skills,
	})
}

type matchRequest struct {
	Skills []string `json:"skills"`
}

// MatchRole matches a skill set against one role's requirements
// POST /api/v1/roles/:role/match
func (h *RecommendHandlers) MatchRole(c *fiber.Ctx) error {
	var req matchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	rec, err := h.service.Recommend(req.Skills, c.Params("role"))
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

// SuggestRoles ranks every known role against the given skills
// POST /api/v1/roles/suggest
func (h *RecommendHandlers) SuggestRoles(c *fiber.Ctx) error {
	var req matchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	return c.JSON(fiber.Map{
		"recommendations": h.service.SuggestRoles(req.Skills),
	})
}

// ============================================================================
// Requirement Handlers
// ============================================================================

type requirementRequest struct {
	RoleName string   `json:"role_name"`
	Skills   []string `json:"skills"`
}

// CreateRequirement stores a recruiter's custom role requirement
// POST /api/v1/requirements
func (h *RecommendHandlers) CreateRequirement(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req requirementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	requirement, err := h.service.CreateRequirement(c.Context(), userID, req.RoleName, req.Skills)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(requirement)
}

// GetRequirement retrieves a requirement by ID
// GET /api/v1/requirements/:id
func (h *RecommendHandlers) GetRequirement(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	requirementID := kernel.RequirementID(c.Params("id"))
	if requirementID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid requirement ID",
		})
	}

	requirement, err := h.service.GetRequirement(c.Context(), requirementID)
	if err != nil {
		return err
	}
	if requirement.RecruiterID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}
	return c.JSON(requirement)
}

// UpdateRequirement updates a requirement's role name or skills
// PUT /api/v1/requirements/:id
func (h *RecommendHandlers) UpdateRequirement(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	requirementID := kernel.RequirementID(c.Params("id"))
	if requirementID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid requirement ID",
		})
	}

	var req requirementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	requirement, err := h.service.UpdateRequirement(c.Context(), userID, requirementID, req.RoleName, req.Skills)
	if err != nil {
		return err
	}
	return c.JSON(requirement)
}

// ListRequirements lists the caller's requirements
// GET /api/v1/requirements?page=1&page_size=20
func (h *RecommendHandlers) ListRequirements(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	response, err := h.service.ListRequirements(c.Context(), userID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// DeleteRequirement deletes a requirement
// DELETE /api/v1/requirements/:id
func (h *RecommendHandlers) DeleteRequirement(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	requirementID := kernel.RequirementID(c.Params("id"))
	if requirementID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid requirement ID",
		})
	}

	if err := h.service.DeleteRequirement(c.Context(), userID, requirementID); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
