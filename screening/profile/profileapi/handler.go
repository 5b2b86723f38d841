package profileapi

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Abraxas-365/sift/internal/docext"
	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/Abraxas-365/sift/pkg/iam/auth"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/profile"
	"github.com/Abraxas-365/sift/screening/profile/profilesrv"
)

// maxUploadSize caps a single resume upload at 10MB.
const maxUploadSize = int64(10 * 1024 * 1024)

type ProfileHandlers struct {
	service    *profilesrv.Service
	fileSystem fsx.FileSystem
}

func NewProfileHandlers(service *profilesrv.Service, fileSystem fsx.FileSystem) *ProfileHandlers {
	return &ProfileHandlers{
		service:    service,
		fileSystem: fileSystem,
	}
}

func (h *ProfileHandlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	profiles := app.Group("/api/v1/profiles", authMiddleware)
	profiles.Post("/parse", auth.RequireScope(auth.ScopeProfilesWrite), h.ParseDocument)
	profiles.Get("/", auth.RequireScope(auth.ScopeProfilesRead), h.ListProfiles)
	profiles.Get("/:id", auth.RequireScope(auth.ScopeProfilesRead), h.GetProfile)
	profiles.Delete("/:id", auth.RequireScope(auth.ScopeProfilesDelete), h.DeleteProfile)

	screenings := app.Group("/api/v1/screenings", authMiddleware)
	screenings.Post("/", auth.RequireScope(auth.ScopeScreeningsWrite), h.CreateScreening)
	screenings.Get("/", auth.RequireScope(auth.ScopeScreeningsRead), h.ListScreenings)
	screenings.Get("/:id", auth.RequireScope(auth.ScopeScreeningsRead), h.GetScreeningStatus)
}

// ============================================================================
// Profile Handlers
// ============================================================================

// ParseDocument parses one uploaded resume synchronously
// POST /api/v1/profiles/parse
func (h *ProfileHandlers) ParseDocument(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	filePath, err := h.uploadFile(c, userID, file)
	if err != nil {
		return err
	}

	response, err := h.service.ParseDocument(c.Context(), profile.ParseDocumentRequest{
		OwnerID:  userID,
		FilePath: filePath,
		FileName: file.Filename,
	})
	if err != nil {
		_ = h.fileSystem.DeleteFile(c.Context(), filePath)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetProfile retrieves a profile by ID
// GET /api/v1/profiles/:id
func (h *ProfileHandlers) GetProfile(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	profileID := kernel.ProfileID(c.Params("id"))
	if profileID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid profile ID",
		})
	}

	p, err := h.service.GetProfile(c.Context(), userID, profileID)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// ListProfiles lists the caller's profiles
// GET /api/v1/profiles?page=1&page_size=20
func (h *ProfileHandlers) ListProfiles(c *fiber.Ctx) error {
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

	response, err := h.service.ListProfiles(c.Context(), userID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// DeleteProfile deletes a profile and its stored file
// DELETE /api/v1/profiles/:id
func (h *ProfileHandlers) DeleteProfile(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	profileID := kernel.ProfileID(c.Params("id"))
	if profileID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid profile ID",
		})
	}

	existing, err := h.service.GetProfile(c.Context(), userID, profileID)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProfile(c.Context(), userID, profileID); err != nil {
		return err
	}

	if existing.FileURL != "" {
		_ = h.fileSystem.DeleteFile(c.Context(), existing.FileURL)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// ============================================================================
// Screening Handlers
// ============================================================================

// CreateScreening starts a batch run over multiple uploaded resumes.
// POST /api/v1/screenings
// Multipart form: files[] plus role_name and required_skills (comma separated).
func (h *ProfileHandlers) CreateScreening(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart form is required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one file is required",
		})
	}

	req := profile.CreateScreeningRequest{
		RecruiterID:    userID,
		RoleName:       c.FormValue("role_name"),
		RequiredSkills: splitSkills(c.FormValue("required_skills")),
	}

	uploaded := make([]string, 0, len(files))
	for _, file := range files {
		filePath, err := h.uploadFile(c, userID, file)
		if err != nil {
			for _, path := range uploaded {
				_ = h.fileSystem.DeleteFile(c.Context(), path)
			}
			return err
		}
		uploaded = append(uploaded, filePath)
		req.Documents = append(req.Documents, profile.ScreeningDocument{
			FilePath: filePath,
			FileName: file.Filename,
		})
	}

	screening, err := h.service.CreateScreening(c.Context(), req)
	if err != nil {
		for _, path := range uploaded {
			_ = h.fileSystem.DeleteFile(c.Context(), path)
		}
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Screening created, documents queued for processing",
		"screening":  screening,
		"status_url": fmt.Sprintf("/api/v1/screenings/%s", screening.ID),
	})
}

// GetScreeningStatus returns batch progress and ranked results
// GET /api/v1/screenings/:id
func (h *ProfileHandlers) GetScreeningStatus(c *fiber.Ctx) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	screeningID := kernel.ScreeningID(c.Params("id"))
	if screeningID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid screening ID",
		})
	}

	response, err := h.service.GetScreeningStatus(c.Context(), userID, screeningID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ListScreenings lists the caller's screenings
// GET /api/v1/screenings?page=1&page_size=20
func (h *ProfileHandlers) ListScreenings(c *fiber.Ctx) error {
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

	response, err := h.service.ListScreenings(c.Context(), userID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ============================================================================
// Helper Functions
// ============================================================================

// uploadFile validates one multipart file and streams it to storage.
// Returns the storage path. Path format: resumes/{user_id}/{year}/{month}/{uuid}.{ext}
func (h *ProfileHandlers) uploadFile(c *fiber.Ctx, userID kernel.UserID, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSize {
		return "", fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("file %s exceeds the 10MB limit", file.Filename))
	}

	if !docext.IsSupported(file.Filename) {
		return "", profile.ErrInvalidFileFormat().
			WithDetail("file_name", file.Filename).
			WithDetail("supported_formats", docext.SupportedExtensions)
	}

	uploadedFile, err := file.Open()
	if err != nil {
		return "", profile.ErrFileReadFailed().
			WithDetail("file_name", file.Filename).
			WithDetail("error", err.Error())
	}
	defer uploadedFile.Close()

	now := time.Now()
	filePath := h.fileSystem.Join(
		"resumes",
		userID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.New().String()+strings.ToLower(filepath.Ext(file.Filename)),
	)

	if err := h.fileSystem.WriteFileStream(c.Context(), filePath, uploadedFile); err != nil {
		return "", profile.ErrFileReadFailed().
			WithDetail("file_path", filePath).
			WithDetail("error", err.Error())
	}
	return filePath, nil
}

func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
