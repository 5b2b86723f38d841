package profile

import (
	"github.com/Abraxas-365/sift/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// ParseDocumentRequest - parse one uploaded resume synchronously
type ParseDocumentRequest struct {
	OwnerID  kernel.UserID `json:"owner_id" validate:"required"`
	FilePath string        `json:"file_path" validate:"required"`
	FileName string        `json:"file_name" validate:"required"`
}

// CreateScreeningRequest - start a recruiter batch run
type CreateScreeningRequest struct {
	RecruiterID    kernel.UserID `json:"recruiter_id" validate:"required"`
	RoleName       string        `json:"role_name,omitempty"`
	RequiredSkills []string      `json:"required_skills"`
	Documents      []ScreeningDocument
}

// ScreeningDocument - one uploaded file inside a screening batch
type ScreeningDocument struct {
	FilePath string `json:"file_path" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ParseDocumentResponse - the assembled profile for the caller
type ParseDocumentResponse struct {
	Profile *Profile `json:"profile"`
}

// ScreeningStatusResponse - batch progress plus ranked results so far
type ScreeningStatusResponse struct {
	Screening *Screening         `json:"screening"`
	Results   []*ScreeningResult `json:"results"`
}

// ScreeningResult - one parsed profile matched against the screening's
// required skills
type ScreeningResult struct {
	Profile       *Profile `json:"profile"`
	MatchFraction float64  `json:"match_fraction"`
	MissingSkills []string `json:"missing_skills,omitempty"`
}
