package profileinfra

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/profile"
)

// profileRow represents a row from the profiles table
type profileRow struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"owner_id"`
	ScreeningID sql.NullString `db:"screening_id"`
	Contact     []byte         `db:"contact"`
	Education   []byte         `db:"education"`
	Skills      []byte         `db:"skills"`
	Years       float64        `db:"years_of_experience"`
	Level       string         `db:"level"`
	Score       int            `db:"score"`
	FileName    string         `db:"file_name"`
	FileURL     string         `db:"file_url"`
	ParsedAt    time.Time      `db:"parsed_at"`
	CreatedAt   time.Time      `db:"created_at"`
}

// ToDomain converts a profileRow to a profile.Profile domain model
func (r *profileRow) ToDomain() (*profile.Profile, error) {
	p := &profile.Profile{
		ID:        kernel.ProfileID(r.ID),
		OwnerID:   kernel.UserID(r.OwnerID),
		Years:     r.Years,
		Level:     profile.ExperienceLevel(r.Level),
		Score:     r.Score,
		FileName:  r.FileName,
		FileURL:   r.FileURL,
		ParsedAt:  r.ParsedAt,
		CreatedAt: r.CreatedAt,
	}
	if r.ScreeningID.Valid {
		p.ScreeningID = kernel.ScreeningID(r.ScreeningID.String)
	}

	if err := json.Unmarshal(r.Contact, &p.Contact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact: %w", err)
	}
	if err := json.Unmarshal(r.Education, &p.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}
	if err := json.Unmarshal(r.Skills, &p.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	return p, nil
}

// screeningRow represents a row from the screenings table
type screeningRow struct {
	ID             string    `db:"id"`
	RecruiterID    string    `db:"recruiter_id"`
	RoleName       string    `db:"role_name"`
	RequiredSkills []byte    `db:"required_skills"`
	TotalDocuments int       `db:"total_documents"`
	ProcessedCount int       `db:"processed_count"`
	FailedCount    int       `db:"failed_count"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *screeningRow) ToDomain() (*profile.Screening, error) {
	s := &profile.Screening{
		ID:             kernel.ScreeningID(r.ID),
		RecruiterID:    kernel.UserID(r.RecruiterID),
		RoleName:       r.RoleName,
		TotalDocuments: r.TotalDocuments,
		ProcessedCount: r.ProcessedCount,
		FailedCount:    r.FailedCount,
		Status:         profile.ScreeningStatus(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if err := json.Unmarshal(r.RequiredSkills, &s.RequiredSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal required_skills: %w", err)
	}
	return s, nil
}

// taskRow represents a row from the screening_tasks table
type taskRow struct {
	ID          string         `db:"id"`
	ScreeningID string         `db:"screening_id"`
	OwnerID     string         `db:"owner_id"`
	FilePath    string         `db:"file_path"`
	FileName    string         `db:"file_name"`
	Status      string         `db:"status"`
	Attempts    int            `db:"attempts"`
	LastErr     sql.NullString `db:"last_error"`
	ProfileID   sql.NullString `db:"profile_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *taskRow) ToDomain() *profile.Task {
	t := &profile.Task{
		ID:          r.ID,
		ScreeningID: kernel.ScreeningID(r.ScreeningID),
		OwnerID:     kernel.UserID(r.OwnerID),
		FilePath:    r.FilePath,
		FileName:    r.FileName,
		Status:      profile.TaskStatus(r.Status),
		Attempts:    r.Attempts,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.LastErr.Valid {
		t.LastErr = r.LastErr.String
	}
	if r.ProfileID.Valid {
		t.ProfileID = kernel.ProfileID(r.ProfileID.String)
	}
	return t
}
