package profile

import (
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// ScreeningStatus tracks a recruiter batch run.
type ScreeningStatus string

const (
	ScreeningPending    ScreeningStatus = "PENDING"
	ScreeningProcessing ScreeningStatus = "PROCESSING"
	ScreeningCompleted  ScreeningStatus = "COMPLETED"
)

// Screening is one recruiter batch: a set of uploaded resumes screened
// against a required skill set. Each document is parsed independently by a
// worker; the screening completes when every task has been processed.
type Screening struct {
	ID          kernel.ScreeningID `db:"id" json:"id"`
	RecruiterID kernel.UserID      `db:"recruiter_id" json:"recruiter_id"`

	RoleName       string   `db:"role_name" json:"role_name,omitempty"`
	RequiredSkills SkillSet `db:"required_skills" json:"required_skills"`

	TotalDocuments int `db:"total_documents" json:"total_documents"`
	ProcessedCount int `db:"processed_count" json:"processed_count"`
	FailedCount    int `db:"failed_count" json:"failed_count"`

	Status    ScreeningStatus `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// IsFinished reports whether every document has been processed or failed.
func (s *Screening) IsFinished() bool {
	return s.ProcessedCount+s.FailedCount >= s.TotalDocuments
}

// TaskStatus tracks one document inside a screening.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskProcessing TaskStatus = "PROCESSING"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskFailed     TaskStatus = "FAILED"
)

// MaxTaskAttempts bounds how often a failing document is retried.
const MaxTaskAttempts = 3

// Task is one queued document of a screening run. Tasks are the queue
// payload and the per-document status record.
type Task struct {
	ID          string             `db:"id" json:"id"`
	ScreeningID kernel.ScreeningID `db:"screening_id" json:"screening_id"`
	OwnerID     kernel.UserID      `db:"owner_id" json:"owner_id"`

	FilePath string `db:"file_path" json:"file_path"`
	FileName string `db:"file_name" json:"file_name"`

	Status   TaskStatus `db:"status" json:"status"`
	Attempts int        `db:"attempts" json:"attempts"`
	LastErr  string     `db:"last_error" json:"last_error,omitempty"`

	ProfileID kernel.ProfileID `db:"profile_id" json:"profile_id,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CanRetry reports whether a failed task should be scheduled again.
func (t *Task) CanRetry() bool {
	return t.Attempts < MaxTaskAttempts
}
