package recommend

import (
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/profile"
)

// Requirement is a recruiter-defined skill set for a role, reusable across
// screening runs.
type Requirement struct {
	ID          kernel.RequirementID `db:"id" json:"id"`
	RecruiterID kernel.UserID        `db:"recruiter_id" json:"recruiter_id"`

	RoleName string           `db:"role_name" json:"role_name"`
	Skills   profile.SkillSet `db:"skills" json:"skills"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
