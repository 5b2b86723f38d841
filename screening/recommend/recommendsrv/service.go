package recommendsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/profile"
	"github.com/Abraxas-365/sift/screening/recommend"
	"github.com/Abraxas-365/sift/screening/refdata"
)

type Service struct {
	tables *refdata.Tables
	repo   recommend.RequirementRepository
}

// NewService creates a new recommendation service
func NewService(tables *refdata.Tables, repo recommend.RequirementRepository) *Service {
	return &Service{
		tables: tables,
		repo:   repo,
	}
}

// ============================================================================
// Role lookups
// ============================================================================

// SkillsForRole resolves the required skills for a role in the position
// table.
func (s *Service) SkillsForRole(role string) ([]string, error) {
	skills, ok := s.tables.SkillsForRole(role)
	if !ok {
		return nil, recommend.ErrUnknownRole().
			WithDetail("role", role)
	}
	return skills, nil
}

// Recommend matches a skill set against one role's requirements.
func (s *Service) Recommend(skills []string, role string) (*recommend.JobRecommendation, error) {
	required, err := s.SkillsForRole(role)
	if err != nil {
		return nil, err
	}
	rec := recommend.Match(s.roleDisplayName(role), required, profile.NewSkillSet(skills...))
	return &rec, nil
}

// SuggestRoles ranks every role in the position table against the given
// skills, best match first.
func (s *Service) SuggestRoles(skills []string) []recommend.JobRecommendation {
	skillSet := profile.NewSkillSet(skills...)

	recs := make([]recommend.JobRecommendation, 0)
	for _, role := range s.tables.Roles() {
		required, ok := s.tables.SkillsForRole(role)
		if !ok {
			continue
		}
		recs = append(recs, recommend.Match(role, required, skillSet))
	}
	recommend.Rank(recs)
	return recs
}

func (s *Service) roleDisplayName(role string) string {
	for _, name := range s.tables.Roles() {
		if strings.EqualFold(name, role) {
			return name
		}
	}
	return role
}

// ============================================================================
// Recruiter requirements
// ============================================================================

func (s *Service) CreateRequirement(ctx context.Context, recruiter kernel.UserID, roleName string, skills []string) (*recommend.Requirement, error) {
	if roleName == "" || len(skills) == 0 {
		return nil, recommend.ErrInvalidRequirement().
			WithDetail("role_name", roleName).
			WithDetail("skill_count", len(skills))
	}

	now := time.Now()
	req := &recommend.Requirement{
		ID:          kernel.NewRequirementID(uuid.New().String()),
		RecruiterID: recruiter,
		RoleName:    roleName,
		Skills:      profile.NewSkillSet(skills...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) UpdateRequirement(ctx context.Context, recruiter kernel.UserID, id kernel.RequirementID, roleName string, skills []string) (*recommend.Requirement, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.RecruiterID != recruiter {
		return nil, recommend.ErrRequirementNotFound().
			WithDetail("requirement_id", id.String())
	}

	if roleName != "" {
		req.RoleName = roleName
	}
	if len(skills) > 0 {
		req.Skills = profile.NewSkillSet(skills...)
	}
	req.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) GetRequirement(ctx context.Context, id kernel.RequirementID) (*recommend.Requirement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListRequirements(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[recommend.Requirement], error) {
	return s.repo.ListByRecruiter(ctx, recruiter, pagination.Normalize())
}

func (s *Service) DeleteRequirement(ctx context.Context, recruiter kernel.UserID, id kernel.RequirementID) error {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.RecruiterID != recruiter {
		return recommend.ErrRequirementNotFound().
			WithDetail("requirement_id", id.String())
	}
	return s.repo.Delete(ctx, id)
}
