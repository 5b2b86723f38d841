package recommendsrv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening/recommend"
	"github.com/Abraxas-365/sift/screening/recommend/recommendsrv"
	"github.com/Abraxas-365/sift/screening/refdata"
)

type MockRequirementRepo struct {
	mock.Mock
}

func (m *MockRequirementRepo) Create(ctx context.Context, req *recommend.Requirement) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockRequirementRepo) Update(ctx context.Context, req *recommend.Requirement) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockRequirementRepo) GetByID(ctx context.Context, id kernel.RequirementID) (*recommend.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommend.Requirement), args.Error(1)
}

func (m *MockRequirementRepo) ListByRecruiter(ctx context.Context, recruiter kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[recommend.Requirement], error) {
	args := m.Called(ctx, recruiter, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Paginated[recommend.Requirement]), args.Error(1)
}

func (m *MockRequirementRepo) Delete(ctx context.Context, id kernel.RequirementID) error {
	return m.Called(ctx, id).Error(0)
}

func testTables() *refdata.Tables {
	return refdata.New(
		[]string{"Python", "SQL", "Docker", "Go", "React", "TypeScript"},
		map[string]string{"Golang": "Go"},
		nil,
		map[string][]string{
			"Data Engineer":      {"Python", "SQL", "Docker"},
			"Backend Developer":  {"Go", "SQL"},
			"Frontend Developer": {"React", "TypeScript"},
		},
	)
}

func TestSkillsForRole(t *testing.T) {
	svc := recommendsrv.NewService(testTables(), nil)

	t.Run("known role resolves case-insensitively", func(t *testing.T) {
		skills, err := svc.SkillsForRole("data engineer")
		require.NoError(t, err)
		assert.Equal(t, []string{"Python", "SQL", "Docker"}, skills)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		_, err := svc.SkillsForRole("Astronaut")
		assert.ErrorIs(t, err, recommend.ErrUnknownRole())
	})
}

func TestRecommend(t *testing.T) {
	svc := recommendsrv.NewService(testTables(), nil)

	t.Run("partial match reports fraction and missing skills", func(t *testing.T) {
		rec, err := svc.Recommend([]string{"Python"}, "Data Engineer")
		require.NoError(t, err)

		assert.Equal(t, "Data Engineer", rec.RoleName)
		assert.InDelta(t, 1.0/3.0, rec.MatchFraction, 1e-9)
		assert.Equal(t, []string{"SQL", "Docker"}, rec.MissingSkills)
	})

	t.Run("role casing of the table is reported back", func(t *testing.T) {
		rec, err := svc.Recommend([]string{"Go", "SQL"}, "backend developer")
		require.NoError(t, err)
		assert.Equal(t, "Backend Developer", rec.RoleName)
		assert.Equal(t, 1.0, rec.MatchFraction)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		_, err := svc.Recommend([]string{"Python"}, "Astronaut")
		assert.ErrorIs(t, err, recommend.ErrUnknownRole())
	})
}

func TestSuggestRoles(t *testing.T) {
	svc := recommendsrv.NewService(testTables(), nil)

	recs := svc.SuggestRoles([]string{"Go", "SQL", "Python"})
	require.Len(t, recs, 3)

	// Backend Developer 2/2, Data Engineer 2/3, Frontend Developer 0/2.
	assert.Equal(t, "Backend Developer", recs[0].RoleName)
	assert.Equal(t, "Data Engineer", recs[1].RoleName)
	assert.Equal(t, "Frontend Developer", recs[2].RoleName)

	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i].MatchFraction, recs[i-1].MatchFraction)
	}
}

func TestCreateRequirement(t *testing.T) {
	recruiter := kernel.NewUserID("recruiter-1")

	t.Run("stores a valid requirement", func(t *testing.T) {
		repo := new(MockRequirementRepo)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*recommend.Requirement")).Return(nil)
		svc := recommendsrv.NewService(testTables(), repo)

		req, err := svc.CreateRequirement(context.Background(), recruiter, "Platform Engineer", []string{"Go", "Docker"})
		require.NoError(t, err)

		assert.Equal(t, recruiter, req.RecruiterID)
		assert.Equal(t, "Platform Engineer", req.RoleName)
		assert.True(t, req.Skills.Contains("Go"))
		repo.AssertExpectations(t)
	})

	t.Run("rejects missing role name or skills", func(t *testing.T) {
		svc := recommendsrv.NewService(testTables(), new(MockRequirementRepo))

		_, err := svc.CreateRequirement(context.Background(), recruiter, "", []string{"Go"})
		assert.ErrorIs(t, err, recommend.ErrInvalidRequirement())

		_, err = svc.CreateRequirement(context.Background(), recruiter, "Platform Engineer", nil)
		assert.ErrorIs(t, err, recommend.ErrInvalidRequirement())
	})
}

func TestUpdateRequirement(t *testing.T) {
	owner := kernel.NewUserID("recruiter-1")
	existing := &recommend.Requirement{
		ID:          kernel.NewRequirementID("req-1"),
		RecruiterID: owner,
		RoleName:    "Platform Engineer",
	}

	t.Run("owner can update", func(t *testing.T) {
		repo := new(MockRequirementRepo)
		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*recommend.Requirement")).Return(nil)
		svc := recommendsrv.NewService(testTables(), repo)

		req, err := svc.UpdateRequirement(context.Background(), owner, existing.ID, "SRE", []string{"Go"})
		require.NoError(t, err)
		assert.Equal(t, "SRE", req.RoleName)
		repo.AssertExpectations(t)
	})

	t.Run("other recruiters cannot see the requirement", func(t *testing.T) {
		repo := new(MockRequirementRepo)
		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		svc := recommendsrv.NewService(testTables(), repo)

		_, err := svc.UpdateRequirement(context.Background(), kernel.NewUserID("other"), existing.ID, "SRE", nil)
		assert.ErrorIs(t, err, recommend.ErrRequirementNotFound())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteRequirement(t *testing.T) {
	owner := kernel.NewUserID("recruiter-1")
	existing := &recommend.Requirement{
		ID:          kernel.NewRequirementID("req-1"),
		RecruiterID: owner,
	}

	t.Run("owner can delete", func(t *testing.T) {
		repo := new(MockRequirementRepo)
		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Delete", mock.Anything, existing.ID).Return(nil)
		svc := recommendsrv.NewService(testTables(), repo)

		assert.NoError(t, svc.DeleteRequirement(context.Background(), owner, existing.ID))
		repo.AssertExpectations(t)
	})

	t.Run("ownership is enforced", func(t *testing.T) {
		repo := new(MockRequirementRepo)
		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		svc := recommendsrv.NewService(testTables(), repo)

		err := svc.DeleteRequirement(context.Background(), kernel.NewUserID("other"), existing.ID)
		assert.ErrorIs(t, err, recommend.ErrRequirementNotFound())
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
