package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abraxas-365/sift/screening/profile"
)

func TestMatchFraction(t *testing.T) {
	required := []string{"Python", "SQL", "Docker"}

	t.Run("partial overlap", func(t *testing.T) {
		rec := Match("Data Engineer", required, profile.NewSkillSet("Python"))
		assert.InDelta(t, 1.0/3.0, rec.MatchFraction, 1e-9)
		assert.Equal(t, []string{"SQL", "Docker"}, rec.MissingSkills)
	})

	t.Run("superset scores exactly one", func(t *testing.T) {
		rec := Match("Data Engineer", required, profile.NewSkillSet("Python", "SQL", "Docker", "Go"))
		assert.Equal(t, 1.0, rec.MatchFraction)
		assert.Empty(t, rec.MissingSkills)
	})

	t.Run("no overlap scores zero", func(t *testing.T) {
		rec := Match("Data Engineer", required, profile.NewSkillSet("React"))
		assert.Zero(t, rec.MatchFraction)
		assert.Equal(t, required, rec.MissingSkills)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		rec := Match("Data Engineer", required, profile.NewSkillSet("python", "sql", "docker"))
		assert.Equal(t, 1.0, rec.MatchFraction)
	})

	t.Run("empty requirements score zero", func(t *testing.T) {
		rec := Match("Mystery Role", nil, profile.NewSkillSet("Python"))
		assert.Zero(t, rec.MatchFraction)
		assert.Empty(t, rec.MissingSkills)
	})

	t.Run("fraction stays within bounds", func(t *testing.T) {
		rec := Match("Data Engineer", required, profile.NewSkillSet("Python", "SQL"))
		assert.GreaterOrEqual(t, rec.MatchFraction, 0.0)
		assert.LessOrEqual(t, rec.MatchFraction, 1.0)
	})
}

func TestRank(t *testing.T) {
	t.Run("descending by fraction", func(t *testing.T) {
		recs := []JobRecommendation{
			{RoleName: "QA Engineer", MatchFraction: 0.25},
			{RoleName: "Data Engineer", MatchFraction: 1},
			{RoleName: "Backend Developer", MatchFraction: 0.5},
		}
		Rank(recs)
		assert.Equal(t, "Data Engineer", recs[0].RoleName)
		assert.Equal(t, "Backend Developer", recs[1].RoleName)
		assert.Equal(t, "QA Engineer", recs[2].RoleName)
	})

	t.Run("ties broken by role name ascending", func(t *testing.T) {
		recs := []JobRecommendation{
			{RoleName: "Zeta Role", MatchFraction: 0.5},
			{RoleName: "alpha role", MatchFraction: 0.5},
		}
		Rank(recs)
		assert.Equal(t, "alpha role", recs[0].RoleName)
	})

	t.Run("roles differing only in case order deterministically", func(t *testing.T) {
		recs := []JobRecommendation{
			{RoleName: "data engineer", MatchFraction: 0.5},
			{RoleName: "Data Engineer", MatchFraction: 0.5},
		}
		Rank(recs)
		assert.Equal(t, "Data Engineer", recs[0].RoleName)
		assert.Equal(t, "data engineer", recs[1].RoleName)
	})
}
