package recommend

import (
	"sort"
	"strings"

	"github.com/Abraxas-365/sift/screening/profile"
)

// JobRecommendation matches a skill set against one role's requirements.
// Computed on demand from the position reference table, never stored.
type JobRecommendation struct {
	RoleName      string   `json:"role_name"`
	MatchFraction float64  `json:"match_fraction"`
	MissingSkills []string `json:"missing_skills,omitempty"`
}

// Match computes the overlap between a candidate's skills and a role's
// required skills. The fraction is |skills ∩ required| / |required|; an
// empty requirement list yields 0, which a validated reference table should
// never produce.
func Match(roleName string, required []string, skills profile.SkillSet) JobRecommendation {
	rec := JobRecommendation{RoleName: roleName}
	if len(required) == 0 {
		return rec
	}

	matched := 0
	for _, want := range required {
		if skills.Contains(want) {
			matched++
		} else {
			rec.MissingSkills = append(rec.MissingSkills, want)
		}
	}
	rec.MatchFraction = float64(matched) / float64(len(required))
	return rec
}

// Rank orders recommendations by descending match fraction, ties broken by
// role name ascending so output is reproducible. Case-insensitive first, then
// raw bytes, so even roles differing only in case have a defined order.
func Rank(recs []JobRecommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].MatchFraction != recs[j].MatchFraction {
			return recs[i].MatchFraction > recs[j].MatchFraction
		}
		li, lj := strings.ToLower(recs[i].RoleName), strings.ToLower(recs[j].RoleName)
		if li != lj {
			return li < lj
		}
		return recs[i].RoleName < recs[j].RoleName
	})
}
