package profile

import (
	"sort"
	"strings"
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// Degree is the closed vocabulary of degree levels, ordered by seniority.
type Degree string

const (
	DegreeNone     Degree = "NONE"
	DegreeBachelor Degree = "BACHELOR"
	DegreeMaster   Degree = "MASTER"
	DegreePhD      Degree = "PHD"
)

// Seniority orders degrees; higher wins when a resume lists several.
func (d Degree) Seniority() int {
	switch d {
	case DegreeBachelor:
		return 1
	case DegreeMaster:
		return 2
	case DegreePhD:
		return 3
	default:
		return 0
	}
}

// ExperienceLevel is derived from years of experience, never set directly.
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "ENTRY_LEVEL"
	LevelMidJunior ExperienceLevel = "MID_JUNIOR"
	LevelMidSenior ExperienceLevel = "MID_SENIOR"
	LevelSenior    ExperienceLevel = "SENIOR"
)

// LevelFromYears maps a years-of-experience signal to a band.
func LevelFromYears(years float64) ExperienceLevel {
	switch {
	case years >= 10:
		return LevelSenior
	case years >= 5:
		return LevelMidSenior
	case years >= 2:
		return LevelMidJunior
	default:
		return LevelEntry
	}
}

// ContactInfo holds the candidate's identity and reachable addresses. Email
// and phone, when present, always satisfy their extraction patterns; an
// invalid value is omitted rather than stored.
type ContactInfo struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Links     []string `json:"links,omitempty"`
}

func (c ContactInfo) HasName() bool { return c.FirstName != "" }

// IsComplete reports whether name, email and phone were all resolved.
func (c ContactInfo) IsComplete() bool {
	return c.FirstName != "" && c.Email != "" && c.Phone != ""
}

// Education is the most senior degree found plus its major, when one of the
// reference majors appears near the degree mention.
type Education struct {
	Degree Degree `json:"degree"`
	Major  string `json:"major,omitempty"`
}

func (e Education) IsResolved() bool {
	return e.Degree != DegreeNone && e.Major != ""
}

// SkillSet is a deduplicated set of canonical skill names. Entries keep the
// reference list's casing; membership checks are case-insensitive.
type SkillSet []string

// NewSkillSet dedupes case-insensitively, keeping the first spelling seen,
// and sorts for deterministic output.
func NewSkillSet(skills ...string) SkillSet {
	seen := make(map[string]struct{}, len(skills))
	out := make(SkillSet, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

func (s SkillSet) Contains(skill string) bool {
	for _, have := range s {
		if strings.EqualFold(have, skill) {
			return true
		}
	}
	return false
}

// Extraction is the pipeline output for one document before assembly.
type Extraction struct {
	Contact   ContactInfo     `json:"contact"`
	Education Education       `json:"education"`
	Skills    SkillSet        `json:"skills"`
	Years     float64         `json:"years_of_experience"`
	Level     ExperienceLevel `json:"level"`
}

// Profile is the assembled result of parsing one resume. It is immutable;
// re-running extraction builds a new Profile so score and level always match
// the fields they were derived from.
type Profile struct {
	ID      kernel.ProfileID `db:"id" json:"id"`
	OwnerID kernel.UserID    `db:"owner_id" json:"owner_id"`

	// Set when the profile was produced by a batch screening run
	ScreeningID kernel.ScreeningID `db:"screening_id" json:"screening_id,omitempty"`

	Contact   ContactInfo     `db:"contact" json:"contact"`
	Education Education       `db:"education" json:"education"`
	Skills    SkillSet        `db:"skills" json:"skills"`
	Years     float64         `db:"years_of_experience" json:"years_of_experience"`
	Level     ExperienceLevel `db:"level" json:"level"`
	Score     int             `db:"score" json:"score"`

	FileName string `db:"file_name" json:"file_name"`
	FileURL  string `db:"file_url" json:"file_url"`

	ParsedAt  time.Time `db:"parsed_at" json:"parsed_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewProfile assembles the immutable aggregate from one extraction run.
func NewProfile(id kernel.ProfileID, owner kernel.UserID, fileName, fileURL string, ex Extraction) *Profile {
	now := time.Now()
	return &Profile{
		ID:        id,
		OwnerID:   owner,
		Contact:   ex.Contact,
		Education: ex.Education,
		Skills:    ex.Skills,
		Years:     ex.Years,
		Level:     ex.Level,
		Score:     CalculateScore(ex),
		FileName:  fileName,
		FileURL:   fileURL,
		ParsedAt:  now,
		CreatedAt: now,
	}
}
