package extract

import (
	"regexp"
	"strconv"

	"github.com/Abraxas-365/sift/internal/textproc"
	"github.com/Abraxas-365/sift/screening/profile"
)

var (
	// Explicit statements like "6 years of experience" or "3.5+ years".
	yearsStatement = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*\+?\s*years?\b`)

	// Employment date ranges like "2019 - 2023" or "2021 to Present".
	dateRange = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*(?:-|–|—|to)\s*(?:(?:19|20)\d{2}|present|current)\b`)
)

// Experience derives years of experience and the seniority band. Explicit
// years-statements win, taking the maximum when several appear. Without one,
// the number of employment date-range lines stands in as a weak proxy for
// the same thresholds. Both signals are approximations, not guarantees.
func Experience(text *textproc.NormalizedText) (float64, profile.ExperienceLevel) {
	if text.IsEmpty() {
		return 0, profile.LevelEntry
	}

	years := 0.0
	found := false
	for _, m := range yearsStatement.FindAllStringSubmatch(text.Text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v > years {
			years = v
		}
		found = true
	}
	if found {
		return years, profile.LevelFromYears(years)
	}

	entries := 0
	for _, line := range text.Annotation().Lines {
		if dateRange.MatchString(line.Text) {
			entries++
		}
	}
	if entries > 0 {
		return 0, profile.LevelFromYears(float64(entries))
	}

	return 0, profile.LevelEntry
}
