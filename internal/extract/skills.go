package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/Abraxas-365/sift/internal/ai/skillner"
	"github.com/Abraxas-365/sift/internal/textproc"
	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/Abraxas-365/sift/screening/profile"
	"github.com/Abraxas-365/sift/screening/refdata"
)

// Skills runs the two extraction tiers and unions the results. Tier 1 is the
// optional entity recognizer; its failure degrades to tier 2 (list matching)
// without surfacing an error. Tier 2 guarantees recall never drops below the
// curated reference list.
func Skills(ctx context.Context, text *textproc.NormalizedText, tables *refdata.Tables, rec skillner.Recognizer) profile.SkillSet {
	if text.IsEmpty() {
		return profile.NewSkillSet()
	}

	var collected []string

	if rec != nil {
		spans, err := rec.FindSkillSpans(ctx, text.Text)
		if err != nil {
			logx.Warnf("skill recognizer failed, falling back to list matching: %v", err)
		}
		for _, span := range spans {
			if span.Start < 0 || span.End > len(text.Text) || span.Start >= span.End {
				continue
			}
			s := strings.TrimSpace(text.Text[span.Start:span.End])
			if isValidSkill(s) {
				collected = append(collected, tables.CanonicalSkill(s))
			}
		}
	}

	lower := strings.ToLower(text.Text)
	for _, spelling := range tables.Skills() {
		if containsWord(lower, spelling) {
			collected = append(collected, tables.CanonicalSkill(spelling))
		}
	}

	return profile.NewSkillSet(collected...)
}

var yearSpan = regexp.MustCompile(`^\d{4}(-\d{4})?$`)

// isValidSkill rejects recognizer output that cannot be a skill: bare
// numbers, year ranges, strings with no letters.
func isValidSkill(s string) bool {
	if len(s) < 2 {
		return false
	}
	if yearSpan.MatchString(s) {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

// containsWord reports whether needle occurs in haystack bounded by
// non-alphanumerics, so "go" never matches inside "google". Both arguments
// must already be lowercased.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		if !alnumAt(haystack, start-1) && !alnumAt(haystack, end) {
			return true
		}
		from = start + 1
	}
}

func alnumAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	b := s[i]
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
