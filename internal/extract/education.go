package extract

import (
	"regexp"
	"strings"

	"github.com/Abraxas-365/sift/internal/textproc"
	"github.com/Abraxas-365/sift/screening/profile"
	"github.com/Abraxas-365/sift/screening/refdata"
)

// majorWindowLines is how many lines past the degree mention a major may
// appear. Tunable; resumes usually state the field on the same or next line.
const majorWindowLines = 1

// Degree synonym table, most senior first. The first pattern with any match
// decides the degree; within one degree, the earliest occurrence is used to
// anchor the major search.
var degreePatterns = []struct {
	re     *regexp.Regexp
	degree profile.Degree
}{
	{regexp.MustCompile(`(?i)\bph\.?\s?d\.?\b|\bdoctor of philosophy\b|\bdoctorate\b`), profile.DegreePhD},
	// Two-letter abbreviations (M.S, B.S, M.A, B.A) need the dot: bare "MS"
	// or "ma" shows up in ordinary prose ("MS Office") far too often.
	{regexp.MustCompile(`(?i)\bm\.?\s?tech\b|\bm\.?sc\b|\bm\.\s?s\b|\bm\.\s?a\b|\bmba\b|\bmaster(?:'s)?\b`), profile.DegreeMaster},
	{regexp.MustCompile(`(?i)\bb\.?\s?tech\b|\bb\.?e\b|\bb\.?sc\b|\bb\.\s?s\b|\bb\.\s?a\b|\bb\.?com\b|\bbachelor(?:'s)?\b`), profile.DegreeBachelor},
}

// Education finds the most senior degree mentioned anywhere in the text and
// a reference major near it. A resume listing several degrees reports only
// the highest; no degree means no major either.
func Education(text *textproc.NormalizedText, tables *refdata.Tables) profile.Education {
	edu := profile.Education{Degree: profile.DegreeNone}
	if text.IsEmpty() {
		return edu
	}

	matchStart := -1
	for _, p := range degreePatterns {
		if loc := p.re.FindStringIndex(text.Text); loc != nil {
			edu.Degree = p.degree
			matchStart = loc[0]
			break
		}
	}
	if matchStart < 0 {
		return edu
	}

	edu.Major = findMajor(text, tables, matchStart)
	return edu
}

// findMajor scans the line holding the degree mention plus the window after
// it for any entry of the majors table, earliest occurrence first.
func findMajor(text *textproc.NormalizedText, tables *refdata.Tables, degreeStart int) string {
	lines := text.Annotation().Lines

	lineIdx := 0
	for i, line := range lines {
		if line.Start > degreeStart {
			break
		}
		lineIdx = i
	}

	end := lineIdx + majorWindowLines
	if end >= len(lines) {
		end = len(lines) - 1
	}

	var window strings.Builder
	for i := lineIdx; i <= end; i++ {
		window.WriteString(lines[i].Text)
		window.WriteByte('\n')
	}
	haystack := strings.ToLower(window.String())

	best := ""
	bestPos := len(haystack)
	for _, major := range tables.Majors() {
		pos := strings.Index(haystack, strings.ToLower(major))
		if pos >= 0 && pos < bestPos {
			best = major
			bestPos = pos
		}
	}
	return best
}
