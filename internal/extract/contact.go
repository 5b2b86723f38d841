// Package extract implements the field extractors. Each extractor works on
// normalized text independently; a field it cannot resolve is returned empty,
// never as an error.
package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Abraxas-365/sift/internal/textproc"
	"github.com/Abraxas-365/sift/screening/profile"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// Phone patterns, most to least specific. First match bounded by non-digits
// wins.
var phonePatterns = []*regexp.Regexp{
	// International, E.164-like: +1-555-123-4567, +44 20 7946 0958
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?(?:[-.\s]?\d{2,4}){2,4}`),
	// Grouped local: (555) 123-4567, 555.123.4567
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	// Bare digit run
	regexp.MustCompile(`\d{10,11}`),
}

var urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s<>"')]+`)

// Contact extracts the candidate's identity. The name comes from the first
// person span before the first contact datum; when that fails it falls back
// to the filename and then the email local part.
func Contact(text *textproc.NormalizedText, filename string) profile.ContactInfo {
	var info profile.ContactInfo
	if text.IsEmpty() {
		return info
	}

	emailStart := len(text.Text)
	if loc := emailPattern.FindStringIndex(text.Text); loc != nil {
		info.Email = text.Text[loc[0]:loc[1]]
		emailStart = loc[0]
	}

	phoneStart := len(text.Text)
	if phone, start := findPhone(text.Text); phone != "" {
		info.Phone = phone
		phoneStart = start
	}

	firstContact := emailStart
	if phoneStart < firstContact {
		firstContact = phoneStart
	}

	info.FirstName, info.LastName = findName(text, firstContact)
	if info.FirstName == "" && filename != "" {
		info.FirstName, info.LastName = nameFromFilename(filename)
	}
	if info.FirstName == "" && info.Email != "" {
		info.FirstName, info.LastName = nameFromEmail(info.Email)
	}

	info.Links = findLinks(text.Text)
	return info
}

// findPhone walks the pattern ladder and returns the first match that is not
// embedded in a longer digit run.
func findPhone(text string) (string, int) {
	for _, pattern := range phonePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			if digitAdjacent(text, loc[0], loc[1]) {
				continue
			}
			return text[loc[0]:loc[1]], loc[0]
		}
	}
	return "", 0
}

// digitAdjacent reports whether the match borders another digit, which means
// it sits inside a longer number (an account or ID, not a phone).
func digitAdjacent(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return true
	}
	if end < len(text) && isDigit(text[end]) {
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// findName picks the first person span that appears before the first email
// or phone. Names almost always precede contact details on a resume.
func findName(text *textproc.NormalizedText, before int) (string, string) {
	for _, span := range text.Annotation().PersonSpans {
		if span.Start >= before {
			break
		}
		return splitName(strings.Fields(text.Text[span.Start:span.End]))
	}
	return "", ""
}

func splitName(words []string) (string, string) {
	trimmed := words[:0]
	for _, w := range words {
		if !isNamePrefix(w) {
			trimmed = append(trimmed, w)
		}
	}
	if len(trimmed) == 0 {
		return "", ""
	}
	if len(trimmed) == 1 {
		return trimmed[0], ""
	}
	return trimmed[0], strings.Join(trimmed[1:], " ")
}

var namePrefixes = map[string]struct{}{
	"mr": {}, "mrs": {}, "miss": {}, "ms": {}, "dr": {}, "prof": {}, "professor": {},
}

func isNamePrefix(w string) bool {
	_, ok := namePrefixes[strings.ToLower(strings.Trim(w, "."))]
	return ok
}

var (
	leadingDigits  = regexp.MustCompile(`^[\d_]+`)
	trailingScores = regexp.MustCompile(`_+$`)
	camelWords     = regexp.MustCompile(`[A-Z][a-z]+`)
)

// nameFromFilename handles uploads named like "111121112_JaneMaryDoe_.pdf"
// or "Jane_Mary_Doe.pdf".
func nameFromFilename(filename string) (string, string) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = leadingDigits.ReplaceAllString(stem, "")
	stem = trailingScores.ReplaceAllString(stem, "")

	var parts []string
	if strings.Contains(stem, "_") {
		for _, p := range strings.Split(stem, "_") {
			if p != "" {
				parts = append(parts, capitalize(p))
			}
		}
	} else {
		parts = camelWords.FindAllString(stem, -1)
	}

	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

var (
	digitRun   = regexp.MustCompile(`\d+`)
	nonAlpha   = regexp.MustCompile(`[^a-zA-Z.]`)
	lowerWords = regexp.MustCompile(`[A-Z]?[a-z]+`)
)

// nameFromEmail guesses a name from the local part, e.g.
// "jane.doe@example.com" yields ("Jane", "Doe").
func nameFromEmail(email string) (string, string) {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return "", ""
	}
	local = digitRun.ReplaceAllString(local, "")
	local = nonAlpha.ReplaceAllString(local, "")

	var parts []string
	if strings.Contains(local, ".") {
		for _, p := range strings.Split(local, ".") {
			if p != "" {
				parts = append(parts, capitalize(p))
			}
		}
	} else {
		for _, p := range lowerWords.FindAllString(local, -1) {
			if len(p) > 2 {
				parts = append(parts, capitalize(p))
			}
		}
	}

	switch {
	case len(parts) >= 2:
		return parts[0], strings.Join(parts[1:], " ")
	case len(parts) == 1 && len(parts[0]) > 3:
		return parts[0], ""
	default:
		return "", ""
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// findLinks returns every URL in first-appearance order, deduplicated.
func findLinks(text string) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, m := range urlPattern.FindAllString(text, -1) {
		m = strings.TrimRight(m, ".,;")
		key := strings.ToLower(m)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, m)
	}
	return links
}
