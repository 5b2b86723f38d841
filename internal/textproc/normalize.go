// Package textproc cleans raw document text and annotates it with the
// lightweight linguistic structure the extractors need.
package textproc

import (
	"strings"
	"sync"
	"unicode"
)

// sectionBreakBlankLines is the number of consecutive blank lines that marks
// a section boundary. Tunable, inferred from typical resume layouts.
const sectionBreakBlankLines = 2

// NormalizedText is cleaned document text plus a lazily-computed annotation.
// Normalize never fails; empty input yields an empty NormalizedText whose
// annotation is also empty.
type NormalizedText struct {
	Text string

	once sync.Once
	ann  *Annotation
}

// Normalize collapses whitespace runs, strips control characters and keeps
// the line breaks that delimit sections. A run of two or more blank lines is
// preserved as a single empty line marking a section boundary.
func Normalize(raw string) *NormalizedText {
	rawLines := strings.Split(raw, "\n")

	var (
		out      []string
		blankRun int
		wroteAny bool
	)
	for _, line := range rawLines {
		cleaned := cleanLine(line)
		if cleaned == "" {
			blankRun++
			continue
		}
		if wroteAny && blankRun >= sectionBreakBlankLines {
			out = append(out, "")
		}
		blankRun = 0
		out = append(out, cleaned)
		wroteAny = true
	}

	return &NormalizedText{Text: strings.Join(out, "\n")}
}

// cleanLine strips control and non-printable runes and collapses inner
// whitespace runs to single spaces.
func cleanLine(line string) string {
	var sb strings.Builder
	space := false
	for _, r := range line {
		if unicode.IsSpace(r) || unicode.IsControl(r) || !unicode.IsPrint(r) {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}

// IsEmpty reports whether normalization produced no usable text.
func (t *NormalizedText) IsEmpty() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Annotation computes the annotation on first use and caches it.
func (t *NormalizedText) Annotation() *Annotation {
	t.once.Do(func() {
		t.ann = annotate(t.Text)
	})
	return t.ann
}
