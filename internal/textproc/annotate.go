package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// Span is a half-open [Start, End) byte range into the normalized text.
type Span struct {
	Start int
	End   int
}

// Line is one normalized line with its byte offset.
type Line struct {
	Text  string
	Start int
}

// Annotation is the linguistic structure extractors draw on. Pattern-based
// extractors (email, phone, URL) work on the raw text; name detection uses
// the person spans.
type Annotation struct {
	Lines       []Line
	Sentences   []Span
	PersonSpans []Span
}

var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

func annotate(text string) *Annotation {
	ann := &Annotation{}
	if strings.TrimSpace(text) == "" {
		return ann
	}

	offset := 0
	for _, line := range strings.Split(text, "\n") {
		ann.Lines = append(ann.Lines, Line{Text: line, Start: offset})
		offset += len(line) + 1
	}

	ann.Sentences = splitSentences(text)
	ann.PersonSpans = findPersonSpans(ann.Lines)
	return ann
}

func splitSentences(text string) []Span {
	var spans []Span
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if loc[0] > start {
			spans = append(spans, Span{Start: start, End: loc[0] + 1})
		}
		start = loc[1]
	}
	if start < len(text) && strings.TrimSpace(text[start:]) != "" {
		spans = append(spans, Span{Start: start, End: len(text)})
	}
	return spans
}

// Word lists that rule out a capitalized sequence as a person name. Resumes
// open with names far more often than with anything else, so the filter only
// needs to catch headers, job titles, tech terms and institutions.
var (
	nonNameWords = wordSet(
		"first", "last", "name", "full", "given", "surname", "family",
		"education", "experience", "skills", "summary", "objective",
		"contact", "address", "phone", "email", "mobile", "linkedin",
		"github", "portfolio", "website", "resume", "cv", "curriculum",
		"vitae", "profile", "about", "work", "employment", "projects",
		"achievements", "awards", "publications", "references",
		"certifications", "certified", "certificate",
	)

	jobTitleWords = wordSet(
		"engineer", "developer", "software", "manager", "director",
		"analyst", "consultant", "specialist", "coordinator", "assistant",
		"executive", "officer", "lead", "senior", "junior", "intern",
		"trainee", "associate", "administrator", "admin", "programmer",
		"architect", "designer",
	)

	techWords = wordSet(
		"javascript", "typescript", "python", "java", "node", "react",
		"angular", "vue", "django", "flask", "spring", "laravel", "rails",
		"mongodb", "mysql", "postgresql", "redis", "docker", "kubernetes",
		"aws", "azure", "gcp", "terraform", "jenkins", "html", "css",
		"bootstrap", "tensorflow", "pytorch", "graphql", "express",
	)

	orgWords = wordSet(
		"college", "university", "institute", "school", "academy",
		"corporation", "company", "ltd", "inc", "llc", "limited",
		"department", "faculty", "campus", "technologies", "solutions",
		"systems", "services", "group", "industries", "enterprises",
	)

	namePrefixes = wordSet("mr", "mrs", "miss", "ms", "dr", "prof", "professor", "sir", "madam")
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var nameWord = regexp.MustCompile(`^[A-Za-z][A-Za-z.\-]*$`)

// findPersonSpans locates capitalized 2-4 word sequences that plausibly name
// a person. A heuristic stand-in for a statistical entity model; callers
// treat an empty result as "unresolved", not as an error.
func findPersonSpans(lines []Line) []Span {
	var spans []Span
	for _, line := range lines {
		words := strings.Fields(line.Text)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if !looksLikeName(words) {
			continue
		}
		start := line.Start + strings.Index(line.Text, words[0])
		end := line.Start + strings.LastIndex(line.Text, words[len(words)-1]) + len(words[len(words)-1])
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

func looksLikeName(words []string) bool {
	for _, w := range words {
		if !nameWord.MatchString(w) {
			return false
		}
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			return false
		}
		lower := strings.ToLower(strings.Trim(w, "."))
		if _, bad := nonNameWords[lower]; bad {
			return false
		}
		if _, bad := jobTitleWords[lower]; bad {
			return false
		}
		if _, bad := techWords[lower]; bad {
			return false
		}
		if _, bad := orgWords[lower]; bad {
			return false
		}
	}
	// Titles like "Dr. Jane Doe" still count once the prefix is dropped.
	lower := strings.ToLower(strings.Trim(words[0], "."))
	if _, pfx := namePrefixes[lower]; pfx && len(words) < 3 {
		return false
	}
	return true
}
