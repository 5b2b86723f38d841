// Package skillner recognizes skill mentions in resume text. It is a soft
// dependency of the skill extractor: when no model is configured the no-op
// recognizer keeps extraction running on list matching alone.
package skillner

import "context"

// Span is a half-open [Start, End) byte range into the scanned text.
type Span struct {
	Start int
	End   int
}

// Recognizer finds skill entity spans in free text.
type Recognizer interface {
	FindSkillSpans(ctx context.Context, text string) ([]Span, error)
}

// Noop satisfies Recognizer when no model is available.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) FindSkillSpans(ctx context.Context, text string) ([]Span, error) {
	return nil, nil
}
