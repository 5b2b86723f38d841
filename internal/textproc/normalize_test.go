package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	text := Normalize("Jane    Doe\t\tSoftware")
	assert.Equal(t, "Jane Doe Software", text.Text)
}

func TestNormalizeStripsControlRunes(t *testing.T) {
	text := Normalize("Jane\x00Doe\x07 rest\r")
	assert.Equal(t, "Jane Doe rest", text.Text)
}

func TestNormalizeSectionBreaks(t *testing.T) {
	t.Run("two or more blank lines become one boundary", func(t *testing.T) {
		text := Normalize("EXPERIENCE\n\n\nACME Corp")
		assert.Equal(t, "EXPERIENCE\n\nACME Corp", text.Text)
	})

	t.Run("single blank line is dropped", func(t *testing.T) {
		text := Normalize("EXPERIENCE\n\nACME Corp")
		assert.Equal(t, "EXPERIENCE\nACME Corp", text.Text)
	})

	t.Run("leading and trailing blanks never produce boundaries", func(t *testing.T) {
		text := Normalize("\n\n\nJane Doe\n\n\n")
		assert.Equal(t, "Jane Doe", text.Text)
	})
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.True(t, Normalize("").IsEmpty())
	assert.True(t, Normalize("  \n\t\n  ").IsEmpty())
	assert.False(t, Normalize("x").IsEmpty())
}

func TestAnnotationLines(t *testing.T) {
	text := Normalize("Jane Doe\nSKILLS\nPython")
	ann := text.Annotation()

	assert.Len(t, ann.Lines, 3)
	assert.Equal(t, "Jane Doe", ann.Lines[0].Text)
	assert.Equal(t, 0, ann.Lines[0].Start)
	assert.Equal(t, "SKILLS", ann.Lines[1].Text)
	assert.Equal(t, len("Jane Doe")+1, ann.Lines[1].Start)
}

func TestAnnotationPersonSpans(t *testing.T) {
	t.Run("capitalized name line is a person span", func(t *testing.T) {
		text := Normalize("Jane Doe\njane.doe@example.com")
		spans := text.Annotation().PersonSpans
		assert.NotEmpty(t, spans)
		assert.Equal(t, "Jane Doe", text.Text[spans[0].Start:spans[0].End])
	})

	t.Run("job titles are not person spans", func(t *testing.T) {
		text := Normalize("Senior Software Engineer")
		assert.Empty(t, text.Annotation().PersonSpans)
	})

	t.Run("section headers are not person spans", func(t *testing.T) {
		text := Normalize("Work Experience")
		assert.Empty(t, text.Annotation().PersonSpans)
	})

	t.Run("institutions are not person spans", func(t *testing.T) {
		text := Normalize("Example University")
		assert.Empty(t, text.Annotation().PersonSpans)
	})

	t.Run("lowercase words disqualify", func(t *testing.T) {
		text := Normalize("built data pipelines")
		assert.Empty(t, text.Annotation().PersonSpans)
	})
}

func TestAnnotationSentences(t *testing.T) {
	text := Normalize("Built services. Led a team of four! Shipped weekly")
	spans := text.Annotation().Sentences
	assert.Len(t, spans, 3)
	assert.Equal(t, "Built services.", text.Text[spans[0].Start:spans[0].End])
}

func TestAnnotationCached(t *testing.T) {
	text := Normalize("Jane Doe")
	assert.Same(t, text.Annotation(), text.Annotation())
}
