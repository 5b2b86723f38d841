package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abraxas-365/sift/internal/textproc"
)

func TestContactFullHeader(t *testing.T) {
	text := textproc.Normalize(
		"Jane Doe\n" +
			"Email: jane.doe@example.com\n" +
			"Phone: +1-555-123-4567\n" +
			"https://github.com/janedoe\n" +
			"https://linkedin.com/in/janedoe",
	)

	info := Contact(text, "resume.pdf")

	assert.Equal(t, "Jane", info.FirstName)
	assert.Equal(t, "Doe", info.LastName)
	assert.Equal(t, "jane.doe@example.com", info.Email)
	assert.Equal(t, "+1-555-123-4567", info.Phone)
	assert.Equal(t, []string{
		"https://github.com/janedoe",
		"https://linkedin.com/in/janedoe",
	}, info.Links)
	assert.True(t, info.IsComplete())
}

func TestContactEmailFirstMatchWins(t *testing.T) {
	text := textproc.Normalize("jane@example.com\nold.address@example.org")
	info := Contact(text, "")
	assert.Equal(t, "jane@example.com", info.Email)
}

func TestContactPhoneFormats(t *testing.T) {
	cases := []struct {
		name string
		line string
		want string
	}{
		{"international dashed", "Call +44 20 7946 0958 anytime", "+44 20 7946 0958"},
		{"grouped parentheses", "Phone (555) 123-4567", "(555) 123-4567"},
		{"dotted", "555.123.4567", "555.123.4567"},
		{"bare digits", "Reach me at 5551234567", "5551234567"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := Contact(textproc.Normalize(tc.line), "")
			assert.Equal(t, tc.want, info.Phone)
		})
	}
}

func TestContactPhoneIgnoresLongDigitRuns(t *testing.T) {
	// An account number, not a phone.
	text := textproc.Normalize("Account 123456789012345")
	info := Contact(text, "")
	assert.Empty(t, info.Phone)
}

func TestContactNameFromFilename(t *testing.T) {
	t.Run("camel case stem with numeric prefix", func(t *testing.T) {
		text := textproc.Normalize("email: john@example.com")
		info := Contact(text, "111121112_JohnSmith_.pdf")
		assert.Equal(t, "John", info.FirstName)
		assert.Equal(t, "Smith", info.LastName)
	})

	t.Run("underscore separated stem", func(t *testing.T) {
		text := textproc.Normalize("email: john@example.com")
		info := Contact(text, "jane_mary_doe.docx")
		assert.Equal(t, "Jane", info.FirstName)
		assert.Equal(t, "Mary Doe", info.LastName)
	})
}

func TestContactNameFromEmail(t *testing.T) {
	t.Run("dotted local part", func(t *testing.T) {
		text := textproc.Normalize("contact: jane.doe@example.com")
		info := Contact(text, "resume.pdf")
		assert.Equal(t, "Jane", info.FirstName)
		assert.Equal(t, "Doe", info.LastName)
	})

	t.Run("single long word local part", func(t *testing.T) {
		text := textproc.Normalize("contact: jonathan@example.com")
		info := Contact(text, "resume.pdf")
		assert.Equal(t, "Jonathan", info.FirstName)
		assert.Empty(t, info.LastName)
	})
}

func TestContactNameMustPrecedeContactData(t *testing.T) {
	// A person-looking line after the contact block is a reference, not the
	// candidate.
	text := textproc.Normalize("mail: someone@example.com\nRobert Brown")
	info := Contact(text, "")
	assert.NotEqual(t, "Robert", info.FirstName)
}

func TestContactLinksDeduplicated(t *testing.T) {
	text := textproc.Normalize("www.site.com and again www.site.com plus https://other.io.")
	info := Contact(text, "")
	assert.Equal(t, []string{"www.site.com", "https://other.io"}, info.Links)
}

func TestContactEmptyText(t *testing.T) {
	info := Contact(textproc.Normalize(""), "jane_doe.pdf")
	assert.Empty(t, info.FirstName)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.Links)
}
