package docext

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParaClose = regexp.MustCompile(`</w:p>`)
	docxTags      = regexp.MustCompile(`<[^>]+>`)
)

// extractDocx pulls the document body text, dropping the WordprocessingML
// markup and keeping paragraph breaks.
func extractDocx(data []byte) (string, error) {
	r := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(r, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParaClose.ReplaceAllString(content, "\n")
	content = docxTags.ReplaceAllString(content, "")
	return strings.TrimSpace(content), nil
}
