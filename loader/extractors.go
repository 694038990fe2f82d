package loader

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Extractor converts raw file bytes to plain text. Extractors are pure
// functions resolved once at loader construction, keyed by extension.
type Extractor func(name string, data []byte) (string, error)

var (
	codeBlockRe  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s*`)

	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	blankRe  = regexp.MustCompile(`\n{3,}`)
)

// ExtractPlainText decodes the bytes as UTF-8 text without transformation.
// It is the fallback extractor for code and config files.
func ExtractPlainText(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, name)
	}
	return string(data), nil
}

// ExtractMarkdown strips common markdown formatting, leaving readable prose.
// Fenced code blocks are dropped; link text is kept, link targets are not.
func ExtractMarkdown(name string, data []byte) (string, error) {
	content, err := ExtractPlainText(name, data)
	if err != nil {
		return "", err
	}

	content = codeBlockRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")
	content = blockquoteRe.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")

	return strings.TrimSpace(content), nil
}

// ExtractHTML strips tags and entities, keeping the visible text.
func ExtractHTML(name string, data []byte) (string, error) {
	content, err := ExtractPlainText(name, data)
	if err != nil {
		return "", err
	}

	content = scriptRe.ReplaceAllString(content, "")
	content = tagRe.ReplaceAllString(content, "\n")
	content = html.UnescapeString(content)

	// Collapse runs of blank lines left behind by removed markup
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	content = strings.Join(lines, "\n")
	content = blankRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content), nil
}

// ExtractPDF reports PDFs as unextractable. The extension stays recognized so
// that a .pdf in the corpus surfaces as a skipped file instead of vanishing.
func ExtractPDF(name string, _ []byte) (string, error) {
	return "", fmt.Errorf("%w: %s: pdf extraction requires an external converter", ErrUnsupportedFormat, name)
}

// formatExtractors maps extensions with format-specific extraction.
// Every other recognized extension falls back to ExtractPlainText.
var formatExtractors = map[string]Extractor{
	".md":       ExtractMarkdown,
	".markdown": ExtractMarkdown,
	".html":     ExtractHTML,
	".htm":      ExtractHTML,
	".pdf":      ExtractPDF,
}

// formatTags maps extensions to document format tags.
var formatTags = map[string]string{
	".md":       "markdown",
	".markdown": "markdown",
	".html":     "html",
	".htm":      "html",
	".pdf":      "pdf",
}

// DefaultExtensions returns the recognized extension set: documents, web
// content, data and config files, and common source code.
func DefaultExtensions() []string {
	return []string{
		".pdf", ".txt", ".md", ".markdown",
		".html", ".htm",
		".json", ".csv",
		".py", ".js", ".ts",
		".java", ".cpp", ".c", ".go", ".rs",
		".yaml", ".yml", ".toml",
	}
}

// formatTag returns the format tag for an extension, defaulting to "text".
func formatTag(ext string) string {
	if tag, ok := formatTags[ext]; ok {
		return tag
	}
	return "text"
}

// extractorFor returns the extractor for an extension, defaulting to plain text.
func extractorFor(ext string) Extractor {
	if fn, ok := formatExtractors[ext]; ok {
		return fn
	}
	return ExtractPlainText
}
