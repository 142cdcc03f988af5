// internal/site/methodology.go
package site

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed methodology.md
var defaultMethodology []byte

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// LoadMethodology reads the methodology markdown at path, or the built-in text when path is empty.
func LoadMethodology(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return defaultMethodology, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read methodology %s: %w", path, err)
	}
	return data, nil
}

// RenderMarkdown converts markdown to HTML for the method page.
func RenderMarkdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("unable to render methodology: %w", err)
	}
	return template.HTML(buf.String()), nil
}
