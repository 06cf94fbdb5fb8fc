// Package ats extracts the plain text an applicant tracking system would
// see in an exported resume.
package ats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for formats without a text extractor.
var ErrUnsupportedFormat = errors.New("unsupported format: only pdf and docx are allowed")

// ExtractText returns the plain text of an exported document.
func ExtractText(f rendering.Format, data []byte) (string, error) {
	switch f {
	case rendering.FormatPDF:
		return extractPDF(data)
	case rendering.FormatDOCX:
		return extractDOCX(data)
	default:
		return "", ErrUnsupportedFormat
	}
}

func extractPDF(data []byte) (text string, err error) {
	// The reader panics on some malformed inputs.
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", p)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	paras, err := rendering.DocxParagraphs(data)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(paras))
	for _, p := range paras {
		lines = append(lines, p.Text)
	}
	return normalizeWhitespace(strings.Join(lines, "\n")), nil
}

var (
	reSpaces   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines = regexp.MustCompile(`\n+`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// Coverage reports which keywords occur in a text.
type Coverage struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

// Ratio is the share of keywords found, 0..1. No keywords counts as full
// coverage.
func (c Coverage) Ratio() float64 {
	total := len(c.Found) + len(c.Missing)
	if total == 0 {
		return 1
	}
	return float64(len(c.Found)) / float64(total)
}

// KeywordCoverage matches keywords against text case-insensitively.
func KeywordCoverage(text string, keywords []string) Coverage {
	lower := strings.ToLower(text)
	var c Coverage
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			c.Found = append(c.Found, k)
		} else {
			c.Missing = append(c.Missing, k)
		}
	}
	return c
}
