package rendering

import (
	"fmt"
	"strings"
)

// Format is an output format.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Content types for downloads.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatPDF, FormatDOCX:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want html, pdf or docx)", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return ContentTypePDF
	case FormatDOCX:
		return ContentTypeDOCX
	default:
		return ContentTypeHTML
	}
}

// Slug lowercases title and strips everything but ASCII letters and digits.
// An empty result becomes "resume".
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "resume"
	}
	return b.String()
}

// Filename returns the download filename for a resume title.
func Filename(title string, f Format) string {
	return Slug(title) + "." + string(f)
}

// ContentDisposition returns the attachment header value for a download.
func ContentDisposition(title string, f Format) string {
	return fmt.Sprintf("attachment; filename=%q", Filename(title, f))
}
