package rendering

import "strings"

// PDFText maps text onto the Latin-1 repertoire the standard PDF fonts can
// encode. Typographic punctuation becomes its ASCII look-alike; anything
// else outside Latin-1 becomes '?'.
func PDFText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '\u2018' || r == '\u2019' || r == '\u201b':
			result.WriteByte('\'')
		case r == '\u201c' || r == '\u201d' || r == '\u201e':
			result.WriteByte('"')
		case r == '\u2010' || r == '\u2011' || r == '\u2012' || r == '\u2013' || r == '\u2014':
			result.WriteByte('-')
		case r == '\u2022' || r == '\u25cf':
			result.WriteByte('-')
		case r == '\u2026':
			result.WriteString("...")
		case r == '\t' || r == '\u00a0' || r == '\u2009' || r == '\u202f':
			result.WriteByte(' ')
		case r == '\n' || r == '\r':
			result.WriteByte(' ')
		case r > 0xff:
			result.WriteByte('?')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
