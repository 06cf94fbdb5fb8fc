package layout

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Present is the end label for open-ended ranges.
const Present = "Present"

// FormatDate renders a stored date as "Jan 2006". Year-only input stays a
// bare year. Unparseable input is returned trimmed so the user still sees
// what they typed.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, yearOnly, err := types.ParseDate(s)
	if err != nil {
		return s
	}
	if yearOnly {
		return t.Format("2006")
	}
	return t.Format("Jan 2006")
}

// FormatRange renders "start - end". current forces the end label to
// "Present" whatever endDate holds. Ranges are rendered as given, even
// when end precedes start.
func FormatRange(start, end string, current bool) string {
	endLabel := ""
	switch {
	case current:
		endLabel = Present
	default:
		endLabel = FormatDate(end)
	}
	startLabel := FormatDate(start)
	if startLabel == "" {
		return endLabel
	}
	return startLabel + " - " + endLabel
}
