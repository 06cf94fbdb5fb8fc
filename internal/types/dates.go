package types

import (
	"strings"
	"time"
)

// dateLayouts are the stored date shapes the form and API layers produce.
// RFC3339 also covers the fractional-second ISO strings browsers emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/2006",
	"Jan 2006",
	"January 2006",
}

// ParseDate parses a stored resume date. The second result reports whether
// only the year was given ("2019"), which callers render without a month.
func ParseDate(s string) (t time.Time, yearOnly bool, err error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 {
		if t, err = time.Parse("2006", s); err == nil {
			return t, true, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, s); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, err
}
