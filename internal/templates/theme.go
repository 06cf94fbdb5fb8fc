package templates

// Theme is the style sheet shared by every renderer for one template.
// Font sizes are in points. Spacing scales vertical gaps; 1.0 is normal.
type Theme struct {
	PrimaryColor    string  `json:"primaryColor"`
	SecondaryColor  string  `json:"secondaryColor"`
	AccentColor     string  `json:"accentColor"`
	HeaderFontSize  int     `json:"headerFontSize"`
	SectionFontSize int     `json:"sectionFontSize"`
	BodyFontSize    int     `json:"bodyFontSize"`
	Spacing         float64 `json:"spacing"`
}

func newTheme(primary, secondary, accent string, header, section, body int) Theme {
	return Theme{
		PrimaryColor:    primary,
		SecondaryColor:  secondary,
		AccentColor:     accent,
		HeaderFontSize:  header,
		SectionFontSize: section,
		BodyFontSize:    body,
		Spacing:         1.0,
	}
}

// HexColor strips the leading '#' for formats (OOXML) that want bare hex.
func HexColor(c string) string {
	if len(c) > 0 && c[0] == '#' {
		return c[1:]
	}
	return c
}
