package layout

import (
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

var spacingScale = map[string]float64{
	"compact": 0.8,
	"normal":  1.0,
	"relaxed": 1.25,
}

// ApplySettings adjusts a template theme for the resume's display settings.
// Font size shifts body and section text by one point; spacing scales gaps.
// Unknown values leave the theme unchanged.
func ApplySettings(theme templates.Theme, s types.Settings) templates.Theme {
	switch s.FontSize {
	case "small":
		theme.BodyFontSize--
		theme.SectionFontSize--
	case "large":
		theme.BodyFontSize++
		theme.SectionFontSize++
	}
	if scale, ok := spacingScale[s.Spacing]; ok {
		theme.Spacing *= scale
	}
	return theme
}
