// Package templates holds the static template catalog and resolves a
// template id to its layout and theme.
package templates

import "strings"

// DefaultID is the template used when a resume names an unknown template.
const DefaultID = "modern"

// Section keys understood by the layout engine.
const (
	SectionHeader         = "header"
	SectionContact        = "contact"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionAchievements   = "achievements"
	SectionLanguages      = "languages"
)

// Variant is the page arrangement a template uses.
type Variant string

const (
	VariantSingleColumn Variant = "single-column"
	VariantCentered     Variant = "centered-header"
	VariantSidebarLeft  Variant = "sidebar-left"
	VariantSidebarRight Variant = "sidebar-right"
)

// Section is one recognized section of a template with the fields it shows.
type Section struct {
	Key            string   `json:"key"`
	Heading        string   `json:"heading"`
	RequiredFields []string `json:"requiredFields"`
	OptionalFields []string `json:"optionalFields"`
}

// Shows reports whether the section displays the named field.
func (s Section) Shows(field string) bool {
	for _, f := range s.RequiredFields {
		if f == field {
			return true
		}
	}
	for _, f := range s.OptionalFields {
		if f == field {
			return true
		}
	}
	return false
}

// Layout assigns section keys to the main and sidebar streams, in order.
type Layout struct {
	Variant Variant  `json:"variant"`
	Main    []string `json:"main"`
	Sidebar []string `json:"sidebar,omitempty"`
}

// HasSidebar reports whether the layout splits content into two columns.
func (l Layout) HasSidebar() bool {
	return l.Variant == VariantSidebarLeft || l.Variant == VariantSidebarRight
}

// ReadingOrder is the order sections appear in single-flow outputs (PDF,
// DOCX): the left column first, then the right.
func (l Layout) ReadingOrder() []string {
	out := make([]string, 0, len(l.Main)+len(l.Sidebar))
	if l.Variant == VariantSidebarLeft {
		out = append(out, l.Sidebar...)
		return append(out, l.Main...)
	}
	out = append(out, l.Main...)
	return append(out, l.Sidebar...)
}

// Descriptor is the registry record for one template.
type Descriptor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Preview     string    `json:"preview"`
	Features    []string  `json:"features"`
	Colors      []string  `json:"colors"`
	Category    string    `json:"category"`
	Sections    []Section `json:"recognizedSections"`
	Layout      Layout    `json:"layout"`
	Theme       Theme     `json:"theme"`
}

// Section returns the recognized section for key.
func (d Descriptor) Section(key string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Resolve returns the descriptor for id. Unknown ids resolve to the default
// template; the boolean reports whether id itself was found.
func Resolve(id string) (Descriptor, bool) {
	if d, ok := Lookup(id); ok {
		return d, true
	}
	d, _ := Lookup(DefaultID)
	return d, false
}

// Lookup returns the descriptor for id without falling back.
func Lookup(id string) (Descriptor, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for i := range catalog {
		if catalog[i].ID == id {
			return clone(catalog[i]), true
		}
	}
	return Descriptor{}, false
}

// All returns every registered template in catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	for i := range catalog {
		out[i] = clone(catalog[i])
	}
	return out
}

// IDs returns the registered template ids in catalog order.
func IDs() []string {
	out := make([]string, len(catalog))
	for i := range catalog {
		out[i] = catalog[i].ID
	}
	return out
}

// clone copies the slices so callers cannot modify the catalog.
func clone(d Descriptor) Descriptor {
	d.Features = append([]string(nil), d.Features...)
	d.Colors = append([]string(nil), d.Colors...)
	sections := make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		s.RequiredFields = append([]string(nil), s.RequiredFields...)
		s.OptionalFields = append([]string(nil), s.OptionalFields...)
		sections[i] = s
	}
	d.Sections = sections
	d.Layout.Main = append([]string(nil), d.Layout.Main...)
	d.Layout.Sidebar = append([]string(nil), d.Layout.Sidebar...)
	return d
}
