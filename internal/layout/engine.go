// Package layout turns a resume and a template descriptor into ordered,
// format-neutral render blocks. Every renderer consumes the same Document,
// so section inclusion, ordering and date strings agree across outputs.
package layout

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// Document is the result of one layout pass.
type Document struct {
	TemplateID string            `json:"templateId"`
	Fallback   bool              `json:"fallback,omitempty"`
	Variant    templates.Variant `json:"variant"`
	Layout     templates.Layout  `json:"layout"`
	Theme      templates.Theme   `json:"theme"`
	Header     Header            `json:"header"`
	Main       []Block           `json:"main"`
	Sidebar    []Block           `json:"sidebar,omitempty"`
	PhotoURL   string            `json:"photoUrl,omitempty"`
}

// Header is the name banner at the top of every output.
type Header struct {
	Name    string   `json:"name"`
	Tagline string   `json:"tagline,omitempty"`
	Contact []string `json:"contact,omitempty"`
}

// Block is one rendered section.
type Block struct {
	Key     string `json:"key"`
	Heading string `json:"heading"`
	Items   []Item `json:"items"`
}

// Item is one entry of a section. Empty fields are omitted by renderers.
type Item struct {
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Body     string   `json:"body,omitempty"`
	Details  []string `json:"details,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// Blocks returns every block in the template's reading order.
func (d *Document) Blocks() []Block {
	byKey := make(map[string]Block, len(d.Main)+len(d.Sidebar))
	for _, b := range d.Main {
		byKey[b.Key] = b
	}
	for _, b := range d.Sidebar {
		byKey[b.Key] = b
	}
	out := make([]Block, 0, len(byKey))
	for _, key := range d.Layout.ReadingOrder() {
		if b, ok := byKey[key]; ok {
			out = append(out, b)
		}
	}
	return out
}

// HasSidebar reports whether the screen output uses two columns.
func (d *Document) HasSidebar() bool {
	return d.Layout.HasSidebar()
}

// Headings returns the section headings in reading order.
func (d *Document) Headings() []string {
	blocks := d.Blocks()
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Heading
	}
	return out
}

// Build lays out r with the template named by templateID, or by r.Template
// when templateID is empty. Unknown templates fall back to the default.
// Build never fails; malformed fields degrade to raw or empty strings.
func Build(r *types.Resume, templateID string) *Document {
	if r == nil {
		r = &types.Resume{}
	}
	if templateID == "" {
		templateID = r.Template
	}
	desc, found := templates.Resolve(templateID)

	doc := &Document{
		TemplateID: desc.ID,
		Fallback:   !found,
		Variant:    desc.Layout.Variant,
		Layout:     desc.Layout,
		Theme:      ApplySettings(desc.Theme, r.Settings),
		Header:     buildHeader(r, desc),
	}
	if r.Settings.ShowPhoto {
		doc.PhotoURL = clean(r.Settings.PhotoURL)
	}
	doc.Main = buildStream(r, desc, desc.Layout.Main)
	doc.Sidebar = buildStream(r, desc, desc.Layout.Sidebar)
	return doc
}

func buildStream(r *types.Resume, desc templates.Descriptor, keys []string) []Block {
	blocks := make([]Block, 0, len(keys))
	for _, key := range keys {
		section, ok := desc.Section(key)
		if !ok {
			continue
		}
		items := buildItems(r, section)
		if len(items) == 0 {
			continue
		}
		blocks = append(blocks, Block{Key: key, Heading: section.Heading, Items: items})
	}
	return blocks
}

func buildHeader(r *types.Resume, desc templates.Descriptor) Header {
	h := Header{Name: clean(r.PersonalInfo.FullName())}
	section, ok := desc.Section(templates.SectionHeader)
	if !ok {
		return h
	}
	if section.Shows("jobTitle") {
		h.Tagline = clean(r.PersonalInfo.JobTitle)
	}
	h.Contact = contactEntries(r.PersonalInfo, section)
	return h
}

// contactEntries lists the contact details a section shows, in fixed order.
func contactEntries(p types.PersonalInfo, section templates.Section) []string {
	var out []string
	add := func(field, label, value string) {
		value = clean(value)
		if value == "" || !section.Shows(field) {
			return
		}
		if label != "" {
			value = label + ": " + value
		}
		out = append(out, value)
	}
	add("email", "", p.Email)
	add("phone", "", p.Phone)
	add("location", "", location(p.Address))
	add("linkedin", "LinkedIn", p.LinkedIn)
	add("github", "GitHub", p.GitHub)
	add("portfolio", "Portfolio", p.Portfolio)
	return out
}

func location(a *types.Address) string {
	if a == nil {
		return ""
	}
	return join(", ", a.City, a.State, a.Country)
}

func buildItems(r *types.Resume, s templates.Section) []Item {
	switch s.Key {
	case templates.SectionContact:
		var items []Item
		for _, c := range contactEntries(r.PersonalInfo, s) {
			items = append(items, Item{Body: c})
		}
		return items
	case templates.SectionSummary:
		if summary := clean(r.PersonalInfo.Summary); summary != "" {
			return []Item{{Body: summary}}
		}
		return nil
	case templates.SectionExperience:
		return experienceItems(r.Experience, s)
	case templates.SectionEducation:
		return educationItems(r.Education, s)
	case templates.SectionSkills:
		return skillItems(r.Skills)
	case templates.SectionProjects:
		return projectItems(r.Projects, s)
	case templates.SectionCertifications:
		return certificationItems(r.Certifications, s)
	case templates.SectionAchievements:
		return achievementItems(r.Achievements, s)
	case templates.SectionLanguages:
		return languageItems(r.Languages)
	}
	return nil
}

// field returns v when the section shows name, else "".
func field(s templates.Section, name, v string) string {
	if !s.Shows(name) {
		return ""
	}
	return clean(v)
}

func dateRange(s templates.Section, start, end string, current bool) string {
	if !s.Shows("endDate") {
		end = ""
	}
	if !s.Shows("current") {
		current = false
	}
	return FormatRange(start, end, current)
}

func experienceItems(list []types.Experience, s templates.Section) []Item {
	items := make([]Item, 0, len(list))
	for _, e := range list {
		item := Item{
			Title:    clean(e.Position),
			Subtitle: join(", ", clean(e.Company), field(s, "location", e.Location)),
			Dates:    dateRange(s, e.StartDate, e.EndDate, e.Current),
			Body:     field(s, "description", e.Description),
		}
		if s.Shows("achievements") {
			item.Bullets = cleanAll(e.Achievements)
		}
		items = append(items, item)
	}
	return items
}

func educationItems(list []types.Education, s templates.Section) []Item {
	items := make([]Item, 0, len(list))
	for _, e := range list {
		title := clean(e.Degree)
		if f := field(s, "field", e.Field); f != "" {
			title = join(" in ", title, f)
		}
		item := Item{
			Title:    title,
			Subtitle: join(", ", clean(e.Institution), field(s, "location", e.Location)),
			Dates:    dateRange(s, e.StartDate, e.EndDate, e.Current),
			Body:     field(s, "description", e.Description),
		}
		if gpa := field(s, "gpa", e.GPA); gpa != "" {
			item.Details = []string{"GPA: " + gpa}
		}
		items = append(items, item)
	}
	return items
}

func skillItems(list []types.SkillGroup) []Item {
	items := make([]Item, 0, len(list))
	for _, g := range list {
		items = append(items, Item{
			Title: clean(g.Category),
			Body:  strings.Join(cleanAll(g.Skills), ", "),
		})
	}
	return items
}

func projectItems(list []types.Project, s templates.Section) []Item {
	items := make([]Item, 0, len(list))
	for _, p := range list {
		item := Item{
			Title: clean(p.Name),
			Dates: dateRange(s, p.StartDate, p.EndDate, p.Current),
			Body:  field(s, "description", p.Description),
		}
		if s.Shows("technologies") {
			if tech := strings.Join(cleanAll(p.Technologies), ", "); tech != "" {
				item.Details = append(item.Details, "Technologies: "+tech)
			}
		}
		if u := field(s, "url", p.URL); u != "" {
			item.Details = append(item.Details, "URL: "+u)
		}
		if g := field(s, "github", p.GitHub); g != "" {
			item.Details = append(item.Details, "GitHub: "+g)
		}
		items = append(items, item)
	}
	return items
}

func certificationItems(list []types.Certification, s templates.Section) []Item {
	items := make([]Item, 0, len(list))
	for _, c := range list {
		dates := FormatDate(c.Date)
		if exp := FormatDate(field(s, "expiryDate", c.ExpiryDate)); exp != "" {
			dates = join(" - ", dates, "Expires "+exp)
		}
		item := Item{
			Title:    clean(c.Name),
			Subtitle: clean(c.Issuer),
			Dates:    dates,
		}
		if id := field(s, "credentialId", c.CredentialID); id != "" {
			item.Details = append(item.Details, "Credential ID: "+id)
		}
		if u := field(s, "url", c.URL); u != "" {
			item.Details = append(item.Details, "URL: "+u)
		}
		items = append(items, item)
	}
	return items
}

func achievementItems(list []types.Achievement, s templates.Section) []Item {
	items := make([]Item, 0, len(list))
	for _, a := range list {
		items = append(items, Item{
			Title:    clean(a.Title),
			Subtitle: field(s, "category", a.Category),
			Dates:    FormatDate(a.Date),
			Body:     field(s, "description", a.Description),
		})
	}
	return items
}

func languageItems(list []types.Language) []Item {
	items := make([]Item, 0, len(list))
	for _, l := range list {
		items = append(items, Item{Title: clean(l.Language), Subtitle: clean(l.Proficiency)})
	}
	return items
}

// clean trims whitespace and drops control characters other than newline
// and tab, which no output format can carry.
func clean(s string) string {
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, isStripped) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isStripped(r) {
			return -1
		}
		return r
	}, s)
}

func isStripped(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t'
}

// cleanAll cleans each string and drops the empty ones. Order is kept.
func cleanAll(list []string) []string {
	var out []string
	for _, s := range list {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// join joins the non-empty parts with sep.
func join(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
