package layout

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalResume() *types.Resume {
	return &types.Resume{
		Title: "Resume",
		PersonalInfo: types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
	}
}

func blockKeys(blocks []Block) []string {
	keys := make([]string, len(blocks))
	for i, b := range blocks {
		keys[i] = b.Key
	}
	return keys
}

func findBlock(doc *Document, key string) (Block, bool) {
	for _, b := range doc.Blocks() {
		if b.Key == key {
			return b, true
		}
	}
	return Block{}, false
}

func TestBuild_SkillsOnlyScenario(t *testing.T) {
	r := minimalResume()
	r.Skills = []types.SkillGroup{{Category: "Languages", Skills: []string{"Python", "Go"}}}

	doc := Build(r, "modern")

	require.Equal(t, []string{templates.SectionSkills}, blockKeys(doc.Blocks()))
	skills, _ := findBlock(doc, templates.SectionSkills)
	assert.Equal(t, "Languages", skills.Items[0].Title)
	assert.Equal(t, "Python, Go", skills.Items[0].Body)
	assert.NotContains(t, doc.Headings(), "Professional Summary")
	assert.NotContains(t, doc.Headings(), "Work Experience")
}

func TestBuild_CurrentExperienceDates(t *testing.T) {
	r := minimalResume()
	r.Experience = []types.Experience{
		{Company: "Acme", Position: "Engineer", StartDate: "2020-01-01", EndDate: "2021-01-01", Current: true},
	}

	doc := Build(r, "modern")

	exp, ok := findBlock(doc, templates.SectionExperience)
	require.True(t, ok)
	assert.Equal(t, "Jan 2020 - Present", exp.Items[0].Dates)
	assert.Equal(t, "Engineer", exp.Items[0].Title)
	assert.Equal(t, "Acme", exp.Items[0].Subtitle)
}

func TestBuild_EmptyResumeHasOnlyHeader(t *testing.T) {
	doc := Build(minimalResume(), "modern")
	assert.Empty(t, doc.Blocks())
	assert.Equal(t, "Ada Lovelace", doc.Header.Name)
	assert.Equal(t, []string{"ada@example.com"}, doc.Header.Contact)
}

func TestBuild_PreservesInsertionOrder(t *testing.T) {
	r := minimalResume()
	r.Experience = []types.Experience{
		{Company: "A", Position: "p", StartDate: "2015-01"},
		{Company: "B", Position: "p", StartDate: "2022-01"},
		{Company: "C", Position: "p", StartDate: "2018-01"},
	}

	for _, id := range templates.IDs() {
		doc := Build(r, id)
		exp, ok := findBlock(doc, templates.SectionExperience)
		require.True(t, ok, id)
		require.Len(t, exp.Items, 3)
		assert.Equal(t, "A", exp.Items[0].Subtitle, id)
		assert.Equal(t, "B", exp.Items[1].Subtitle, id)
		assert.Equal(t, "C", exp.Items[2].Subtitle, id)
	}
}

func TestBuild_UnknownTemplateFallsBack(t *testing.T) {
	r := minimalResume()
	r.PersonalInfo.Summary = "Hello"
	doc := Build(r, "no-such-template")

	assert.Equal(t, templates.DefaultID, doc.TemplateID)
	assert.True(t, doc.Fallback)
	def, _ := templates.Lookup(templates.DefaultID)
	assert.Equal(t, def.Theme, doc.Theme)
	assert.Equal(t, []string{"Professional Summary"}, doc.Headings())
}

func TestBuild_UsesResumeTemplateWhenIDEmpty(t *testing.T) {
	r := minimalResume()
	r.Template = "classic"
	r.PersonalInfo.Summary = "Hello"
	doc := Build(r, "")
	assert.Equal(t, "classic", doc.TemplateID)
	assert.Equal(t, []string{"Objective"}, doc.Headings())
}

func TestBuild_Template4ProjectsBeforeExperience(t *testing.T) {
	r := templates.SampleResume()
	doc := Build(r, "template4")
	assert.Equal(t,
		[]string{templates.SectionSummary, templates.SectionProjects, templates.SectionExperience},
		blockKeys(doc.Main))
	assert.Equal(t, []string{templates.SectionContact, templates.SectionSkills}, blockKeys(doc.Sidebar))
}

func TestBuild_SidebarLeftReadingOrder(t *testing.T) {
	doc := Build(templates.SampleResume(), "template1")
	assert.Equal(t, []string{
		templates.SectionContact, templates.SectionSkills, templates.SectionSummary,
		templates.SectionExperience, templates.SectionEducation, templates.SectionProjects,
	}, blockKeys(doc.Blocks()))
	assert.Empty(t, doc.Header.Contact)
}

func TestDocument_BlocksFollowLayoutReadingOrder(t *testing.T) {
	for _, id := range templates.IDs() {
		t.Run(id, func(t *testing.T) {
			desc, ok := templates.Lookup(id)
			require.True(t, ok)
			doc := Build(templates.SampleResume(), id)

			present := map[string]bool{}
			for _, b := range append(append([]Block{}, doc.Main...), doc.Sidebar...) {
				present[b.Key] = true
			}
			var want []string
			for _, key := range desc.Layout.ReadingOrder() {
				if present[key] {
					want = append(want, key)
				}
			}
			assert.Equal(t, want, blockKeys(doc.Blocks()))
			assert.Equal(t, desc.Layout.HasSidebar(), doc.HasSidebar())
		})
	}
}

func TestDocument_BlocksSkipsKeysOutsideLayout(t *testing.T) {
	doc := &Document{
		Layout:  templates.Layout{Variant: templates.VariantSidebarLeft, Main: []string{"a"}, Sidebar: []string{"b"}},
		Main:    []Block{{Key: "a"}, {Key: "stray"}},
		Sidebar: []Block{{Key: "b"}},
	}
	assert.Equal(t, []string{"b", "a"}, blockKeys(doc.Blocks()))
}

func TestBuild_ContactBlockOmittedWithoutDetails(t *testing.T) {
	r := minimalResume()
	r.PersonalInfo.Email = ""
	doc := Build(r, "template2")
	_, ok := findBlock(doc, templates.SectionContact)
	assert.False(t, ok)
}

func TestBuild_OptionalFieldsOmitted(t *testing.T) {
	r := minimalResume()
	r.Education = []types.Education{{Institution: "MIT", Degree: "BSc", StartDate: "2010-09"}}
	r.Projects = []types.Project{{Name: "Tool", StartDate: "2019"}}

	doc := Build(r, "modern")

	edu, _ := findBlock(doc, templates.SectionEducation)
	assert.Equal(t, "BSc", edu.Items[0].Title)
	assert.Equal(t, "MIT", edu.Items[0].Subtitle)
	assert.Empty(t, edu.Items[0].Details)

	proj, _ := findBlock(doc, templates.SectionProjects)
	assert.Empty(t, proj.Items[0].Details)
	assert.Equal(t, "2019 - ", proj.Items[0].Dates)
}

func TestBuild_TemplateDropsUnlistedFields(t *testing.T) {
	r := minimalResume()
	r.Experience = []types.Experience{{
		Company: "Acme", Position: "Eng", Location: "Berlin", StartDate: "2020-01",
		Achievements: []string{"one"},
	}}

	modern := Build(r, "modern")
	exp, _ := findBlock(modern, templates.SectionExperience)
	assert.Equal(t, []string{"one"}, exp.Items[0].Bullets)
	assert.Equal(t, "Acme, Berlin", exp.Items[0].Subtitle)

	classic := Build(r, "classic")
	exp, _ = findBlock(classic, templates.SectionExperience)
	assert.Empty(t, exp.Items[0].Bullets)

	eng := Build(r, "template3")
	exp, _ = findBlock(eng, templates.SectionExperience)
	assert.Equal(t, "Acme", exp.Items[0].Subtitle)
}

func TestBuild_MissingRequiredFieldDegrades(t *testing.T) {
	r := minimalResume()
	r.Experience = []types.Experience{{Company: "Acme", StartDate: "not a date"}}

	doc := Build(r, "modern")
	exp, ok := findBlock(doc, templates.SectionExperience)
	require.True(t, ok)
	assert.Equal(t, "", exp.Items[0].Title)
	assert.Equal(t, "not a date - ", exp.Items[0].Dates)
}

func TestBuild_ContactLine(t *testing.T) {
	r := minimalResume()
	r.PersonalInfo.Phone = "555"
	r.PersonalInfo.Address = &types.Address{City: "Austin", Country: "USA"}
	r.PersonalInfo.LinkedIn = "in/ada"
	r.PersonalInfo.Portfolio = "ada.dev"

	doc := Build(r, "modern")
	assert.Equal(t, []string{"ada@example.com", "555", "Austin, USA", "LinkedIn: in/ada", "Portfolio: ada.dev"}, doc.Header.Contact)

	doc = Build(r, "elegant")
	assert.Equal(t, []string{"ada@example.com", "555", "Austin, USA", "LinkedIn: in/ada"}, doc.Header.Contact)
}

func TestBuild_CertificationExpiry(t *testing.T) {
	r := minimalResume()
	r.Certifications = []types.Certification{{Name: "CKA", Issuer: "CNCF", Date: "2022-02-01", ExpiryDate: "2025-02-01", CredentialID: "X1"}}

	doc := Build(r, "modern")
	cert, _ := findBlock(doc, templates.SectionCertifications)
	assert.Equal(t, "Feb 2022 - Expires Feb 2025", cert.Items[0].Dates)
	assert.Equal(t, []string{"Credential ID: X1"}, cert.Items[0].Details)
}

func TestBuild_StripsControlCharacters(t *testing.T) {
	r := minimalResume()
	r.PersonalInfo.Summary = "line one\x00\x07\nline two"
	doc := Build(r, "modern")
	sum, _ := findBlock(doc, templates.SectionSummary)
	assert.Equal(t, "line one\nline two", sum.Items[0].Body)
}

func TestBuild_NilResume(t *testing.T) {
	doc := Build(nil, "")
	assert.Equal(t, templates.DefaultID, doc.TemplateID)
	assert.Empty(t, doc.Blocks())
}

func TestBuild_Idempotent(t *testing.T) {
	r := templates.SampleResume()
	assert.Equal(t, Build(r, "creative"), Build(r, "creative"))
}

func TestBuild_DoesNotMutateResume(t *testing.T) {
	r := templates.SampleResume()
	before := r.Clone()
	Build(r, "elegant")
	assert.Equal(t, before, r)
}

func TestBuild_PhotoOnlyWhenShown(t *testing.T) {
	r := minimalResume()
	r.Settings.PhotoURL = "https://img/me.png"
	assert.Empty(t, Build(r, "modern").PhotoURL)

	r.Settings.ShowPhoto = true
	assert.Equal(t, "https://img/me.png", Build(r, "modern").PhotoURL)
}

func TestApplySettings(t *testing.T) {
	base, _ := templates.Lookup("modern")

	small := ApplySettings(base.Theme, types.Settings{FontSize: "small", Spacing: "compact"})
	assert.Equal(t, base.Theme.BodyFontSize-1, small.BodyFontSize)
	assert.Equal(t, base.Theme.SectionFontSize-1, small.SectionFontSize)
	assert.Equal(t, base.Theme.HeaderFontSize, small.HeaderFontSize)
	assert.InDelta(t, 0.8, small.Spacing, 1e-9)

	large := ApplySettings(base.Theme, types.Settings{FontSize: "large", Spacing: "relaxed"})
	assert.Equal(t, base.Theme.BodyFontSize+1, large.BodyFontSize)
	assert.InDelta(t, 1.25, large.Spacing, 1e-9)

	same := ApplySettings(base.Theme, types.Settings{FontSize: "huge", ColorScheme: "dark"})
	assert.Equal(t, base.Theme, same)
}
