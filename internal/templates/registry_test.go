package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AllTemplates(t *testing.T) {
	for _, id := range IDs() {
		t.Run(id, func(t *testing.T) {
			d, found := Resolve(id)
			assert.True(t, found)
			assert.Equal(t, id, d.ID)
			assert.NotEmpty(t, d.Sections)
			assert.NotEmpty(t, d.Theme.PrimaryColor)
			assert.NotEmpty(t, d.Theme.SecondaryColor)
			assert.NotEmpty(t, d.Theme.AccentColor)
			assert.Positive(t, d.Theme.HeaderFontSize)
			assert.Positive(t, d.Theme.SectionFontSize)
			assert.Positive(t, d.Theme.BodyFontSize)
			assert.NotEmpty(t, d.Layout.Main)
		})
	}
}

func TestResolve_UnknownFallsBackToDefault(t *testing.T) {
	d, found := Resolve("no-such-template")
	assert.False(t, found)
	assert.Equal(t, DefaultID, d.ID)

	d, found = Resolve("")
	assert.False(t, found)
	assert.Equal(t, DefaultID, d.ID)
}

func TestResolve_NormalizesID(t *testing.T) {
	d, found := Resolve("  Classic ")
	assert.True(t, found)
	assert.Equal(t, "classic", d.ID)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestCatalog_LayoutSectionsAreRecognized(t *testing.T) {
	for _, d := range All() {
		for _, key := range d.Layout.ReadingOrder() {
			_, ok := d.Section(key)
			assert.True(t, ok, "%s lays out %s without recognizing it", d.ID, key)
		}
		if d.Layout.HasSidebar() {
			assert.NotEmpty(t, d.Layout.Sidebar, d.ID)
		} else {
			assert.Empty(t, d.Layout.Sidebar, d.ID)
		}
	}
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range IDs() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 9)
}

func TestAll_ReturnsCopies(t *testing.T) {
	all := All()
	all[0].Layout.Main[0] = "mutated"
	all[0].Sections[0].Heading = "mutated"

	d, _ := Lookup(all[0].ID)
	assert.NotEqual(t, "mutated", d.Layout.Main[0])
	assert.NotEqual(t, "mutated", d.Sections[0].Heading)
}

func TestLayout_ReadingOrder(t *testing.T) {
	left := Layout{Variant: VariantSidebarLeft, Main: []string{"experience"}, Sidebar: []string{"contact", "skills"}}
	assert.Equal(t, []string{"contact", "skills", "experience"}, left.ReadingOrder())

	right := Layout{Variant: VariantSidebarRight, Main: []string{"summary", "experience"}, Sidebar: []string{"contact"}}
	assert.Equal(t, []string{"summary", "experience", "contact"}, right.ReadingOrder())
}

func TestTemplate4_ProjectsBeforeExperience(t *testing.T) {
	d, _ := Lookup("template4")
	require.Equal(t, []string{SectionSummary, SectionProjects, SectionExperience}, d.Layout.Main)
}

func TestSection_Shows(t *testing.T) {
	d, _ := Lookup("classic")
	exp, ok := d.Section(SectionExperience)
	require.True(t, ok)
	assert.True(t, exp.Shows("company"))
	assert.True(t, exp.Shows("description"))
	assert.False(t, exp.Shows("achievements"))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "2563eb", HexColor("#2563eb"))
	assert.Equal(t, "2563eb", HexColor("2563eb"))
	assert.Equal(t, "", HexColor(""))
}

func TestSampleResume_Valid(t *testing.T) {
	r := SampleResume()
	require.NoError(t, r.Validate())
	assert.Equal(t, DefaultID, r.Template)
}
