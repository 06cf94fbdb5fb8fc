package parity

import (
	"context"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAll_SampleResume(t *testing.T) {
	c := NewChecker(rendering.NewRenderer(nil))
	reports, err := c.CheckAll(context.Background(), templates.SampleResume())
	require.NoError(t, err)
	require.Len(t, reports, len(templates.IDs()))
	for _, rep := range reports {
		assert.True(t, rep.OK(), "%s: %v", rep.TemplateID, rep.Mismatches)
		assert.NotEmpty(t, rep.Expected, rep.TemplateID)
		assert.GreaterOrEqual(t, rep.PDFPages, 1)
	}
}

func TestCheck_EmptyExperienceOmittedEverywhere(t *testing.T) {
	r := templates.SampleResume()
	r.Experience = nil

	c := NewChecker(rendering.NewRenderer(nil))
	rep, err := c.Check(context.Background(), r, "modern")
	require.NoError(t, err)
	require.True(t, rep.OK(), rep.Mismatches)
	for _, list := range [][]string{rep.Screen, rep.PDF, rep.DOCX} {
		for _, h := range list {
			assert.NotEqual(t, "WORK EXPERIENCE", h)
			assert.NotEqual(t, "Work Experience", h)
		}
	}
}

func TestCheck_UnknownTemplateUsesDefault(t *testing.T) {
	c := NewChecker(rendering.NewRenderer(nil))
	rep, err := c.Check(context.Background(), &types.Resume{
		Title:        "x",
		PersonalInfo: types.PersonalInfo{FirstName: "A", LastName: "B", Email: "a@b.co", Summary: "Hi"},
	}, "no-such-template")
	require.NoError(t, err)
	assert.Equal(t, templates.DefaultID, rep.TemplateID)
	assert.Equal(t, []string{"Professional Summary"}, rep.Expected)
}

func TestReport_Compare(t *testing.T) {
	rep := &Report{Expected: []string{"Summary", "Experience"}}
	rep.compare("screen", []string{"SUMMARY", "EXPERIENCE"})
	assert.True(t, rep.OK())

	rep.compare("pdf", []string{"EXPERIENCE", "SUMMARY"})
	assert.Len(t, rep.Mismatches, 2)

	rep.compare("docx", []string{"SUMMARY"})
	assert.Len(t, rep.Mismatches, 3)
}

func TestScreenHeadings(t *testing.T) {
	got, err := ScreenHeadings(`<div><section data-section="skills"><h2> Skills </h2></section><h2>Other</h2></div>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Skills"}, got)
}

func TestPDFHeadings_ReadsRenderedBytes(t *testing.T) {
	rn := rendering.NewRenderer(nil)
	for _, id := range []string{"modern", "template1"} {
		t.Run(id, func(t *testing.T) {
			doc := layout.Build(templates.SampleResume(), id)
			data, err := rn.PDFDocument(doc)
			require.NoError(t, err)

			got, err := PDFHeadings(data, id)
			require.NoError(t, err)
			want := doc.Headings()
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, strings.EqualFold(want[i], got[i]), "%q vs %q", want[i], got[i])
			}
		})
	}
}

func TestPDFHeadings_ExtraSectionIsAMismatch(t *testing.T) {
	rn := rendering.NewRenderer(nil)
	full, err := rn.PDF(templates.SampleResume(), "modern")
	require.NoError(t, err)

	trimmed := templates.SampleResume()
	trimmed.Experience = nil
	rep := &Report{Expected: layout.Build(trimmed, "modern").Headings()}

	got, err := PDFHeadings(full, "modern")
	require.NoError(t, err)
	rep.compare("pdf", got)
	assert.False(t, rep.OK())
}

func TestPDFHeadings_NotAPDF(t *testing.T) {
	_, err := PDFHeadings([]byte("plain text"), "modern")
	assert.Error(t, err)
}
