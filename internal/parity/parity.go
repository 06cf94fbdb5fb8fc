// Package parity checks that the screen, PDF and DOCX outputs of a resume
// agree on which sections appear and in what order.
package parity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// Report is the outcome of one parity check.
type Report struct {
	TemplateID string   `json:"templateId"`
	Expected   []string `json:"expected"`
	Screen     []string `json:"screen"`
	PDF        []string `json:"pdf"`
	DOCX       []string `json:"docx"`
	PDFPages   int      `json:"pdfPages"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// OK reports whether every format matched the layout.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Checker runs parity checks with a shared renderer.
type Checker struct {
	renderer *rendering.Renderer
}

// NewChecker returns a Checker using rn.
func NewChecker(rn *rendering.Renderer) *Checker {
	return &Checker{renderer: rn}
}

// Check renders r with templateID in all formats and compares the ordered
// section headings of each against the layout, ignoring case.
func (c *Checker) Check(ctx context.Context, r *types.Resume, templateID string) (*Report, error) {
	doc := layout.Build(r, templateID)
	export, err := c.renderer.RenderAll(ctx, r, doc.TemplateID)
	if err != nil {
		return nil, err
	}

	report := &Report{TemplateID: doc.TemplateID, Expected: doc.Headings()}

	report.Screen, err = ScreenHeadings(export.HTML)
	if err != nil {
		return nil, err
	}
	report.PDF, err = PDFHeadings(export.PDF, doc.TemplateID)
	if err != nil {
		return nil, err
	}
	report.PDFPages, err = rendering.PDFPageCount(export.PDF)
	if err != nil {
		return nil, err
	}
	report.DOCX, err = rendering.DocxHeadings(export.DOCX, doc.Theme)
	if err != nil {
		return nil, err
	}

	report.compare("screen", report.Screen)
	report.compare("pdf", report.PDF)
	report.compare("docx", report.DOCX)
	return report, nil
}

// CheckAll runs Check for every registered template.
func (c *Checker) CheckAll(ctx context.Context, r *types.Resume) ([]*Report, error) {
	var reports []*Report
	for _, id := range templates.IDs() {
		rep, err := c.Check(ctx, r, id)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", id, err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (r *Report) compare(format string, got []string) {
	if len(got) != len(r.Expected) {
		r.Mismatches = append(r.Mismatches,
			fmt.Sprintf("%s: %d sections, want %d (%v)", format, len(got), len(r.Expected), got))
		return
	}
	for i := range got {
		if !strings.EqualFold(strings.TrimSpace(got[i]), r.Expected[i]) {
			r.Mismatches = append(r.Mismatches,
				fmt.Sprintf("%s: section %d is %q, want %q", format, i+1, got[i], r.Expected[i]))
		}
	}
}

// ScreenHeadings extracts section headings from screen markup.
func ScreenHeadings(html string) ([]string, error) {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse screen markup: %w", err)
	}
	var out []string
	dom.Find("section[data-section] > h2").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out, nil
}

// PDFHeadings reads the section headings out of PDF bytes rendered with
// templateID. Headings are found by their upper-case text, longest first,
// and returned in the order they occur in the document.
func PDFHeadings(data []byte, templateID string) ([]string, error) {
	text, err := ats.ExtractText(rendering.FormatPDF, data)
	if err != nil {
		return nil, err
	}
	desc, _ := templates.Resolve(templateID)
	var candidates []string
	for _, key := range desc.Layout.ReadingOrder() {
		if s, ok := desc.Section(key); ok && s.Heading != "" {
			candidates = append(candidates, strings.ToUpper(s.Heading))
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return len(candidates[i]) > len(candidates[j]) })

	type hit struct {
		at      int
		heading string
	}
	var hits []hit
	masked := []byte(text)
	for _, c := range candidates {
		for from := 0; ; {
			i := strings.Index(string(masked[from:]), c)
			if i < 0 {
				break
			}
			i += from
			hits = append(hits, hit{at: i, heading: c})
			for j := i; j < i+len(c); j++ {
				masked[j] = 0
			}
			from = i + len(c)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].at < hits[j].at })
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.heading
	}
	return out, nil
}
