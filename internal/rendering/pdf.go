package rendering

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// A4 portrait in points, with fixed margins.
const (
	pageWidth    = 595.0
	pageHeight   = 842.0
	marginX      = 40.0
	marginTop    = 60.0
	marginBottom = 60.0
	contentWidth = pageWidth - 2*marginX

	// Average Helvetica advance as a fraction of the font size.
	glyphWidth = 0.5
	lineFactor = 1.35
)

const (
	fontRegular = "Helvetica"
	fontBold    = "Helvetica-Bold"
	fontItalic  = "Helvetica-Oblique"
	colorBody   = "#111827"
	colorMuted  = "#6b7280"
)

func init() {
	api.DisableConfigDir()
}

// PDFDescription is the page description handed to the compositor.
type PDFDescription struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]PDFPage `json:"pages"`
}

// PDFPage holds one page's content.
type PDFPage struct {
	Content PDFContent `json:"content"`
}

// PDFContent is the drawable content of a page.
type PDFContent struct {
	Text []PDFLine `json:"text,omitempty"`
	Box  []PDFBox  `json:"box,omitempty"`
}

// PDFLine is a single line of text at an absolute position.
type PDFLine struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  PDFFont    `json:"font"`
}

// PDFFont selects a standard font.
type PDFFont struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	Color string `json:"col"`
}

// PDFBox is a filled rectangle, used for section rules.
type PDFBox struct {
	Pos    [2]float64 `json:"pos"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Fill   string     `json:"fillCol"`
}

// Lines returns every text value in page order, top to bottom.
func (d *PDFDescription) Lines() []string {
	var out []string
	for i := 1; i <= len(d.Pages); i++ {
		for _, t := range d.Pages[strconv.Itoa(i)].Content.Text {
			out = append(out, t.Value)
		}
	}
	return out
}

// Headings returns the section headings drawn with theme, in page order.
func (d *PDFDescription) Headings(theme templates.Theme) []string {
	var out []string
	for i := 1; i <= len(d.Pages); i++ {
		for _, t := range d.Pages[strconv.Itoa(i)].Content.Text {
			f := t.Font
			if f.Name == fontBold && f.Size == theme.SectionFontSize && f.Color == theme.PrimaryColor {
				out = append(out, t.Value)
			}
		}
	}
	return out
}

// PDF renders r as a PDF file.
func (rn *Renderer) PDF(r *types.Resume, templateID string) ([]byte, error) {
	return rn.PDFDocument(layout.Build(r, templateID))
}

// PDFDocument composes a laid-out document into PDF bytes. The compositor
// output is fully buffered and normalized, so equal documents give equal
// bytes.
func (rn *Renderer) PDFDocument(doc *layout.Document) ([]byte, error) {
	var out []byte
	err := guard(FormatPDF, func() error {
		desc, err := json.Marshal(DescribePDF(doc))
		if err != nil {
			return &RenderError{Format: FormatPDF, Message: "failed to encode page description", Cause: err}
		}
		var buf bytes.Buffer
		if err := api.Create(nil, bytes.NewReader(desc), &buf, pdfConfig()); err != nil {
			return &RenderError{Format: FormatPDF, Message: "compositor failed", Cause: err}
		}
		if out, err = stablePDF(buf.Bytes()); err != nil {
			return &RenderError{Format: FormatPDF, Message: "failed to normalize compositor output", Cause: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	rn.logRendered(doc, FormatPDF, len(out))
	return out, nil
}

// pdfConfig writes classic cross-reference tables so simple PDF text
// readers can parse the output.
func pdfConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// DescribePDF lays the document out on A4 pages. It is deterministic.
func DescribePDF(doc *layout.Document) *PDFDescription {
	w := &pdfWriter{theme: doc.Theme, desc: &PDFDescription{Paper: "A4", Origin: "LowerLeft", Pages: map[string]PDFPage{}}}
	w.newPage()

	centered := doc.Variant == templates.VariantCentered
	w.line(doc.Header.Name, fontBold, w.theme.HeaderFontSize, w.theme.PrimaryColor, centered)
	if doc.Header.Tagline != "" {
		w.line(doc.Header.Tagline, fontRegular, w.theme.SectionFontSize, w.theme.SecondaryColor, centered)
	}
	if len(doc.Header.Contact) > 0 {
		for _, l := range wrap(strings.Join(doc.Header.Contact, " | "), w.theme.BodyFontSize, contentWidth) {
			w.line(l, fontRegular, w.theme.BodyFontSize, colorMuted, centered)
		}
	}

	for _, b := range doc.Blocks() {
		w.block(b)
	}
	w.flush()
	return w.desc
}

type pdfWriter struct {
	theme templates.Theme
	desc  *PDFDescription
	page  PDFContent
	num   int
	y     float64
}

func (w *pdfWriter) newPage() {
	if w.num > 0 {
		w.flush()
	}
	w.num++
	w.page = PDFContent{}
	w.y = pageHeight - marginTop
}

func (w *pdfWriter) flush() {
	w.desc.Pages[strconv.Itoa(w.num)] = PDFPage{Content: w.page}
}

// reserve moves to a new page when h points do not fit on this one.
func (w *pdfWriter) reserve(h float64) {
	if w.y-h < marginBottom {
		w.newPage()
	}
}

func (w *pdfWriter) gap(pts float64) {
	w.y -= pts * w.theme.Spacing
}

func (w *pdfWriter) line(text, font string, size int, color string, centered bool) {
	text = PDFText(text)
	if text == "" {
		return
	}
	h := float64(size) * lineFactor
	w.reserve(h)
	w.y -= h
	x := marginX
	if centered {
		x = math.Max(marginX, (pageWidth-textWidth(text, size))/2)
	}
	w.page.Text = append(w.page.Text, PDFLine{
		Value: text,
		Pos:   [2]float64{round(x), round(w.y)},
		Font:  PDFFont{Name: font, Size: size, Color: color},
	})
}

// rightAligned places text on the current baseline flush with the margin.
func (w *pdfWriter) rightAligned(text, font string, size int, color string) {
	text = PDFText(text)
	if text == "" {
		return
	}
	x := pageWidth - marginX - textWidth(text, size)
	w.page.Text = append(w.page.Text, PDFLine{
		Value: text,
		Pos:   [2]float64{round(x), round(w.y)},
		Font:  PDFFont{Name: font, Size: size, Color: color},
	})
}

func (w *pdfWriter) paragraph(text, font string, size int, color string, indent string) {
	for i, l := range wrap(PDFText(text), size, contentWidth-textWidth(indent, size)) {
		prefix := indent
		if i > 0 {
			prefix = strings.Repeat(" ", utf8.RuneCountInString(indent))
		}
		w.line(prefix+l, font, size, color, false)
	}
}

func (w *pdfWriter) block(b layout.Block) {
	t := w.theme
	w.gap(10)
	// Keep the heading with the first line of its content.
	w.reserve(float64(t.SectionFontSize+2*t.BodyFontSize) * lineFactor)
	w.line(strings.ToUpper(b.Heading), fontBold, t.SectionFontSize, t.PrimaryColor, false)
	w.y -= 3
	w.page.Box = append(w.page.Box, PDFBox{
		Pos: [2]float64{marginX, round(w.y)}, Width: contentWidth, Height: 1, Fill: t.AccentColor,
	})
	w.gap(2)

	for _, it := range b.Items {
		w.item(it)
	}
}

func (w *pdfWriter) item(it layout.Item) {
	t := w.theme
	w.gap(4)
	switch {
	case it.Title != "":
		w.line(it.Title, fontBold, t.BodyFontSize+1, t.SecondaryColor, false)
		w.rightAligned(it.Dates, fontItalic, t.BodyFontSize, colorMuted)
	case it.Dates != "":
		w.line(it.Dates, fontItalic, t.BodyFontSize, colorMuted, false)
	}
	if it.Subtitle != "" {
		w.line(it.Subtitle, fontItalic, t.BodyFontSize, colorMuted, false)
	}
	if it.Body != "" {
		for _, para := range strings.Split(it.Body, "\n") {
			w.paragraph(para, fontRegular, t.BodyFontSize, colorBody, "")
		}
	}
	for _, d := range it.Details {
		w.paragraph(d, fontRegular, t.BodyFontSize, colorBody, "")
	}
	for _, bl := range it.Bullets {
		w.paragraph(bl, fontRegular, t.BodyFontSize, colorBody, "- ")
	}
}

func textWidth(s string, size int) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(size) * glyphWidth
}

// wrap breaks text into lines of at most width points. Words longer than
// a line are split.
func wrap(text string, size int, width float64) []string {
	maxChars := int(width / (float64(size) * glyphWidth))
	if maxChars < 1 {
		maxChars = 1
	}
	var lines []string
	var cur []rune
	for _, field := range strings.Fields(text) {
		word := []rune(field)
		for len(word) > maxChars {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = cur[:0]
			}
			lines = append(lines, string(word[:maxChars]))
			word = word[maxChars:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, word...)
		case len(cur)+1+len(word) <= maxChars:
			cur = append(cur, ' ')
			cur = append(cur, word...)
		default:
			lines = append(lines, string(cur))
			cur = append(cur[:0], word...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// PDFPageCount returns the number of pages in a PDF.
func PDFPageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), pdfConfig())
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}
	return n, nil
}
