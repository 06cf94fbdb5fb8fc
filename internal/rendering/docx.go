package rendering

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// DOCX renders r as a Word document.
func (rn *Renderer) DOCX(r *types.Resume, templateID string) ([]byte, error) {
	return rn.DOCXDocument(layout.Build(r, templateID))
}

// DOCXDocument packages a laid-out document as a .docx file: one heading
// paragraph per block followed by a paragraph per item line. Package
// entries are written in a fixed order with fixed timestamps.
func (rn *Renderer) DOCXDocument(doc *layout.Document) ([]byte, error) {
	var out []byte
	err := guard(FormatDOCX, func() error {
		var buf bytes.Buffer
		if _, err := buildDocx(doc).WriteTo(&buf); err != nil {
			return &RenderError{Format: FormatDOCX, Message: "packager failed", Cause: err}
		}
		var err error
		if out, err = stableDOCX(buf.Bytes()); err != nil {
			return &RenderError{Format: FormatDOCX, Message: "failed to re-pack document", Cause: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	rn.logRendered(doc, FormatDOCX, len(out))
	return out, nil
}

// halfPoints converts a point size to the OOXML half-point unit.
func halfPoints(pt int) string {
	return strconv.Itoa(pt * 2)
}

func buildDocx(doc *layout.Document) *docx.Docx {
	t := doc.Theme
	primary := templates.HexColor(t.PrimaryColor)
	secondary := templates.HexColor(t.SecondaryColor)
	muted := templates.HexColor(colorMuted)
	body := halfPoints(t.BodyFontSize)

	w := docx.New().WithDefaultTheme()
	centered := doc.Variant == templates.VariantCentered
	header := func() *docx.Paragraph {
		p := w.AddParagraph()
		if centered {
			p.Justification("center")
		}
		return p
	}

	if doc.Header.Name != "" {
		header().AddText(doc.Header.Name).Size(halfPoints(t.HeaderFontSize)).Color(primary).Bold()
	}
	if doc.Header.Tagline != "" {
		header().AddText(doc.Header.Tagline).Size(halfPoints(t.SectionFontSize)).Color(secondary)
	}
	if len(doc.Header.Contact) > 0 {
		header().AddText(strings.Join(doc.Header.Contact, " | ")).Size(body).Color(muted)
	}

	for _, b := range doc.Blocks() {
		w.AddParagraph().AddText(strings.ToUpper(b.Heading)).Size(halfPoints(t.SectionFontSize)).Color(primary).Bold()
		for _, it := range b.Items {
			if it.Title != "" || it.Dates != "" {
				p := w.AddParagraph()
				if it.Title != "" {
					p.AddText(it.Title).Size(halfPoints(t.BodyFontSize + 1)).Color(secondary).Bold()
				}
				if it.Dates != "" {
					if it.Title != "" {
						p.AddText(" | ").Size(body).Color(muted)
					}
					p.AddText(it.Dates).Size(body).Color(muted).Italic()
				}
			}
			if it.Subtitle != "" {
				w.AddParagraph().AddText(it.Subtitle).Size(body).Color(muted).Italic()
			}
			if it.Body != "" {
				for _, para := range strings.Split(it.Body, "\n") {
					if para = strings.TrimSpace(para); para != "" {
						w.AddParagraph().AddText(para).Size(body)
					}
				}
			}
			for _, d := range it.Details {
				w.AddParagraph().AddText(d).Size(body)
			}
			for _, bl := range it.Bullets {
				w.AddParagraph().AddText("• " + bl).Size(body)
			}
		}
	}
	return w
}

// DocxParagraph is the text of one paragraph and the formatting of its
// first run.
type DocxParagraph struct {
	Text  string
	Bold  bool
	Size  string
	Color string
}

// DocxParagraphs returns every paragraph in a .docx file's main document
// part, in order.
func DocxParagraphs(data []byte) ([]DocxParagraph, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx package: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open document part: %w", err)
		}
		defer rc.Close()
		return readParagraphs(rc)
	}
	return nil, fmt.Errorf("docx package has no word/document.xml")
}

// DocxHeadings returns the section headings of a .docx rendered with theme.
func DocxHeadings(data []byte, theme templates.Theme) ([]string, error) {
	paras, err := DocxParagraphs(data)
	if err != nil {
		return nil, err
	}
	size := halfPoints(theme.SectionFontSize)
	color := strings.ToLower(templates.HexColor(theme.PrimaryColor))
	var out []string
	for _, p := range paras {
		if p.Bold && p.Size == size && strings.ToLower(p.Color) == color {
			out = append(out, p.Text)
		}
	}
	return out, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func readParagraphs(r io.Reader) ([]DocxParagraph, error) {
	dec := xml.NewDecoder(r)
	var (
		paras  []DocxParagraph
		cur    DocxParagraph
		text   strings.Builder
		inPara bool
		inText bool
		runs   int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paras, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document part: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inPara = true
				cur = DocxParagraph{}
				text.Reset()
				runs = 0
			case "r":
				runs++
			case "b":
				if runs == 1 && attr(el, "val") != "false" && attr(el, "val") != "0" {
					cur.Bold = true
				}
			case "sz":
				if runs == 1 {
					cur.Size = attr(el, "val")
				}
			case "color":
				if runs == 1 {
					cur.Color = attr(el, "val")
				}
			case "t":
				inText = inPara
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				if inPara {
					cur.Text = text.String()
					paras = append(paras, cur)
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		}
	}
}
