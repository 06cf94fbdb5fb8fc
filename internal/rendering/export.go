package rendering

import (
	"context"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Export bundles every format of one resume.
type Export struct {
	TemplateID string
	Slug       string
	HTML       string
	PDF        []byte
	DOCX       []byte
}

// Bytes returns the output for format f.
func (e *Export) Bytes(f Format) []byte {
	switch f {
	case FormatPDF:
		return e.PDF
	case FormatDOCX:
		return e.DOCX
	default:
		return []byte(e.HTML)
	}
}

// RenderAll lays r out once and renders the three formats concurrently.
// Any failure fails the whole export.
func (rn *Renderer) RenderAll(ctx context.Context, r *types.Resume, templateID string) (*Export, error) {
	doc := layout.Build(r, templateID)
	title := ""
	if r != nil {
		title = r.Title
	}
	out := &Export{TemplateID: doc.TemplateID, Slug: Slug(title)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, err := rn.ScreenDocument(doc)
		out.HTML = html
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf, err := rn.PDFDocument(doc)
		out.PDF = pdf
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		docx, err := rn.DOCXDocument(doc)
		out.DOCX = docx
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
