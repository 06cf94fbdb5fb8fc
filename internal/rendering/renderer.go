package rendering

import (
	"io"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// Renderer renders resumes into every supported format. It holds no
// per-render state and is safe for concurrent use.
type Renderer struct {
	log    logrus.FieldLogger
	screen screenTemplate
}

// NewRenderer returns a Renderer logging to log. A nil log discards output.
func NewRenderer(log logrus.FieldLogger) *Renderer {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Renderer{log: log, screen: defaultScreen}
}

// Render renders r with the given template into format f.
func (rn *Renderer) Render(f Format, r *types.Resume, templateID string) ([]byte, error) {
	doc := layout.Build(r, templateID)
	switch f {
	case FormatPDF:
		return rn.PDFDocument(doc)
	case FormatDOCX:
		return rn.DOCXDocument(doc)
	default:
		html, err := rn.ScreenDocument(doc)
		return []byte(html), err
	}
}

func (rn *Renderer) logRendered(doc *layout.Document, f Format, size int) {
	rn.log.WithFields(logrus.Fields{
		"template": doc.TemplateID,
		"format":   string(f),
		"bytes":    size,
		"blocks":   len(doc.Main) + len(doc.Sidebar),
	}).Debug("rendered resume")
}
