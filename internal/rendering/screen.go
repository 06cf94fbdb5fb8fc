package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed assets/screen.html.tmpl
var screenFS embed.FS

// screenTemplate executes a named template. *template.Template satisfies it.
type screenTemplate interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

var defaultScreen = template.Must(template.New("screen").Funcs(template.FuncMap{
	"tokens": styleTokens,
}).ParseFS(screenFS, "assets/screen.html.tmpl"))

// styleTokens exposes a theme as CSS custom properties.
func styleTokens(t templates.Theme) template.CSS {
	return template.CSS(fmt.Sprintf(
		"--rb-primary: %s; --rb-secondary: %s; --rb-accent: %s; "+
			"--rb-header-size: %dpt; --rb-section-size: %dpt; --rb-body-size: %dpt; --rb-spacing: %.2f",
		t.PrimaryColor, t.SecondaryColor, t.AccentColor,
		t.HeaderFontSize, t.SectionFontSize, t.BodyFontSize, t.Spacing))
}

// Screen renders the preview fragment for r.
func (rn *Renderer) Screen(r *types.Resume, templateID string) (string, error) {
	return rn.ScreenDocument(layout.Build(r, templateID))
}

// ScreenDocument renders a laid-out document as an HTML fragment.
func (rn *Renderer) ScreenDocument(doc *layout.Document) (string, error) {
	var out string
	err := guard(FormatHTML, func() error {
		var buf bytes.Buffer
		if err := rn.screen.ExecuteTemplate(&buf, "fragment", doc); err != nil {
			return &TemplateError{Template: doc.TemplateID, Message: "failed to execute template", Cause: err}
		}
		out = buf.String()
		return nil
	})
	if err != nil {
		return "", err
	}
	rn.logRendered(doc, FormatHTML, len(out))
	return out, nil
}

// ScreenSafe renders the preview fragment and never fails: a template error
// or panic is replaced by a panel naming the template that failed.
func (rn *Renderer) ScreenSafe(r *types.Resume, templateID string) string {
	doc := layout.Build(r, templateID)
	out, err := rn.ScreenDocument(doc)
	if err != nil {
		rn.log.WithError(err).WithField("template", doc.TemplateID).Warn("screen render failed")
		return FallbackPanel(doc.TemplateID)
	}
	return out
}

// FallbackPanel is the markup shown in place of a preview that failed.
func FallbackPanel(templateID string) string {
	id := html.EscapeString(templateID)
	return fmt.Sprintf(`<div class="rb-render-error" role="alert" data-template="%s">`+
		`Preview unavailable: the %q template failed to render.</div>`, id, id)
}

// PageData is the input of the standalone preview page. Fragment must be
// markup produced by this package.
type PageData struct {
	Title     string
	Fragment  string
	StreamURL string
}

// Page wraps a fragment in a complete HTML document. When StreamURL is set
// the page subscribes to it and swaps in each pushed fragment.
func (rn *Renderer) Page(data PageData) (string, error) {
	var buf bytes.Buffer
	view := struct {
		Title     string
		Fragment  template.HTML
		StreamURL string
	}{data.Title, template.HTML(data.Fragment), data.StreamURL} //nolint:gosec // fragment comes from the escaping template
	if err := rn.screen.ExecuteTemplate(&buf, "page", view); err != nil {
		return "", &TemplateError{Template: "page", Message: "failed to execute page template", Cause: err}
	}
	return buf.String(), nil
}
