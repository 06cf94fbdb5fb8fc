package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
)

// TemplateListResponse is the catalog listing.
type TemplateListResponse struct {
	Templates []templates.Descriptor `json:"templates"`
	Default   string                 `json:"default"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplateListResponse{
		Templates: templates.All(),
		Default:   s.cfg.DefaultTemplate,
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	desc, ok := templates.Lookup(r.PathValue("id"))
	if !ok {
		s.fail(w, r, &ErrTemplateNotFound{ID: r.PathValue("id")})
		return
	}
	s.jsonResponse(w, http.StatusOK, desc)
}

// handleTemplatePreview renders the sample resume with the template.
func (s *Server) handleTemplatePreview(w http.ResponseWriter, r *http.Request) {
	desc, ok := templates.Lookup(r.PathValue("id"))
	if !ok {
		s.fail(w, r, &ErrTemplateNotFound{ID: r.PathValue("id")})
		return
	}
	fragment := s.renderer.ScreenSafe(templates.SampleResume(), desc.ID)
	s.writeRendered(w, r, rendering.FormatHTML, desc.Name+" preview", []byte(fragment))
}

func (s *Server) handleTemplateThumbnail(w http.ResponseWriter, r *http.Request) {
	if s.thumbnails == nil {
		s.fail(w, r, &ErrFeatureDisabled{Feature: "thumbnails"})
		return
	}
	ctx, cancel := s.renderContext(r)
	defer cancel()

	png, err := s.thumbnails.Thumbnail(ctx, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
