package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// handleRender renders the resume in the body without storing it.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	f, err := rendering.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}
	resume, err := decodeResume(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx, cancel := s.renderContext(r)
	defer cancel()
	data, err := s.render(ctx, f, resume, s.templateFor(r, resume))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeRendered(w, r, f, resume.Title, data)
}
