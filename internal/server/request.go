package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &ErrValidation{Message: "request body is empty"}
	}
	return data, nil
}

// decodeResume reads a resume document, checking it against the JSON
// schema and then the struct rules.
func decodeResume(w http.ResponseWriter, r *http.Request) (*types.Resume, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	return parseResume(data)
}

func parseResume(data []byte) (*types.Resume, error) {
	if err := schemas.ValidateResumeJSON(data); err != nil {
		return nil, err
	}
	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	if err := resume.Validate(); err != nil {
		return nil, err
	}
	return &resume, nil
}

// decodeLenient reads a possibly incomplete resume, as sent by the editor
// while the user types. Only JSON syntax is checked.
func decodeLenient(w http.ResponseWriter, r *http.Request) (*types.Resume, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return &resume, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: fmt.Sprintf("invalid id %q", raw)}
	}
	return id, nil
}

// templateFor picks the template: query parameter, then the resume's own
// choice, then the server default.
func (s *Server) templateFor(r *http.Request, resume *types.Resume) string {
	if t := strings.TrimSpace(r.URL.Query().Get("template")); t != "" {
		return t
	}
	if resume != nil && resume.Template != "" {
		return resume.Template
	}
	return s.cfg.DefaultTemplate
}

type renderResult struct {
	data []byte
	err  error
}

// render runs one render bounded by ctx. A render that outlives ctx is
// abandoned and reported as a RenderError.
func (s *Server) render(ctx context.Context, f rendering.Format, resume *types.Resume, templateID string) ([]byte, error) {
	done := make(chan renderResult, 1)
	go func() {
		data, err := s.renderer.Render(f, resume, templateID)
		done <- renderResult{data, err}
	}()
	select {
	case res := <-done:
		return res.data, res.err
	case <-ctx.Done():
		return nil, &rendering.RenderError{Format: f, Message: "render timed out", Cause: ctx.Err()}
	}
}

// writeRendered sends a rendered resume. HTML is wrapped in a standalone
// page unless ?fragment=1 is given; binary formats download as attachments.
func (s *Server) writeRendered(w http.ResponseWriter, r *http.Request, f rendering.Format, title string, data []byte) {
	if f == rendering.FormatHTML && r.URL.Query().Get("fragment") == "" {
		page, err := s.renderer.Page(rendering.PageData{Title: title, Fragment: string(data)})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data = []byte(page)
	}
	w.Header().Set("Content-Type", f.ContentType())
	if f != rendering.FormatHTML {
		w.Header().Set("Content-Disposition", rendering.ContentDisposition(title, f))
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.WithError(err).Debug("client went away during download")
	}
}
