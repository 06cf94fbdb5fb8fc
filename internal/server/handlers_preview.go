package server

import (
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// PreviewSessionResponse describes a new live-preview session.
type PreviewSessionResponse struct {
	ID        string `json:"id"`
	PageURL   string `json:"pageUrl"`
	EventsURL string `json:"eventsUrl"`
}

const heartbeatInterval = 15 * time.Second

func (s *Server) handleCreatePreviewSession(w http.ResponseWriter, _ *http.Request) {
	id := s.previews.Create().String()
	s.jsonResponse(w, http.StatusCreated, PreviewSessionResponse{
		ID:        id,
		PageURL:   "/preview/sessions/" + id,
		EventsURL: "/preview/sessions/" + id + "/events",
	})
}

// handlePreviewPage serves the host page that swaps in pushed fragments.
func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	last, err := s.previews.Last(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	fragment := ""
	if last != nil {
		fragment = last.HTML
	}
	page, err := s.renderer.Page(rendering.PageData{
		Title:     "Live preview",
		Fragment:  fragment,
		StreamURL: "/preview/sessions/" + id.String() + "/events",
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", rendering.ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// handlePreviewUpdate re-renders the posted resume and pushes the fragment
// to every subscriber. Incomplete resumes are accepted.
func (s *Server) handlePreviewUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.previews.Last(id); err != nil {
		s.fail(w, r, err)
		return
	}
	resume, err := decodeLenient(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	templateID := s.templateFor(r, resume)
	fragment := s.renderer.ScreenSafe(resume, templateID)
	version, delivered, err := s.previews.Publish(id, templateID, fragment)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]int{"version": version, "subscribers": delivered})
}

// handlePreviewEvents streams "preview" events until the client leaves.
func (s *Server) handlePreviewEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	events, cancel, err := s.previews.Subscribe(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer cancel()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := sse.WriteEvent("preview", ev); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}
