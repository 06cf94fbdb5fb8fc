package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// ResumeListResponse is the resume listing.
type ResumeListResponse struct {
	Resumes []db.ResumeSummary `json:"resumes"`
	Count   int                `json:"count"`
}

// ShareResponse is returned when a resume is shared.
type ShareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// storeOrFail returns false after answering 503 when no store is wired.
func (s *Server) storeOrFail(w http.ResponseWriter, r *http.Request) bool {
	if s.store == nil {
		s.fail(w, r, &ErrFeatureDisabled{Feature: "resume storage"})
		return false
	}
	return true
}

// loadRecord fetches the resume named by the {id} path value.
func (s *Server) loadRecord(r *http.Request) (*db.ResumeRecord, error) {
	id, err := pathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	rec, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrResumeNotFound{ID: id.String()}
	}
	return rec, nil
}

// notFoundAs turns the store's sentinel into the API's typed error.
func notFoundAs(err error, id uuid.UUID) error {
	if errors.Is(err, db.ErrNotFound) {
		return &ErrResumeNotFound{ID: id.String()}
	}
	return err
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	filters := db.ListFilters{Template: r.URL.Query().Get("template")}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			s.fail(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		filters.Limit = n
	}

	list, err := s.store.ListResumes(r.Context(), filters)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeListResponse{Resumes: list, Count: len(list)})
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	resume, err := decodeResume(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.store.CreateResume(r.Context(), resume)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, rec)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	rec, err := s.loadRecord(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resume, err := decodeResume(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.store.UpdateResume(r.Context(), id, resume)
	if err != nil {
		s.fail(w, r, notFoundAs(err, id))
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.fail(w, r, notFoundAs(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateResume(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.store.DuplicateResume(r.Context(), id)
	if err != nil {
		s.fail(w, r, notFoundAs(err, id))
		return
	}
	s.jsonResponse(w, http.StatusCreated, rec)
}

// handleResumePreview renders a stored resume as a page. Template failures
// show the fallback panel instead of an error.
func (s *Server) handleResumePreview(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	rec, err := s.loadRecord(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	fragment := s.renderer.ScreenSafe(rec.Resume, s.templateFor(r, rec.Resume))
	s.writeRendered(w, r, rendering.FormatHTML, rec.Resume.Title, []byte(fragment))
}

func (s *Server) handleResumeDownload(f rendering.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.storeOrFail(w, r) {
			return
		}
		rec, err := s.loadRecord(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		ctx, cancel := s.renderContext(r)
		defer cancel()
		data, err := s.render(ctx, f, rec.Resume, s.templateFor(r, rec.Resume))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.writeRendered(w, r, f, rec.Resume.Title, data)
	}
}

func (s *Server) handleShareResume(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	if s.shares == nil {
		s.fail(w, r, &ErrFeatureDisabled{Feature: "sharing"})
		return
	}
	rec, err := s.loadRecord(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	token, err := s.shares.GenerateToken(rec.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.SetSharing(r.Context(), rec.ID, true, token); err != nil {
		s.fail(w, r, notFoundAs(err, rec.ID))
		return
	}
	s.jsonResponse(w, http.StatusOK, ShareResponse{
		Token:     token,
		URL:       "/shared/" + token,
		ExpiresAt: s.shares.ExpiresAt(),
	})
}

func (s *Server) handleUnshareResume(w http.ResponseWriter, r *http.Request) {
	if !s.storeOrFail(w, r) {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.SetSharing(r.Context(), id, false, ""); err != nil {
		s.fail(w, r, notFoundAs(err, id))
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"id": id, "isPublic": false})
}

// handleShared serves a shared resume. The token must verify, the resume
// must still be public, and the token must be the one issued last.
func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	if s.store == nil || s.shares == nil {
		s.fail(w, r, &ErrShareTokenInvalid{})
		return
	}
	token := r.PathValue("token")
	claims, err := s.shares.ValidateToken(token)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.store.GetResume(r.Context(), claims.ResumeID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if rec == nil || !rec.IsPublic || rec.ShareToken != token {
		s.fail(w, r, &ErrShareTokenInvalid{})
		return
	}
	fragment := s.renderer.ScreenSafe(rec.Resume, s.templateFor(r, rec.Resume))
	s.writeRendered(w, r, rendering.FormatHTML, rec.Resume.Title, []byte(fragment))
}
