package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/ai"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// ATSScoreRequest wraps the resume to score.
type ATSScoreRequest struct {
	ResumeData *types.Resume `json:"resumeData"`
}

func (s *Server) assistantOrFail(w http.ResponseWriter, r *http.Request) bool {
	if s.assistant == nil {
		s.fail(w, r, &ErrFeatureDisabled{Feature: "AI assistant"})
		return false
	}
	return true
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if !s.assistantOrFail(w, r) {
		return
	}
	var req types.EnhanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.assistant.Enhance(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !s.assistantOrFail(w, r) {
		return
	}
	var req types.SummaryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.assistant.GenerateSummary(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	if !s.assistantOrFail(w, r) {
		return
	}
	var req ATSScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.ResumeData == nil {
		s.fail(w, r, &ErrValidation{Field: "resumeData", Message: "is required"})
		return
	}
	report, err := s.assistant.Score(r.Context(), req.ResumeData)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	if !s.assistantOrFail(w, r) {
		return
	}
	var req types.KeywordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.assistant.KeywordSuggestions(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// EnhanceResumeRequest names the stored field to rewrite.
type EnhanceResumeRequest struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
}

// EnhanceResumeResponse is the rewrite plus the saved resume.
type EnhanceResumeResponse struct {
	Result *types.EnhanceResult `json:"result"`
	Resume *db.ResumeRecord     `json:"resume"`
}

// handleEnhanceResume rewrites one field of a stored resume and saves it.
// A failed model call leaves the stored resume unchanged.
func (s *Server) handleEnhanceResume(w http.ResponseWriter, r *http.Request) {
	if !s.assistantOrFail(w, r) || !s.storeOrFail(w, r) {
		return
	}
	rec, err := s.loadRecord(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req EnhanceResumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.assistant.ApplyEnhancement(r.Context(), rec.Resume, ai.Target{Section: req.Section, Index: req.Index})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	saved, err := s.store.UpdateResume(r.Context(), rec.ID, rec.Resume)
	if err != nil {
		s.fail(w, r, notFoundAs(err, rec.ID))
		return
	}
	s.jsonResponse(w, http.StatusOK, EnhanceResumeResponse{Result: res, Resume: saved})
}

// handleScoreResume scores a stored resume and records the score on it.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	if !s.assistantOrFail(w, r) || !s.storeOrFail(w, r) {
		return
	}
	rec, err := s.loadRecord(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.assistant.Score(r.Context(), rec.Resume)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ai.RecordScore(rec.Resume, report)
	if _, err := s.store.UpdateResume(r.Context(), rec.ID, rec.Resume); err != nil {
		s.fail(w, r, notFoundAs(err, rec.ID))
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
