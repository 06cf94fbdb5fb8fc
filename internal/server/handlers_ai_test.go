package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/jonathan/resume-builder/internal/ai"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	fail   error
	scored *types.Resume
}

func (f *fakeAssistant) Enhance(_ context.Context, req types.EnhanceRequest) (*types.EnhanceResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return &types.EnhanceResult{Original: req.Content, Enhanced: "Led " + req.Content, Suggestions: []string{}}, nil
}

func (f *fakeAssistant) GenerateSummary(_ context.Context, req types.SummaryRequest) (*types.SummaryResult, error) {
	return &types.SummaryResult{Summary: "Engineer with " + req.JobTitle}, nil
}

func (f *fakeAssistant) Score(_ context.Context, r *types.Resume) (*types.ATSReport, error) {
	f.scored = r
	return ai.FallbackReport(), nil
}

func (f *fakeAssistant) KeywordSuggestions(_ context.Context, _ types.KeywordRequest) (*types.KeywordSuggestions, error) {
	return ai.FallbackKeywords(), nil
}

func TestAI_Disabled(t *testing.T) {
	s, _ := newTestServer(t, nil)
	for _, path := range []string{"/ai/enhance", "/ai/summary", "/ai/ats-score", "/ai/keywords"} {
		w := do(t, s, http.MethodPost, path, `{}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestAI_Enhance(t *testing.T) {
	s, _ := newTestServer(t, func(o *Options) { o.Assistant = &fakeAssistant{} })

	w := do(t, s, http.MethodPost, "/ai/enhance", `{"content": "the migration", "section": "experience"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[types.EnhanceResult](t, w)
	assert.Equal(t, "the migration", res.Original)
	assert.Equal(t, "Led the migration", res.Enhanced)

	w = do(t, s, http.MethodPost, "/ai/enhance", `{"content": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAI_EnhanceFailureKeepsMessage(t *testing.T) {
	fake := &fakeAssistant{fail: &ai.APICallError{Task: "enhance", Message: "Failed to enhance content"}}
	s, _ := newTestServer(t, func(o *Options) { o.Assistant = fake })

	w := do(t, s, http.MethodPost, "/ai/enhance", `{"content": "x", "section": "summary"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to enhance content", decode[map[string]any](t, w)["error"])
}

func TestAI_SummaryAndKeywords(t *testing.T) {
	s, _ := newTestServer(t, func(o *Options) { o.Assistant = &fakeAssistant{} })

	w := do(t, s, http.MethodPost, "/ai/summary", `{"experience": [], "skills": [], "jobTitle": "SRE"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Engineer with SRE", decode[types.SummaryResult](t, w).Summary)

	w = do(t, s, http.MethodPost, "/ai/keywords", `{"jobDescription": "Go, Kubernetes"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode[types.KeywordSuggestions](t, w).Technical)
}

func TestAI_ATSScore(t *testing.T) {
	fake := &fakeAssistant{}
	s, _ := newTestServer(t, func(o *Options) { o.Assistant = fake })

	w := do(t, s, http.MethodPost, "/ai/ats-score", `{"resumeData": `+resumeBody+`}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 75, decode[types.ATSReport](t, w).Score)
	require.NotNil(t, fake.scored)
	assert.Equal(t, "Platform Engineer", fake.scored.Title)

	w = do(t, s, http.MethodPost, "/ai/ats-score", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (f *fakeAssistant) ApplyEnhancement(ctx context.Context, r *types.Resume, t ai.Target) (*types.EnhanceResult, error) {
	if t.Section != "summary" {
		return nil, ai.ErrNoSuchField
	}
	res, err := f.Enhance(ctx, types.EnhanceRequest{Content: r.PersonalInfo.Summary, Section: t.Section})
	if err != nil {
		return nil, err
	}
	r.PersonalInfo.Summary = res.Enhanced
	return res, nil
}

func TestAI_EnhanceStoredResume(t *testing.T) {
	s, store := newTestServer(t, func(o *Options) { o.Assistant = &fakeAssistant{} })
	rec, err := store.CreateResume(context.Background(), &types.Resume{
		Title:        "SRE",
		PersonalInfo: types.PersonalInfo{FirstName: "A", LastName: "B", Email: "a@example.com", Summary: "on-call work"},
	})
	require.NoError(t, err)
	id := rec.ID.String()

	w := do(t, s, http.MethodPost, "/resumes/"+id+"/enhance", `{"section": "summary"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved, err := store.GetResume(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Led on-call work", saved.Resume.PersonalInfo.Summary)

	w = do(t, s, http.MethodPost, "/resumes/"+id+"/enhance", `{"section": "languages"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAI_EnhanceStoredResumeFailureKeepsStored(t *testing.T) {
	fake := &fakeAssistant{fail: &ai.APICallError{Task: "enhance", Message: "Failed to enhance content"}}
	s, store := newTestServer(t, func(o *Options) { o.Assistant = fake })
	rec, err := store.CreateResume(context.Background(), &types.Resume{
		Title:        "SRE",
		PersonalInfo: types.PersonalInfo{FirstName: "A", LastName: "B", Email: "a@example.com", Summary: "on-call work"},
	})
	require.NoError(t, err)

	w := do(t, s, http.MethodPost, "/resumes/"+rec.ID.String()+"/enhance", `{"section": "summary"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	saved, err := store.GetResume(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "on-call work", saved.Resume.PersonalInfo.Summary)
}

func TestAI_ScoreStoredResume(t *testing.T) {
	s, store := newTestServer(t, func(o *Options) { o.Assistant = &fakeAssistant{} })
	rec, err := store.CreateResume(context.Background(), &types.Resume{
		Title:        "SRE",
		PersonalInfo: types.PersonalInfo{FirstName: "A", LastName: "B", Email: "a@example.com"},
	})
	require.NoError(t, err)

	w := do(t, s, http.MethodPost, "/resumes/"+rec.ID.String()+"/ats-score", "")
	require.Equal(t, http.StatusOK, w.Code)
	saved, err := store.GetResume(context.Background(), rec.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.Resume.AIEnhancements)
	assert.Equal(t, 75, *saved.Resume.AIEnhancements.ATSScore)
}
