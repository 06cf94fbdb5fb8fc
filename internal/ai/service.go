// Package ai is the writing assistant: content enhancement, summary
// generation, ATS scoring and keyword extraction on top of an llm.Client.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// Service talks to the model. All methods are safe for concurrent use.
type Service struct {
	client   llm.Client
	renderer *rendering.Renderer
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewService wires a model client and the renderer used to produce the
// PDF text an ATS would parse.
func NewService(client llm.Client, rn *rendering.Renderer, log logrus.FieldLogger) *Service {
	if log == nil {
		log = observability.Discard()
	}
	if rn == nil {
		rn = rendering.NewRenderer(log)
	}
	return &Service{client: client, renderer: rn, log: log, now: time.Now}
}

// Enhance rewrites one piece of resume content with section-specific focus.
func (s *Service) Enhance(ctx context.Context, req types.EnhanceRequest) (*types.EnhanceResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var extra strings.Builder
	if req.JobTitle != "" {
		extra.WriteString("\nTarget Job Title: " + req.JobTitle)
	}
	if req.Industry != "" {
		extra.WriteString("\nIndustry: " + req.Industry)
	}
	prompt, err := prompts.Render(prompts.AI, "enhance-user", map[string]string{
		"Section": req.Section,
		"Context": extra.String(),
		"Focus":   prompts.Lookup(prompts.AI, "focus-"+strings.ToLower(req.Section)),
		"Content": req.Content,
	})
	if err != nil {
		return nil, err
	}

	enhanced, err := s.client.Generate(ctx, llm.Request{
		System:      prompts.MustGet(prompts.AI, "enhance-system"),
		Prompt:      prompt,
		Tier:        llm.TierLite,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, &APICallError{Task: "enhance", Message: "failed to enhance content", Cause: err}
	}
	if strings.TrimSpace(enhanced) == "" {
		return nil, &APICallError{Task: "enhance", Message: "model returned no content"}
	}

	return &types.EnhanceResult{
		Original:    req.Content,
		Enhanced:    enhanced,
		Suggestions: suggestionsFor(req.Content, enhanced),
	}, nil
}

// GenerateSummary writes a 3-4 sentence professional summary.
func (s *Service) GenerateSummary(ctx context.Context, req types.SummaryRequest) (*types.SummaryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	experience, err := json.Marshal(req.Experience)
	if err != nil {
		return nil, fmt.Errorf("failed to encode experience: %w", err)
	}
	skills, err := json.Marshal(req.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	prompt, err := prompts.Render(prompts.AI, "summary-user", map[string]string{
		"Experience": string(experience),
		"Skills":     string(skills),
		"JobTitle":   orUnspecified(req.JobTitle),
		"Industry":   orUnspecified(req.Industry),
	})
	if err != nil {
		return nil, err
	}

	summary, err := s.client.Generate(ctx, llm.Request{
		System:      prompts.MustGet(prompts.AI, "summary-system"),
		Prompt:      prompt,
		Tier:        llm.TierStandard,
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, &APICallError{Task: "summary", Message: "failed to generate summary", Cause: err}
	}
	return &types.SummaryResult{Summary: summary}, nil
}

// Score rates the resume's ATS compatibility. The prompt carries both the
// structured data and the text extracted from the rendered PDF. A response
// that cannot be decoded yields the fallback report. Skills missing from the
// extracted text are reported as a weakness.
func (s *Service) Score(ctx context.Context, r *types.Resume) (*types.ATSReport, error) {
	if r == nil {
		return nil, fmt.Errorf("resume is required")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}

	extracted := s.extractedText(r)
	body, err := prompts.Render(prompts.AI, "ats-user", map[string]string{
		"Resume":    string(data),
		"Extracted": extracted,
	})
	if err != nil {
		return nil, err
	}

	text, err := s.client.Generate(ctx, llm.Request{
		System:      prompts.MustGet(prompts.AI, "ats-system"),
		Prompt:      llm.BuildJSONPrompt(llm.ATSReportSchema(), body),
		Tier:        llm.TierStandard,
		Temperature: 0.3,
		MaxTokens:   800,
		JSON:        true,
	})
	if err != nil {
		return nil, &APICallError{Task: "ats-score", Message: "failed to calculate ATS score", Cause: err}
	}

	var report types.ATSReport
	if err := llm.DecodeJSON(text, &report); err != nil {
		s.log.WithError(err).Warn("ATS analysis not parseable, using fallback report")
		return FallbackReport(), nil
	}
	if report.Score < 0 || report.Score > 100 {
		s.log.WithField("score", report.Score).Warn("ATS score out of range, using fallback report")
		return FallbackReport(), nil
	}
	if missing := skillGaps(extracted, r); len(missing) > 0 {
		report.Weaknesses = append(report.Weaknesses,
			"Skills not found in the exported PDF text: "+strings.Join(missing, ", "))
	}
	return &report, nil
}

// skillGaps lists the resume's skills that an ATS would not find in the
// extracted text.
func skillGaps(extracted string, r *types.Resume) []string {
	if extracted == unavailable {
		return nil
	}
	var skills []string
	for _, g := range r.Skills {
		skills = append(skills, g.Skills...)
	}
	return ats.KeywordCoverage(extracted, skills).Missing
}

// KeywordSuggestions extracts categorized keywords from a job description.
// Technical keywords the current skills do not cover are added to
// MissingSkills.
func (s *Service) KeywordSuggestions(ctx context.Context, req types.KeywordRequest) (*types.KeywordSuggestions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := prompts.Render(prompts.AI, "keywords-user", map[string]string{
		"JobDescription": req.JobDescription,
		"CurrentSkills":  strings.Join(req.CurrentSkills, ", "),
	})
	if err != nil {
		return nil, err
	}

	text, err := s.client.Generate(ctx, llm.Request{
		System:      prompts.MustGet(prompts.AI, "keywords-system"),
		Prompt:      llm.BuildJSONPrompt(llm.KeywordSchema(), body),
		Tier:        llm.TierLite,
		Temperature: 0.3,
		MaxTokens:   600,
		JSON:        true,
	})
	if err != nil {
		return nil, &APICallError{Task: "keywords", Message: "failed to generate keyword suggestions", Cause: err}
	}

	var out types.KeywordSuggestions
	if err := llm.DecodeJSON(text, &out); err != nil {
		s.log.WithError(err).Warn("keyword suggestions not parseable, using placeholders")
		return FallbackKeywords(), nil
	}
	out.MissingSkills = mergeMissing(out.MissingSkills, req.CurrentSkills, out.Technical)
	return &out, nil
}

// mergeMissing adds the technical keywords not covered by the current
// skills to missing, skipping ones already listed.
func mergeMissing(missing, current, technical []string) []string {
	listed := make(map[string]bool, len(missing))
	for _, m := range missing {
		listed[strings.ToLower(strings.TrimSpace(m))] = true
	}
	cov := ats.KeywordCoverage(strings.Join(current, "\n"), technical)
	for _, k := range cov.Missing {
		key := strings.ToLower(strings.TrimSpace(k))
		if !listed[key] {
			listed[key] = true
			missing = append(missing, k)
		}
	}
	return missing
}

// FallbackReport is returned when the model's analysis cannot be read.
func FallbackReport() *types.ATSReport {
	return &types.ATSReport{
		Score:       75,
		Strengths:   []string{"Resume structure looks good"},
		Weaknesses:  []string{"Could not parse detailed analysis"},
		Suggestions: []string{"Review the AI analysis manually"},
	}
}

// FallbackKeywords is returned when the model's keywords cannot be read.
func FallbackKeywords() *types.KeywordSuggestions {
	return &types.KeywordSuggestions{
		Technical:     []string{"Technical skills not parsed"},
		Soft:          []string{"Soft skills not parsed"},
		Industry:      []string{"Industry terms not parsed"},
		ActionVerbs:   []string{"Action verbs not parsed"},
		MissingSkills: []string{"Missing skills not parsed"},
	}
}

const unavailable = "(unavailable)"

func (s *Service) extractedText(r *types.Resume) string {
	data, err := s.renderer.PDF(r, r.Template)
	if err != nil {
		s.log.WithError(err).Debug("pdf render for ATS extraction failed")
		return unavailable
	}
	text, err := ats.ExtractText(rendering.FormatPDF, data)
	if err != nil || text == "" {
		s.log.WithError(err).Debug("pdf text extraction failed")
		return unavailable
	}
	return text
}

var digits = regexp.MustCompile(`\d+`)

func suggestionsFor(original, enhanced string) []string {
	out := []string{}
	if float64(len(enhanced)) > float64(len(original))*1.5 {
		out = append(out, "Consider shortening the content for better readability")
	}
	if strings.ContainsAny(enhanced, "•-") {
		out = append(out, "Good use of bullet points for better ATS parsing")
	}
	if digits.MatchString(enhanced) && !digits.MatchString(original) {
		out = append(out, "Great addition of quantifiable metrics")
	}
	return out
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
