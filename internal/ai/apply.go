package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNoSuchField is returned for a Target that addresses no text.
var ErrNoSuchField = errors.New("no enhanceable field")

// Target addresses one editable text field of a resume.
type Target struct {
	Section string // summary, experience, education, projects
	Index   int    // entry index; ignored for summary
}

// field returns a pointer to the addressed text.
func (t Target) field(r *types.Resume) (*string, error) {
	outOfRange := fmt.Errorf("%w: %s entry %d does not exist", ErrNoSuchField, t.Section, t.Index)
	switch t.Section {
	case "summary":
		return &r.PersonalInfo.Summary, nil
	case "experience":
		if t.Index < 0 || t.Index >= len(r.Experience) {
			return nil, outOfRange
		}
		return &r.Experience[t.Index].Description, nil
	case "education":
		if t.Index < 0 || t.Index >= len(r.Education) {
			return nil, outOfRange
		}
		return &r.Education[t.Index].Description, nil
	case "projects":
		if t.Index < 0 || t.Index >= len(r.Projects) {
			return nil, outOfRange
		}
		return &r.Projects[t.Index].Description, nil
	default:
		return nil, fmt.Errorf("%w: section %q", ErrNoSuchField, t.Section)
	}
}

// ApplyEnhancement enhances the addressed field and writes the result into
// r. On any failure r is left untouched.
func (s *Service) ApplyEnhancement(ctx context.Context, r *types.Resume, t Target) (*types.EnhanceResult, error) {
	field, err := t.field(r)
	if err != nil {
		return nil, err
	}
	res, err := s.Enhance(ctx, types.EnhanceRequest{
		Content:  *field,
		Section:  t.Section,
		JobTitle: r.PersonalInfo.JobTitle,
	})
	if err != nil {
		return nil, err
	}

	*field = res.Enhanced
	if r.AIEnhancements == nil {
		r.AIEnhancements = &types.AIEnhancements{}
	}
	r.AIEnhancements.LastEnhanced = s.now().UTC().Format(time.RFC3339)
	r.AIEnhancements.Suggestions = append([]string(nil), res.Suggestions...)
	return res, nil
}

// RecordScore stores the report's score on r for display.
func RecordScore(r *types.Resume, report *types.ATSReport) {
	if r == nil || report == nil {
		return
	}
	if r.AIEnhancements == nil {
		r.AIEnhancements = &types.AIEnhancements{}
	}
	score := report.Score
	r.AIEnhancements.ATSScore = &score
}
