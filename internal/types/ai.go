package types

// EnhanceRequest asks the AI collaborator to rewrite one piece of resume text.
type EnhanceRequest struct {
	Content  string `json:"content" validate:"required"`
	Section  string `json:"section" validate:"required"`
	JobTitle string `json:"jobTitle,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// EnhanceResult is the rewritten text plus heuristic review notes.
type EnhanceResult struct {
	Original    string   `json:"original"`
	Enhanced    string   `json:"enhanced"`
	Suggestions []string `json:"suggestions"`
}

// SummaryRequest carries the material a professional summary is generated from.
type SummaryRequest struct {
	Experience []Experience `json:"experience" validate:"required"`
	Skills     []SkillGroup `json:"skills" validate:"required"`
	JobTitle   string       `json:"jobTitle,omitempty"`
	Industry   string       `json:"industry,omitempty"`
}

// SummaryResult holds a generated summary.
type SummaryResult struct {
	Summary string `json:"summary"`
}

// ATSReport is the compatibility analysis of a resume. Score is 0..100.
type ATSReport struct {
	Score       int      `json:"score" validate:"min=0,max=100"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// KeywordRequest asks for keywords drawn from a job description.
type KeywordRequest struct {
	JobDescription string   `json:"jobDescription" validate:"required"`
	CurrentSkills  []string `json:"currentSkills,omitempty"`
}

// KeywordSuggestions groups keywords by category.
type KeywordSuggestions struct {
	Technical     []string `json:"technical"`
	Soft          []string `json:"soft"`
	Industry      []string `json:"industry"`
	ActionVerbs   []string `json:"action_verbs"`
	MissingSkills []string `json:"missing_skills"`
}
