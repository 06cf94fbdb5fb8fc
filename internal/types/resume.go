// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resume is the canonical representation of one resume as produced by the
// form UI and persistence layer. Renderers read it and never mutate it.
type Resume struct {
	Title          string          `json:"title" validate:"required"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience,omitempty" validate:"dive"`
	Education      []Education     `json:"education,omitempty" validate:"dive"`
	Skills         []SkillGroup    `json:"skills,omitempty" validate:"dive"`
	Projects       []Project       `json:"projects,omitempty" validate:"dive"`
	Certifications []Certification `json:"certifications,omitempty" validate:"dive"`
	Achievements   []Achievement   `json:"achievements,omitempty" validate:"dive"`
	Languages      []Language      `json:"languages,omitempty" validate:"dive"`
	Template       string          `json:"template,omitempty"`
	Settings       Settings        `json:"settings"`
	AIEnhancements *AIEnhancements `json:"aiEnhancements,omitempty"`
	IsPublic       bool            `json:"isPublic,omitempty"`
	ShareToken     string          `json:"shareToken,omitempty"`
}

// PersonalInfo holds identity, contact links and the free-text summary.
type PersonalInfo struct {
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	JobTitle  string   `json:"jobTitle,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Address   *Address `json:"address,omitempty"`
	LinkedIn  string   `json:"linkedin,omitempty"`
	GitHub    string   `json:"github,omitempty"`
	Portfolio string   `json:"portfolio,omitempty"`
	Summary   string   `json:"summary,omitempty"`
}

// Address is a postal address; every part is optional.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Experience is one work history entry.
type Experience struct {
	Company      string   `json:"company" validate:"required"`
	Position     string   `json:"position" validate:"required"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate" validate:"required,resumedate"`
	EndDate      string   `json:"endDate,omitempty" validate:"omitempty,resumedate"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree" validate:"required"`
	Field       string `json:"field,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate" validate:"required,resumedate"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,resumedate"`
	Current     bool   `json:"current,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// SkillGroup is a named category of skills. Skills have no proficiency.
type SkillGroup struct {
	Category string   `json:"category" validate:"required"`
	Skills   []string `json:"skills"`
}

// Project is a personal or professional project.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	StartDate    string   `json:"startDate" validate:"required,resumedate"`
	EndDate      string   `json:"endDate,omitempty" validate:"omitempty,resumedate"`
	Current      bool     `json:"current,omitempty"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
}

// Certification is a credential issued by a third party.
type Certification struct {
	Name         string `json:"name" validate:"required"`
	Issuer       string `json:"issuer" validate:"required"`
	Date         string `json:"date" validate:"required,resumedate"`
	ExpiryDate   string `json:"expiryDate,omitempty" validate:"omitempty,resumedate"`
	CredentialID string `json:"credentialId,omitempty"`
	URL          string `json:"url,omitempty"`
}

// Achievement is an award or recognition.
type Achievement struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date" validate:"required,resumedate"`
	Category    string `json:"category,omitempty"`
}

// Proficiency levels accepted for Language entries.
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyNative       = "Native"
)

// Language is a spoken language with a fixed proficiency level.
type Language struct {
	Language    string `json:"language" validate:"required"`
	Proficiency string `json:"proficiency" validate:"required,oneof=Beginner Intermediate Advanced Native"`
}

// Settings are advisory display hints. Renderers may use or ignore them.
type Settings struct {
	ShowPhoto   bool   `json:"showPhoto,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	FontSize    string `json:"fontSize,omitempty"`    // small, medium, large
	ColorScheme string `json:"colorScheme,omitempty"` // advisory only
	Spacing     string `json:"spacing,omitempty"`     // compact, normal, relaxed
}

// AIEnhancements is display-only metadata written by the AI collaborator.
type AIEnhancements struct {
	LastEnhanced string   `json:"lastEnhanced,omitempty"`
	ATSScore     *int     `json:"atsScore,omitempty" validate:"omitempty,min=0,max=100"`
	Suggestions  []string `json:"suggestions,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// FullName returns "First Last" with surrounding whitespace removed.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Clone returns a deep copy so callers can modify a resume without touching
// the original. Slices of strings are copied element by element.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	out := *r
	if r.PersonalInfo.Address != nil {
		addr := *r.PersonalInfo.Address
		out.PersonalInfo.Address = &addr
	}
	out.Experience = make([]Experience, len(r.Experience))
	for i, e := range r.Experience {
		e.Achievements = append([]string(nil), e.Achievements...)
		out.Experience[i] = e
	}
	out.Education = append([]Education(nil), r.Education...)
	out.Skills = make([]SkillGroup, len(r.Skills))
	for i, s := range r.Skills {
		s.Skills = append([]string(nil), s.Skills...)
		out.Skills[i] = s
	}
	out.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		out.Projects[i] = p
	}
	out.Certifications = append([]Certification(nil), r.Certifications...)
	out.Achievements = append([]Achievement(nil), r.Achievements...)
	out.Languages = append([]Language(nil), r.Languages...)
	if r.AIEnhancements != nil {
		ai := *r.AIEnhancements
		if ai.ATSScore != nil {
			score := *ai.ATSScore
			ai.ATSScore = &score
		}
		ai.Suggestions = append([]string(nil), ai.Suggestions...)
		ai.Keywords = append([]string(nil), ai.Keywords...)
		out.AIEnhancements = &ai
	}
	return &out
}
