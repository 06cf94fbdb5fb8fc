package templates

// requiredFields are the data-model fields every template shows for a
// section when the section is present.
var requiredFields = map[string][]string{
	SectionHeader:         {"firstName", "lastName"},
	SectionContact:        {},
	SectionSummary:        {"summary"},
	SectionExperience:     {"company", "position", "startDate"},
	SectionEducation:      {"institution", "degree", "startDate"},
	SectionSkills:         {"category", "skills"},
	SectionProjects:       {"name", "startDate"},
	SectionCertifications: {"name", "issuer", "date"},
	SectionAchievements:   {"title", "date"},
	SectionLanguages:      {"language", "proficiency"},
}

// sec builds a Section, splitting fields into required and optional.
func sec(key, heading string, fields ...string) Section {
	req := requiredFields[key]
	s := Section{Key: key, Heading: heading, RequiredFields: append([]string{}, req...), OptionalFields: []string{}}
	for _, f := range fields {
		required := false
		for _, r := range req {
			if r == f {
				required = true
				break
			}
		}
		if !required {
			s.OptionalFields = append(s.OptionalFields, f)
		}
	}
	return s
}

var (
	allContact     = []string{"jobTitle", "email", "phone", "location", "linkedin", "github", "portfolio"}
	allExperience  = []string{"location", "endDate", "current", "description", "achievements"}
	allEducation   = []string{"field", "location", "endDate", "current", "gpa", "description"}
	allProjects    = []string{"description", "technologies", "endDate", "current", "url", "github"}
	allCerts       = []string{"expiryDate", "credentialId", "url"}
	allAchievement = []string{"description", "category"}
)

var catalog = []Descriptor{
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "Clean and contemporary design with bold typography",
		Preview:     "/templates/modern-preview.png",
		Features:    []string{"Clean typography", "Color-coded sections", "Professional layout", "ATS-friendly format"},
		Colors:      []string{"#2563eb", "#1e40af", "#1e3a8a"},
		Category:    "professional",
		Sections: []Section{
			sec(SectionHeader, "Header", allContact...),
			sec(SectionSummary, "Professional Summary"),
			sec(SectionExperience, "Work Experience", allExperience...),
			sec(SectionEducation, "Education", allEducation...),
			sec(SectionSkills, "Skills"),
			sec(SectionProjects, "Projects", "description", "technologies", "endDate", "current", "url"),
			sec(SectionCertifications, "Certifications", allCerts...),
			sec(SectionAchievements, "Achievements", allAchievement...),
			sec(SectionLanguages, "Languages"),
		},
		Layout: Layout{
			Variant: VariantCentered,
			Main: []string{
				SectionSummary, SectionExperience, SectionEducation, SectionSkills,
				SectionProjects, SectionCertifications, SectionAchievements, SectionLanguages,
			},
		},
		Theme: newTheme("#2563eb", "#1e40af", "#3b82f6", 24, 14, 10),
	},
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "Traditional and timeless design for conservative industries",
		Preview:     "/templates/classic-preview.png",
		Features:    []string{"Traditional layout", "Conservative styling", "Clear hierarchy", "Professional appearance"},
		Colors:      []string{"#374151", "#1f2937", "#111827"},
		Category:    "traditional",
		Sections: []Section{
			sec(SectionHeader, "Header", "jobTitle", "email", "phone", "location"),
			sec(SectionSummary, "Objective"),
			sec(SectionExperience, "Professional Experience", "location", "endDate", "current", "description"),
			sec(SectionEducation, "Education", "field", "location", "endDate", "current"),
			sec(SectionSkills, "Technical Skills"),
		},
		Layout: Layout{
			Variant: VariantSingleColumn,
			Main:    []string{SectionSummary, SectionExperience, SectionEducation, SectionSkills},
		},
		Theme: newTheme("#374151", "#1f2937", "#6b7280", 22, 12, 10),
	},
	{
		ID:          "elegant",
		Name:        "Elegant",
		Description: "Sophisticated design with subtle styling and premium feel",
		Preview:     "/templates/elegant-preview.png",
		Features:    []string{"Sophisticated design", "Subtle accents", "Premium feel", "Executive style"},
		Colors:      []string{"#7c3aed", "#6d28d9", "#5b21b6"},
		Category:    "executive",
		Sections: []Section{
			sec(SectionHeader, "Header", "jobTitle", "email", "phone", "location", "linkedin"),
			sec(SectionSummary, "Executive Summary"),
			sec(SectionExperience, "Executive Experience", allExperience...),
			sec(SectionEducation, "Education & Credentials", "field", "location", "endDate", "current", "gpa"),
			sec(SectionSkills, "Core Competencies"),
			sec(SectionCertifications, "Certifications", "credentialId"),
		},
		Layout: Layout{
			Variant: VariantCentered,
			Main:    []string{SectionSummary, SectionExperience, SectionEducation, SectionSkills, SectionCertifications},
		},
		Theme: newTheme("#7c3aed", "#6d28d9", "#8b5cf6", 26, 14, 10),
	},
	{
		ID:          "creative",
		Name:        "Creative",
		Description: "Bold and innovative design for creative professionals",
		Preview:     "/templates/creative-preview.png",
		Features:    []string{"Bold design elements", "Creative layout", "Visual hierarchy", "Portfolio integration"},
		Colors:      []string{"#f59e0b", "#d97706", "#b45309"},
		Category:    "creative",
		Sections: []Section{
			sec(SectionHeader, "Header", "jobTitle"),
			sec(SectionContact, "Contact", "email", "phone", "location", "portfolio", "github"),
			sec(SectionSummary, "About Me"),
			sec(SectionExperience, "Experience", allExperience...),
			sec(SectionProjects, "Featured Projects", allProjects...),
			sec(SectionEducation, "Education", "field", "location", "endDate", "current"),
			sec(SectionAchievements, "Awards & Recognition", allAchievement...),
			sec(SectionSkills, "Skills & Tools"),
			sec(SectionCertifications, "Certifications"),
		},
		Layout: Layout{
			Variant: VariantSidebarRight,
			Main:    []string{SectionSummary, SectionExperience, SectionProjects, SectionEducation, SectionAchievements},
			Sidebar: []string{SectionContact, SectionSkills, SectionCertifications},
		},
		Theme: newTheme("#f59e0b", "#d97706", "#fbbf24", 24, 14, 10),
	},
	{
		ID:          "template1",
		Name:        "AutoCV",
		Description: "Modern two-column layout with sidebar for contact info and skills",
		Preview:     "/templates/template1-preview.png",
		Features:    []string{"Two-column layout", "Sidebar design", "Clean typography", "Professional appearance"},
		Colors:      []string{"#2563eb", "#1e40af", "#1e3a8a"},
		Category:    "professional",
		Sections: []Section{
			sec(SectionHeader, "Header", "jobTitle"),
			sec(SectionContact, "Contact", "email", "phone", "location"),
			sec(SectionSkills, "Skills"),
			sec(SectionSummary, "About"),
			sec(SectionExperience, "Experience", "location", "endDate", "current", "description"),
			sec(SectionEducation, "Education", "field", "location", "endDate", "current"),
			sec(SectionProjects, "Projects", "description", "endDate", "current"),
		},
		Layout: Layout{
			Variant: VariantSidebarLeft,
			Main:    []string{SectionExperience, SectionEducation, SectionProjects},
			Sidebar: []string{SectionContact, SectionSkills, SectionSummary},
		},
		Theme: newTheme("#2563eb", "#1e40af", "#1e3a8a", 24, 14, 10),
	},
	{
		ID:          "template2",
		Name:        "Deedy Reversed",
		Description: "Reversed layout with right sidebar and left content area",
		Preview:     "/templates/template2-preview.png",
		Features:    []string{"Reversed layout", "Right sidebar", "Academic style", "Clean design"},
		Colors:      []string{"#374151", "#1f2937", "#111827"},
		Category:    "academic",
		Sections: []Section{
			sec(SectionHeader, "Header"),
			sec(SectionContact, "Contact", "email", "phone", "location"),
			sec(SectionSummary, "Summary"),
			sec(SectionExperience, "Experience", "location", "endDate", "current", "description"),
			sec(SectionSkills, "Skills"),
		},
		Layout: Layout{
			Variant: VariantSidebarRight,
			Main:    []string{SectionSummary, SectionExperience},
			Sidebar: []string{SectionContact, SectionSkills},
		},
		Theme: newTheme("#374151", "#1f2937", "#111827", 24, 14, 10),
	},
	{
		ID:          "template3",
		Name:        "Engineering",
		Description: "Condensed single-column layout perfect for technical resumes",
		Preview:     "/templates/template3-preview.png",
		Features:    []string{"Single column", "Condensed layout", "Technical focus", "ATS-friendly"},
		Colors:      []string{"#059669", "#047857", "#065f46"},
		Category:    "technical",
		Sections: []Section{
			sec(SectionHeader, "Header", "email", "phone", "location"),
			sec(SectionSummary, "Summary"),
			sec(SectionExperience, "Experience", "endDate", "current", "description"),
			sec(SectionEducation, "Education", "endDate", "current"),
			sec(SectionSkills, "Skills"),
		},
		Layout: Layout{
			Variant: VariantSingleColumn,
			Main:    []string{SectionSummary, SectionExperience, SectionEducation, SectionSkills},
		},
		Theme: newTheme("#059669", "#047857", "#065f46", 20, 12, 9),
	},
	{
		ID:          "template4",
		Name:        "RenderCV Classic",
		Description: "Classic theme with side accent and bold project sections",
		Preview:     "/templates/template4-preview.png",
		Features:    []string{"Classic theme", "Side accent", "Bold sections", "Professional layout"},
		Colors:      []string{"#7c3aed", "#6d28d9", "#5b21b6"},
		Category:    "traditional",
		Sections: []Section{
			sec(SectionHeader, "Header"),
			sec(SectionContact, "Contact", "email", "phone", "location"),
			sec(SectionSummary, "Summary"),
			sec(SectionProjects, "Featured Projects", "description", "endDate", "current"),
			sec(SectionExperience, "Experience", "endDate", "current", "description"),
			sec(SectionSkills, "Skills"),
		},
		Layout: Layout{
			Variant: VariantSidebarRight,
			Main:    []string{SectionSummary, SectionProjects, SectionExperience},
			Sidebar: []string{SectionContact, SectionSkills},
		},
		Theme: newTheme("#7c3aed", "#6d28d9", "#5b21b6", 24, 14, 10),
	},
	{
		ID:          "template5",
		Name:        "RenderCV Engineering",
		Description: "Engineering-focused theme with centered header and clean sections",
		Preview:     "/templates/template5-preview.png",
		Features:    []string{"Engineering focus", "Centered header", "Clean sections", "Technical layout"},
		Colors:      []string{"#dc2626", "#b91c1c", "#991b1b"},
		Category:    "engineering",
		Sections: []Section{
			sec(SectionHeader, "Header", "email", "phone", "location"),
			sec(SectionSummary, "Summary"),
			sec(SectionExperience, "Experience", "endDate", "current", "description"),
			sec(SectionEducation, "Education", "endDate", "current"),
			sec(SectionAchievements, "Achievements", "description"),
		},
		Layout: Layout{
			Variant: VariantCentered,
			Main:    []string{SectionSummary, SectionExperience, SectionEducation, SectionAchievements},
		},
		Theme: newTheme("#dc2626", "#b91c1c", "#991b1b", 24, 14, 10),
	},
}
