package templates

import "github.com/jonathan/resume-builder/internal/types"

// SampleResume returns the data used for template previews and thumbnails.
// Each call returns a fresh value.
func SampleResume() *types.Resume {
	return &types.Resume{
		Title: "Sample Resume",
		PersonalInfo: types.PersonalInfo{
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john.doe@email.com",
			JobTitle:  "Senior Software Engineer",
			Phone:     "+1 (555) 123-4567",
			Address:   &types.Address{City: "San Francisco", State: "CA"},
			LinkedIn:  "linkedin.com/in/johndoe",
			GitHub:    "github.com/johndoe",
			Portfolio: "johndoe.com",
			Summary: "Experienced software engineer with 5+ years of expertise in full-stack development, " +
				"cloud architecture, and team leadership. Passionate about building scalable solutions and mentoring junior developers.",
		},
		Experience: []types.Experience{
			{
				Company:     "Tech Solutions Inc.",
				Position:    "Senior Software Engineer",
				Location:    "San Francisco, CA",
				StartDate:   "2022-01-01",
				Current:     true,
				Description: "Lead development of microservices architecture serving 1M+ users",
				Achievements: []string{
					"Reduced API latency by 40% through caching and query optimization",
					"Mentored a team of 5 junior developers",
				},
			},
			{
				Company:     "StartupXYZ",
				Position:    "Full Stack Developer",
				Location:    "San Francisco, CA",
				StartDate:   "2020-06-01",
				EndDate:     "2021-12-31",
				Description: "Developed and maintained web applications using React and Node.js",
				Achievements: []string{
					"Built the payment flow used by 20k monthly customers",
				},
			},
		},
		Education: []types.Education{
			{
				Institution: "University of California, Berkeley",
				Degree:      "Bachelor of Science",
				Field:       "Computer Science",
				Location:    "Berkeley, CA",
				StartDate:   "2016-09-01",
				EndDate:     "2020-05-31",
				GPA:         "3.8",
			},
		},
		Skills: []types.SkillGroup{
			{Category: "Programming Languages", Skills: []string{"JavaScript", "Python", "Java", "TypeScript"}},
			{Category: "Frameworks & Libraries", Skills: []string{"React", "Node.js", "Express", "Django"}},
			{Category: "Tools & Technologies", Skills: []string{"Git", "Docker", "AWS", "MongoDB"}},
		},
		Projects: []types.Project{
			{
				Name:         "E-commerce Platform",
				Description:  "Full-stack e-commerce solution with payment integration",
				Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
				StartDate:    "2021-01-01",
				EndDate:      "2021-06-30",
				URL:          "https://example.com",
				GitHub:       "https://github.com/johndoe/ecommerce",
			},
		},
		Certifications: []types.Certification{
			{Name: "AWS Certified Solutions Architect", Issuer: "Amazon Web Services", Date: "2023-03-01", CredentialID: "AWS-123456"},
		},
		Achievements: []types.Achievement{
			{Title: "Hackathon Winner", Description: "First place at the city-wide fintech hackathon", Date: "2022-10-01", Category: "Competition"},
		},
		Languages: []types.Language{
			{Language: "English", Proficiency: types.ProficiencyNative},
			{Language: "Spanish", Proficiency: types.ProficiencyIntermediate},
		},
		Template: DefaultID,
	}
}
