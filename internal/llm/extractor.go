package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON object a prompt asks the model to return.
type OutputSchema struct {
	Name        string        // schema name, e.g. "ATSReport"
	Description string        // task preamble
	Fields      []SchemaField // expected output fields
}

// SchemaField defines a single field in the output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // type hint, e.g. `"string"`, `["string"]`, `0`
	Description string
	Required    bool
}

// BuildJSONPrompt appends the output contract for schema to body.
func BuildJSONPrompt(schema OutputSchema, body string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\nNo markdown, no explanation, no code blocks.\n")
	return sb.String()
}

// ATSReportSchema is the output contract for resume compatibility scoring.
func ATSReportSchema() OutputSchema {
	return OutputSchema{
		Name:        "ATSReport",
		Description: "Analyze this resume for applicant tracking system compatibility and score it from 0 to 100.",
		Fields: []SchemaField{
			{Name: "score", Type: "0", Description: "integer 0-100", Required: true},
			{Name: "strengths", Type: `["string"]`, Description: "positive aspects", Required: true},
			{Name: "weaknesses", Type: `["string"]`, Description: "areas for improvement", Required: true},
			{Name: "suggestions", Type: `["string"]`, Description: "specific recommendations", Required: true},
		},
	}
}

// KeywordSchema is the output contract for job-description keyword extraction.
func KeywordSchema() OutputSchema {
	return OutputSchema{
		Name:        "KeywordSuggestions",
		Description: "Analyze this job description and suggest relevant keywords for resume optimization.",
		Fields: []SchemaField{
			{Name: "technical", Type: `["string"]`, Description: "technical skills mentioned", Required: true},
			{Name: "soft", Type: `["string"]`, Description: "soft skills mentioned", Required: true},
			{Name: "industry", Type: `["string"]`, Description: "industry-specific terms", Required: true},
			{Name: "action_verbs", Type: `["string"]`, Description: "action verbs used", Required: true},
			{Name: "missing_skills", Type: `["string"]`, Description: "skills the candidate lacks", Required: true},
		},
	}
}
