package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResume = `{
	"title": "Platform Engineer",
	"personalInfo": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
	"experience": [{"company": "Acme", "position": "Engineer", "startDate": "2020-01-01", "current": true}],
	"skills": [{"category": "Languages", "skills": ["Python", "Go"]}],
	"template": "modern"
}`

func TestValidateResumeJSON_Valid(t *testing.T) {
	assert.NoError(t, ValidateResumeJSON([]byte(validResume)))
}

func TestValidateResumeJSON_MissingPersonalInfo(t *testing.T) {
	err := ValidateResumeJSON([]byte(`{"title": "x"}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateResumeJSON_BadEmail(t *testing.T) {
	doc := `{"title": "x", "personalInfo": {"firstName": "A", "lastName": "B", "email": "nope"}}`
	err := ValidateResumeJSON([]byte(doc))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "personalInfo.email", validationErr.Errors[0].Field)
}

func TestValidateResumeJSON_ProficiencyEnum(t *testing.T) {
	doc := `{"title": "x", "personalInfo": {"firstName": "A", "lastName": "B", "email": "a@b.co"},
		"languages": [{"language": "French", "proficiency": "Fluent"}]}`
	err := ValidateResumeJSON([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "languages.0.proficiency")
}

func TestValidateResumeJSON_Malformed(t *testing.T) {
	err := ValidateResumeJSON([]byte(`{"title": `))
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.False(t, ok)
}

func TestValidateResumeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(validResume), 0o644))

	data, err := ValidateResumeFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, validResume, string(data))

	_, err = ValidateResumeFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	loadErr, ok := err.(*SchemaLoadError)
	require.True(t, ok)
	assert.Contains(t, loadErr.Error(), "(string schema)")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "title", Message: "is required"}}}
	assert.Equal(t, "validation failed:\n  1. title: is required\n", err.Error())
}
