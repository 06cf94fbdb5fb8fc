package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeSchema_ValidJSON(t *testing.T) {
	var schemaObj map[string]interface{}
	require.NoError(t, json.Unmarshal(Resume, &schemaObj))

	_, hasSchema := schemaObj["$schema"]
	_, hasProps := schemaObj["properties"]
	assert.True(t, hasSchema)
	assert.True(t, hasProps)
}

func TestResumeSchema_RequiresPersonalInfo(t *testing.T) {
	var schemaObj struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(Resume, &schemaObj))
	assert.Contains(t, schemaObj.Required, "personalInfo")
	assert.Contains(t, schemaObj.Required, "title")
}
