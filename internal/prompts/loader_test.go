package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(AI, "enhance-system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "ATS optimization specialist")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(AI, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
}

func TestLookup_MissingIsEmpty(t *testing.T) {
	assert.Empty(t, Lookup(AI, "focus-hobbies"))
	assert.NotEmpty(t, Lookup(AI, "focus-experience"))
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, welcome to {{.Company}}! {{.Other}}", map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	})
	assert.Equal(t, "Hello Alice, welcome to Acme Corp! {{.Other}}", out)
}

func TestRender_EnhancePrompt(t *testing.T) {
	out, err := Render(AI, "enhance-user", map[string]string{
		"Section": "experience",
		"Context": "\nTarget Job Title: Engineer",
		"Focus":   Lookup(AI, "focus-experience"),
		"Content": "Built things",
	})
	require.NoError(t, err)
	assert.Equal(t, "Enhance the following experience content for a resume:\nTarget Job Title: Engineer"+
		"\nFocus on: Action verbs, quantifiable achievements, specific responsibilities, and impact."+
		"\n\nOriginal Content:\nBuilt things\n\nEnhanced Content:", out)
}

func TestKeys_AllTasksPresent(t *testing.T) {
	keys, err := Keys(AI)
	require.NoError(t, err)
	for _, k := range []string{"enhance-system", "enhance-user", "summary-system", "summary-user",
		"ats-system", "ats-user", "keywords-system", "keywords-user"} {
		assert.Contains(t, keys, k)
	}
	assert.IsIncreasing(t, keys)
}
