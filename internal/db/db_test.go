package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestListQuery_Defaults(t *testing.T) {
	query, args := listQuery(ListFilters{})

	assert.Equal(t, `SELECT id, title, template, is_public, updated_at FROM resumes WHERE 1=1 ORDER BY updated_at DESC LIMIT $1`, query)
	assert.Equal(t, []any{DefaultListLimit}, args)
}

func TestListQuery_TemplateFilter(t *testing.T) {
	query, args := listQuery(ListFilters{Template: "classic", Limit: 5})

	assert.Contains(t, query, "AND template = $1")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{"classic", 5}, args)
}

func TestCopyTitle(t *testing.T) {
	assert.Equal(t, "Backend CV (Copy)", CopyTitle("Backend CV"))
}

func TestEncodeResume_StripsSharingState(t *testing.T) {
	r := &types.Resume{Title: "CV", IsPublic: true, ShareToken: "tok"}

	data, err := encodeResume(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "shareToken")
	assert.NotContains(t, string(data), "isPublic")
	assert.True(t, r.IsPublic, "caller's resume is not modified")
}

func TestTemplateOf(t *testing.T) {
	assert.Equal(t, "modern", templateOf(&types.Resume{}))
	assert.Equal(t, "classic", templateOf(&types.Resume{Template: "classic"}))
}
