package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeRecord is a stored resume.
type ResumeRecord struct {
	ID         uuid.UUID     `json:"id"`
	Resume     *types.Resume `json:"resume"`
	IsPublic   bool          `json:"isPublic"`
	ShareToken string        `json:"-"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// ResumeSummary is the listing view of a resume.
type ResumeSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	IsPublic  bool      `json:"isPublic"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFilters holds optional filters for listing resumes
type ListFilters struct {
	Template string
	Limit    int
}

// DefaultListLimit caps listings when no limit is given.
const DefaultListLimit = 50

// CopyTitle is the title given to a duplicated resume.
func CopyTitle(title string) string {
	return title + " (Copy)"
}
