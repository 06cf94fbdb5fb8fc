package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

const resumeColumns = `id, content, is_public, COALESCE(share_token, ''), created_at, updated_at`

func scanResume(row pgx.Row) (*ResumeRecord, error) {
	var rec ResumeRecord
	var content []byte
	if err := row.Scan(&rec.ID, &content, &rec.IsPublic, &rec.ShareToken, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Resume = &types.Resume{}
	if err := json.Unmarshal(content, rec.Resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", rec.ID, err)
	}
	// Sharing state lives in columns; the document copy may be stale.
	rec.Resume.IsPublic = rec.IsPublic
	rec.Resume.ShareToken = ""
	return &rec, nil
}

func encodeResume(r *types.Resume) ([]byte, error) {
	stored := *r
	stored.IsPublic = false
	stored.ShareToken = ""
	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	return data, nil
}

func templateOf(r *types.Resume) string {
	if r.Template == "" {
		return "modern"
	}
	return r.Template
}

// CreateResume stores a new resume and returns the record.
func (db *DB) CreateResume(ctx context.Context, r *types.Resume) (*ResumeRecord, error) {
	content, err := encodeResume(r)
	if err != nil {
		return nil, err
	}
	rec, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, title, template, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resumeColumns,
		uuid.New(), r.Title, templateOf(r), content,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return rec, nil
}

// GetResume retrieves a resume by ID. A missing resume yields nil, nil.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*ResumeRecord, error) {
	rec, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return rec, nil
}

// ListResumes retrieves resumes, most recently updated first.
func (db *DB) ListResumes(ctx context.Context, filters ListFilters) ([]ResumeSummary, error) {
	query, args := listQuery(filters)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	out := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Template, &s.IsPublic, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return out, nil
}

func listQuery(filters ListFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}
	query := `SELECT id, title, template, is_public, updated_at FROM resumes WHERE 1=1`
	args := []any{}
	argNum := 1
	if filters.Template != "" {
		query += fmt.Sprintf(" AND template = $%d", argNum)
		args = append(args, filters.Template)
		argNum++
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)
	return query, args
}

// UpdateResume replaces a resume's content.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, r *types.Resume) (*ResumeRecord, error) {
	content, err := encodeResume(r)
	if err != nil {
		return nil, err
	}
	rec, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $2, template = $3, content = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, r.Title, templateOf(r), content,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return rec, nil
}

// DeleteResume removes a resume.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DuplicateResume copies a resume under a "(Copy)" title. The copy is private.
func (db *DB) DuplicateResume(ctx context.Context, id uuid.UUID) (*ResumeRecord, error) {
	src, err := db.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNotFound
	}
	dup := src.Resume.Clone()
	dup.Title = CopyTitle(dup.Title)
	dup.IsPublic = false
	return db.CreateResume(ctx, dup)
}

// SetSharing marks a resume public with token, or private when public is
// false. The token is cleared when unsharing.
func (db *DB) SetSharing(ctx context.Context, id uuid.UUID, public bool, token string) error {
	var stored any
	if public && token != "" {
		stored = token
	}
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET is_public = $2, share_token = $3, updated_at = NOW() WHERE id = $1`,
		id, public, stored,
	)
	if err != nil {
		return fmt.Errorf("failed to update sharing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
