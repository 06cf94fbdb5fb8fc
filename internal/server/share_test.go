package server

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShareService(secret string, hours int) *ShareService {
	return NewShareService(&config.ShareConfig{Secret: secret, ExpirationHours: hours})
}

func TestShareService_RoundTrip(t *testing.T) {
	svc := newTestShareService("a-very-long-share-secret", 24)
	id := uuid.New()

	token, err := svc.GenerateToken(id)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ResumeID)
	assert.Equal(t, id.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestShareService_TokensAreUnique(t *testing.T) {
	svc := newTestShareService("a-very-long-share-secret", 24)
	id := uuid.New()
	a, err := svc.GenerateToken(id)
	require.NoError(t, err)
	b, err := svc.GenerateToken(id)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestShareService_Expired(t *testing.T) {
	svc := newTestShareService("a-very-long-share-secret", 1)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	var invalid *ErrShareTokenInvalid
	require.True(t, errors.As(err, &invalid))
}

func TestShareService_Rejections(t *testing.T) {
	svc := newTestShareService("a-very-long-share-secret", 24)
	other := newTestShareService("another-long-share-secret", 24)

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"wrong secret": token,
		"tampered":     token + "x",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(tok)
			var invalid *ErrShareTokenInvalid
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestShareService_ExpiresAt(t *testing.T) {
	svc := newTestShareService("a-very-long-share-secret", 48)
	now := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	assert.Equal(t, now.Add(48*time.Hour), svc.ExpiresAt())
}
