package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
)

// ShareClaims identify the resume a share link points to.
type ShareClaims struct {
	ResumeID uuid.UUID `json:"resume_id"`
	jwt.RegisteredClaims
}

// ShareService signs and verifies share-link tokens.
type ShareService struct {
	config *config.ShareConfig
	now    func() time.Time
}

// NewShareService creates a share service with the given configuration.
func NewShareService(cfg *config.ShareConfig) *ShareService {
	return &ShareService{config: cfg, now: time.Now}
}

// GenerateToken issues a share token for resumeID.
func (s *ShareService) GenerateToken(resumeID uuid.UUID) (string, error) {
	now := s.now()
	claims := &ShareClaims{
		ResumeID: resumeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   resumeID.String(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExpiresAt is when a token issued now stops verifying.
func (s *ShareService) ExpiresAt() time.Time {
	return s.now().Add(s.config.Expiration()).UTC().Truncate(time.Second)
}

// ValidateToken verifies a share token. Every failure is an
// *ErrShareTokenInvalid.
func (s *ShareService) ValidateToken(tokenString string) (*ShareClaims, error) {
	if tokenString == "" {
		return nil, &ErrShareTokenInvalid{Cause: errors.New("token string is empty")}
	}

	claims := &ShareClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, &ErrShareTokenInvalid{Cause: err}
	}
	if !token.Valid || claims.ResumeID == uuid.Nil || claims.Subject != claims.ResumeID.String() {
		return nil, &ErrShareTokenInvalid{Cause: errors.New("token is not valid")}
	}
	return claims, nil
}
