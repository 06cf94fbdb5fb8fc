package config

import (
	"fmt"
	"time"
)

// DefaultShareExpirationHours is one week.
const DefaultShareExpirationHours = 168

// ShareConfig holds the signing settings for share links.
type ShareConfig struct {
	Secret          string
	ExpirationHours int
}

// Share derives the share-link settings. A secret is required; sharing is
// disabled without one.
func (c *Config) Share() (*ShareConfig, error) {
	sc := &ShareConfig{Secret: c.ShareSecret, ExpirationHours: c.ShareExpirationHours}
	if sc.ExpirationHours == 0 {
		sc.ExpirationHours = DefaultShareExpirationHours
	}
	if err := sc.normalize(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Expiration is the lifetime of a share token.
func (s *ShareConfig) Expiration() time.Duration {
	return time.Duration(s.ExpirationHours) * time.Hour
}

func (s *ShareConfig) normalize() error {
	if s.Secret == "" {
		return fmt.Errorf("SHARE_SECRET is required but not set")
	}
	if len(s.Secret) < 16 {
		return fmt.Errorf("SHARE_SECRET must be at least 16 characters")
	}
	if s.ExpirationHours < 1 {
		return fmt.Errorf("SHARE_EXPIRATION_HOURS must be at least 1 hour, got: %d", s.ExpirationHours)
	}
	return nil
}
