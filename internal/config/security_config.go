package config

import "time"

type SecurityConfig interface {
	GetJWTSecret() string
	GetBcryptCost() int
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetEnableRateLimiting() bool
	GetRateLimitPerMinute() int
}

type Security struct {
	jwtSecret          string
	bcryptCost         int
	accessTokenTTL     time.Duration
	refreshTokenTTL    time.Duration
	rateLimitEnabled   bool
	rateLimitPerMinute int
}

var _ SecurityConfig = Security{}

func defaultSecurity() Security {
	return Security{
		bcryptCost:         10,
		accessTokenTTL:     30 * time.Minute,
		refreshTokenTTL:    24 * time.Hour,
		rateLimitEnabled:   true,
		rateLimitPerMinute: 20,
	}
}

func (s Security) GetJWTSecret() string {
	return s.jwtSecret
}

func (s Security) GetBcryptCost() int {
	return s.bcryptCost
}

func (s Security) GetAccessTokenExpiry() time.Duration {
	return s.accessTokenTTL
}

func (s Security) GetRefreshTokenExpiry() time.Duration {
	return s.refreshTokenTTL
}

func (s Security) GetEnableRateLimiting() bool {
	return s.rateLimitEnabled
}

// GetRateLimitPerMinute applies per client IP to the login and register routes
func (s Security) GetRateLimitPerMinute() int {
	return s.rateLimitPerMinute
}
