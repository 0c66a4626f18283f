package utils

import (
	"time"
)

// ContextKey is the type used for request-scoped context values
type ContextKey string

// Request-scoped context keys set by the handlers
const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Window constants
const (
	// DefaultStatsWindow is the default trailing window for personal stats
	DefaultStatsWindow = "7d"

	// DefaultImpactWindow is the default trailing window for campaign and
	// representative impact views
	DefaultImpactWindow = "30d"

	// MaxWindowDays caps the trailing window size accepted from clients
	MaxWindowDays = 365
)

// Cache keys (relative to the configured Redis prefix)
const (
	PlatformImpactCacheKeyPrefix = "impact:platform:"

	// PlatformImpactCacheTTL bounds staleness of the cached platform view
	PlatformImpactCacheTTL = time.Minute
)

// Referral constants
const (
	// ReferralCodeBytes is the entropy of generated referral codes. 8 random
	// bytes encode to an 11-character URL-safe code.
	ReferralCodeBytes = 8
)
