package domain

import "time"

// User is an application login (office staff / payroll clerk). User identity
// only reaches the engine as the audit created_by value on writes.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt; empty for OAuth-only users
	AuthProvider string `json:"authProvider,omitempty"`
	ProviderID   string `json:"-"` // Subject from the external provider
	IsDeleted    bool   `json:"-"`
	AuditFields

	// Refresh token state (hash only; the raw token never persists).
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the subset of the Google userinfo payload the auth flow
// consumes.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
