package entity

import "time"

// User owns plans, appointments, notifications and at most one calendar
// credential. Credential columns are never serialized.
type User struct {
	ID                 string     `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	Name               string     `json:"name" db:"name"`
	GoogleAccessToken  *string    `json:"-" db:"google_access_token"`
	GoogleRefreshToken *string    `json:"-" db:"google_refresh_token"`
	GoogleTokenExpiry  *time.Time `json:"-" db:"google_token_expiry"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// Credential returns the stored token pair, or nil when either token is
// missing.
func (u *User) Credential() *Credential {
	if u == nil || u.GoogleAccessToken == nil || u.GoogleRefreshToken == nil {
		return nil
	}
	if *u.GoogleAccessToken == "" || *u.GoogleRefreshToken == "" {
		return nil
	}
	return &Credential{
		AccessToken:  *u.GoogleAccessToken,
		RefreshToken: *u.GoogleRefreshToken,
		ExpiresAt:    u.GoogleTokenExpiry,
	}
}

// Credential is a user's access/refresh token pair for the calendar provider.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// ExpiresWithin reports whether the access token is unset or expires before
// now+window.
func (c *Credential) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpiresAt == nil || c.ExpiresAt.IsZero() {
		return true
	}
	return c.ExpiresAt.Before(now.Add(window))
}

type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=255"`
}
