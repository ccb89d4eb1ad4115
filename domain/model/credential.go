package model

import "time"

// Credential is the single delegated-access credential for the YouTube
// integration. There is at most one row; a new OAuth handshake replaces it
// entirely.
type Credential struct {
	ID           int64     `json:"id"`
	Provider     string    `json:"provider"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProviderYouTube is the only provider currently integrated.
const ProviderYouTube = "youtube"

// Usable reports whether the credential can ever yield a valid access
// token. A credential without a refresh token is dead weight and must be
// purged rather than used.
func (c *Credential) Usable() bool {
	return c != nil && c.RefreshToken != ""
}

// FreshFor reports whether the access token is still valid for at least d
// beyond now. Callers refresh when this is false.
func (c *Credential) FreshFor(d time.Duration, now time.Time) bool {
	return c.ExpiresAt.After(now.Add(d))
}
