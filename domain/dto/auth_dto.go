package dto

import "time"

// AuthStatusResponse describes the state of the YouTube connection.
type AuthStatusResponse struct {
	Connected       bool       `json:"connected"`
	NeedsReconnect  bool       `json:"needs_reconnect"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	HasRefreshToken bool       `json:"has_refresh_token"`
	Message         string     `json:"message,omitempty"`
}
