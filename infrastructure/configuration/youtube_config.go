package configuration

import (
	"fmt"
	"os"
	"strings"
)

// YouTubeConfig carries everything the YouTube clients and the OAuth flow
// need, resolved from JSON config with environment variable fallback.
type YouTubeConfig struct {
	APIKey       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	ChannelID    string
}

// GetYouTubeConfig resolves the YouTube configuration. The API key and the
// OAuth client are independent: key-only deployments can still look up
// public videos, and the OAuth path activates once a credential is stored.
func GetYouTubeConfig() (*YouTubeConfig, error) {
	port := C.App.Port
	if port == 0 {
		port = 10001
	}
	defaultRedirect := fmt.Sprintf("http://localhost:%d/auth/youtube/callback", port)

	config := &YouTubeConfig{
		APIKey:       getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
		ClientID:     getConfigValue(C.YouTube.ClientID, "GOOGLE_CLIENT_ID", ""),
		ClientSecret: getConfigValue(C.YouTube.ClientSecret, "GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getConfigValue(C.YouTube.RedirectURI, "GOOGLE_REDIRECT_URI", defaultRedirect),
		ChannelID:    getConfigValue(C.YouTube.ChannelID, "YOUTUBE_CHANNEL_ID", ""),
	}
	return config, nil
}

// getConfigValue gets value from environment first, then config, then default.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
