package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-character video identifier out of any of the
// usual YouTube URL shapes (watch, youtu.be, shorts, embed, live) or
// accepts a bare identifier. Returns "" when nothing parses.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if videoIDPattern.MatchString(raw) {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		switch {
		case u.Path == "/watch":
			candidate = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"):
			candidate = strings.TrimPrefix(u.Path, "/shorts/")
		case strings.HasPrefix(u.Path, "/embed/"):
			candidate = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/live/"):
			candidate = strings.TrimPrefix(u.Path, "/live/")
		}
	}
	candidate = strings.SplitN(strings.Trim(candidate, "/"), "/", 2)[0]
	if videoIDPattern.MatchString(candidate) {
		return candidate
	}
	return ""
}
