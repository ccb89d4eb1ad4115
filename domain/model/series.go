package model

import "time"

// SeriesStatus tracks whether a series is currently producing uploads.
type SeriesStatus string

const (
	SeriesActive    SeriesStatus = "active"
	SeriesUpcoming  SeriesStatus = "upcoming"
	SeriesCompleted SeriesStatus = "completed"
	SeriesPaused    SeriesStatus = "paused"
)

// UploadSlot is one weekly recurring slot: a weekday name plus a 24-hour
// "HH:MM" time. A slot missing either field is inert and skipped during
// projection.
type UploadSlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// Valid reports whether the slot carries both a recognized weekday and a
// time string.
func (s UploadSlot) Valid() bool {
	if s.Time == "" {
		return false
	}
	_, ok := WeekdayIndex(s.Day)
	return ok
}

// Series is a content series with weekly recurring upload schedules, one
// slot list per content kind.
type Series struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ChannelID   string       `json:"channel_id"`
	ChannelName string       `json:"channel_name"`
	TeamName    string       `json:"team_name"`
	EpisodeSlots []UploadSlot `json:"episode_slots"`
	TrailerSlots []UploadSlot `json:"trailer_slots"`
	Status      SeriesStatus `json:"status"`
	PlaylistID  string       `json:"playlist_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// SlotsFor returns the slot list for the given content kind.
func (s *Series) SlotsFor(kind ContentKind) []UploadSlot {
	if kind == ContentTrailer {
		return s.TrailerSlots
	}
	return s.EpisodeSlots
}

// WeekdayIndex maps a weekday name to time.Weekday. The second return is
// false for anything that is not one of the seven names.
func WeekdayIndex(day string) (time.Weekday, bool) {
	switch day {
	case "Sunday":
		return time.Sunday, true
	case "Monday":
		return time.Monday, true
	case "Tuesday":
		return time.Tuesday, true
	case "Wednesday":
		return time.Wednesday, true
	case "Thursday":
		return time.Thursday, true
	case "Friday":
		return time.Friday, true
	case "Saturday":
		return time.Saturday, true
	}
	return 0, false
}
