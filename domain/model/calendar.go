package model

import (
	"fmt"
	"time"
)

// Occurrence is a single projected upload slot inside a concrete window.
// Occurrences are derived on every calendar request and never persisted.
type Occurrence struct {
	SeriesID    int64       `json:"series_id"`
	SeriesName  string      `json:"series_name"`
	TeamName    string      `json:"team_name"`
	ChannelName string      `json:"channel_name"`
	Kind        ContentKind `json:"kind"`
	At          time.Time   `json:"at"`
}

// EventKind discriminates the two calendar event variants.
type EventKind string

const (
	// EventVideo is a realized upload backed by a tracked video record.
	EventVideo EventKind = "video"
	// EventPlanned is a projected future slot from a series schedule.
	EventPlanned EventKind = "planned"
)

// VideoEventDetails carries the fields only realized events have.
type VideoEventDetails struct {
	VideoID      string      `json:"video_id"`
	Status       VideoStatus `json:"status"`
	ViewCount    int64       `json:"view_count"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
}

// CalendarEvent is one entry in the merged feed. The variant is fixed at
// construction time: video events always carry Video details, planned
// events never do.
type CalendarEvent struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Start       time.Time          `json:"start"`
	Kind        EventKind          `json:"kind"`
	ContentKind ContentKind        `json:"content_kind"`
	SeriesID    int64              `json:"series_id"`
	SeriesName  string             `json:"series_name,omitempty"`
	TeamName    string             `json:"team_name,omitempty"`
	ChannelName string             `json:"channel_name,omitempty"`
	Video       *VideoEventDetails `json:"video,omitempty"`
}

// NewVideoEvent builds the realized variant from a tracked video. start is
// passed explicitly because the caller has already resolved which of the
// video's timestamps anchors it on the calendar.
func NewVideoEvent(v *Video, seriesName, teamName, channelName string, start time.Time) CalendarEvent {
	return CalendarEvent{
		ID:          fmt.Sprintf("video-%d", v.ID),
		Title:       v.Title,
		Start:       start,
		Kind:        EventVideo,
		ContentKind: v.ContentKind,
		SeriesID:    v.SeriesID,
		SeriesName:  seriesName,
		TeamName:    teamName,
		ChannelName: channelName,
		Video: &VideoEventDetails{
			VideoID:      v.VideoID,
			Status:       v.Status,
			ViewCount:    v.ViewCount,
			LikeCount:    v.LikeCount,
			CommentCount: v.CommentCount,
			ThumbnailURL: v.ThumbnailURL,
		},
	}
}

// NewPlannedEvent builds the projected variant from an occurrence.
func NewPlannedEvent(o Occurrence) CalendarEvent {
	return CalendarEvent{
		ID:          fmt.Sprintf("%s-%d-%s-%d", o.Kind, o.SeriesID, o.At.Weekday(), o.At.Unix()),
		Title:       fmt.Sprintf("%s - %s (Planned)", o.SeriesName, titleFor(o.Kind)),
		Start:       o.At,
		Kind:        EventPlanned,
		ContentKind: o.Kind,
		SeriesID:    o.SeriesID,
		SeriesName:  o.SeriesName,
		TeamName:    o.TeamName,
		ChannelName: o.ChannelName,
	}
}

func titleFor(kind ContentKind) string {
	if kind == ContentTrailer {
		return "Trailer"
	}
	return "Episode"
}
