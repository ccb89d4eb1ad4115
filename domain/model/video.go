package model

import "time"

// VideoStatus is the lifecycle state of a tracked video relative to its
// plan.
type VideoStatus string

const (
	// StatusScheduled means the video is expected to go public in the
	// future, either via a provider-side schedule or a future publish time.
	StatusScheduled VideoStatus = "scheduled"
	// StatusUploaded means the video is public and arrived on (or without) plan.
	StatusUploaded VideoStatus = "uploaded"
	// StatusDelayed means the video went public later than the operator
	// expected it to.
	StatusDelayed VideoStatus = "delayed"
)

// ContentKind distinguishes the two kinds of uploads a series produces.
type ContentKind string

const (
	ContentEpisode ContentKind = "episode"
	ContentTrailer ContentKind = "trailer"
)

// FetchSource records which lookup strategy produced a video snapshot.
type FetchSource string

const (
	FetchAPIKey FetchSource = "api-key"
	FetchOAuth  FetchSource = "oauth"
)

// Video is a tracked upload. YouTube-sourced fields are refreshed by
// re-sync; operator fields are edited through the API.
type Video struct {
	ID           int64       `json:"id"`
	VideoID      string      `json:"video_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Duration     string      `json:"duration"`
	PublishedAt  *time.Time  `json:"published_at"`
	ScheduledAt  *time.Time  `json:"scheduled_at"`
	SeriesID     int64       `json:"series_id"`
	ChannelID    string      `json:"channel_id"`
	ViewCount    int64       `json:"view_count"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	PrivacyStatus string     `json:"privacy_status"`
	ContentKind  ContentKind `json:"content_kind"`
	FetchSource  FetchSource `json:"fetch_source"`

	// Operator-maintained fields.
	ExpectedUploadAt *time.Time  `json:"expected_upload_at"`
	AdStatus         string      `json:"ad_status"`
	SEONotes         string      `json:"seo_notes"`
	Status           VideoStatus `json:"status"`

	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StartTime is the timestamp a video occupies on the calendar: the
// provider schedule wins, then the actual publish time, then the
// operator's expectation.
func (v *Video) StartTime() *time.Time {
	if v.ScheduledAt != nil {
		return v.ScheduledAt
	}
	if v.PublishedAt != nil {
		return v.PublishedAt
	}
	return v.ExpectedUploadAt
}

// ClassifyStatus derives the lifecycle status from the publish timestamps.
// It is a pure function: the status is recomputed from scratch every time
// any of its inputs changes, never patched in place.
//
// Rules, in order:
//  1. a provider-side schedule in the future -> scheduled
//  2. an actual publish time in the future -> scheduled (the provider
//     reports scheduled uploads this way too)
//  3. published in the past but later than the operator expected -> delayed
//  4. otherwise -> uploaded
func ClassifyStatus(publishedAt, scheduledAt, expectedAt *time.Time, now time.Time) VideoStatus {
	if scheduledAt != nil && scheduledAt.After(now) {
		return StatusScheduled
	}
	if publishedAt != nil && publishedAt.After(now) {
		return StatusScheduled
	}
	if publishedAt != nil && expectedAt != nil && publishedAt.After(*expectedAt) {
		return StatusDelayed
	}
	return StatusUploaded
}

// VideoSnapshot is the uniform result of a metadata lookup, independent of
// which strategy produced it.
type VideoSnapshot struct {
	VideoID       string
	Title         string
	Description   string
	ThumbnailURL  string
	Duration      string
	ChannelID     string
	PublishedAt   *time.Time
	ScheduledAt   *time.Time
	PrivacyStatus string
	UploadStatus  string
	ViewCount     int64
	LikeCount     int64
	CommentCount  int64
	Source        FetchSource
}

// Pending reports whether the snapshot describes a video that is not yet
// publicly visible. A private video with no schedule is still treated as
// pending rather than an error; it usually means "scheduled but the
// provider hides the date".
func (s *VideoSnapshot) Pending() bool {
	if s.ScheduledAt != nil {
		return true
	}
	return s.PrivacyStatus == "private"
}
