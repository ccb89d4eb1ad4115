package dto

import (
	"time"

	"github.com/Priyansh6570/Sanchalan/domain/model"
)

// VideoIngestRequest is the payload for tracking a new upload.
type VideoIngestRequest struct {
	VideoURL         string     `json:"video_url" binding:"required"`
	SeriesID         int64      `json:"series_id" binding:"required"`
	ChannelID        string     `json:"channel_id"`
	ContentKind      string     `json:"content_kind"`
	ExpectedUploadAt *time.Time `json:"expected_upload_at"`
	AdStatus         string     `json:"ad_status"`
	SEONotes         string     `json:"seo_notes"`
}

// VideoPatchRequest updates operator-maintained fields. Pointer fields
// distinguish "not provided" from zero values.
type VideoPatchRequest struct {
	ExpectedUploadAt *time.Time `json:"expected_upload_at"`
	ContentKind      *string    `json:"content_kind"`
	AdStatus         *string    `json:"ad_status"`
	SEONotes         *string    `json:"seo_notes"`
}

// VideoIngestResponse is returned on successful ingestion.
type VideoIngestResponse struct {
	Success     bool         `json:"success"`
	Video       *model.Video `json:"video"`
	Message     string       `json:"message"`
	FetchSource string       `json:"fetch_source"`
	IsScheduled bool         `json:"is_scheduled"`
}

// FailureResponse is the structured error body. Classification lets the
// frontend decide whether to show a "Reconnect" action.
type FailureResponse struct {
	Success        bool   `json:"success"`
	Error          string `json:"error"`
	Classification string `json:"classification"`
	NeedsAuth      bool   `json:"needs_auth,omitempty"`
	ReconnectHint  string `json:"reconnect_hint,omitempty"`
}
