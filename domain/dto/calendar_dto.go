package dto

import "github.com/Priyansh6570/Sanchalan/domain/model"

// CalendarFeedResponse is the merged feed consumed by the calendar view.
type CalendarFeedResponse struct {
	Success bool                  `json:"success"`
	From    string                `json:"from"`
	To      string                `json:"to"`
	Events  []model.CalendarEvent `json:"events"`
}

// DashboardResponse is the summary consumed by the dashboard view.
type DashboardResponse struct {
	Success      bool                        `json:"success"`
	Connected    bool                        `json:"connected"`
	StatusCounts map[model.VideoStatus]int64 `json:"status_counts"`
	TotalVideos  int64                       `json:"total_videos"`
	Recent       []model.Video               `json:"recent"`
}

// SyncResultResponse reports a bulk re-sync run.
type SyncResultResponse struct {
	Success   bool   `json:"success"`
	Total     int    `json:"total"`
	Synced    int    `json:"synced"`
	Failed    int    `json:"failed"`
	Timestamp string `json:"timestamp"`
}
