package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
)

const analyticsEndpoint = "https://youtubeanalytics.googleapis.com/v2/reports"

// AnalyticsQuery is the reports query, encoded straight into URL
// parameters.
type AnalyticsQuery struct {
	IDs        string `url:"ids"`
	StartDate  string `url:"startDate"`
	EndDate    string `url:"endDate"`
	Metrics    string `url:"metrics"`
	Dimensions string `url:"dimensions,omitempty"`
	Filters    string `url:"filters,omitempty"`
	Sort       string `url:"sort,omitempty"`
}

// AnalyticsReport is the raw rows/headers shape the reports API returns.
type AnalyticsReport struct {
	Kind          string          `json:"kind"`
	ColumnHeaders []ColumnHeader  `json:"columnHeaders"`
	Rows          [][]interface{} `json:"rows"`
}

type ColumnHeader struct {
	Name       string `json:"name"`
	ColumnType string `json:"columnType"`
	DataType   string `json:"dataType"`
}

const defaultMetrics = "views,estimatedMinutesWatched,averageViewDuration,averageViewPercentage,subscribersGained"

// AnalyticsClient talks to the YouTube Analytics API. Every call needs a
// delegated access token; the key-only path cannot see analytics at all.
type AnalyticsClient struct {
	httpClient *http.Client
}

func NewAnalyticsClient() *AnalyticsClient {
	return &AnalyticsClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// VideoReport fetches lifetime performance metrics for one video.
func (c *AnalyticsClient) VideoReport(ctx context.Context, accessToken, videoID string) (*AnalyticsReport, error) {
	q := AnalyticsQuery{
		IDs:       "channel==MINE",
		StartDate: "2000-01-01",
		EndDate:   time.Now().UTC().Format("2006-01-02"),
		Metrics:   defaultMetrics,
		Filters:   fmt.Sprintf("video==%s", videoID),
	}
	return c.report(ctx, accessToken, q)
}

// ChannelReport fetches lifetime performance metrics for the whole channel.
func (c *AnalyticsClient) ChannelReport(ctx context.Context, accessToken string) (*AnalyticsReport, error) {
	q := AnalyticsQuery{
		IDs:       "channel==MINE",
		StartDate: "2000-01-01",
		EndDate:   time.Now().UTC().Format("2006-01-02"),
		Metrics:   defaultMetrics,
	}
	return c.report(ctx, accessToken, q)
}

func (c *AnalyticsClient) report(ctx context.Context, accessToken string, q AnalyticsQuery) (*AnalyticsReport, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "encode analytics query", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, analyticsEndpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "build analytics request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "analytics request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apperror.Newf(apperror.KindAuthRequired, "analytics API rejected the token (%d)", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, apperror.Newf(apperror.KindTransient, "analytics API error: %s", resp.Status)
	}

	var report AnalyticsReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "decode analytics response", err)
	}
	return &report, nil
}
