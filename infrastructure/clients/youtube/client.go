package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/model"
)

const lookupTimeout = 15 * time.Second

var videoParts = []string{"snippet", "statistics", "status", "contentDetails"}

// Client fetches video metadata from the YouTube Data API. The API-key
// path sees public videos only; the OAuth path also sees the channel's
// private and scheduled uploads.
type Client struct {
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

// LookupWithKey fetches a video using the static API key.
func (c *Client) LookupWithKey(ctx context.Context, videoID string) (*model.VideoSnapshot, error) {
	if c.apiKey == "" {
		return nil, apperror.New(apperror.KindAuthRequired, "no API key configured")
	}
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	service, err := youtube.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "create youtube service", err)
	}
	return c.lookup(ctx, service, videoID, model.FetchAPIKey)
}

// LookupWithToken fetches a video using a delegated access token. Required
// for private or schedule-pending videos not yet publicly visible.
func (c *Client) LookupWithToken(ctx context.Context, videoID, accessToken string) (*model.VideoSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	service, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "create youtube service", err)
	}
	return c.lookup(ctx, service, videoID, model.FetchOAuth)
}

func (c *Client) lookup(ctx context.Context, service *youtube.Service, videoID string, source model.FetchSource) (*model.VideoSnapshot, error) {
	resp, err := service.Videos.List(videoParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err, videoID)
	}
	if len(resp.Items) == 0 {
		// The Data API hides videos the caller cannot see instead of
		// returning 403, so an empty result on the key path may still
		// succeed over OAuth.
		return nil, apperror.Newf(apperror.KindNotFound, "video %s not visible to this strategy", videoID)
	}
	return toSnapshot(resp.Items[0], source), nil
}

func toSnapshot(v *youtube.Video, source model.FetchSource) *model.VideoSnapshot {
	snap := &model.VideoSnapshot{
		VideoID: v.Id,
		Source:  source,
	}
	if v.Snippet != nil {
		snap.Title = v.Snippet.Title
		snap.Description = v.Snippet.Description
		snap.ChannelID = v.Snippet.ChannelId
		if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
			snap.PublishedAt = &t
		}
		if v.Snippet.Thumbnails != nil {
			snap.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
		}
	}
	if v.Status != nil {
		snap.PrivacyStatus = v.Status.PrivacyStatus
		snap.UploadStatus = v.Status.UploadStatus
		if v.Status.PublishAt != "" {
			if t, err := time.Parse(time.RFC3339, v.Status.PublishAt); err == nil {
				snap.ScheduledAt = &t
			}
		}
	}
	if v.Statistics != nil {
		snap.ViewCount = int64(v.Statistics.ViewCount)
		snap.LikeCount = int64(v.Statistics.LikeCount)
		snap.CommentCount = int64(v.Statistics.CommentCount)
	}
	if v.ContentDetails != nil {
		snap.Duration = v.ContentDetails.Duration
	}
	return snap
}

func bestThumbnail(t *youtube.ThumbnailDetails) string {
	switch {
	case t.Maxres != nil:
		return t.Maxres.Url
	case t.High != nil:
		return t.High.Url
	case t.Medium != nil:
		return t.Medium.Url
	case t.Default != nil:
		return t.Default.Url
	}
	return ""
}

// classifyAPIError maps Data API failures into the closed taxonomy at the
// boundary where they originate; nothing downstream matches on message
// text.
func classifyAPIError(err error, videoID string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401, 403:
			return apperror.Wrap(apperror.KindAuthRequired,
				fmt.Sprintf("video %s requires delegated access", videoID), err)
		case 404:
			return apperror.Wrap(apperror.KindNotFound,
				fmt.Sprintf("video %s not found", videoID), err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Wrap(apperror.KindTransient, "youtube lookup timed out", err)
	}
	return apperror.Wrap(apperror.KindTransient, "youtube lookup failed", err)
}
