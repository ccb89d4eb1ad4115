package usecase

import (
	"context"
	"fmt"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/repository"
	"github.com/Priyansh6570/Sanchalan/infrastructure/cache"
	"github.com/Priyansh6570/Sanchalan/infrastructure/clients/youtube"
)

// IAnalyticsReports is the reports surface of the analytics client.
type IAnalyticsReports interface {
	VideoReport(ctx context.Context, accessToken, videoID string) (*youtube.AnalyticsReport, error)
	ChannelReport(ctx context.Context, accessToken string) (*youtube.AnalyticsReport, error)
}

type IAnalyticsUsecase interface {
	VideoAnalytics(ctx context.Context, id int64) (*youtube.AnalyticsReport, error)
	ChannelAnalytics(ctx context.Context) (*youtube.AnalyticsReport, error)
}

type analyticsUsecase struct {
	videoRepo repository.IVideo
	reports   IAnalyticsReports
	tokens    ITokenUsecase
	cache     *cache.Cache
}

func NewAnalyticsUsecase(videoRepo repository.IVideo, reports IAnalyticsReports, tokens ITokenUsecase, c *cache.Cache) IAnalyticsUsecase {
	return &analyticsUsecase{videoRepo: videoRepo, reports: reports, tokens: tokens, cache: c}
}

// VideoAnalytics returns the lifetime report for a tracked video. The
// report is cached briefly since the Analytics API has a daily quota far
// below what a busy dashboard would otherwise consume.
func (u *analyticsUsecase) VideoAnalytics(ctx context.Context, id int64) (*youtube.AnalyticsReport, error) {
	video, err := u.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "load video", err)
	}
	if video == nil {
		return nil, apperror.Newf(apperror.KindNotFound, "video %d does not exist", id)
	}

	key := fmt.Sprintf("analytics:video:%s", video.VideoID)
	var cached youtube.AnalyticsReport
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	token, err := u.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	report, err := u.reports.VideoReport(ctx, token, video.VideoID)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, key, report)
	return report, nil
}

func (u *analyticsUsecase) ChannelAnalytics(ctx context.Context) (*youtube.AnalyticsReport, error) {
	const key = "analytics:channel"
	var cached youtube.AnalyticsReport
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	token, err := u.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	report, err := u.reports.ChannelReport(ctx, token)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, key, report)
	return report, nil
}
