package usecase

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/model"
	"github.com/Priyansh6570/Sanchalan/domain/repository"
	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
)

// SyncResult summarizes one bulk re-sync run.
type SyncResult struct {
	Total  int
	Synced int
	Failed int
}

type ISyncUsecase interface {
	// SyncStale refreshes every video whose last sync is older than the
	// staleness threshold. Each video is its own unit of work; one failure
	// never aborts the run, but context cancellation stops it between items.
	SyncStale(ctx context.Context) (*SyncResult, error)
}

type syncUsecase struct {
	videoRepo repository.IVideo
	lookup    IVideoLookup
	staleness time.Duration
	limiter   *rate.Limiter
	now       func() time.Time
}

func NewSyncUsecase(videoRepo repository.IVideo, lookup IVideoLookup, staleness, itemDelay time.Duration) ISyncUsecase {
	return &syncUsecase{
		videoRepo: videoRepo,
		lookup:    lookup,
		staleness: staleness,
		limiter:   rate.NewLimiter(rate.Every(itemDelay), 1),
		now:       time.Now,
	}
}

func (u *syncUsecase) SyncStale(ctx context.Context) (*SyncResult, error) {
	cutoff := u.now().Add(-u.staleness)
	stale, err := u.videoRepo.ListStale(ctx, cutoff)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "list stale videos", err)
	}

	result := &SyncResult{Total: len(stale)}
	log := logger.GetLogger().WithField("total", result.Total)
	log.Info("bulk re-sync started")

	for i := range stale {
		if err := u.limiter.Wait(ctx); err != nil {
			// Cancelled mid-run; everything synced so far is already
			// committed row by row.
			log.WithField("synced", result.Synced).Warn("bulk re-sync cancelled")
			return result, apperror.Wrap(apperror.KindTransient, "sync cancelled", err)
		}
		if u.syncOne(ctx, &stale[i]) {
			result.Synced++
		} else {
			result.Failed++
		}
	}

	log.WithField("synced", result.Synced).WithField("failed", result.Failed).Info("bulk re-sync finished")
	return result, nil
}

// syncOne refreshes a single video through the key-only path. The
// unattended run never touches the delegated credential, so private or
// scheduled uploads are simply left for the next interactive refresh.
func (u *syncUsecase) syncOne(ctx context.Context, video *model.Video) bool {
	snapshot, err := u.lookup.LookupWithKey(ctx, video.VideoID)
	if err != nil {
		logger.GetLogger().WithField("video_id", video.VideoID).Warn(err)
		return false
	}

	now := u.now()
	video.Title = snapshot.Title
	video.Description = snapshot.Description
	video.ThumbnailURL = snapshot.ThumbnailURL
	video.Duration = snapshot.Duration
	video.PublishedAt = snapshot.PublishedAt
	video.ScheduledAt = snapshot.ScheduledAt
	video.ViewCount = snapshot.ViewCount
	video.LikeCount = snapshot.LikeCount
	video.CommentCount = snapshot.CommentCount
	video.PrivacyStatus = snapshot.PrivacyStatus
	video.FetchSource = snapshot.Source
	video.LastSyncedAt = now
	video.Status = model.ClassifyStatus(video.PublishedAt, video.ScheduledAt, video.ExpectedUploadAt, now)

	if err := u.videoRepo.Update(ctx, video); err != nil {
		logger.GetLogger().WithField("video_id", video.VideoID).Error(err)
		return false
	}
	return true
}
