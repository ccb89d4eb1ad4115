package usecase

import (
	"context"
	"time"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/domain/model"
	"github.com/Priyansh6570/Sanchalan/domain/repository"
	"github.com/Priyansh6570/Sanchalan/infrastructure/clients/youtube"
	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
)

// IVideoLookup is the metadata fetch surface of the YouTube client.
type IVideoLookup interface {
	LookupWithKey(ctx context.Context, videoID string) (*model.VideoSnapshot, error)
	LookupWithToken(ctx context.Context, videoID, accessToken string) (*model.VideoSnapshot, error)
}

type IVideoUsecase interface {
	Ingest(ctx context.Context, req *dto.VideoIngestRequest) (*model.Video, error)
	Refresh(ctx context.Context, id int64) (*model.Video, error)
	Patch(ctx context.Context, id int64, req *dto.VideoPatchRequest) (*model.Video, error)
	List(ctx context.Context) ([]model.Video, error)
	GetByID(ctx context.Context, id int64) (*model.Video, error)
}

type videoUsecase struct {
	videoRepo  repository.IVideo
	seriesRepo repository.ISeries
	lookup     IVideoLookup
	tokens     ITokenUsecase
	now        func() time.Time
}

func NewVideoUsecase(videoRepo repository.IVideo, seriesRepo repository.ISeries, lookup IVideoLookup, tokens ITokenUsecase) IVideoUsecase {
	return &videoUsecase{
		videoRepo:  videoRepo,
		seriesRepo: seriesRepo,
		lookup:     lookup,
		tokens:     tokens,
		now:        time.Now,
	}
}

// Ingest tracks a new upload. The duplicate check runs before any
// external call so re-submitting an existing video never spends quota.
func (u *videoUsecase) Ingest(ctx context.Context, req *dto.VideoIngestRequest) (*model.Video, error) {
	videoID := youtube.ExtractVideoID(req.VideoURL)
	if videoID == "" {
		return nil, apperror.New(apperror.KindNotFound, "could not extract a video ID from the given URL")
	}

	existing, err := u.videoRepo.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "duplicate check failed", err)
	}
	if existing != nil {
		return nil, apperror.Newf(apperror.KindConflict, "video %s is already being tracked", videoID)
	}

	series, err := u.seriesRepo.GetByID(ctx, req.SeriesID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "load series", err)
	}
	if series == nil {
		return nil, apperror.Newf(apperror.KindNotFound, "series %d does not exist", req.SeriesID)
	}

	snapshot, err := u.resolve(ctx, videoID)
	if err != nil {
		return nil, err
	}

	kind := model.ContentKind(req.ContentKind)
	if kind == "" {
		kind = model.ContentEpisode
	}

	now := u.now()
	video := &model.Video{
		VideoID:          snapshot.VideoID,
		Title:            snapshot.Title,
		Description:      snapshot.Description,
		ThumbnailURL:     snapshot.ThumbnailURL,
		Duration:         snapshot.Duration,
		PublishedAt:      snapshot.PublishedAt,
		ScheduledAt:      snapshot.ScheduledAt,
		SeriesID:         series.ID,
		ChannelID:        snapshot.ChannelID,
		ViewCount:        snapshot.ViewCount,
		LikeCount:        snapshot.LikeCount,
		CommentCount:     snapshot.CommentCount,
		PrivacyStatus:    snapshot.PrivacyStatus,
		ContentKind:      kind,
		FetchSource:      snapshot.Source,
		ExpectedUploadAt: req.ExpectedUploadAt,
		AdStatus:         req.AdStatus,
		SEONotes:         req.SEONotes,
		LastSyncedAt:     now,
	}
	if req.ChannelID != "" {
		video.ChannelID = req.ChannelID
	}
	video.Status = deriveStatus(video, snapshot, now)

	if err := u.videoRepo.Create(ctx, video); err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "store video", err)
	}
	logger.GetLogger().WithField("video_id", video.VideoID).Info("video tracked")
	return video, nil
}

// resolve runs the two-strategy lookup: the API key path first, then a
// delegated-token retry when the key path cannot see the video (private
// or scheduled uploads are invisible to key-only requests).
func (u *videoUsecase) resolve(ctx context.Context, videoID string) (*model.VideoSnapshot, error) {
	snapshot, keyErr := u.lookup.LookupWithKey(ctx, videoID)
	if keyErr == nil {
		return snapshot, nil
	}
	kind := apperror.KindOf(keyErr)
	if kind != apperror.KindNotFound && kind != apperror.KindAuthRequired {
		return nil, keyErr
	}

	token, tokenErr := u.tokens.GetValidAccessToken(ctx)
	if tokenErr != nil {
		if apperror.IsKind(tokenErr, apperror.KindNoCredential) {
			// No fallback available; tell the operator why the key path
			// alone was not enough.
			return nil, apperror.Wrap(apperror.KindAuthRequired,
				"video not visible with the API key, connect the YouTube account to track private or scheduled uploads", keyErr)
		}
		return nil, tokenErr
	}

	snapshot, oauthErr := u.lookup.LookupWithToken(ctx, videoID, token)
	if oauthErr != nil {
		return nil, oauthErr
	}
	return snapshot, nil
}

// deriveStatus classifies a video from its snapshot. A private video
// with neither a schedule nor an operator expectation is still treated
// as scheduled with an unknown date.
func deriveStatus(v *model.Video, snapshot *model.VideoSnapshot, now time.Time) model.VideoStatus {
	if snapshot != nil && snapshot.Pending() && v.ScheduledAt == nil && v.PublishedAt == nil {
		return model.StatusScheduled
	}
	return model.ClassifyStatus(v.PublishedAt, v.ScheduledAt, v.ExpectedUploadAt, now)
}

// Refresh re-fetches a tracked video from the provider and reclassifies
// it. The whole row is written in one statement.
func (u *videoUsecase) Refresh(ctx context.Context, id int64) (*model.Video, error) {
	video, err := u.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "load video", err)
	}
	if video == nil {
		return nil, apperror.Newf(apperror.KindNotFound, "video %d does not exist", id)
	}

	snapshot, err := u.resolve(ctx, video.VideoID)
	if err != nil {
		return nil, err
	}
	u.applySnapshot(video, snapshot)

	if err := u.videoRepo.Update(ctx, video); err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "store video", err)
	}
	return video, nil
}

func (u *videoUsecase) applySnapshot(video *model.Video, snapshot *model.VideoSnapshot) {
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
	now := u.now()
	video.LastSyncedAt = now
	video.Status = deriveStatus(video, snapshot, now)
}

// Patch updates operator-maintained fields and reclassifies, since a
// changed expectation can flip a video between uploaded and delayed.
func (u *videoUsecase) Patch(ctx context.Context, id int64, req *dto.VideoPatchRequest) (*model.Video, error) {
	video, err := u.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "load video", err)
	}
	if video == nil {
		return nil, apperror.Newf(apperror.KindNotFound, "video %d does not exist", id)
	}

	if req.ExpectedUploadAt != nil {
		video.ExpectedUploadAt = req.ExpectedUploadAt
	}
	if req.ContentKind != nil {
		video.ContentKind = model.ContentKind(*req.ContentKind)
	}
	if req.AdStatus != nil {
		video.AdStatus = *req.AdStatus
	}
	if req.SEONotes != nil {
		video.SEONotes = *req.SEONotes
	}
	video.Status = model.ClassifyStatus(video.PublishedAt, video.ScheduledAt, video.ExpectedUploadAt, u.now())

	if err := u.videoRepo.Update(ctx, video); err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "store video", err)
	}
	return video, nil
}

func (u *videoUsecase) List(ctx context.Context) ([]model.Video, error) {
	videos, err := u.videoRepo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "list videos", err)
	}
	return videos, nil
}

func (u *videoUsecase) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	video, err := u.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "load video", err)
	}
	if video == nil {
		return nil, apperror.Newf(apperror.KindNotFound, "video %d does not exist", id)
	}
	return video, nil
}
