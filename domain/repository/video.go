package repository

import (
	"context"
	"time"

	"github.com/Priyansh6570/Sanchalan/domain/model"
)

// IVideo is the persistent store for tracked videos.
type IVideo interface {
	Create(ctx context.Context, v *model.Video) error
	// GetByID returns (nil, nil) when the id does not exist.
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	// GetByVideoID returns (nil, nil) when the external identifier is not
	// tracked; ingestion uses this for its duplicate check.
	GetByVideoID(ctx context.Context, videoID string) (*model.Video, error)
	List(ctx context.Context) ([]model.Video, error)
	// ListInWindow returns videos whose calendar start time falls inside
	// [from, to].
	ListInWindow(ctx context.Context, from, to time.Time) ([]model.Video, error)
	// ListStale returns videos whose last sync is older than the cutoff.
	ListStale(ctx context.Context, cutoff time.Time) ([]model.Video, error)
	// Update persists a full video row; each call is a single statement so
	// an aborted bulk sync never leaves a half-written record.
	Update(ctx context.Context, v *model.Video) error
	CountByStatus(ctx context.Context) (map[model.VideoStatus]int64, error)
}

// ISeries reads series and their recurring upload schedules.
type ISeries interface {
	// GetByID returns (nil, nil) when the id does not exist.
	GetByID(ctx context.Context, id int64) (*model.Series, error)
	// ListActiveWithSchedules returns active series that have at least one
	// upload slot configured.
	ListActiveWithSchedules(ctx context.Context) ([]model.Series, error)
}
