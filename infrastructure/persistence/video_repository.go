package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Priyansh6570/Sanchalan/domain/model"
)

const videoColumns = `id, video_id, title, description, thumbnail_url, duration,
        published_at, scheduled_at, series_id, channel_id,
        view_count, like_count, comment_count, privacy_status,
        content_kind, fetch_source, expected_upload_at, ad_status, seo_notes,
        status, last_synced_at, created_at, updated_at`

// VideoRepository is the persistent store for tracked videos.
type VideoRepository struct{ db *sql.DB }

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, v *model.Video) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.LastSyncedAt.IsZero() {
		v.LastSyncedAt = now
	}
	q := `INSERT INTO videos (video_id, title, description, thumbnail_url, duration,
            published_at, scheduled_at, series_id, channel_id,
            view_count, like_count, comment_count, privacy_status,
            content_kind, fetch_source, expected_upload_at, ad_status, seo_notes,
            status, last_synced_at, created_at, updated_at)
          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
          RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		v.VideoID, v.Title, v.Description, v.ThumbnailURL, v.Duration,
		v.PublishedAt, v.ScheduledAt, v.SeriesID, v.ChannelID,
		v.ViewCount, v.LikeCount, v.CommentCount, v.PrivacyStatus,
		v.ContentKind, v.FetchSource, v.ExpectedUploadAt, v.AdStatus, v.SEONotes,
		v.Status, v.LastSyncedAt, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when no row has the internal id.
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM videos WHERE id=$1`, videoColumns), id)
	v, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return v, err
}

// GetByVideoID returns (nil, nil) for an untracked identifier so ingestion
// can use it as a duplicate check.
func (r *VideoRepository) GetByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM videos WHERE video_id=$1`, videoColumns), videoID)
	v, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return v, err
}

func (r *VideoRepository) List(ctx context.Context) ([]model.Video, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM videos ORDER BY published_at DESC NULLS LAST, id DESC`, videoColumns))
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}

// ListInWindow returns videos whose calendar anchor falls inside [from, to].
// The anchor mirrors model.Video.StartTime: schedule, then publish, then
// expectation.
func (r *VideoRepository) ListInWindow(ctx context.Context, from, to time.Time) ([]model.Video, error) {
	q := fmt.Sprintf(`SELECT %s FROM videos
          WHERE COALESCE(scheduled_at, published_at, expected_upload_at) BETWEEN $1 AND $2
          ORDER BY COALESCE(scheduled_at, published_at, expected_upload_at)`, videoColumns)
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, fmt.Errorf("list videos in window: %w", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}

func (r *VideoRepository) ListStale(ctx context.Context, cutoff time.Time) ([]model.Video, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM videos WHERE last_synced_at < $1 ORDER BY last_synced_at`, videoColumns), cutoff)
	if err != nil {
		return nil, fmt.Errorf("list stale videos: %w", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}

// Update rewrites the whole row in one statement so a cancelled bulk sync
// can never leave a record half-updated.
func (r *VideoRepository) Update(ctx context.Context, v *model.Video) error {
	v.UpdatedAt = time.Now().UTC()
	q := `UPDATE videos SET title=$1, description=$2, thumbnail_url=$3, duration=$4,
            published_at=$5, scheduled_at=$6,
            view_count=$7, like_count=$8, comment_count=$9, privacy_status=$10,
            content_kind=$11, expected_upload_at=$12, ad_status=$13, seo_notes=$14,
            status=$15, last_synced_at=$16, updated_at=$17
          WHERE id=$18`
	res, err := r.db.ExecContext(ctx, q,
		v.Title, v.Description, v.ThumbnailURL, v.Duration,
		v.PublishedAt, v.ScheduledAt,
		v.ViewCount, v.LikeCount, v.CommentCount, v.PrivacyStatus,
		v.ContentKind, v.ExpectedUploadAt, v.AdStatus, v.SEONotes,
		v.Status, v.LastSyncedAt, v.UpdatedAt, v.ID)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *VideoRepository) CountByStatus(ctx context.Context) (map[model.VideoStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM videos GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count videos by status: %w", err)
	}
	defer rows.Close()
	counts := make(map[model.VideoStatus]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[model.VideoStatus(status)] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVideo(row rowScanner) (*model.Video, error) {
	v := &model.Video{}
	var publishedAt, scheduledAt, expectedAt sql.NullTime
	var description, thumbnail, duration, privacy, fetchSource, seoNotes sql.NullString
	err := row.Scan(&v.ID, &v.VideoID, &v.Title, &description, &thumbnail, &duration,
		&publishedAt, &scheduledAt, &v.SeriesID, &v.ChannelID,
		&v.ViewCount, &v.LikeCount, &v.CommentCount, &privacy,
		&v.ContentKind, &fetchSource, &expectedAt, &v.AdStatus, &seoNotes,
		&v.Status, &v.LastSyncedAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Description = description.String
	v.ThumbnailURL = thumbnail.String
	v.Duration = duration.String
	v.PrivacyStatus = privacy.String
	v.FetchSource = model.FetchSource(fetchSource.String)
	v.SEONotes = seoNotes.String
	if publishedAt.Valid {
		v.PublishedAt = &publishedAt.Time
	}
	if scheduledAt.Valid {
		v.ScheduledAt = &scheduledAt.Time
	}
	if expectedAt.Valid {
		v.ExpectedUploadAt = &expectedAt.Time
	}
	return v, nil
}

func collectVideos(rows *sql.Rows) ([]model.Video, error) {
	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}
