package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Priyansh6570/Sanchalan/domain/model"
)

func videoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "video_id", "title", "description", "thumbnail_url", "duration",
		"published_at", "scheduled_at", "series_id", "channel_id",
		"view_count", "like_count", "comment_count", "privacy_status",
		"content_kind", "fetch_source", "expected_upload_at", "ad_status", "seo_notes",
		"status", "last_synced_at", "created_at", "updated_at",
	})
}

func TestVideoRepository_GetByVideoID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVideoRepository(db)

	publishedAt := time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC)
	synced := time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM videos WHERE video_id=\$1`).
		WithArgs("dQw4w9WgXcQ").
		WillReturnRows(videoRows().AddRow(
			7, "dQw4w9WgXcQ", "Episode 12", "desc", "https://i.ytimg.com/t.jpg", "PT10M30S",
			publishedAt, nil, 3, "UCchannel",
			1500, 120, 18, "public",
			"episode", "api-key", nil, "not-set", "",
			"uploaded", synced, synced, synced))

	v, err := repo.GetByVideoID(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, int64(7), v.ID)
	require.Equal(t, "Episode 12", v.Title)
	require.Equal(t, model.StatusUploaded, v.Status)
	require.Equal(t, model.FetchAPIKey, v.FetchSource)
	require.NotNil(t, v.PublishedAt)
	require.Nil(t, v.ScheduledAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByVideoID_Untracked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVideoRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM videos WHERE video_id=\$1`).
		WithArgs("missing").
		WillReturnRows(videoRows())

	v, err := repo.GetByVideoID(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByID_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVideoRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM videos WHERE id=\$1`).
		WithArgs(int64(99)).
		WillReturnRows(videoRows())

	v, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	require.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVideoRepository(db)

	mock.ExpectQuery(`INSERT INTO videos`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	v := &model.Video{
		VideoID:     "abc123xyz00",
		Title:       "Trailer - Season 2",
		SeriesID:    3,
		ChannelID:   "UCchannel",
		ContentKind: model.ContentTrailer,
		FetchSource: model.FetchOAuth,
		Status:      model.StatusScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), v))
	require.Equal(t, int64(42), v.ID)
	require.False(t, v.LastSyncedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_ListStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVideoRepository(db)

	cutoff := time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC)
	old := cutoff.Add(-12 * time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM videos WHERE last_synced_at < \$1 ORDER BY last_synced_at`).
		WithArgs(cutoff).
		WillReturnRows(videoRows().AddRow(
			1, "vid1", "Old video", "", "", "",
			old, nil, 3, "UCchannel",
			10, 1, 0, "public",
			"episode", "api-key", nil, "not-set", "",
			"uploaded", old, old, old))

	videos, err := repo.ListStale(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Equal(t, "vid1", videos[0].VideoID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Update_MissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVideoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE videos SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), &model.Video{ID: 99, Title: "gone"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVideoRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(*) FROM videos GROUP BY status`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("uploaded", 12).
			AddRow("scheduled", 3).
			AddRow("delayed", 1))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), counts[model.StatusUploaded])
	require.Equal(t, int64(3), counts[model.StatusScheduled])
	require.Equal(t, int64(1), counts[model.StatusDelayed])
	require.NoError(t, mock.ExpectationsWereMet())
}
