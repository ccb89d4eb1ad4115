package persistence

import (
	"database/sql"
	"fmt"

	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
)

// EnsureSchema creates the tables this service owns if they do not exist.
func EnsureSchema(db *sql.DB) error {
	ddls := []string{
		`CREATE TABLE IF NOT EXISTS credentials (
            id BIGSERIAL PRIMARY KEY,
            provider TEXT NOT NULL UNIQUE,
            access_token TEXT NOT NULL,
            refresh_token TEXT NOT NULL,
            token_type TEXT NOT NULL DEFAULT 'Bearer',
            expires_at TIMESTAMPTZ NOT NULL,
            scope TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS series (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT,
            channel_id TEXT NOT NULL,
            channel_name TEXT,
            team_name TEXT,
            episode_slots JSONB NOT NULL DEFAULT '[]',
            trailer_slots JSONB NOT NULL DEFAULT '[]',
            status TEXT NOT NULL DEFAULT 'active',
            playlist_id TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS videos (
            id BIGSERIAL PRIMARY KEY,
            video_id TEXT NOT NULL UNIQUE,
            title TEXT NOT NULL,
            description TEXT,
            thumbnail_url TEXT,
            duration TEXT,
            published_at TIMESTAMPTZ,
            scheduled_at TIMESTAMPTZ,
            series_id BIGINT NOT NULL REFERENCES series(id),
            channel_id TEXT NOT NULL,
            view_count BIGINT NOT NULL DEFAULT 0,
            like_count BIGINT NOT NULL DEFAULT 0,
            comment_count BIGINT NOT NULL DEFAULT 0,
            privacy_status TEXT,
            content_kind TEXT NOT NULL DEFAULT 'episode',
            fetch_source TEXT,
            expected_upload_at TIMESTAMPTZ,
            ad_status TEXT NOT NULL DEFAULT 'not-set',
            seo_notes TEXT,
            status TEXT NOT NULL DEFAULT 'uploaded',
            last_synced_at TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
	}
	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_videos_status ON videos(status)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_last_synced_at ON videos(last_synced_at)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_published_at ON videos(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_series_status ON series(status)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed creating index")
		}
	}
	return nil
}
