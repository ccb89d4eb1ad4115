package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Priyansh6570/Sanchalan/domain/model"
)

// SeriesRepository reads series and their upload schedules. Slot lists are
// stored as JSONB so the schedule shape can grow without migrations.
type SeriesRepository struct{ db *sql.DB }

func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

const seriesColumns = `id, name, description, channel_id, channel_name, team_name,
        episode_slots, trailer_slots, status, playlist_id, created_at, updated_at`

// GetByID returns (nil, nil) when no series has the id.
func (r *SeriesRepository) GetByID(ctx context.Context, id int64) (*model.Series, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM series WHERE id=$1`, seriesColumns), id)
	s, err := scanSeries(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// ListActiveWithSchedules returns active series that have at least one
// upload slot, the only ones the projector can produce occurrences for.
func (r *SeriesRepository) ListActiveWithSchedules(ctx context.Context) ([]model.Series, error) {
	q := fmt.Sprintf(`SELECT %s FROM series
          WHERE status='active'
            AND (jsonb_array_length(episode_slots) > 0 OR jsonb_array_length(trailer_slots) > 0)
          ORDER BY name`, seriesColumns)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list active series: %w", err)
	}
	defer rows.Close()

	var out []model.Series
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanSeries(row rowScanner) (*model.Series, error) {
	s := &model.Series{}
	var description, channelName, teamName, playlistID sql.NullString
	var episodeSlots, trailerSlots []byte
	err := row.Scan(&s.ID, &s.Name, &description, &s.ChannelID, &channelName, &teamName,
		&episodeSlots, &trailerSlots, &s.Status, &playlistID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Description = description.String
	s.ChannelName = channelName.String
	s.TeamName = teamName.String
	s.PlaylistID = playlistID.String
	if len(episodeSlots) > 0 {
		if err := json.Unmarshal(episodeSlots, &s.EpisodeSlots); err != nil {
			return nil, fmt.Errorf("decode episode slots: %w", err)
		}
	}
	if len(trailerSlots) > 0 {
		if err := json.Unmarshal(trailerSlots, &s.TrailerSlots); err != nil {
			return nil, fmt.Errorf("decode trailer slots: %w", err)
		}
	}
	return s, nil
}
