package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/hardwood/internal/store"
)

// StatsRepository handles season stat and roster attribute data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// ReplaceSeasonStat writes a season stat row, fully replacing any prior row
// at the same (player, team, season) key.
func (r *StatsRepository) ReplaceSeasonStat(ctx context.Context, q Querier, stat *store.PlayerSeasonStat) error {
	query := `
		INSERT INTO player_season_stats
			(player_id, team_slug, conference_key, season_end_year, g, mp, pts, reb, ast)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (player_id, team_slug, season_end_year) DO UPDATE SET
			conference_key = EXCLUDED.conference_key,
			g = EXCLUDED.g,
			mp = EXCLUDED.mp,
			pts = EXCLUDED.pts,
			reb = EXCLUDED.reb,
			ast = EXCLUDED.ast
	`

	_, err := q.ExecContext(ctx, query,
		stat.PlayerID, stat.TeamSlug, stat.ConferenceKey, stat.SeasonEndYear,
		stat.Games, stat.Minutes, stat.Points, stat.Rebounds, stat.Assists,
	)
	if err != nil {
		return fmt.Errorf("replacing season stats for player %d / %s: %w", stat.PlayerID, stat.TeamSlug, err)
	}

	return nil
}

// ReplaceRosterAttrs writes a roster attribute row, fully replacing any prior
// row at the same (player, team, season) key.
func (r *StatsRepository) ReplaceRosterAttrs(ctx context.Context, q Querier, attrs *store.PlayerRosterAttrs) error {
	query := `
		INSERT INTO player_roster_attrs
			(player_id, team_slug, conference_key, season_end_year, class_year, pos, height_cm, weight_kg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (player_id, team_slug, season_end_year) DO UPDATE SET
			conference_key = EXCLUDED.conference_key,
			class_year = EXCLUDED.class_year,
			pos = EXCLUDED.pos,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg
	`

	_, err := q.ExecContext(ctx, query,
		attrs.PlayerID, attrs.TeamSlug, attrs.ConferenceKey, attrs.SeasonEndYear,
		attrs.ClassYear, attrs.Position, attrs.HeightCM, attrs.WeightKG,
	)
	if err != nil {
		return fmt.Errorf("replacing roster attrs for player %d / %s: %w", attrs.PlayerID, attrs.TeamSlug, err)
	}

	return nil
}

// SeasonRowsFilter narrows QuerySeasonRows. Team and NameContains are
// optional; empty means no filter.
type SeasonRowsFilter struct {
	ConferenceKey string
	SeasonEndYear int
	TeamSlug      string
	NameContains  string
}

// QuerySeasonRows returns joined stat+roster rows for a conference/season,
// ordered by team then player name. Roster attributes left-join onto stats
// so players without a roster row still appear.
func (r *StatsRepository) QuerySeasonRows(ctx context.Context, filter SeasonRowsFilter) ([]*store.PlayerSeasonRow, error) {
	query := `
		SELECT p.player_id, p.player_name, s.team_slug, s.conference_key, s.season_end_year,
			s.g, s.mp, s.pts, s.reb, s.ast,
			ra.class_year, ra.pos, ra.height_cm, ra.weight_kg
		FROM player_season_stats s
		JOIN players p ON p.player_id = s.player_id
		LEFT JOIN player_roster_attrs ra
			ON ra.player_id = s.player_id
			AND ra.team_slug = s.team_slug
			AND ra.season_end_year = s.season_end_year
		WHERE s.conference_key = $1
		  AND s.season_end_year = $2
		  AND ($3 = '' OR s.team_slug = $3)
		  AND ($4 = '' OR p.player_name ILIKE '%' || $4 || '%')
		ORDER BY s.team_slug, p.player_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query,
		filter.ConferenceKey, filter.SeasonEndYear, filter.TeamSlug, filter.NameContains)
	if err != nil {
		return nil, fmt.Errorf("querying season rows: %w", err)
	}
	defer rows.Close()

	var results []*store.PlayerSeasonRow
	for rows.Next() {
		row := &store.PlayerSeasonRow{}
		err := rows.Scan(
			&row.PlayerID, &row.PlayerName, &row.TeamSlug, &row.ConferenceKey, &row.SeasonEndYear,
			&row.Games, &row.Minutes, &row.Points, &row.Rebounds, &row.Assists,
			&row.ClassYear, &row.Position, &row.HeightCM, &row.WeightKG,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning season row: %w", err)
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
