package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/hardwood/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Upsert inserts a team if its slug is unseen. Team rows are append-only;
// an existing slug keeps its original conference.
func (r *TeamRepository) Upsert(ctx context.Context, q Querier, team *store.Team) error {
	query := `
		INSERT INTO teams (team_slug, conference_key, school_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_slug) DO NOTHING
	`

	if _, err := q.ExecContext(ctx, query, team.TeamSlug, team.ConferenceKey, team.SchoolName); err != nil {
		return fmt.Errorf("upserting team %s: %w", team.TeamSlug, err)
	}

	return nil
}

// GetByConference returns all teams in a conference, ordered by slug
func (r *TeamRepository) GetByConference(ctx context.Context, conferenceKey string) ([]*store.Team, error) {
	query := `
		SELECT team_slug, conference_key, school_name
		FROM teams
		WHERE conference_key = $1
		ORDER BY team_slug
	`

	rows, err := r.db.DB().QueryContext(ctx, query, conferenceKey)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		if err := rows.Scan(&team.TeamSlug, &team.ConferenceKey, &team.SchoolName); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}
