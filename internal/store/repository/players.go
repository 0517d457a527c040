package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/hardwood/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetOrCreate resolves a player name to its identity, creating the row on
// first sight. The unique constraint on player_name makes the create safe
// under concurrent runs: a lost race falls through to re-lookup instead of
// producing a second identity.
func (r *PlayerRepository) GetOrCreate(ctx context.Context, q Querier, name string) (int, error) {
	var id int

	err := q.QueryRowContext(ctx,
		`SELECT player_id FROM players WHERE player_name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up player %q: %w", name, err)
	}

	// ON CONFLICT DO NOTHING returns no row when a concurrent insert won,
	// without aborting the surrounding transaction.
	err = q.QueryRowContext(ctx, `
		INSERT INTO players (player_name)
		VALUES ($1)
		ON CONFLICT (player_name) DO NOTHING
		RETURNING player_id
	`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("creating player %q: %w", name, err)
	}

	err = q.QueryRowContext(ctx,
		`SELECT player_id FROM players WHERE player_name = $1`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("re-looking up player %q after insert conflict: %w", name, err)
	}

	return id, nil
}

// GetByName finds a player by exact name
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*store.Player, error) {
	query := `
		SELECT player_id, player_name
		FROM players
		WHERE player_name = $1
	`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, name).Scan(&player.PlayerID, &player.PlayerName)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found %q: %w", name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// Search finds players by name substring (case-insensitive)
func (r *PlayerRepository) Search(ctx context.Context, name string) ([]*store.Player, error) {
	query := `
		SELECT player_id, player_name
		FROM players
		WHERE player_name ILIKE $1
		ORDER BY player_name
		LIMIT 50
	`

	rows, err := r.db.DB().QueryContext(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		if err := rows.Scan(&player.PlayerID, &player.PlayerName); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
