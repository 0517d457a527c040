package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/hardwood/internal/store"
)

// ConferenceRepository handles conference data access
type ConferenceRepository struct {
	db *store.Database
}

// NewConferenceRepository creates a new conference repository
func NewConferenceRepository(db *store.Database) *ConferenceRepository {
	return &ConferenceRepository{db: db}
}

// Upsert inserts a conference if it does not exist yet. Existing rows are
// left untouched; conferences are immutable once created.
func (r *ConferenceRepository) Upsert(ctx context.Context, q Querier, conf *store.Conference) error {
	query := `
		INSERT INTO conferences (conference_key, name)
		VALUES ($1, $2)
		ON CONFLICT (conference_key) DO NOTHING
	`

	if _, err := q.ExecContext(ctx, query, conf.ConferenceKey, conf.Name); err != nil {
		return fmt.Errorf("upserting conference %s: %w", conf.ConferenceKey, err)
	}

	return nil
}

// GetByKey finds a conference by key
func (r *ConferenceRepository) GetByKey(ctx context.Context, key string) (*store.Conference, error) {
	query := `
		SELECT conference_key, name
		FROM conferences
		WHERE conference_key = $1
	`

	conf := &store.Conference{}
	err := r.db.DB().QueryRowContext(ctx, query, key).Scan(&conf.ConferenceKey, &conf.Name)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conference not found %q: %w", key, err)
	}
	if err != nil {
		return nil, fmt.Errorf("querying conference: %w", err)
	}

	return conf, nil
}
