package store

import "database/sql"

// Conference represents a conference row. Created once per key, never updated.
type Conference struct {
	ConferenceKey string `json:"conference_key" db:"conference_key"`
	Name          string `json:"name" db:"name"`
}

// Team represents a school within a conference.
type Team struct {
	TeamSlug      string         `json:"team_slug" db:"team_slug"`
	ConferenceKey string         `json:"conference_key" db:"conference_key"`
	SchoolName    sql.NullString `json:"school_name,omitempty" db:"school_name"`
}

// Player is the stable identity a raw name string resolves to. Rows are
// created on first sight of a name and never updated by the pipeline.
type Player struct {
	PlayerID   int    `json:"player_id" db:"player_id"`
	PlayerName string `json:"player_name" db:"player_name"`
}

// PlayerSeasonStat holds per-game production counters for one
// (player, team, season). Re-ingestion replaces the whole row.
type PlayerSeasonStat struct {
	PlayerID      int             `json:"player_id" db:"player_id"`
	TeamSlug      string          `json:"team_slug" db:"team_slug"`
	ConferenceKey string          `json:"conference_key" db:"conference_key"`
	SeasonEndYear int             `json:"season_end_year" db:"season_end_year"`
	Games         sql.NullFloat64 `json:"g,omitempty" db:"g"`
	Minutes       sql.NullFloat64 `json:"mp,omitempty" db:"mp"`
	Points        sql.NullFloat64 `json:"pts,omitempty" db:"pts"`
	Rebounds      sql.NullFloat64 `json:"reb,omitempty" db:"reb"`
	Assists       sql.NullFloat64 `json:"ast,omitempty" db:"ast"`
}

// PlayerRosterAttrs holds descriptive roster attributes for one
// (player, team, season). Independent of stats; may be absent.
type PlayerRosterAttrs struct {
	PlayerID      int            `json:"player_id" db:"player_id"`
	TeamSlug      string         `json:"team_slug" db:"team_slug"`
	ConferenceKey string         `json:"conference_key" db:"conference_key"`
	SeasonEndYear int            `json:"season_end_year" db:"season_end_year"`
	ClassYear     sql.NullString `json:"class_year,omitempty" db:"class_year"`
	Position      sql.NullString `json:"pos,omitempty" db:"pos"`
	HeightCM      sql.NullInt32  `json:"height_cm,omitempty" db:"height_cm"`
	WeightKG      sql.NullInt32  `json:"weight_kg,omitempty" db:"weight_kg"`
}

// PlayerSeasonRow is the joined stat+roster read model served to the
// dashboard. Roster columns are null when no roster row exists.
type PlayerSeasonRow struct {
	PlayerID      int             `json:"player_id"`
	PlayerName    string          `json:"player_name"`
	TeamSlug      string          `json:"team_slug"`
	ConferenceKey string          `json:"conference_key"`
	SeasonEndYear int             `json:"season_end_year"`
	Games         sql.NullFloat64 `json:"g,omitempty"`
	Minutes       sql.NullFloat64 `json:"mp,omitempty"`
	Points        sql.NullFloat64 `json:"pts,omitempty"`
	Rebounds      sql.NullFloat64 `json:"reb,omitempty"`
	Assists       sql.NullFloat64 `json:"ast,omitempty"`
	ClassYear     sql.NullString  `json:"class_year,omitempty"`
	Position      sql.NullString  `json:"pos,omitempty"`
	HeightCM      sql.NullInt32   `json:"height_cm,omitempty"`
	WeightKG      sql.NullInt32   `json:"weight_kg,omitempty"`
}
