package table

import "strings"

// Signature identifies the one relevant table among all tables on a page by
// the column headers it must carry. Requires holds groups of acceptable
// header spellings; a table matches when every group has at least one of its
// spellings present (case-insensitive). This keeps the selection heuristic in
// one declared value per purpose instead of ad-hoc string checks in the
// extraction code.
type Signature struct {
	Purpose  Purpose
	Requires [][]string
}

// Matches reports whether the given header row satisfies the signature.
func (s Signature) Matches(columns []string) bool {
	lowered := make(map[string]bool, len(columns))
	for _, col := range columns {
		lowered[strings.ToLower(strings.TrimSpace(col))] = true
	}

	for _, group := range s.Requires {
		found := false
		for _, variant := range group {
			if lowered[variant] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PerGameSignature matches the per-game player stats table: it must name the
// player and a games-played column.
func PerGameSignature() Signature {
	return Signature{
		Purpose: PerGame,
		Requires: [][]string{
			{"player"},
			{"g", "games"},
		},
	}
}

// RosterSignature matches the roster table: player plus a class or position
// column.
func RosterSignature() Signature {
	return Signature{
		Purpose: Roster,
		Requires: [][]string{
			{"player"},
			{"class", "cl", "yr", "year", "pos", "position"},
		},
	}
}
