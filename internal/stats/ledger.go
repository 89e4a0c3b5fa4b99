// Package stats is the pure computation core of the scorekeeper: per-match
// ledgers and level progression, cross-match player aggregates, and the
// annual report. Everything here operates on snapshots read through a
// SnapshotSource and performs no I/O of its own, so every function is
// deterministic over its inputs.
package stats

import (
	"errors"
	"fmt"

	"github.com/guandanclub/scorekeeper/internal/models"
)

// ErrInvalidRound reports a round whose ranks are not a permutation of
// 1..player_count. Round submission rejects such rounds at write time;
// this check guards against historical data written through other paths.
var ErrInvalidRound = errors.New("round ranks are not a permutation of 1..player_count")

// Ledger is a read-only view over one match's round records.
type Ledger struct {
	playerCount int
	teamOf      map[uint]int
	totals      map[uint]int
	scores      []models.RoundScore
}

// NewLedger builds a ledger for one match from its players and round
// records. The ledger takes no ownership of the slices.
func NewLedger(players []models.Player, scores []models.RoundScore) *Ledger {
	l := &Ledger{
		playerCount: len(players),
		teamOf:      make(map[uint]int, len(players)),
		totals:      make(map[uint]int, len(players)),
		scores:      scores,
	}
	for _, p := range players {
		l.teamOf[p.ID] = p.Team
		l.totals[p.ID] = 0
	}
	for _, s := range scores {
		l.totals[s.PlayerID] += s.Points
	}
	return l
}

// TotalScore returns the player's points summed over all rounds, 0 if the
// player has no rounds yet.
func (l *Ledger) TotalScore(playerID uint) int {
	return l.totals[playerID]
}

// TeamScore returns the sum of TotalScore over the team's players.
func (l *Ledger) TeamScore(team int) int {
	total := 0
	for playerID, t := range l.teamOf {
		if t == team {
			total += l.totals[playerID]
		}
	}
	return total
}

// Validate checks that every recorded round's ranks form a permutation of
// 1..player_count with exactly one entry per player.
func (l *Ledger) Validate() error {
	type roundState struct {
		ranks   map[int]bool
		players map[uint]bool
	}
	rounds := make(map[int]*roundState)
	for _, s := range l.scores {
		st := rounds[s.RoundNumber]
		if st == nil {
			st = &roundState{ranks: make(map[int]bool), players: make(map[uint]bool)}
			rounds[s.RoundNumber] = st
		}
		if s.Rank < 1 || s.Rank > l.playerCount || st.ranks[s.Rank] {
			return fmt.Errorf("round %d: %w", s.RoundNumber, ErrInvalidRound)
		}
		if st.players[s.PlayerID] {
			return fmt.Errorf("round %d: %w", s.RoundNumber, ErrInvalidRound)
		}
		st.ranks[s.Rank] = true
		st.players[s.PlayerID] = true
	}
	for number, st := range rounds {
		if len(st.ranks) != l.playerCount {
			return fmt.Errorf("round %d: %w", number, ErrInvalidRound)
		}
	}
	return nil
}
