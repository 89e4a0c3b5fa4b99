package stats

import "github.com/guandanclub/scorekeeper/internal/models"

// DefaultProfitCap bounds the per-match profit transfer between teams.
const DefaultProfitCap = 88

// MatchData is the snapshot of one match handed to the pure fold: the
// match row plus all of its players and round records.
type MatchData struct {
	Match   models.Match
	Players []models.Player
	Scores  []models.RoundScore
}

// PairRecord counts joint matches with one other player, and how many of
// them this player's team won.
type PairRecord struct {
	Matches int `json:"matches"`
	Wins    int `json:"wins"`
}

// PlayerAggregate is one player's cumulative record over all finished
// matches in the folded period, keyed by resolved name.
type PlayerAggregate struct {
	Name                string                 `json:"name"`
	TotalScore          int                    `json:"total_score"`
	Matches             int                    `json:"matches"`
	Wins                int                    `json:"wins"`
	FirstPlaces         int                    `json:"first_places"`
	MaxSingleRoundScore int                    `json:"max_single_round_score"`
	Ranks               []int                  `json:"ranks"`
	MatchRankRanges     []int                  `json:"match_rank_ranges"`
	Profit              int                    `json:"profit"`
	Comebacks           int                    `json:"comebacks"`
	Teammates           map[string]*PairRecord `json:"teammates"`
	Opponents           map[string]*PairRecord `json:"opponents"`
}

// WinRate returns wins/matches, 0 for a player with no matches.
func (a *PlayerAggregate) WinRate() float64 {
	if a.Matches == 0 {
		return 0
	}
	return float64(a.Wins) / float64(a.Matches)
}

// Aggregates holds every player's aggregate and remembers the order in
// which players were first seen, so superlatives with first-encountered
// tie-breaking stay deterministic across runs.
type Aggregates struct {
	byName map[string]*PlayerAggregate
	order  []string
}

// Get returns the aggregate for a raw or resolved name, nil if unknown.
func (a *Aggregates) Get(name string) *PlayerAggregate {
	return a.byName[ResolveName(name)]
}

// Names returns resolved names in first-encountered order.
func (a *Aggregates) Names() []string {
	return a.order
}

// Len returns the number of distinct players seen.
func (a *Aggregates) Len() int {
	return len(a.order)
}

func (a *Aggregates) getOrCreate(name string) *PlayerAggregate {
	if agg, ok := a.byName[name]; ok {
		return agg
	}
	agg := &PlayerAggregate{
		Name:      name,
		Teammates: make(map[string]*PairRecord),
		Opponents: make(map[string]*PairRecord),
	}
	a.byName[name] = agg
	a.order = append(a.order, name)
	return agg
}

func pairRecord(table map[string]*PairRecord, name string) *PairRecord {
	rec, ok := table[name]
	if !ok {
		rec = &PairRecord{}
		table[name] = rec
	}
	return rec
}

// BuildAggregates folds every finished match into per-player aggregates.
// Ongoing matches are ignored. A tied match counts as a win for every
// player on both teams and moves no profit. profitCap bounds the score-gap
// transfer from the losing to the winning team; pass DefaultProfitCap for
// the standard ±88 house rule.
func BuildAggregates(matches []MatchData, profitCap int) *Aggregates {
	agg := &Aggregates{byName: make(map[string]*PlayerAggregate)}
	for _, md := range matches {
		if md.Match.Status != models.StatusFinished {
			continue
		}
		foldMatch(agg, md, profitCap)
	}
	return agg
}

func foldMatch(agg *Aggregates, md MatchData, profitCap int) {
	ledger := NewLedger(md.Players, md.Scores)
	teamScore1 := ledger.TeamScore(1)
	teamScore2 := ledger.TeamScore(2)

	winningTeam := 0
	switch {
	case teamScore1 > teamScore2:
		winningTeam = 1
	case teamScore2 > teamScore1:
		winningTeam = 2
	}

	transfer := teamScore1 - teamScore2
	if transfer < 0 {
		transfer = -transfer
	}
	if transfer > profitCap {
		transfer = profitCap
	}

	rounds := groupRounds(md.Scores)
	comebackTeam := detectComeback(md.Players, rounds)

	// Per-player (rank, points) history in round order.
	type roundResult struct{ rank, points int }
	history := make(map[uint][]roundResult, len(md.Players))
	for _, round := range rounds {
		for _, s := range round.Scores {
			history[s.PlayerID] = append(history[s.PlayerID], roundResult{s.Rank, s.Points})
		}
	}

	for _, p := range md.Players {
		a := agg.getOrCreate(ResolveName(p.Name))

		a.TotalScore += ledger.TotalScore(p.ID)
		a.Matches++
		// A tie is a full win for everyone.
		if winningTeam == 0 || winningTeam == p.Team {
			a.Wins++
		}

		results := history[p.ID]
		minRank, maxRank := 0, 0
		for i, res := range results {
			a.Ranks = append(a.Ranks, res.rank)
			if res.rank == 1 {
				a.FirstPlaces++
			}
			if res.points > a.MaxSingleRoundScore {
				a.MaxSingleRoundScore = res.points
			}
			if i == 0 || res.rank < minRank {
				minRank = res.rank
			}
			if i == 0 || res.rank > maxRank {
				maxRank = res.rank
			}
		}
		if len(results) >= 2 {
			a.MatchRankRanges = append(a.MatchRankRanges, maxRank-minRank)
		}

		if winningTeam != 0 {
			if p.Team == winningTeam {
				a.Profit += transfer
			} else {
				a.Profit -= transfer
			}
		}

		if comebackTeam != 0 && p.Team == comebackTeam {
			a.Comebacks++
		}

		for _, other := range md.Players {
			if other.ID == p.ID {
				continue
			}
			otherName := ResolveName(other.Name)
			if other.Team == p.Team {
				rec := pairRecord(a.Teammates, otherName)
				rec.Matches++
				// Ties count as teammate-pair wins but not as
				// opponent-pair wins.
				if winningTeam == 0 || winningTeam == p.Team {
					rec.Wins++
				}
			} else {
				rec := pairRecord(a.Opponents, otherName)
				rec.Matches++
				if winningTeam == p.Team {
					rec.Wins++
				}
			}
		}
	}
}

// detectComeback returns the team that was behind after the second-to-last
// round yet strictly ahead after the last, 0 if neither. Matches with
// fewer than two rounds never qualify.
func detectComeback(players []models.Player, rounds []Round) int {
	if len(rounds) < 2 {
		return 0
	}
	teamOf := make(map[uint]int, len(players))
	for _, p := range players {
		teamOf[p.ID] = p.Team
	}

	diff := 0 // cumulative team1 − team2
	beforeLast, afterLast := 0, 0
	for i, round := range rounds {
		for _, s := range round.Scores {
			if teamOf[s.PlayerID] == 1 {
				diff += s.Points
			} else {
				diff -= s.Points
			}
		}
		if i == len(rounds)-2 {
			beforeLast = diff
		}
		if i == len(rounds)-1 {
			afterLast = diff
		}
	}

	if beforeLast < 0 && afterLast > 0 {
		return 1
	}
	if beforeLast > 0 && afterLast < 0 {
		return 2
	}
	return 0
}
