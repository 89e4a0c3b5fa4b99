package stats

import "sort"

// ScoreRank is one row of the overall score leaderboard.
type ScoreRank struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// WinRateRank is one row of the win-rate leaderboard.
type WinRateRank struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Matches  int     `json:"matches"`
	Wins     int     `json:"wins"`
	Rate     float64 `json:"rate"`
}

// ScoreRankings sums all round points by player name across every match,
// ongoing ones included, and ranks descending. This is the home-page
// leaderboard, so unlike the aggregates it does not wait for matches to
// finish.
func ScoreRankings(matches []MatchData) []ScoreRank {
	totals := make(map[string]int)
	var order []string
	for _, md := range matches {
		nameOf := make(map[uint]string, len(md.Players))
		for _, p := range md.Players {
			name := ResolveName(p.Name)
			nameOf[p.ID] = name
			if _, ok := totals[name]; !ok {
				totals[name] = 0
				order = append(order, name)
			}
		}
		for _, s := range md.Scores {
			totals[nameOf[s.PlayerID]] += s.Points
		}
	}

	rankings := make([]ScoreRank, 0, len(order))
	for _, name := range order {
		rankings = append(rankings, ScoreRank{Name: name, Score: totals[name]})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	for i := range rankings {
		rankings[i].Position = i + 1
	}
	return rankings
}

// WinRateRankings ranks every aggregated player by win rate, then by
// match count, both descending.
func WinRateRankings(agg *Aggregates) []WinRateRank {
	rankings := make([]WinRateRank, 0, agg.Len())
	for _, name := range agg.Names() {
		a := agg.Get(name)
		rankings = append(rankings, WinRateRank{
			Name:    name,
			Matches: a.Matches,
			Wins:    a.Wins,
			Rate:    a.WinRate(),
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Rate != rankings[j].Rate {
			return rankings[i].Rate > rankings[j].Rate
		}
		return rankings[i].Matches > rankings[j].Matches
	})
	for i := range rankings {
		rankings[i].Position = i + 1
	}
	return rankings
}
