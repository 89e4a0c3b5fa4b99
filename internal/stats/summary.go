package stats

import (
	"sort"

	"github.com/guandanclub/scorekeeper/internal/models"
)

// Standing is one player's row in the match detail view.
type Standing struct {
	Player models.Player `json:"player"`
	Total  int           `json:"total"`
}

// Round groups one round's records for chronological display, best rank
// first.
type Round struct {
	Number int                 `json:"number"`
	Scores []models.RoundScore `json:"scores"`
}

// Summary is the derived per-match view: standings, team scores, the gap
// and leader, level cards, and rounds in order.
type Summary struct {
	Match       models.Match   `json:"match"`
	Standings   []Standing     `json:"standings"`
	TeamScores  map[int]int    `json:"team_scores"`
	ScoreGap    int            `json:"score_gap"`
	LeadingTeam int            `json:"leading_team"` // 0 when tied
	TeamLevels  map[int]string `json:"team_levels"`
	Rounds      []Round        `json:"rounds"`
}

// Summarize builds the match detail view from a snapshot of one match.
// Standings sort by total score descending; equal totals keep seat order.
func Summarize(m models.Match, players []models.Player, scores []models.RoundScore) Summary {
	ledger := NewLedger(players, scores)

	standings := make([]Standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, Standing{Player: p, Total: ledger.TotalScore(p.ID)})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total > standings[j].Total
	})

	teamScores := map[int]int{
		1: ledger.TeamScore(1),
		2: ledger.TeamScore(2),
	}
	gap := teamScores[1] - teamScores[2]
	if gap < 0 {
		gap = -gap
	}
	leading := 0
	switch {
	case teamScores[1] > teamScores[2]:
		leading = 1
	case teamScores[2] > teamScores[1]:
		leading = 2
	}

	return Summary{
		Match:       m,
		Standings:   standings,
		TeamScores:  teamScores,
		ScoreGap:    gap,
		LeadingTeam: leading,
		TeamLevels:  TeamLevelLabels(players, scores),
		Rounds:      groupRounds(scores),
	}
}

func groupRounds(scores []models.RoundScore) []Round {
	byRound := make(map[int][]models.RoundScore)
	for _, s := range scores {
		byRound[s.RoundNumber] = append(byRound[s.RoundNumber], s)
	}
	numbers := make([]int, 0, len(byRound))
	for number := range byRound {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	rounds := make([]Round, 0, len(numbers))
	for _, number := range numbers {
		round := byRound[number]
		sort.Slice(round, func(i, j int) bool { return round[i].Rank < round[j].Rank })
		rounds = append(rounds, Round{Number: number, Scores: round})
	}
	return rounds
}
