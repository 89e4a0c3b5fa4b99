package stats

import (
	"time"

	"gorm.io/gorm"

	"github.com/guandanclub/scorekeeper/internal/models"
)

// Standard four-player rule used by every fixture: {1:3, 2:1, 3:-1, 4:-3}.
var testRule = [4]int{3, 1, -1, -3}

// Common rounds, given as seat numbers in rank order.
var (
	team1WinRound = [4]int{1, 3, 2, 4} // team 1 sweeps the top: +8 gap
	team2WinRound = [4]int{2, 4, 1, 3} // mirror image: -8 gap
	scenarioRound = [4]int{1, 2, 3, 4} // alternating seats: +4 gap
)

func testTime(month time.Month, day, hour int) time.Time {
	return time.Date(2025, month, day, hour, 0, 0, 0, time.UTC)
}

// buildMatch makes a finished four-player match under the standard rule.
// names are seat-ordered (seats 1 and 3 form team 1); each round lists
// seat numbers in rank order. Player IDs are id*10+seat so they stay
// unique across fixture matches.
func buildMatch(id uint, t time.Time, names [4]string, rounds ...[4]int) MatchData {
	m := models.Match{
		Model:       gorm.Model{ID: id},
		PlayerCount: 4,
		Time:        &t,
		Status:      models.StatusFinished,
	}
	players := make([]models.Player, 4)
	for seat := 1; seat <= 4; seat++ {
		players[seat-1] = models.Player{
			Model:        gorm.Model{ID: id*10 + uint(seat)},
			MatchID:      id,
			PlayerNumber: seat,
			Name:         names[seat-1],
			Team:         models.TeamForNumber(seat),
		}
	}
	var scores []models.RoundScore
	for r, seats := range rounds {
		for rankIdx, seat := range seats {
			scores = append(scores, models.RoundScore{
				MatchID:     id,
				RoundNumber: r + 1,
				PlayerID:    id*10 + uint(seat),
				Rank:        rankIdx + 1,
				Points:      testRule[rankIdx],
			})
		}
	}
	return MatchData{Match: m, Players: players, Scores: scores}
}

func ongoing(md MatchData) MatchData {
	md.Match.Status = models.StatusOngoing
	return md
}

var standardNames = [4]string{"A", "B", "C", "D"}
