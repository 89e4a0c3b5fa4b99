package stats

import (
	"sort"

	"github.com/guandanclub/scorekeeper/internal/models"
)

// LevelCards is the ordered progression of level cards. Both teams start
// on "2" and cannot advance past "A".
var LevelCards = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// LevelLabel returns the card shown for a level index, clamping indexes
// outside the valid range.
func LevelLabel(index int) string {
	if index < 0 {
		index = 0
	}
	if index > len(LevelCards)-1 {
		index = len(LevelCards) - 1
	}
	return LevelCards[index]
}

// TeamLevels replays a match's rounds in order and returns each team's
// level index (0-based into LevelCards).
//
// Per round, only the team holding first place can advance. Its gain is
// the number of its ranks strictly better than the best rank the other
// team achieved that round, so a full sweep of the top seats climbs the
// ladder faster. Levels are clamped at the final card.
func TeamLevels(players []models.Player, scores []models.RoundScore) map[int]int {
	teamOf := make(map[uint]int, len(players))
	for _, p := range players {
		teamOf[p.ID] = p.Team
	}

	byRound := make(map[int][]models.RoundScore)
	for _, s := range scores {
		byRound[s.RoundNumber] = append(byRound[s.RoundNumber], s)
	}
	roundNumbers := make([]int, 0, len(byRound))
	for number := range byRound {
		roundNumbers = append(roundNumbers, number)
	}
	sort.Ints(roundNumbers)

	levels := map[int]int{1: 0, 2: 0}
	for _, number := range roundNumbers {
		round := byRound[number]
		sort.Slice(round, func(i, j int) bool { return round[i].Rank < round[j].Rank })

		teamRanks := map[int][]int{1: nil, 2: nil}
		for _, s := range round {
			team := teamOf[s.PlayerID]
			teamRanks[team] = append(teamRanks[team], s.Rank)
		}
		if len(teamRanks[1]) == 0 || len(teamRanks[2]) == 0 {
			continue
		}

		firstTeam := teamOf[round[0].PlayerID]
		otherTeam := 3 - firstTeam

		opponentBest := teamRanks[otherTeam][0]
		for _, rank := range teamRanks[otherTeam] {
			if rank < opponentBest {
				opponentBest = rank
			}
		}

		leadingCount := 0
		for _, rank := range teamRanks[firstTeam] {
			if rank < opponentBest {
				leadingCount++
			}
		}

		levels[firstTeam] += leadingCount
		if levels[firstTeam] > len(LevelCards)-1 {
			levels[firstTeam] = len(LevelCards) - 1
		}
	}
	return levels
}

// TeamLevelLabels is TeamLevels rendered as card labels.
func TeamLevelLabels(players []models.Player, scores []models.RoundScore) map[int]string {
	levels := TeamLevels(players, scores)
	return map[int]string{
		1: LevelLabel(levels[1]),
		2: LevelLabel(levels[2]),
	}
}
