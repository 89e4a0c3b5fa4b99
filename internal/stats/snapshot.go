package stats

import "github.com/guandanclub/scorekeeper/internal/models"

// SnapshotSource is the slice of the storage layer the statistics code
// reads through. match.MatchRepository satisfies it.
type SnapshotSource interface {
	ListMatches(year *int) ([]models.Match, error)
	ListPlayers(matchID uint) ([]models.Player, error)
	ListRoundScores(matchID uint) ([]models.RoundScore, error)
}

// LoadSnapshot reads every match (optionally one calendar year) with its
// players and round records. It is the only place stats touches storage;
// everything downstream works on the returned slice and stays pure.
func LoadSnapshot(repo SnapshotSource, year *int) ([]MatchData, error) {
	matches, err := repo.ListMatches(year)
	if err != nil {
		return nil, err
	}

	snapshot := make([]MatchData, 0, len(matches))
	for _, m := range matches {
		players, err := repo.ListPlayers(m.ID)
		if err != nil {
			return nil, err
		}
		scores, err := repo.ListRoundScores(m.ID)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, MatchData{Match: m, Players: players, Scores: scores})
	}
	return snapshot, nil
}
