package stats

import (
	"testing"
	"time"
)

func TestScoreRankingsIncludeOngoingMatches(t *testing.T) {
	finished := buildMatch(1, testTime(time.May, 1, 19), standardNames, team1WinRound)
	open := ongoing(buildMatch(2, testTime(time.May, 2, 19), standardNames, team1WinRound))

	rankings := ScoreRankings([]MatchData{finished, open})
	if len(rankings) != 4 {
		t.Fatalf("rankings length = %d, want 4", len(rankings))
	}
	// A scores 3 in both matches, the ongoing one included.
	if rankings[0].Name != "A" || rankings[0].Score != 6 {
		t.Errorf("rankings[0] = %+v, want A with 6", rankings[0])
	}
	for i, r := range rankings {
		if r.Position != i+1 {
			t.Errorf("rankings[%d].Position = %d, want %d", i, r.Position, i+1)
		}
	}
}

func TestWinRateRankingsOrder(t *testing.T) {
	// A and C win both matches, B and D lose both.
	matches := []MatchData{
		buildMatch(1, testTime(time.May, 1, 19), standardNames, team1WinRound),
		buildMatch(2, testTime(time.May, 2, 19), standardNames, team1WinRound),
	}
	agg := BuildAggregates(matches, DefaultProfitCap)

	rankings := WinRateRankings(agg)
	if len(rankings) != 4 {
		t.Fatalf("rankings length = %d, want 4", len(rankings))
	}
	if rankings[0].Rate != 1.0 || rankings[0].Name != "A" {
		t.Errorf("rankings[0] = %+v, want A at 1.0", rankings[0])
	}
	if rankings[3].Rate != 0.0 {
		t.Errorf("rankings[3] = %+v, want a 0.0 rate at the bottom", rankings[3])
	}
}
