package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/guandanclub/scorekeeper/internal/models"
)

func TestLedgerTotals(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames, scenarioRound)
	ledger := NewLedger(md.Players, md.Scores)

	wantTotals := map[int]int{1: 3, 2: 1, 3: -1, 4: -3} // by seat
	for seat, want := range wantTotals {
		got := ledger.TotalScore(md.Players[seat-1].ID)
		if got != want {
			t.Errorf("seat %d: TotalScore = %d, want %d", seat, got, want)
		}
	}

	if got := ledger.TeamScore(1); got != 2 {
		t.Errorf("TeamScore(1) = %d, want 2", got)
	}
	if got := ledger.TeamScore(2); got != -2 {
		t.Errorf("TeamScore(2) = %d, want -2", got)
	}
}

func TestLedgerNoRounds(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames)
	ledger := NewLedger(md.Players, md.Scores)

	for _, p := range md.Players {
		if got := ledger.TotalScore(p.ID); got != 0 {
			t.Errorf("TotalScore(%d) = %d, want 0 before any rounds", p.ID, got)
		}
	}
	if got := ledger.TeamScore(1); got != 0 {
		t.Errorf("TeamScore(1) = %d, want 0", got)
	}
}

func TestLedgerScoreConservation(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames,
		scenarioRound, team1WinRound, team2WinRound)
	ledger := NewLedger(md.Players, md.Scores)

	playerSum := 0
	for _, p := range md.Players {
		playerSum += ledger.TotalScore(p.ID)
	}
	recordSum := 0
	for _, s := range md.Scores {
		recordSum += s.Points
	}
	if playerSum != recordSum {
		t.Errorf("sum over players = %d, sum over records = %d", playerSum, recordSum)
	}
}

func TestLedgerValidate(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames, scenarioRound)

	tests := []struct {
		name    string
		scores  []models.RoundScore
		wantErr bool
	}{
		{
			name:   "valid round",
			scores: md.Scores,
		},
		{
			name: "duplicate rank",
			scores: []models.RoundScore{
				{MatchID: 1, RoundNumber: 1, PlayerID: 11, Rank: 1, Points: 3},
				{MatchID: 1, RoundNumber: 1, PlayerID: 12, Rank: 1, Points: 3},
				{MatchID: 1, RoundNumber: 1, PlayerID: 13, Rank: 3, Points: -1},
				{MatchID: 1, RoundNumber: 1, PlayerID: 14, Rank: 4, Points: -3},
			},
			wantErr: true,
		},
		{
			name: "duplicate player",
			scores: []models.RoundScore{
				{MatchID: 1, RoundNumber: 1, PlayerID: 11, Rank: 1, Points: 3},
				{MatchID: 1, RoundNumber: 1, PlayerID: 11, Rank: 2, Points: 1},
				{MatchID: 1, RoundNumber: 1, PlayerID: 13, Rank: 3, Points: -1},
				{MatchID: 1, RoundNumber: 1, PlayerID: 14, Rank: 4, Points: -3},
			},
			wantErr: true,
		},
		{
			name: "rank out of range",
			scores: []models.RoundScore{
				{MatchID: 1, RoundNumber: 1, PlayerID: 11, Rank: 5, Points: 3},
			},
			wantErr: true,
		},
		{
			name: "incomplete round",
			scores: []models.RoundScore{
				{MatchID: 1, RoundNumber: 1, PlayerID: 11, Rank: 1, Points: 3},
				{MatchID: 1, RoundNumber: 1, PlayerID: 12, Rank: 2, Points: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLedger(md.Players, tt.scores)
			err := ledger.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRound) {
					t.Errorf("Validate() = %v, want ErrInvalidRound", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
