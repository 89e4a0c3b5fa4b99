package stats

import (
	"testing"
	"time"
)

func TestSummarizeScenario(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames, scenarioRound)
	summary := Summarize(md.Match, md.Players, md.Scores)

	wantOrder := []string{"A", "B", "C", "D"}
	wantTotals := []int{3, 1, -1, -3}
	if len(summary.Standings) != 4 {
		t.Fatalf("standings length = %d, want 4", len(summary.Standings))
	}
	for i, st := range summary.Standings {
		if st.Player.Name != wantOrder[i] || st.Total != wantTotals[i] {
			t.Errorf("standings[%d] = %s/%d, want %s/%d", i, st.Player.Name, st.Total, wantOrder[i], wantTotals[i])
		}
	}

	if summary.TeamScores[1] != 2 || summary.TeamScores[2] != -2 {
		t.Errorf("team scores = %v, want 1:2 2:-2", summary.TeamScores)
	}
	if summary.ScoreGap != 4 {
		t.Errorf("score gap = %d, want 4", summary.ScoreGap)
	}
	if summary.LeadingTeam != 1 {
		t.Errorf("leading team = %d, want 1", summary.LeadingTeam)
	}
	if summary.TeamLevels[1] != "3" || summary.TeamLevels[2] != "2" {
		t.Errorf("team levels = %v, want 1:\"3\" 2:\"2\"", summary.TeamLevels)
	}

	if len(summary.Rounds) != 1 || summary.Rounds[0].Number != 1 {
		t.Fatalf("rounds = %+v, want one round numbered 1", summary.Rounds)
	}
	for i, s := range summary.Rounds[0].Scores {
		if s.Rank != i+1 {
			t.Errorf("round scores not ordered by rank: position %d has rank %d", i, s.Rank)
		}
	}
}

func TestSummarizeTieKeepsSeatOrder(t *testing.T) {
	// Both rounds mirror each other: A and B tie at 4, C and D at -4, and
	// the teams tie overall.
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames,
		scenarioRound, [4]int{2, 1, 4, 3})
	summary := Summarize(md.Match, md.Players, md.Scores)

	wantOrder := []string{"A", "B", "C", "D"}
	for i, st := range summary.Standings {
		if st.Player.Name != wantOrder[i] {
			t.Errorf("standings[%d] = %s, want %s (stable seat order on ties)", i, st.Player.Name, wantOrder[i])
		}
	}
	if summary.ScoreGap != 0 {
		t.Errorf("score gap = %d, want 0", summary.ScoreGap)
	}
	if summary.LeadingTeam != 0 {
		t.Errorf("leading team = %d, want 0 on a tie", summary.LeadingTeam)
	}
}

func TestSummarizeGroupsRoundsChronologically(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames,
		scenarioRound, team2WinRound, team1WinRound)
	summary := Summarize(md.Match, md.Players, md.Scores)

	if len(summary.Rounds) != 3 {
		t.Fatalf("rounds length = %d, want 3", len(summary.Rounds))
	}
	for i, round := range summary.Rounds {
		if round.Number != i+1 {
			t.Errorf("rounds[%d].Number = %d, want %d", i, round.Number, i+1)
		}
		if len(round.Scores) != 4 {
			t.Errorf("rounds[%d] has %d scores, want 4", i, len(round.Scores))
		}
	}
}
