package stats

import (
	"testing"
	"time"
)

func TestBuildAggregatesWinLossProfit(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames, team1WinRound)
	agg := BuildAggregates([]MatchData{md}, DefaultProfitCap)

	a := agg.Get("A")
	if a == nil {
		t.Fatal("no aggregate for A")
	}
	if a.Matches != 1 || a.Wins != 1 {
		t.Errorf("A: matches/wins = %d/%d, want 1/1", a.Matches, a.Wins)
	}
	if a.TotalScore != 3 {
		t.Errorf("A: total score = %d, want 3", a.TotalScore)
	}
	if a.FirstPlaces != 1 {
		t.Errorf("A: first places = %d, want 1", a.FirstPlaces)
	}
	if a.MaxSingleRoundScore != 3 {
		t.Errorf("A: max single round = %d, want 3", a.MaxSingleRoundScore)
	}
	if a.Profit != 8 {
		t.Errorf("A: profit = %d, want +8 (full gap under the cap)", a.Profit)
	}

	b := agg.Get("B")
	if b.Wins != 0 {
		t.Errorf("B: wins = %d, want 0", b.Wins)
	}
	if b.Profit != -8 {
		t.Errorf("B: profit = %d, want -8", b.Profit)
	}
	if b.WinRate() != 0 {
		t.Errorf("B: win rate = %f, want 0", b.WinRate())
	}
}

func TestBuildAggregatesTie(t *testing.T) {
	// Mirrored rounds: both teams finish at 0.
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames,
		scenarioRound, [4]int{2, 1, 4, 3})
	agg := BuildAggregates([]MatchData{md}, DefaultProfitCap)

	for _, name := range []string{"A", "B", "C", "D"} {
		a := agg.Get(name)
		if a.Wins != 1 {
			t.Errorf("%s: wins = %d, want 1 (ties are wins for everyone)", name, a.Wins)
		}
		if a.Profit != 0 {
			t.Errorf("%s: profit = %d, want 0 on a tie", name, a.Profit)
		}
	}

	// Ties count in the teammate pair bucket but not the opponent bucket.
	a := agg.Get("A")
	if got := a.Teammates["C"].Wins; got != 1 {
		t.Errorf("A/C teammate wins = %d, want 1 on a tie", got)
	}
	if got := a.Opponents["B"].Wins; got != 0 {
		t.Errorf("A vs B opponent wins = %d, want 0 on a tie", got)
	}
}

func TestBuildAggregatesSkipsOngoingMatches(t *testing.T) {
	finished := buildMatch(1, testTime(time.March, 1, 19), standardNames, team1WinRound)
	open := ongoing(buildMatch(2, testTime(time.March, 2, 19), standardNames, team1WinRound))
	agg := BuildAggregates([]MatchData{finished, open}, DefaultProfitCap)

	if a := agg.Get("A"); a.Matches != 1 {
		t.Errorf("A: matches = %d, want 1 (ongoing match ignored)", a.Matches)
	}
}

func TestBuildAggregatesProfitCap(t *testing.T) {
	// Twelve sweep rounds give a 96-point gap, beyond the ±88 cap.
	rounds := make([][4]int, 12)
	for i := range rounds {
		rounds[i] = team1WinRound
	}
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames, rounds...)
	agg := BuildAggregates([]MatchData{md}, DefaultProfitCap)

	if got := agg.Get("A").Profit; got != 88 {
		t.Errorf("A: profit = %d, want +88 (capped)", got)
	}
	if got := agg.Get("B").Profit; got != -88 {
		t.Errorf("B: profit = %d, want -88 (capped)", got)
	}
}

func TestBuildAggregatesComeback(t *testing.T) {
	// Team 1 trails by 4 after round one and leads by 4 after round two.
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames,
		[4]int{2, 1, 4, 3}, team1WinRound)
	agg := BuildAggregates([]MatchData{md}, DefaultProfitCap)

	for _, name := range []string{"A", "C"} {
		if got := agg.Get(name).Comebacks; got != 1 {
			t.Errorf("%s: comebacks = %d, want 1", name, got)
		}
	}
	for _, name := range []string{"B", "D"} {
		if got := agg.Get(name).Comebacks; got != 0 {
			t.Errorf("%s: comebacks = %d, want 0", name, got)
		}
	}
}

func TestBuildAggregatesNoComebackOnSingleRound(t *testing.T) {
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames, team1WinRound)
	agg := BuildAggregates([]MatchData{md}, DefaultProfitCap)

	for _, name := range []string{"A", "B", "C", "D"} {
		if got := agg.Get(name).Comebacks; got != 0 {
			t.Errorf("%s: comebacks = %d, want 0 for a one-round match", name, got)
		}
	}
}

func TestBuildAggregatesRankHistory(t *testing.T) {
	// A finishes 1st then 4th: rank range 3 for the match.
	md := buildMatch(1, testTime(time.March, 1, 19), standardNames,
		scenarioRound, [4]int{4, 2, 3, 1})
	agg := BuildAggregates([]MatchData{md}, DefaultProfitCap)

	a := agg.Get("A")
	if len(a.Ranks) != 2 || a.Ranks[0] != 1 || a.Ranks[1] != 4 {
		t.Errorf("A: ranks = %v, want [1 4]", a.Ranks)
	}
	if len(a.MatchRankRanges) != 1 || a.MatchRankRanges[0] != 3 {
		t.Errorf("A: rank ranges = %v, want [3]", a.MatchRankRanges)
	}

	// Single-round matches record ranks but no range.
	single := buildMatch(2, testTime(time.March, 2, 19), standardNames, scenarioRound)
	agg = BuildAggregates([]MatchData{single}, DefaultProfitCap)
	if got := agg.Get("A").MatchRankRanges; len(got) != 0 {
		t.Errorf("A: rank ranges = %v, want none for a one-round match", got)
	}
}

func TestBuildAggregatesMergesResolvedNames(t *testing.T) {
	first := buildMatch(1, testTime(time.March, 1, 19), [4]string{"Li  Lei", "B", "C", "D"}, team1WinRound)
	second := buildMatch(2, testTime(time.March, 2, 19), [4]string{" Li Lei ", "B", "C", "D"}, team1WinRound)
	agg := BuildAggregates([]MatchData{first, second}, DefaultProfitCap)

	a := agg.Get("Li Lei")
	if a == nil {
		t.Fatal("no aggregate for resolved name \"Li Lei\"")
	}
	if a.Matches != 2 {
		t.Errorf("Li Lei: matches = %d, want 2 (name variants merged)", a.Matches)
	}
}

func TestWinRateZeroMatches(t *testing.T) {
	a := &PlayerAggregate{}
	if got := a.WinRate(); got != 0 {
		t.Errorf("win rate with zero matches = %f, want 0", got)
	}
}
