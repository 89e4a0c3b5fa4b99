package stats

import (
	"sort"
	"time"

	"github.com/guandanclub/scorekeeper/internal/models"
)

// ReportOptions tunes the minimum-sample gates of the annual report.
// Zero values fall back to the house defaults.
type ReportOptions struct {
	// MinMatches gates every rate-based board (win rate, consistency,
	// runner-up, charm, rollercoaster). Inclusive: exactly MinMatches
	// qualifies.
	MinMatches int
	// MinJointMatches gates pair boards (rivalry, worst partner, best
	// partners).
	MinJointMatches int
	// MinCharmJoint is the per-teammate pairing floor for the charm
	// metrics.
	MinCharmJoint int
	// ProfitCap bounds the per-match profit transfer.
	ProfitCap int
}

func (o ReportOptions) withDefaults() ReportOptions {
	if o.MinMatches == 0 {
		o.MinMatches = 10
	}
	if o.MinJointMatches == 0 {
		o.MinJointMatches = 10
	}
	if o.MinCharmJoint == 0 {
		o.MinCharmJoint = 5
	}
	if o.ProfitCap == 0 {
		o.ProfitCap = DefaultProfitCap
	}
	return o
}

// PlayerValue is a player with an integer superlative value.
type PlayerValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PlayerRate is a player's win-rate entry.
type PlayerRate struct {
	Name    string  `json:"name"`
	Matches int     `json:"matches"`
	Wins    int     `json:"wins"`
	Rate    float64 `json:"rate"`
}

// PlayerFloat is a player with a float-valued superlative (e.g. rank
// variance).
type PlayerFloat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// PairValue is an unordered player pair with a joint-match count.
type PairValue struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Matches int    `json:"matches"`
}

// PairRate is an unordered teammate pair with its joint win rate.
type PairRate struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Matches int     `json:"matches"`
	Wins    int     `json:"wins"`
	Rate    float64 `json:"rate"`
}

// CharmEntry is a charm-metric winner: the average of (joint win rate −
// teammate's overall win rate) over their qualifying teammates.
type CharmEntry struct {
	Name      string  `json:"name"`
	Average   float64 `json:"average"`
	Teammates int     `json:"teammates"`
}

// LocationCount is a venue with its match count.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// MatchRef points at a match for time-of-day records.
type MatchRef struct {
	MatchID  uint      `json:"match_id"`
	Time     time.Time `json:"time"`
	Location string    `json:"location,omitempty"`
}

// MatchPlayerScore is a per-match single-player scoring record.
type MatchPlayerScore struct {
	Name    string `json:"name"`
	MatchID uint   `json:"match_id"`
	Score   int    `json:"score"`
}

// SwingRecord is the largest round-to-round change in the team-score gap.
type SwingRecord struct {
	MatchID uint `json:"match_id"`
	Round   int  `json:"round"`
	Swing   int  `json:"swing"`
}

// GapRecord is a final team-score gap record.
type GapRecord struct {
	MatchID uint `json:"match_id"`
	Gap     int  `json:"gap"`
}

// ProfitEntry is one row of the profit/loss ledger.
type ProfitEntry struct {
	Name   string `json:"name"`
	Profit int    `json:"profit"`
}

// AnnualReport is the full year-in-review. Every pointer field is nil
// when its candidate pool is empty; that renders as "no data", never as
// an error.
type AnnualReport struct {
	Year int `json:"year"`

	TotalMatches        int     `json:"total_matches"`
	FinishedMatches     int     `json:"finished_matches"`
	TotalRounds         int     `json:"total_rounds"`
	TotalParticipations int     `json:"total_participations"`
	DistinctPlayers     int     `json:"distinct_players"`
	MonthlyHistogram    [12]int `json:"monthly_histogram"`

	TopLocations  []LocationCount `json:"top_locations"`
	EarliestMatch *MatchRef       `json:"earliest_match"`
	LatestMatch   *MatchRef       `json:"latest_match"`

	TopScorer    *PlayerValue `json:"top_scorer"`    // 积分王
	TopWinRate   *PlayerRate  `json:"top_win_rate"`  // 胜率王
	IronMan      *PlayerValue `json:"iron_man"`      // 铁人奖
	BestPartners []PairRate   `json:"best_partners"` // top 3 by joint win rate

	MostFirstPlaces   *PlayerValue `json:"most_first_places"`
	MostConsistent    *PlayerFloat `json:"most_consistent"` // lowest rank variance
	MostComebacks     *PlayerValue `json:"most_comebacks"`
	PerennialRunnerUp *PlayerRate  `json:"perennial_runner_up"`

	LuckyCharm   *CharmEntry `json:"lucky_charm"`
	BadLuckCharm *CharmEntry `json:"bad_luck_charm"`

	Rollercoaster *PlayerValue `json:"rollercoaster"` // largest in-match rank spread

	StrongestRivalry    *PairValue `json:"strongest_rivalry"`
	MostFrequentPartner *PairValue `json:"most_frequent_partner"`
	GoldenPartner       *PairRate  `json:"golden_partner"`
	WorstPartner        *PairRate  `json:"worst_partner"`

	HighestMatchScore *MatchPlayerScore `json:"highest_match_score"`
	BiggestSwing      *SwingRecord      `json:"biggest_swing"`
	ClosestMatch      *GapRecord        `json:"closest_match"`
	MostLopsided      *GapRecord        `json:"most_lopsided"`

	ProfitLedger []ProfitEntry `json:"profit_ledger"`
	TopProfit    *ProfitEntry  `json:"top_profit"`
	BottomProfit *ProfitEntry  `json:"bottom_profit"`
}

// BuildAnnualReport computes the year-in-review over a snapshot of match
// data. Matches qualify by the calendar year of their scheduled time;
// matches without a time are left out. The computation is pure: running
// it twice over the same snapshot yields identical reports.
func BuildAnnualReport(year int, matches []MatchData, opts ReportOptions) *AnnualReport {
	opts = opts.withDefaults()

	var yearMatches []MatchData
	for _, md := range matches {
		if md.Match.Time != nil && md.Match.Time.Year() == year {
			yearMatches = append(yearMatches, md)
		}
	}

	agg := BuildAggregates(yearMatches, opts.ProfitCap)

	report := &AnnualReport{Year: year}
	report.fillCounts(yearMatches)
	report.fillLeaderboards(agg, opts)
	report.fillSuperlatives(agg, opts)
	report.fillCharms(agg, opts)
	report.fillHeadToHead(agg, opts)
	report.fillRecords(yearMatches)
	report.fillProfitLedger(agg)
	return report
}

func (r *AnnualReport) fillCounts(matches []MatchData) {
	distinct := make(map[string]bool)
	var earliest, latest *MatchData

	for i := range matches {
		md := &matches[i]
		r.TotalMatches++
		if md.Match.Status == models.StatusFinished {
			r.FinishedMatches++
		}
		if md.Match.PlayerCount > 0 {
			r.TotalRounds += len(md.Scores) / md.Match.PlayerCount
		}
		r.TotalParticipations += len(md.Players)
		for _, p := range md.Players {
			distinct[ResolveName(p.Name)] = true
		}
		r.MonthlyHistogram[int(md.Match.Time.Month())-1]++

		if earliest == nil || secondsOfDay(*md.Match.Time) < secondsOfDay(*earliest.Match.Time) {
			earliest = md
		}
		if latest == nil || secondsOfDay(*md.Match.Time) > secondsOfDay(*latest.Match.Time) {
			latest = md
		}
	}
	r.DistinctPlayers = len(distinct)

	if earliest != nil {
		r.EarliestMatch = &MatchRef{MatchID: earliest.Match.ID, Time: *earliest.Match.Time, Location: earliest.Match.Location}
	}
	if latest != nil {
		r.LatestMatch = &MatchRef{MatchID: latest.Match.ID, Time: *latest.Match.Time, Location: latest.Match.Location}
	}

	counts := make(map[string]int)
	for _, md := range matches {
		if md.Match.Location != "" {
			counts[md.Match.Location]++
		}
	}
	locations := make([]LocationCount, 0, len(counts))
	for location, count := range counts {
		locations = append(locations, LocationCount{Location: location, Count: count})
	}
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Count != locations[j].Count {
			return locations[i].Count > locations[j].Count
		}
		return locations[i].Location < locations[j].Location
	})
	if len(locations) > 3 {
		locations = locations[:3]
	}
	r.TopLocations = locations
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func (r *AnnualReport) fillLeaderboards(agg *Aggregates, opts ReportOptions) {
	for _, name := range agg.Names() {
		a := agg.Get(name)

		if r.TopScorer == nil || a.TotalScore > r.TopScorer.Value {
			r.TopScorer = &PlayerValue{Name: name, Value: a.TotalScore}
		}
		if r.IronMan == nil || a.Matches > r.IronMan.Value {
			r.IronMan = &PlayerValue{Name: name, Value: a.Matches}
		}
		if a.Matches >= opts.MinMatches {
			if r.TopWinRate == nil || a.WinRate() > r.TopWinRate.Rate {
				r.TopWinRate = &PlayerRate{Name: name, Matches: a.Matches, Wins: a.Wins, Rate: a.WinRate()}
			}
		}
	}

	pairs := teammatePairs(agg)
	var qualified []PairRate
	for _, p := range pairs {
		if p.Matches >= opts.MinJointMatches {
			qualified = append(qualified, p)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].Rate != qualified[j].Rate {
			return qualified[i].Rate > qualified[j].Rate
		}
		return qualified[i].Matches > qualified[j].Matches
	})
	if len(qualified) > 3 {
		qualified = qualified[:3]
	}
	r.BestPartners = qualified
	if len(qualified) > 0 {
		golden := qualified[0]
		r.GoldenPartner = &golden
	}
}

func (r *AnnualReport) fillSuperlatives(agg *Aggregates, opts ReportOptions) {
	for _, name := range agg.Names() {
		a := agg.Get(name)

		if r.MostFirstPlaces == nil || a.FirstPlaces > r.MostFirstPlaces.Value {
			r.MostFirstPlaces = &PlayerValue{Name: name, Value: a.FirstPlaces}
		}
		if r.MostComebacks == nil || a.Comebacks > r.MostComebacks.Value {
			r.MostComebacks = &PlayerValue{Name: name, Value: a.Comebacks}
		}

		if a.Matches >= opts.MinMatches {
			if len(a.Ranks) >= 1 {
				variance := rankVariance(a.Ranks)
				if r.MostConsistent == nil || variance < r.MostConsistent.Value {
					r.MostConsistent = &PlayerFloat{Name: name, Value: variance}
				}
			}
			if r.PerennialRunnerUp == nil || a.WinRate() < r.PerennialRunnerUp.Rate {
				r.PerennialRunnerUp = &PlayerRate{Name: name, Matches: a.Matches, Wins: a.Wins, Rate: a.WinRate()}
			}
			for _, spread := range a.MatchRankRanges {
				if r.Rollercoaster == nil || spread > r.Rollercoaster.Value {
					r.Rollercoaster = &PlayerValue{Name: name, Value: spread}
				}
			}
		}
	}
}

func rankVariance(ranks []int) float64 {
	sum := 0
	for _, rank := range ranks {
		sum += rank
	}
	mean := float64(sum) / float64(len(ranks))
	variance := 0.0
	for _, rank := range ranks {
		d := float64(rank) - mean
		variance += d * d
	}
	return variance / float64(len(ranks))
}

func (r *AnnualReport) fillCharms(agg *Aggregates, opts ReportOptions) {
	for _, name := range agg.Names() {
		a := agg.Get(name)
		if a.Matches < opts.MinMatches {
			continue
		}

		sum := 0.0
		qualifying := 0
		for teammate, rec := range a.Teammates {
			if rec.Matches < opts.MinCharmJoint {
				continue
			}
			overall := agg.Get(teammate)
			if overall == nil {
				continue
			}
			jointRate := float64(rec.Wins) / float64(rec.Matches)
			sum += jointRate - overall.WinRate()
			qualifying++
		}
		if qualifying == 0 {
			continue
		}
		average := sum / float64(qualifying)

		if average > 0 && (r.LuckyCharm == nil || average > r.LuckyCharm.Average) {
			r.LuckyCharm = &CharmEntry{Name: name, Average: average, Teammates: qualifying}
		}
		if average < 0 && (r.BadLuckCharm == nil || average < r.BadLuckCharm.Average) {
			r.BadLuckCharm = &CharmEntry{Name: name, Average: average, Teammates: qualifying}
		}
	}
}

func (r *AnnualReport) fillHeadToHead(agg *Aggregates, opts ReportOptions) {
	for _, p := range teammatePairs(agg) {
		if r.MostFrequentPartner == nil || p.Matches > r.MostFrequentPartner.Matches {
			r.MostFrequentPartner = &PairValue{A: p.A, B: p.B, Matches: p.Matches}
		}
		if p.Matches >= opts.MinJointMatches {
			if r.WorstPartner == nil || p.Rate < r.WorstPartner.Rate {
				worst := p
				r.WorstPartner = &worst
			}
		}
	}

	for _, p := range opponentPairs(agg) {
		if p.Matches < opts.MinJointMatches {
			continue
		}
		if r.StrongestRivalry == nil || p.Matches > r.StrongestRivalry.Matches {
			rivalry := p
			r.StrongestRivalry = &rivalry
		}
	}
}

// teammatePairs enumerates unordered teammate pairs in first-encountered
// player order (partners sorted by name within each player), so repeated
// runs visit pairs identically. Joint wins are symmetric for teammates.
func teammatePairs(agg *Aggregates) []PairRate {
	seen := make(map[[2]string]bool)
	var pairs []PairRate
	for _, name := range agg.Names() {
		a := agg.Get(name)
		partners := make([]string, 0, len(a.Teammates))
		for partner := range a.Teammates {
			partners = append(partners, partner)
		}
		sort.Strings(partners)
		for _, partner := range partners {
			key := pairKey(name, partner)
			if seen[key] {
				continue
			}
			seen[key] = true
			rec := a.Teammates[partner]
			rate := 0.0
			if rec.Matches > 0 {
				rate = float64(rec.Wins) / float64(rec.Matches)
			}
			pairs = append(pairs, PairRate{A: name, B: partner, Matches: rec.Matches, Wins: rec.Wins, Rate: rate})
		}
	}
	return pairs
}

// opponentPairs enumerates unordered opponent pairs with joint-match
// counts only; opponent wins are perspective-dependent and unused here.
func opponentPairs(agg *Aggregates) []PairValue {
	seen := make(map[[2]string]bool)
	var pairs []PairValue
	for _, name := range agg.Names() {
		a := agg.Get(name)
		opponents := make([]string, 0, len(a.Opponents))
		for opponent := range a.Opponents {
			opponents = append(opponents, opponent)
		}
		sort.Strings(opponents)
		for _, opponent := range opponents {
			key := pairKey(name, opponent)
			if seen[key] {
				continue
			}
			seen[key] = true
			pairs = append(pairs, PairValue{A: name, B: opponent, Matches: a.Opponents[opponent].Matches})
		}
	}
	return pairs
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func (r *AnnualReport) fillRecords(matches []MatchData) {
	for _, md := range matches {
		if md.Match.Status != models.StatusFinished {
			continue
		}
		ledger := NewLedger(md.Players, md.Scores)

		for _, p := range md.Players {
			total := ledger.TotalScore(p.ID)
			if r.HighestMatchScore == nil || total > r.HighestMatchScore.Score {
				r.HighestMatchScore = &MatchPlayerScore{
					Name:    ResolveName(p.Name),
					MatchID: md.Match.ID,
					Score:   total,
				}
			}
		}

		teamOf := make(map[uint]int, len(md.Players))
		for _, p := range md.Players {
			teamOf[p.ID] = p.Team
		}
		diff := 0
		previous := 0
		for i, round := range groupRounds(md.Scores) {
			for _, s := range round.Scores {
				if teamOf[s.PlayerID] == 1 {
					diff += s.Points
				} else {
					diff -= s.Points
				}
			}
			if i > 0 {
				swing := diff - previous
				if swing < 0 {
					swing = -swing
				}
				if r.BiggestSwing == nil || swing > r.BiggestSwing.Swing {
					r.BiggestSwing = &SwingRecord{MatchID: md.Match.ID, Round: round.Number, Swing: swing}
				}
			}
			previous = diff
		}

		gap := ledger.TeamScore(1) - ledger.TeamScore(2)
		if gap < 0 {
			gap = -gap
		}
		if r.ClosestMatch == nil || gap < r.ClosestMatch.Gap {
			r.ClosestMatch = &GapRecord{MatchID: md.Match.ID, Gap: gap}
		}
		if r.MostLopsided == nil || gap > r.MostLopsided.Gap {
			r.MostLopsided = &GapRecord{MatchID: md.Match.ID, Gap: gap}
		}
	}
}

func (r *AnnualReport) fillProfitLedger(agg *Aggregates) {
	ledger := make([]ProfitEntry, 0, agg.Len())
	for _, name := range agg.Names() {
		ledger = append(ledger, ProfitEntry{Name: name, Profit: agg.Get(name).Profit})
	}
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Profit > ledger[j].Profit
	})
	r.ProfitLedger = ledger
	if len(ledger) > 0 {
		top := ledger[0]
		bottom := ledger[len(ledger)-1]
		r.TopProfit = &top
		r.BottomProfit = &bottom
	}
}
