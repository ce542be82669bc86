package scoring

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

// flat bonus on qualifying points for starting from pole
const poleBonus = 4

type Scorer struct {
	points *model.PointsStructure
}

func NewScorer(points *model.PointsStructure) *Scorer {
	return &Scorer{points: points}
}

// Outcome carries the scored rows of one race together with the team that
// led the most turns. MostLedTeam is empty when no team led a turn.
type Outcome struct {
	Results     []model.Result
	MostLedTeam string
}

// Score combines the starting grid with the collected finish data into one
// scored result per car. The caller supplies exactly one entry per grid
// car, marking non-finishers DNQ; an entry referencing a car outside the
// grid is a contract violation and returns an error.
func (s *Scorer) Score(grid []model.GridEntry, raw []model.RawFinish) (*Outcome, error) {
	byCar := make(map[int]*model.GridEntry, len(grid))
	teamOrder := make([]string, 0)
	seenTeam := make(map[string]bool)
	for i := range grid {
		byCar[grid[i].CarNumber] = &grid[i]
		if !seenTeam[grid[i].Team] {
			seenTeam[grid[i].Team] = true
			teamOrder = append(teamOrder, grid[i].Team)
		}
	}

	teamFinishes := make(map[string][]int)
	teamTurnsLed := make(map[string]int)
	for _, r := range raw {
		entry, ok := byCar[r.CarNumber]
		if !ok {
			return nil, fmt.Errorf("car %d not in starting grid", r.CarNumber)
		}
		if r.Finish.IsDNQ() {
			continue
		}
		teamFinishes[entry.Team] = append(teamFinishes[entry.Team], int(r.Finish))
		teamTurnsLed[entry.Team] += r.TurnsLed
	}
	for _, finishes := range teamFinishes {
		slices.Sort(finishes)
	}

	results := make([]model.Result, 0, len(raw))
	for _, r := range raw {
		entry := byCar[r.CarNumber]
		if r.Finish.IsDNQ() {
			results = append(results, s.dnqResult(entry))
		} else {
			results = append(results, s.finisherResult(entry, r, teamFinishes[entry.Team]))
		}
	}
	return &Outcome{
		Results:     results,
		MostLedTeam: mostLedTeam(teamOrder, teamTurnsLed),
	}, nil
}

func (s *Scorer) dnqResult(entry *model.GridEntry) model.Result {
	return model.Result{
		Finish:           model.DNQ,
		CarNumber:        entry.CarNumber,
		Driver:           entry.Driver,
		Team:             entry.Team,
		StartingPos:      model.DNQ,
		TurnsLed:         0,
		Points:           s.points.Points.For(model.DNQ),
		PlayoffPoints:    s.points.PlayoffPoints.For(model.DNQ),
		RelativeFinish:   0,
		QualifyingPoints: s.points.QualifyingPoints.For(model.DNQ),
	}
}

func (s *Scorer) finisherResult(
	entry *model.GridEntry,
	raw model.RawFinish,
	teamFinishes []int,
) model.Result {
	qualifyingPoints := s.points.QualifyingPoints.For(raw.Finish)
	if entry.StartingPosition == 1 {
		qualifyingPoints += poleBonus
	}
	return model.Result{
		Finish:      raw.Finish,
		CarNumber:   entry.CarNumber,
		Driver:      entry.Driver,
		Team:        entry.Team,
		StartingPos: model.Position(entry.StartingPosition),
		TurnsLed:    raw.TurnsLed,
		// turns led add to race points
		Points:           s.points.Points.For(raw.Finish) + raw.TurnsLed,
		PlayoffPoints:    s.points.PlayoffPoints.For(raw.Finish),
		RelativeFinish:   slices.Index(teamFinishes, int(raw.Finish)) + 1,
		QualifyingPoints: qualifyingPoints,
	}
}

// mostLedTeam returns the team with the strictly highest turns-led sum,
// first in grid order on ties, or empty when no team led a turn.
func mostLedTeam(teamOrder []string, teamTurnsLed map[string]int) string {
	best := ""
	bestLed := 0
	for _, team := range teamOrder {
		if teamTurnsLed[team] > bestLed {
			best = team
			bestLed = teamTurnsLed[team]
		}
	}
	return best
}

// TeamResults aggregates the scored rows into one summary per team. The
// most-led team earns a +1 bonus exactly once; avgFinish is the mean of
// numeric finishes rounded to 2 decimals (0 when the team has no
// finishers). Teams are ranked by total points, stable on ties.
func (s *Scorer) TeamResults(outcome *Outcome) []model.TeamResult {
	order := make([]string, 0)
	byTeam := make(map[string]*model.TeamResult)
	finishSum := make(map[string]int)
	finishCount := make(map[string]int)

	for i := range outcome.Results {
		res := &outcome.Results[i]
		tr, ok := byTeam[res.Team]
		if !ok {
			tr = &model.TeamResult{Team: res.Team}
			byTeam[res.Team] = tr
			order = append(order, res.Team)
		}
		tr.TotalPoints += res.Points
		tr.TurnsLed += res.TurnsLed
		tr.Drivers++
		if !res.Finish.IsDNQ() {
			finishSum[res.Team] += int(res.Finish)
			finishCount[res.Team]++
		}
	}
	if tr, ok := byTeam[outcome.MostLedTeam]; ok {
		tr.TotalPoints++
	}

	out := make([]model.TeamResult, 0, len(order))
	for _, team := range order {
		tr := *byTeam[team]
		if n := finishCount[team]; n > 0 {
			tr.AvgFinish = decimal.NewFromInt(int64(finishSum[team])).
				Div(decimal.NewFromInt(int64(n))).
				Round(2).
				InexactFloat64()
		}
		out = append(out, tr)
	}
	slices.SortStableFunc(out, func(a, b model.TeamResult) int {
		return cmp.Compare(b.TotalPoints, a.TotalPoints)
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
