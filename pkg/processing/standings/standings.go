package standings

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

// playoff cutline: 12 cars make the playoffs, margins are relative to the
// 12th/13th place boundary
const (
	cutlineRank  = 12
	playoffLimit = 24
)

type seasonAgg struct {
	carNumber     int
	driver        string
	team          string
	points        int
	playoffPoints int
	starts        int
	wins          int
	top5s         int
	top10s        int
	turnsLed      int
}

// aggregate groups season rows by key, keeping first-seen order so that
// later stable sorts resolve ties deterministically. DNQ rows contribute
// points but never count toward starts/wins/top5s/top10s.
func aggregate(
	season []model.SeasonEntry,
	keyFn func(row *model.SeasonEntry) string,
) []*seasonAgg {
	index := make(map[string]int)
	out := make([]*seasonAgg, 0)
	for i := range season {
		row := &season[i]
		key := keyFn(row)
		at, ok := index[key]
		if !ok {
			at = len(out)
			index[key] = at
			out = append(out, &seasonAgg{
				carNumber: row.CarNumber,
				driver:    row.Driver,
				team:      row.Team,
			})
		}
		agg := out[at]
		agg.points += row.Points
		agg.playoffPoints += row.PlayoffPoints
		agg.turnsLed += row.TurnsLed
		if row.Finish.IsDNQ() {
			continue
		}
		agg.starts++
		if row.Finish == 1 {
			agg.wins++
		}
		if row.Finish <= 5 {
			agg.top5s++
		}
		if row.Finish <= 10 {
			agg.top10s++
		}
	}
	return out
}

func driverKey(row *model.SeasonEntry) string {
	return fmt.Sprintf("%d|%s|%s", row.CarNumber, row.Driver, row.Team)
}

func teamKey(row *model.SeasonEntry) string {
	return row.Team
}

func compareDesc(a, b []int) int {
	for i := range a {
		if c := cmp.Compare(b[i], a[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Drivers computes the season driver standings: points descending with
// wins/top5s/top10s/turnsLed as tie-breakers, dense positions, and the
// points gap to the leader.
func Drivers(season []model.SeasonEntry) []model.DriverStanding {
	aggs := aggregate(season, driverKey)
	slices.SortStableFunc(aggs, func(a, b *seasonAgg) int {
		return compareDesc(
			[]int{a.points, a.wins, a.top5s, a.top10s, a.turnsLed},
			[]int{b.points, b.wins, b.top5s, b.top10s, b.turnsLed},
		)
	})
	out := make([]model.DriverStanding, 0, len(aggs))
	for i, agg := range aggs {
		out = append(out, model.DriverStanding{
			Position:      i + 1,
			CarNumber:     agg.carNumber,
			Driver:        agg.driver,
			Team:          agg.team,
			Points:        agg.points,
			Behind:        aggs[0].points - agg.points,
			Starts:        agg.starts,
			Wins:          agg.wins,
			Top5s:         agg.top5s,
			Top10s:        agg.top10s,
			TurnsLed:      agg.turnsLed,
			PlayoffPoints: agg.playoffPoints,
		})
	}
	return out
}

// Owners computes the season owner standings per team. Teams without an
// owner mapping get an empty owner name.
func Owners(season []model.SeasonEntry, owners map[string]string) []model.OwnerStanding {
	aggs := aggregate(season, teamKey)
	slices.SortStableFunc(aggs, func(a, b *seasonAgg) int {
		return compareDesc(
			[]int{a.points, a.wins, a.top5s, a.top10s},
			[]int{b.points, b.wins, b.top5s, b.top10s},
		)
	})
	out := make([]model.OwnerStanding, 0, len(aggs))
	for i, agg := range aggs {
		out = append(out, model.OwnerStanding{
			Position: i + 1,
			Owner:    owners[agg.team],
			Team:     agg.team,
			Points:   agg.points,
			Behind:   aggs[0].points - agg.points,
			Wins:     agg.wins,
			Top5s:    agg.top5s,
			Top10s:   agg.top10s,
		})
	}
	return out
}

// Playoffs computes the playoff picture ranked by playoff points. Margins
// are signed gaps relative to the cutline: cars in show the gap to 13th,
// cars out the gap to 12th. Margins stay blank until 13 cars have raced;
// the view is truncated to the top 24.
func Playoffs(season []model.SeasonEntry) []model.PlayoffStanding {
	aggs := aggregate(season, driverKey)
	slices.SortStableFunc(aggs, func(a, b *seasonAgg) int {
		return compareDesc(
			[]int{a.playoffPoints, a.wins, a.top5s, a.top10s, a.turnsLed},
			[]int{b.playoffPoints, b.wins, b.top5s, b.top10s, b.turnsLed},
		)
	})
	out := make([]model.PlayoffStanding, 0, len(aggs))
	for i, agg := range aggs {
		out = append(out, model.PlayoffStanding{
			Position:      i + 1,
			CarNumber:     agg.carNumber,
			Driver:        agg.driver,
			Team:          agg.team,
			PlayoffPoints: agg.playoffPoints,
			Wins:          agg.wins,
			Top5s:         agg.top5s,
			Top10s:        agg.top10s,
			TurnsLed:      agg.turnsLed,
		})
	}
	if len(out) > cutlineRank {
		ptsIn := out[cutlineRank-1].PlayoffPoints
		ptsOut := out[cutlineRank].PlayoffPoints
		for i := range out {
			if out[i].Position <= cutlineRank {
				out[i].Margin = fmt.Sprintf("%+d", out[i].PlayoffPoints-ptsOut)
			} else {
				out[i].Margin = fmt.Sprintf("%+d", out[i].PlayoffPoints-ptsIn)
			}
		}
	}
	if len(out) > playoffLimit {
		out = out[:playoffLimit]
	}
	return out
}
