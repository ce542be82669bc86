package qualifying

import (
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

const (
	// weights are clamped to [minWeight, 1] to avoid degenerate sampling
	minWeight = 1e-6
	// at most 4 cars per team earn a qualifying spot
	maxTeamRank = 4
)

type Processor struct {
	rand *rand.Rand
}

type ProcessorOption func(p *Processor)

// WithRand injects the random source used for the qualifying draw.
func WithRand(r *rand.Rand) ProcessorOption {
	return func(p *Processor) {
		p.rand = r
	}
}

func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	if p.rand == nil {
		p.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

type carScore struct {
	car    model.Car
	score  int
	weight float64
	key    float64
}

// Qualifiers draws a weighted random qualifying order within each team from
// the qualifying points accumulated over the season so far. A car's chance
// of ranking high is proportional to its share of the team's total, with an
// equal share fallback for teams that have not scored yet. Empty history
// yields no qualifiers; the grid builder then runs its cold-start path.
func (p *Processor) Qualifiers(history []model.SeasonEntry) []model.Qualifier {
	if len(history) == 0 {
		return nil
	}
	scores := aggregateScores(history)

	teams := lo.Uniq(lo.Map(scores, func(cs *carScore, _ int) string { return cs.car.Team }))
	slices.Sort(teams)

	out := make([]model.Qualifier, 0, len(scores))
	for _, team := range teams {
		members := lo.Filter(scores, func(cs *carScore, _ int) bool {
			return cs.car.Team == team
		})
		computeWeights(members)
		for _, m := range members {
			// u^(1/weight): higher weight pulls the key toward 1 while
			// still allowing upsets
			m.key = math.Pow(p.rand.Float64(), 1.0/m.weight)
		}
		for _, q := range rankMembers(members) {
			out = append(out, q)
		}
	}
	return out
}

// aggregateScores sums qualifying points per car, keeping first-seen order.
func aggregateScores(history []model.SeasonEntry) []*carScore {
	index := make(map[string]int)
	out := make([]*carScore, 0)
	for i := range history {
		row := &history[i]
		key := fmt.Sprintf("%d|%s|%s", row.CarNumber, row.Driver, row.Team)
		if at, ok := index[key]; ok {
			out[at].score += row.QualifyingPoints
		} else {
			index[key] = len(out)
			out = append(out, &carScore{
				car: model.Car{
					CarNumber: row.CarNumber,
					Driver:    row.Driver,
					Team:      row.Team,
				},
				score: row.QualifyingPoints,
			})
		}
	}
	return out
}

// computeWeights assigns each member its share of the team total, or an
// equal split when the team has no points yet, clamped to [minWeight, 1].
func computeWeights(members []*carScore) {
	teamPoints := lo.SumBy(members, func(cs *carScore) int { return cs.score })
	for _, m := range members {
		var weight float64
		if teamPoints == 0 {
			weight = 1.0 / float64(len(members))
		} else {
			weight = float64(m.score) / float64(teamPoints)
		}
		m.weight = math.Min(math.Max(weight, minWeight), 1.0)
	}
}

// rankMembers dense-ranks a team's members by sampling key descending and
// keeps the top maxTeamRank of them.
func rankMembers(members []*carScore) []model.Qualifier {
	ranked := slices.Clone(members)
	slices.SortStableFunc(ranked, func(a, b *carScore) int {
		return cmp.Compare(b.key, a.key)
	})
	out := make([]model.Qualifier, 0, maxTeamRank)
	rank := 0
	prevKey := math.NaN()
	for _, m := range ranked {
		if m.key != prevKey {
			rank++
			prevKey = m.key
		}
		if rank > maxTeamRank {
			break
		}
		out = append(out, model.Qualifier{
			CarNumber:    m.car.CarNumber,
			Driver:       m.car.Driver,
			Team:         m.car.Team,
			TeamPosition: rank,
		})
	}
	return out
}
