package grid

import (
	"cmp"
	"math/rand"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

type Builder struct {
	rand     *rand.Rand
	fillGaps bool
}

type BuilderOption func(b *Builder)

// WithRand injects the random source used for cold-start and gap-filling
// roster picks.
func WithRand(r *rand.Rand) BuilderOption {
	return func(b *Builder) {
		b.rand = r
	}
}

// WithGapFilling toggles whether warm-start slots without a qualifier are
// filled with random picks from the team's remaining roster. Enabled by
// default for a denser grid.
func WithGapFilling(arg bool) BuilderOption {
	return func(b *Builder) {
		b.fillGaps = arg
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{fillGaps: true}
	for _, opt := range opts {
		opt(b)
	}
	if b.rand == nil {
		b.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return b
}

// CarsPerTeam is a fixed game-balance rule derived from the team count.
func CarsPerTeam(numTeams int) int {
	switch numTeams {
	case 2:
		return 6
	case 3:
		return 5
	case 4:
		return 4
	default:
		return 3
	}
}

// Build produces the starting grid for the given teams. With qualifiers
// present each team's cars are placed by their team rank; without (first
// race of a season) cars are sampled uniformly from the roster. Slots are
// interleaved across teams in pole order and positions are a dense 1..N
// sequence. An empty team list or roster yields an empty grid.
func (b *Builder) Build(
	teams []string,
	polePosition map[string]int,
	qualifiers []model.Qualifier,
	roster []model.Car,
) []model.GridEntry {
	if len(teams) == 0 {
		return nil
	}
	poleTeams := poleOrder(teams, polePosition)
	carsPerTeam := CarsPerTeam(len(teams))

	selections := make(map[string][]model.Car, len(poleTeams))
	for _, team := range poleTeams {
		if len(qualifiers) == 0 {
			members := teamRoster(roster, team)
			selections[team] = b.sample(members, carsPerTeam)
		} else {
			selections[team] = b.warmSelection(team, qualifiers, roster, carsPerTeam)
		}
	}

	entries := make([]model.GridEntry, 0, len(poleTeams)*carsPerTeam)
	pos := 1
	for rank := 0; rank < carsPerTeam; rank++ {
		for _, team := range poleTeams {
			sel := selections[team]
			if rank < len(sel) {
				entries = append(entries, model.GridEntry{
					CarNumber:        sel[rank].CarNumber,
					Driver:           sel[rank].Driver,
					Team:             team,
					StartingPosition: pos,
				})
				pos++
			}
		}
	}
	return entries
}

// poleOrder sorts the participating teams by their pole ranking (lower =
// earlier pick), keeping the given order on equal ranks.
func poleOrder(teams []string, polePosition map[string]int) []string {
	out := slices.Clone(teams)
	slices.SortStableFunc(out, func(a, b string) int {
		return cmp.Compare(polePosition[a], polePosition[b])
	})
	return out
}

func teamRoster(roster []model.Car, team string) []model.Car {
	return lo.Filter(roster, func(c model.Car, _ int) bool { return c.Team == team })
}

// sample picks n cars uniformly without replacement.
func (b *Builder) sample(cars []model.Car, n int) []model.Car {
	if n > len(cars) {
		n = len(cars)
	}
	out := make([]model.Car, 0, n)
	for _, idx := range b.rand.Perm(len(cars))[:n] {
		out = append(out, cars[idx])
	}
	return out
}

// warmSelection orders a team's qualifiers by team rank and, when gap
// filling is enabled, tops the list up with random picks from the cars
// that did not qualify.
func (b *Builder) warmSelection(
	team string,
	qualifiers []model.Qualifier,
	roster []model.Car,
	carsPerTeam int,
) []model.Car {
	quals := lo.Filter(qualifiers, func(q model.Qualifier, _ int) bool {
		return q.Team == team
	})
	slices.SortStableFunc(quals, func(a, b model.Qualifier) int {
		return cmp.Compare(a.TeamPosition, b.TeamPosition)
	})
	if len(quals) > carsPerTeam {
		quals = quals[:carsPerTeam]
	}
	selected := lo.Map(quals, func(q model.Qualifier, _ int) model.Car {
		return model.Car{CarNumber: q.CarNumber, Driver: q.Driver, Team: team}
	})
	if !b.fillGaps {
		return selected
	}
	qualified := lo.SliceToMap(selected, func(c model.Car) (int, bool) {
		return c.CarNumber, true
	})
	available := lo.Filter(teamRoster(roster, team), func(c model.Car, _ int) bool {
		return !qualified[c.CarNumber]
	})
	if need := carsPerTeam - len(selected); need > 0 && len(available) > 0 {
		selected = append(selected, b.sample(available, need)...)
	}
	return selected
}
