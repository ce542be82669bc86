//nolint:funlen // ok for tests
package grid

import (
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

func testRoster() []model.Car {
	return []model.Car{
		{CarNumber: 1, Driver: "A1", Team: "Alpha"},
		{CarNumber: 2, Driver: "A2", Team: "Alpha"},
		{CarNumber: 3, Driver: "A3", Team: "Alpha"},
		{CarNumber: 10, Driver: "B1", Team: "Bravo"},
		{CarNumber: 11, Driver: "B2", Team: "Bravo"},
		{CarNumber: 12, Driver: "B3", Team: "Bravo"},
	}
}

func testPole() map[string]int {
	return map[string]int{"Alpha": 2, "Bravo": 1}
}

func seededBuilder(opts ...BuilderOption) *Builder {
	return NewBuilder(append([]BuilderOption{WithRand(rand.New(rand.NewSource(42)))}, opts...)...)
}

// positions must form exactly {1..N}
func assertDensePositions(t *testing.T, entries []model.GridEntry) {
	t.Helper()
	seen := make(map[int]bool)
	for _, e := range entries {
		assert.False(t, seen[e.StartingPosition], "duplicate position %d", e.StartingPosition)
		seen[e.StartingPosition] = true
		assert.GreaterOrEqual(t, e.StartingPosition, 1)
		assert.LessOrEqual(t, e.StartingPosition, len(entries))
	}
}

func TestCarsPerTeam(t *testing.T) {
	tests := []struct {
		numTeams int
		want     int
	}{
		{2, 6}, {3, 5}, {4, 4}, {5, 3}, {7, 3}, {1, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CarsPerTeam(tt.numTeams), "teams=%d", tt.numTeams)
	}
}

func TestBuild_EmptyTeams(t *testing.T) {
	assert.Empty(t, seededBuilder().Build(nil, testPole(), nil, testRoster()))
}

func TestBuild_ColdStartTwoTeams(t *testing.T) {
	// cars-per-team would be 6 but each roster only has 3 cars
	entries := seededBuilder().Build([]string{"Alpha", "Bravo"}, testPole(), nil, testRoster())

	require.Len(t, entries, 6)
	assertDensePositions(t, entries)
	byTeam := lo.CountValuesBy(entries, func(e model.GridEntry) string { return e.Team })
	assert.Equal(t, 3, byTeam["Alpha"])
	assert.Equal(t, 3, byTeam["Bravo"])
	// interleaved in pole order: Bravo holds pole
	for i, e := range entries {
		if i%2 == 0 {
			assert.Equal(t, "Bravo", e.Team, "slot %d", i+1)
		} else {
			assert.Equal(t, "Alpha", e.Team, "slot %d", i+1)
		}
	}
}

func TestBuild_ColdStartEmptyRoster(t *testing.T) {
	entries := seededBuilder().Build([]string{"Alpha", "Bravo"}, testPole(), nil, nil)
	assert.Empty(t, entries)
}

func TestBuild_WarmStartPlacesQualifiersByRank(t *testing.T) {
	qualifiers := []model.Qualifier{
		{CarNumber: 2, Driver: "A2", Team: "Alpha", TeamPosition: 1},
		{CarNumber: 1, Driver: "A1", Team: "Alpha", TeamPosition: 2},
		{CarNumber: 12, Driver: "B3", Team: "Bravo", TeamPosition: 1},
		{CarNumber: 10, Driver: "B1", Team: "Bravo", TeamPosition: 2},
	}
	b := seededBuilder(WithGapFilling(false))
	entries := b.Build([]string{"Alpha", "Bravo"}, testPole(), qualifiers, testRoster())

	require.Len(t, entries, 4)
	assertDensePositions(t, entries)
	want := []model.GridEntry{
		{CarNumber: 12, Driver: "B3", Team: "Bravo", StartingPosition: 1},
		{CarNumber: 2, Driver: "A2", Team: "Alpha", StartingPosition: 2},
		{CarNumber: 10, Driver: "B1", Team: "Bravo", StartingPosition: 3},
		{CarNumber: 1, Driver: "A1", Team: "Alpha", StartingPosition: 4},
	}
	assert.Equal(t, want, entries)
}

func TestBuild_WarmStartGapFilling(t *testing.T) {
	qualifiers := []model.Qualifier{
		{CarNumber: 1, Driver: "A1", Team: "Alpha", TeamPosition: 1},
		{CarNumber: 10, Driver: "B1", Team: "Bravo", TeamPosition: 1},
	}
	entries := seededBuilder().Build([]string{"Alpha", "Bravo"}, testPole(), qualifiers, testRoster())

	// both rosters have 3 cars, so gap filling tops each team up to 3
	require.Len(t, entries, 6)
	assertDensePositions(t, entries)
	cars := lo.Map(entries, func(e model.GridEntry, _ int) int { return e.CarNumber })
	assert.Contains(t, cars, 1)
	assert.Contains(t, cars, 10)
	assert.Len(t, lo.Uniq(cars), 6)
	// qualifiers keep the front row
	assert.Equal(t, 10, entries[0].CarNumber)
	assert.Equal(t, 1, entries[1].CarNumber)
}

func TestBuild_WarmStartWithoutGapFillingSkipsSlots(t *testing.T) {
	qualifiers := []model.Qualifier{
		{CarNumber: 1, Driver: "A1", Team: "Alpha", TeamPosition: 1},
	}
	b := seededBuilder(WithGapFilling(false))
	entries := b.Build([]string{"Alpha", "Bravo"}, testPole(), qualifiers, testRoster())

	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].CarNumber)
	assert.Equal(t, 1, entries[0].StartingPosition)
}

func TestBuild_ThreeTeamsPermutation(t *testing.T) {
	roster := append(testRoster(),
		model.Car{CarNumber: 20, Driver: "C1", Team: "Charlie"},
		model.Car{CarNumber: 21, Driver: "C2", Team: "Charlie"},
	)
	pole := map[string]int{"Alpha": 1, "Bravo": 2, "Charlie": 3}
	entries := seededBuilder().Build([]string{"Alpha", "Bravo", "Charlie"}, pole, nil, roster)

	// 3+3+2 cars available against cars-per-team of 5
	require.Len(t, entries, 8)
	assertDensePositions(t, entries)
}
