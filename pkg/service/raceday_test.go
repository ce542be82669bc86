//nolint:funlen // ok for tests
package service

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderalley/league-manager-go/pkg/config"
	"github.com/thunderalley/league-manager-go/pkg/model"
)

// gridOrderCollector reports the finish in starting order, leader taking
// all the turns.
type gridOrderCollector struct{}

func (c *gridOrderCollector) Collect(startingGrid []model.GridEntry) ([]model.RawFinish, error) {
	out := make([]model.RawFinish, 0, len(startingGrid))
	for i, entry := range startingGrid {
		turnsLed := 0
		if i == 0 {
			turnsLed = 12
		}
		out = append(out, model.RawFinish{
			CarNumber: entry.CarNumber,
			Finish:    model.Position(i + 1),
			TurnsLed:  turnsLed,
		})
	}
	return out, nil
}

func testLeague() *config.LeagueConfig {
	return &config.LeagueConfig{
		Drivers: map[string]config.DriverEntry{
			"1":  {Name: "A1", Team: "Alpha"},
			"2":  {Name: "A2", Team: "Alpha"},
			"3":  {Name: "A3", Team: "Alpha"},
			"10": {Name: "B1", Team: "Bravo"},
			"11": {Name: "B2", Team: "Bravo"},
			"12": {Name: "B3", Team: "Bravo"},
		},
		TeamOwners:   map[string]string{"Alpha": "Avery", "Bravo": "Blake"},
		PolePosition: map[string]int{"Alpha": 1, "Bravo": 2},
		Tracks:       map[string]config.Track{"thunder_alley": {Name: "Thunder Alley Speedway"}},
		Points: model.PointsStructure{
			Points:           model.PointsTable{"1": 40, "2": 35, "3": 34, "4": 33, "5": 32, "6": 31},
			PlayoffPoints:    model.PointsTable{"1": 5, "2": 4, "3": 3},
			QualifyingPoints: model.PointsTable{"1": 10, "2": 8, "3": 6},
		},
	}
}

func TestRunRace_FullWorkflow(t *testing.T) {
	dataDir := t.TempDir()
	day := NewRaceDay(testLeague(), dataDir, 1,
		WithCollector(&gridOrderCollector{}),
		WithRandSource(rand.NewSource(42)))

	race, err := day.RunRace([]string{"Alpha", "Bravo"}, "thunder_alley")
	require.NoError(t, err)
	require.NotNil(t, race)

	assert.Equal(t, 1, race.RaceNum)
	assert.Equal(t, "thunder_alley", race.TrackID)
	// 2 teams with 3 cars each: cold start fills all 6 slots
	assert.Len(t, race.Results, 6)
	require.Len(t, race.TeamResults, 2)

	// the winner led every turn, so its team holds the +1 bonus
	winnerTeam := race.Results[0].Team
	for _, tr := range race.TeamResults {
		if tr.Team == winnerTeam {
			assert.Equal(t, 1, tr.Position)
		}
	}

	// persisted artifacts
	for _, rel := range []string{
		filepath.Join("raw", "race_"+race.Date+"_r1.json"),
		filepath.Join("season", "season_1_results.csv"),
		filepath.Join("season", "driver_standings.csv"),
		filepath.Join("season", "owner_standings.csv"),
		filepath.Join("season", "playoff_standings.csv"),
	} {
		_, err := os.Stat(filepath.Join(dataDir, rel))
		assert.NoError(t, err, rel)
	}
}

func TestRunRace_SecondRaceUsesHistory(t *testing.T) {
	dataDir := t.TempDir()
	day := NewRaceDay(testLeague(), dataDir, 1,
		WithCollector(&gridOrderCollector{}),
		WithRandSource(rand.NewSource(7)))

	first, err := day.RunRace([]string{"Alpha", "Bravo"}, "thunder_alley")
	require.NoError(t, err)
	second, err := day.RunRace([]string{"Alpha", "Bravo"}, "thunder_alley")
	require.NoError(t, err)

	assert.Equal(t, 1, first.RaceNum)
	assert.Equal(t, 2, second.RaceNum)
	assert.Len(t, second.Results, 6)

	races, err := day.races.LoadAll()
	require.NoError(t, err)
	assert.Len(t, races, 2)

	entries, err := day.seasons.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}

func TestRunRace_NoTeamsMeansNoRace(t *testing.T) {
	day := NewRaceDay(testLeague(), t.TempDir(), 1,
		WithCollector(&gridOrderCollector{}))

	_, err := day.RunRace(nil, "thunder_alley")
	require.ErrorIs(t, err, ErrNoStarters)
}

func TestRecalcStandings_EmptySeason(t *testing.T) {
	day := NewRaceDay(testLeague(), t.TempDir(), 1)
	st, err := day.RecalcStandings()
	require.NoError(t, err)
	assert.Empty(t, st.Drivers)
	assert.Empty(t, st.Owners)
	assert.Empty(t, st.Playoffs)
}
