package season

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

func sampleRaces() []*model.Race {
	return []*model.Race{
		{
			Date:    "2026-03-01",
			RaceNum: 1,
			TrackID: "thunder_alley",
			Results: []model.Result{
				{
					Finish:           1,
					CarNumber:        7,
					Driver:           "A1",
					Team:             "Alpha",
					StartingPos:      2,
					TurnsLed:         4,
					Points:           44,
					PlayoffPoints:    5,
					RelativeFinish:   1,
					QualifyingPoints: 10,
				},
				{
					Finish:      model.DNQ,
					CarNumber:   8,
					Driver:      "A2",
					Team:        "Alpha",
					StartingPos: model.DNQ,
				},
			},
		},
		{
			Date:    "2026-03-08",
			RaceNum: 2,
			TrackID: "big_bend",
			Results: []model.Result{
				{
					Finish:         3,
					CarNumber:      7,
					Driver:         "A1",
					Team:           "Alpha",
					StartingPos:    1,
					Points:         34,
					RelativeFinish: 1,
				},
			},
		},
	}
}

func TestFlatten(t *testing.T) {
	entries := Flatten(sampleRaces())
	require.Len(t, entries, 3)
	assert.Equal(t, "2026-03-01", entries[0].Date)
	assert.Equal(t, 1, entries[0].RaceNum)
	assert.Equal(t, "thunder_alley", entries[0].TrackID)
	assert.Equal(t, 2, entries[2].RaceNum)
	assert.True(t, entries[1].Finish.IsDNQ())
}

func TestNextRaceNum(t *testing.T) {
	assert.Equal(t, 1, NextRaceNum(nil))
	assert.Equal(t, 3, NextRaceNum(Flatten(sampleRaces())))
}

func TestRebuildAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), 1)

	written, err := store.Rebuild(sampleRaces())
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(written, loaded); diff != "" {
		t.Errorf("season snapshot mismatch (-written +loaded):\n%s", diff)
	}
	// DNQ sentinel survives the round trip
	assert.True(t, loaded[1].Finish.IsDNQ())
	assert.True(t, loaded[1].StartingPos.IsDNQ())
}

func TestLoad_MissingFileIsEmptySeason(t *testing.T) {
	store := NewStore(t.TempDir(), 1)
	entries, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
