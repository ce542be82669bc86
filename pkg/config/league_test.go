package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

func writeLeagueFiles(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"drivers.yml": `
drivers:
  "7":
    name: A1
    team: Alpha
  "8":
    name: A2
    team: Alpha
  "10":
    name: B1
    team: Bravo
`,
		"team_owners.yml": `
teamOwners:
  Alpha: Avery
  Bravo: null
`,
		"pole_position.yml": `
polePosition:
  Alpha: 2
  Bravo: 1
`,
		"tracks.yml": `
tracks:
  thunder_alley:
    name: Thunder Alley Speedway
`,
		"points_structure.yml": `
points:
  "1": 40
  "2": 35
  DNQ: 5
playoffPoints:
  "1": 5
qualifyingPoints:
  "1": 10
`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestLoadLeagueConfig(t *testing.T) {
	dir := t.TempDir()
	writeLeagueFiles(t, dir)

	cfg, err := LoadLeagueConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "Avery", cfg.TeamOwners["Alpha"])
	assert.Equal(t, "", cfg.TeamOwners["Bravo"])
	assert.Equal(t, 1, cfg.PolePosition["Bravo"])
	assert.Equal(t, "Thunder Alley Speedway", cfg.Tracks["thunder_alley"].Name)

	assert.Equal(t, 40, cfg.Points.Points.For(model.Position(1)))
	assert.Equal(t, 5, cfg.Points.Points.For(model.DNQ))
	// unknown keys are worth 0
	assert.Equal(t, 0, cfg.Points.Points.For(model.Position(30)))

	roster := cfg.Roster()
	require.Len(t, roster, 3)
	assert.Equal(t, model.Car{CarNumber: 7, Driver: "A1", Team: "Alpha"}, roster[0])
	assert.Equal(t, 10, roster[2].CarNumber)

	// pole ranking orders the teams
	assert.Equal(t, []string{"Bravo", "Alpha"}, cfg.Teams())
}

func TestLoadLeagueConfig_MissingFile(t *testing.T) {
	_, err := LoadLeagueConfig(t.TempDir())
	require.Error(t, err)
}
