package config

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

// DriverEntry is one roster line: car number (map key) to driver and team.
type DriverEntry struct {
	Name string `yaml:"name"`
	Team string `yaml:"team"`
}

type Track struct {
	Name string `yaml:"name"`
}

// LeagueConfig bundles the static league data. The processing packages
// trust it as given; there is no validation beyond YAML syntax.
type LeagueConfig struct {
	Drivers      map[string]DriverEntry
	TeamOwners   map[string]string
	PolePosition map[string]int
	Tracks       map[string]Track
	Points       model.PointsStructure
}

// LoadLeagueConfig reads the league data files from dir.
func LoadLeagueConfig(dir string) (*LeagueConfig, error) {
	cfg := &LeagueConfig{}

	var drivers struct {
		Drivers map[string]DriverEntry `yaml:"drivers"`
	}
	if err := readConfig(filepath.Join(dir, "drivers.yml"), &drivers); err != nil {
		return nil, err
	}
	cfg.Drivers = drivers.Drivers

	var owners struct {
		TeamOwners map[string]string `yaml:"teamOwners"`
	}
	if err := readConfig(filepath.Join(dir, "team_owners.yml"), &owners); err != nil {
		return nil, err
	}
	cfg.TeamOwners = owners.TeamOwners

	var pole struct {
		PolePosition map[string]int `yaml:"polePosition"`
	}
	if err := readConfig(filepath.Join(dir, "pole_position.yml"), &pole); err != nil {
		return nil, err
	}
	cfg.PolePosition = pole.PolePosition

	var tracks struct {
		Tracks map[string]Track `yaml:"tracks"`
	}
	if err := readConfig(filepath.Join(dir, "tracks.yml"), &tracks); err != nil {
		return nil, err
	}
	cfg.Tracks = tracks.Tracks

	if err := readConfig(filepath.Join(dir, "points_structure.yml"), &cfg.Points); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfig(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Roster returns the registered cars ordered by car number.
func (c *LeagueConfig) Roster() []model.Car {
	cars := make([]model.Car, 0, len(c.Drivers))
	for num, entry := range c.Drivers {
		carNumber, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		cars = append(cars, model.Car{
			CarNumber: carNumber,
			Driver:    entry.Name,
			Team:      entry.Team,
		})
	}
	slices.SortFunc(cars, func(a, b model.Car) int {
		return cmp.Compare(a.CarNumber, b.CarNumber)
	})
	return cars
}

// Teams returns the team names ordered by pole ranking.
func (c *LeagueConfig) Teams() []string {
	teams := make([]string, 0, len(c.TeamOwners))
	for team := range c.TeamOwners {
		teams = append(teams, team)
	}
	slices.SortFunc(teams, func(a, b string) int {
		if r := cmp.Compare(c.PolePosition[a], c.PolePosition[b]); r != 0 {
			return r
		}
		return cmp.Compare(a, b)
	})
	return teams
}
