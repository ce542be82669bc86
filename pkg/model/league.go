package model

import "github.com/gofrs/uuid/v5"

// Car identifies one entrant. Supplied by the roster config, never created
// by the processing packages.
type Car struct {
	CarNumber int    `json:"carNumber" yaml:"carNumber"`
	Driver    string `json:"driver"    yaml:"name"`
	Team      string `json:"team"      yaml:"team"`
}

// Qualifier is a car ranked within its team by the qualifying draw.
type Qualifier struct {
	CarNumber    int    `json:"carNumber"`
	Driver       string `json:"driver"`
	Team         string `json:"team"`
	TeamPosition int    `json:"teamPosition"`
}

// GridEntry is one slot of the starting grid. StartingPosition values of a
// grid form a dense 1..N permutation.
type GridEntry struct {
	CarNumber        int    `json:"carNumber"`
	Driver           string `json:"driver"`
	Team             string `json:"team"`
	StartingPosition int    `json:"startingPosition"`
}

// RawFinish is the externally collected outcome for one started car.
type RawFinish struct {
	CarNumber int      `json:"carNumber"`
	Finish    Position `json:"finish"`
	TurnsLed  int      `json:"turnsLed"`
}

// Result is the fully scored outcome of one car in one race.
type Result struct {
	Finish           Position `json:"finish"`
	CarNumber        int      `json:"carNumber"`
	Driver           string   `json:"driver"`
	Team             string   `json:"team"`
	StartingPos      Position `json:"startingPos"`
	TurnsLed         int      `json:"turnsLed"`
	Points           int      `json:"points"`
	PlayoffPoints    int      `json:"playoffPoints"`
	RelativeFinish   int      `json:"relativeFinish"`
	QualifyingPoints int      `json:"qualifyingPoints"`
}

// TeamResult is the per-team summary of one race.
type TeamResult struct {
	Position    int     `json:"position"`
	Team        string  `json:"team"`
	TotalPoints int     `json:"totalPoints"`
	TurnsLed    int     `json:"turnsLed"`
	AvgFinish   float64 `json:"avgFinish"`
	Drivers     int     `json:"drivers"`
}

// Race is the persisted document for one completed race.
type Race struct {
	ID          uuid.UUID    `json:"id"`
	Date        string       `json:"date"`
	RaceNum     int          `json:"raceNum"`
	TrackID     string       `json:"trackId"`
	Results     []Result     `json:"results"`
	TeamResults []TeamResult `json:"teamResults"`
}

// SeasonEntry is one flattened row of the season table: a scored result
// together with the header of the race it belongs to.
type SeasonEntry struct {
	Date    string `json:"date"`
	RaceNum int    `json:"raceNum"`
	TrackID string `json:"trackId"`
	Result
}
