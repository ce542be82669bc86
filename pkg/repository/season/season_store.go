package season

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

var csvHeader = []string{
	"date", "raceNum", "trackId", "finish", "carNumber", "driver", "team",
	"startingPos", "turnsLed", "points", "playoffPoints", "relativeFinish",
	"qualifyingPoints",
}

// Store maintains the flattened season table: the accumulated output of
// all scored races, which in turn feeds the next qualifying draw. Callers
// read the full history before a race and append exactly one race after.
type Store struct {
	seasonDir string
	season    int
}

func NewStore(dataDir string, season int) *Store {
	return &Store{seasonDir: filepath.Join(dataDir, "season"), season: season}
}

func (s *Store) csvPath() string {
	return filepath.Join(s.seasonDir, fmt.Sprintf("season_%d_results.csv", s.season))
}

// Flatten turns race documents into one season row per car per race.
func Flatten(races []*model.Race) []model.SeasonEntry {
	out := make([]model.SeasonEntry, 0)
	for _, race := range races {
		for _, res := range race.Results {
			out = append(out, model.SeasonEntry{
				Date:    race.Date,
				RaceNum: race.RaceNum,
				TrackID: race.TrackID,
				Result:  res,
			})
		}
	}
	return out
}

// NextRaceNum returns 1 + the highest race number seen so far.
func NextRaceNum(entries []model.SeasonEntry) int {
	next := 1
	for i := range entries {
		if entries[i].RaceNum >= next {
			next = entries[i].RaceNum + 1
		}
	}
	return next
}

// Rebuild flattens the race documents and overwrites the season snapshot.
func (s *Store) Rebuild(races []*model.Race) ([]model.SeasonEntry, error) {
	entries := Flatten(races)
	if err := os.MkdirAll(s.seasonDir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(s.csvPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range entries {
		e := &entries[i]
		record := []string{
			e.Date,
			strconv.Itoa(e.RaceNum),
			e.TrackID,
			e.Finish.String(),
			strconv.Itoa(e.CarNumber),
			e.Driver,
			e.Team,
			e.StartingPos.String(),
			strconv.Itoa(e.TurnsLed),
			strconv.Itoa(e.Points),
			strconv.Itoa(e.PlayoffPoints),
			strconv.Itoa(e.RelativeFinish),
			strconv.Itoa(e.QualifyingPoints),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return entries, w.Error()
}

// Load reads the season snapshot. A missing file is an empty season.
func (s *Store) Load() ([]model.SeasonEntry, error) {
	f, err := os.Open(s.csvPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.csvPath(), err)
	}
	if len(records) < 2 {
		return nil, nil
	}
	entries := make([]model.SeasonEntry, 0, len(records)-1)
	for _, record := range records[1:] {
		entry, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.csvPath(), err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRecord(record []string) (model.SeasonEntry, error) {
	var entry model.SeasonEntry
	if len(record) != len(csvHeader) {
		return entry, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}
	var err error
	entry.Date = record[0]
	entry.TrackID = record[2]
	entry.Driver = record[5]
	entry.Team = record[6]
	for _, field := range []struct {
		dst *int
		val string
	}{
		{&entry.RaceNum, record[1]},
		{&entry.CarNumber, record[4]},
		{&entry.TurnsLed, record[8]},
		{&entry.Points, record[9]},
		{&entry.PlayoffPoints, record[10]},
		{&entry.RelativeFinish, record[11]},
		{&entry.QualifyingPoints, record[12]},
	} {
		if *field.dst, err = strconv.Atoi(field.val); err != nil {
			return entry, err
		}
	}
	if entry.Finish, err = model.ParsePosition(record[3]); err != nil {
		return entry, err
	}
	if entry.StartingPos, err = model.ParsePosition(record[7]); err != nil {
		return entry, err
	}
	return entry, nil
}
