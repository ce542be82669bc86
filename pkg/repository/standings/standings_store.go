package standings

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

// Store writes the three standings views as flat CSV files next to the
// season snapshot.
type Store struct {
	seasonDir string
}

func NewStore(dataDir string) *Store {
	return &Store{seasonDir: filepath.Join(dataDir, "season")}
}

func (s *Store) Write(
	drivers []model.DriverStanding,
	owners []model.OwnerStanding,
	playoffs []model.PlayoffStanding,
) error {
	if err := os.MkdirAll(s.seasonDir, 0o755); err != nil {
		return err
	}
	if err := s.writeDrivers(drivers); err != nil {
		return err
	}
	if err := s.writeOwners(owners); err != nil {
		return err
	}
	return s.writePlayoffs(playoffs)
}

func (s *Store) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(s.seasonDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *Store) writeDrivers(rows []model.DriverStanding) error {
	header := []string{
		"position", "carNumber", "driver", "team", "points", "behind",
		"starts", "wins", "top5s", "top10s", "turnsLed", "playoffPoints",
	}
	records := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		records = append(records, []string{
			strconv.Itoa(r.Position),
			strconv.Itoa(r.CarNumber),
			r.Driver,
			r.Team,
			strconv.Itoa(r.Points),
			strconv.Itoa(r.Behind),
			strconv.Itoa(r.Starts),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Top5s),
			strconv.Itoa(r.Top10s),
			strconv.Itoa(r.TurnsLed),
			strconv.Itoa(r.PlayoffPoints),
		})
	}
	return s.writeCSV("driver_standings.csv", header, records)
}

func (s *Store) writeOwners(rows []model.OwnerStanding) error {
	header := []string{
		"position", "owner", "team", "points", "behind", "wins", "top5s", "top10s",
	}
	records := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		records = append(records, []string{
			strconv.Itoa(r.Position),
			r.Owner,
			r.Team,
			strconv.Itoa(r.Points),
			strconv.Itoa(r.Behind),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Top5s),
			strconv.Itoa(r.Top10s),
		})
	}
	return s.writeCSV("owner_standings.csv", header, records)
}

func (s *Store) writePlayoffs(rows []model.PlayoffStanding) error {
	header := []string{
		"position", "carNumber", "driver", "team", "playoffPoints",
		"wins", "top5s", "top10s", "turnsLed", "margin",
	}
	records := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		records = append(records, []string{
			strconv.Itoa(r.Position),
			strconv.Itoa(r.CarNumber),
			r.Driver,
			r.Team,
			strconv.Itoa(r.PlayoffPoints),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Top5s),
			strconv.Itoa(r.Top10s),
			strconv.Itoa(r.TurnsLed),
			r.Margin,
		})
	}
	return s.writeCSV("playoff_standings.csv", header, records)
}
