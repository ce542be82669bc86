package race

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/ohler55/ojg/oj"
	"github.com/ohler55/ojg/pretty"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

// Store persists one JSON document per race under <dataDir>/raw.
type Store struct {
	rawDir string
}

func NewStore(dataDir string) *Store {
	return &Store{rawDir: filepath.Join(dataDir, "raw")}
}

// Save writes the race as a pretty printed JSON document and returns its
// path. A missing document id is assigned here; existing documents are
// never modified.
func (s *Store) Save(race *model.Race) (string, error) {
	if race.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return "", fmt.Errorf("assign race id: %w", err)
		}
		race.ID = id
	}
	if err := os.MkdirAll(s.rawDir, 0o755); err != nil {
		return "", err
	}
	data, err := json.Marshal(race)
	if err != nil {
		return "", fmt.Errorf("marshal race %d: %w", race.RaceNum, err)
	}
	doc, err := oj.Parse(data)
	if err != nil {
		return "", fmt.Errorf("marshal race %d: %w", race.RaceNum, err)
	}
	path := filepath.Join(s.rawDir,
		fmt.Sprintf("race_%s_r%d.json", race.Date, race.RaceNum))
	// width 80, nesting up to 3 levels on one line
	if err := os.WriteFile(path, []byte(pretty.JSON(doc, 80.3)+"\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// LoadAll reads every race document, sorted by file name so race order
// matches chronological order.
func (s *Store) LoadAll() ([]*model.Race, error) {
	paths, err := filepath.Glob(filepath.Join(s.rawDir, "race_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	races := make([]*model.Race, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var race model.Race
		if err := json.Unmarshal(data, &race); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		races = append(races, &race)
	}
	return races, nil
}
