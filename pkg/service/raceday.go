package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/thunderalley/league-manager-go/log"
	"github.com/thunderalley/league-manager-go/pkg/config"
	"github.com/thunderalley/league-manager-go/pkg/model"
	"github.com/thunderalley/league-manager-go/pkg/processing/grid"
	"github.com/thunderalley/league-manager-go/pkg/processing/qualifying"
	"github.com/thunderalley/league-manager-go/pkg/processing/scoring"
	standingscalc "github.com/thunderalley/league-manager-go/pkg/processing/standings"
	racerepo "github.com/thunderalley/league-manager-go/pkg/repository/race"
	seasonrepo "github.com/thunderalley/league-manager-go/pkg/repository/season"
	standingsrepo "github.com/thunderalley/league-manager-go/pkg/repository/standings"
)

// ErrNoStarters is returned when grid construction yields no cars.
var ErrNoStarters = errors.New("no starters for this race")

// FinishCollector supplies the raw race outcome: exactly one entry per
// grid car, with non-finishers carrying the DNQ sentinel.
type FinishCollector interface {
	Collect(startingGrid []model.GridEntry) ([]model.RawFinish, error)
}

// RaceDay runs the full race workflow against the season store: read the
// season history, draw qualifiers, build the grid, collect and score the
// results, then append exactly one race document and refresh the season
// snapshot and standings.
type RaceDay struct {
	league    *config.LeagueConfig
	races     *racerepo.Store
	seasons   *seasonrepo.Store
	standings *standingsrepo.Store
	collector FinishCollector
	randSrc   rand.Source
	fillGaps  bool
}

type RaceDayOption func(r *RaceDay)

func WithCollector(collector FinishCollector) RaceDayOption {
	return func(r *RaceDay) {
		r.collector = collector
	}
}

// WithRandSource fixes the random source for qualifying and grid draws.
func WithRandSource(src rand.Source) RaceDayOption {
	return func(r *RaceDay) {
		r.randSrc = src
	}
}

func WithGapFilling(arg bool) RaceDayOption {
	return func(r *RaceDay) {
		r.fillGaps = arg
	}
}

func NewRaceDay(
	league *config.LeagueConfig,
	dataDir string,
	season int,
	opts ...RaceDayOption,
) *RaceDay {
	r := &RaceDay{
		league:    league,
		races:     racerepo.NewStore(dataDir),
		seasons:   seasonrepo.NewStore(dataDir, season),
		standings: standingsrepo.NewStore(dataDir),
		fillGaps:  true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.randSrc == nil {
		r.randSrc = rand.NewSource(time.Now().UnixNano())
	}
	return r
}

// RunRace executes one race for the selected teams on the given track and
// returns the persisted race document.
func (r *RaceDay) RunRace(teams []string, trackID string) (*model.Race, error) {
	history, err := r.seasons.Load()
	if err != nil {
		return nil, err
	}
	rng := rand.New(r.randSrc)

	qualifiers := qualifying.NewProcessor(qualifying.WithRand(rng)).Qualifiers(history)
	log.Info("qualifying complete", log.Int("qualifiers", len(qualifiers)))

	builder := grid.NewBuilder(grid.WithRand(rng), grid.WithGapFilling(r.fillGaps))
	startingGrid := builder.Build(teams, r.league.PolePosition, qualifiers, r.league.Roster())
	if len(startingGrid) == 0 {
		return nil, ErrNoStarters
	}

	raw, err := r.collector.Collect(startingGrid)
	if err != nil {
		return nil, err
	}

	scorer := scoring.NewScorer(&r.league.Points)
	outcome, err := scorer.Score(startingGrid, raw)
	if err != nil {
		return nil, err
	}

	race := &model.Race{
		Date:        time.Now().Format("2006-01-02"),
		RaceNum:     seasonrepo.NextRaceNum(history),
		TrackID:     trackID,
		Results:     outcome.Results,
		TeamResults: scorer.TeamResults(outcome),
	}
	path, err := r.races.Save(race)
	if err != nil {
		return nil, err
	}
	log.Info("race saved",
		log.Int("raceNum", race.RaceNum),
		log.String("track", trackID),
		log.String("path", path))

	if _, err := r.RecalcStandings(); err != nil {
		return nil, err
	}
	return race, nil
}

// Standings bundles the three season views written after every race.
type Standings struct {
	Drivers  []model.DriverStanding
	Owners   []model.OwnerStanding
	Playoffs []model.PlayoffStanding
}

// RecalcStandings rebuilds the season snapshot from the race documents and
// rewrites the standings files.
func (r *RaceDay) RecalcStandings() (*Standings, error) {
	races, err := r.races.LoadAll()
	if err != nil {
		return nil, err
	}
	entries, err := r.seasons.Rebuild(races)
	if err != nil {
		return nil, err
	}
	st := &Standings{
		Drivers:  standingscalc.Drivers(entries),
		Owners:   standingscalc.Owners(entries, r.league.TeamOwners),
		Playoffs: standingscalc.Playoffs(entries),
	}
	if err := r.standings.Write(st.Drivers, st.Owners, st.Playoffs); err != nil {
		return nil, err
	}
	log.Info("standings updated",
		log.Int("drivers", len(st.Drivers)),
		log.Int("owners", len(st.Owners)),
		log.Int("playoffContenders", len(st.Playoffs)))
	return st, nil
}
