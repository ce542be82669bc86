package race

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thunderalley/league-manager-go/pkg/config"
	"github.com/thunderalley/league-manager-go/pkg/service"
)

func NewRaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race",
		Short: "runs an interactive race day and saves the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRace()
		},
	}
	cmd.Flags().BoolVar(&config.NoGapFilling,
		"no-gap-filling",
		false,
		"leave unclaimed warm-start grid slots empty instead of filling them with random roster picks")
	cmd.Flags().Int64Var(&config.Seed,
		"seed",
		0,
		"fixed seed for the qualifying and grid draws (0 = random)")
	return cmd
}

func runRace() error {
	league, err := config.LoadLeagueConfig(config.ConfigDir)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(os.Stdin)
	numPlayers, err := selectNumPlayers(in)
	if err != nil {
		return err
	}
	teams, err := selectTeams(in, league.Teams(), numPlayers)
	if err != nil {
		return err
	}
	trackID, err := selectTrack(in, league)
	if err != nil {
		return err
	}

	opts := []service.RaceDayOption{
		service.WithCollector(&terminalCollector{in: in, out: os.Stdout}),
		service.WithGapFilling(!config.NoGapFilling),
	}
	if config.Seed != 0 {
		opts = append(opts, service.WithRandSource(rand.NewSource(config.Seed)))
	}
	day := service.NewRaceDay(league, config.DataDir, config.Season, opts...)

	race, err := day.RunRace(teams, trackID)
	if errors.Is(err, service.ErrNoStarters) {
		fmt.Println("No starters for this race.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("\nSaved race %d. Season snapshot and standings updated.\n", race.RaceNum)
	return nil
}

func selectNumPlayers(in *bufio.Scanner) (int, error) {
	for {
		fmt.Print("\nEnter number of players (2-7): ")
		line, err := readLine(in)
		if err != nil {
			return 0, err
		}
		val, err := strconv.Atoi(line)
		if err != nil || val < 2 || val > 7 {
			fmt.Println("Number must be between 2 and 7.")
			continue
		}
		return val, nil
	}
}

func selectTeams(in *bufio.Scanner, available []string, numPlayers int) ([]string, error) {
	remaining := append([]string{}, available...)
	selected := make([]string, 0, numPlayers)
	for i := 1; i <= numPlayers; i++ {
		fmt.Println("\nAvailable teams:")
		for idx, team := range remaining {
			fmt.Printf("%d) %s\n", idx+1, team)
		}
		for {
			fmt.Printf("\nSelect team %d/%d (1-%d): ", i, numPlayers, len(remaining))
			line, err := readLine(in)
			if err != nil {
				return nil, err
			}
			choice, err := strconv.Atoi(line)
			if err != nil || choice < 1 || choice > len(remaining) {
				fmt.Printf("Invalid choice. Enter a number between 1 and %d.\n", len(remaining))
				continue
			}
			selected = append(selected, remaining[choice-1])
			remaining = append(remaining[:choice-1], remaining[choice:]...)
			break
		}
	}
	return selected, nil
}

func selectTrack(in *bufio.Scanner, league *config.LeagueConfig) (string, error) {
	ids := make([]string, 0, len(league.Tracks))
	for id := range league.Tracks {
		ids = append(ids, id)
	}
	// stable menu order
	slices.Sort(ids)
	fmt.Println("\nAvailable tracks:")
	for idx, id := range ids {
		fmt.Printf("%d) %s\n", idx+1, league.Tracks[id].Name)
	}
	for {
		fmt.Printf("\nSelect track (1-%d): ", len(ids))
		line, err := readLine(in)
		if err != nil {
			return "", err
		}
		choice, err := strconv.Atoi(line)
		if err != nil || choice < 1 || choice > len(ids) {
			fmt.Printf("Invalid choice. Enter a number between 1 and %d.\n", len(ids))
			continue
		}
		return ids[choice-1], nil
	}
}

func readLine(in *bufio.Scanner) (string, error) {
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(in.Text()), nil
}
