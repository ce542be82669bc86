package standings

import (
	"github.com/spf13/cobra"

	"github.com/thunderalley/league-manager-go/pkg/config"
	"github.com/thunderalley/league-manager-go/pkg/service"
)

func NewStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "rebuilds the season snapshot from saved races and rewrites the standings files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recalcStandings()
		},
	}
	return cmd
}

func recalcStandings() error {
	league, err := config.LoadLeagueConfig(config.ConfigDir)
	if err != nil {
		return err
	}
	day := service.NewRaceDay(league, config.DataDir, config.Season)
	_, err = day.RecalcStandings()
	return err
}
