package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/gridsim/gridsim/sim"
)

var (
	strategyTeamName  string // Team whose car the optimizers use
	strategyTrackName string // Circuit to plan for (empty = first in calendar)
	strategyCompound  string // Starting compound for the DP optimizer
)

// strategyCmd runs the pit/compound optimizers for one car on one circuit
var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Optimize pit laps, compounds and ERS deployment for one car",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		calendar := loadCalendarOrDie()
		teams := loadGrid()
		track, err := findTrack(calendar, strategyTrackName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		team, err := findTeam(teams, strategyTeamName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		startCompound, err := sim.ParseCompound(strategyCompound)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		fmt.Printf("=== Strategy | %s at %s | %d laps ===\n", team.Name, track.Name, lapsPerRace)

		deployPlan, deployTime, err := sim.FindBestConstantDeploy(track, team.Car, lapsPerRace)
		if err != nil {
			logrus.Fatalf("deploy sweep failed: %v", err)
		}
		fmt.Printf("Best constant deploy: %.1f (race time %.3fs, no stops)\n", deployPlan.DeployLevel, deployTime)

		sweepPlan, sweepTime, err := sim.FindBestPitStrategy(track, team.Car, lapsPerRace, sim.PitLoss)
		if err != nil {
			logrus.Fatalf("pit sweep failed: %v", err)
		}
		fmt.Printf("Best swept plan:      %s (race time %.3fs)\n", formatPlan(sweepPlan), sweepTime)

		dpPlan, err := sim.ComputeOptimalStrategyDP(track, team.Car, lapsPerRace, startCompound)
		if err != nil {
			logrus.Fatalf("dp optimizer failed: %v", err)
		}
		fmt.Printf("DP-optimal plan:      %s\n", formatPlan(dpPlan))
	},
}

func findTeam(teams []*sim.Team, name string) (*sim.Team, error) {
	if name == "" {
		return teams[0], nil
	}
	for _, team := range teams {
		if team.Name == name {
			return team, nil
		}
	}
	return nil, fmt.Errorf("team %q not found in grid", name)
}

func formatPlan(s sim.Strategy) string {
	out := ""
	for i, c := range s.Compounds {
		if i > 0 {
			out += fmt.Sprintf(" -[lap %d]-> ", s.PitLaps[i-1])
		}
		out += c.String()
	}
	return fmt.Sprintf("%s (%d stops)", out, s.Stops())
}

func init() {
	strategyCmd.Flags().StringVar(&strategyTeamName, "team", "", "Team name from the grid (default: first team)")
	strategyCmd.Flags().StringVar(&strategyTrackName, "track", "", "Circuit name from the calendar (default: first race)")
	strategyCmd.Flags().StringVar(&strategyCompound, "compound", "MEDIUM", "Starting compound for the DP optimizer")
	rootCmd.AddCommand(strategyCmd)
}
