package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/gridsim/gridsim/sim"
)

var (
	sensTeamName  string  // Team whose parameter is perturbed
	sensDriver    string  // Driver whose WDC probability is measured
	sensParameter string  // Which car parameter to perturb
	sensDelta     float64 // Perturbation magnitude
	sensSeasons   int     // Season replications per evaluation
)

// sensitivityCmd estimates how a driver's title chance moves with one car
// parameter
var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Estimate WDC elasticity w.r.t. a car parameter",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		calendar := loadCalendarOrDie()
		teams := loadGrid()
		team, err := findTeam(teams, sensTeamName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		param, err := parseCarParameter(sensParameter)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		driverName := sensDriver
		if driverName == "" {
			driverName = team.Drivers[0].Name
		}

		others := make([]*sim.Team, 0, len(teams)-1)
		for _, t := range teams {
			if t.Name != team.Name {
				others = append(others, t)
			}
		}

		cfg := sim.SensitivityConfig{
			LapsPerRace: lapsPerRace,
			Seasons:     sensSeasons,
			Delta:       sensDelta,
			BaseSeed:    baseSeed,
			NoiseStd:    noiseStd,
		}
		elasticity, err := sim.ComputeSensitivity(calendar, team, others, driverName, param, cfg)
		if err != nil {
			logrus.Fatalf("sensitivity analysis failed: %v", err)
		}

		fmt.Printf("=== Sensitivity | %s / %s ===\n", team.Name, driverName)
		fmt.Printf("d P(WDC) / d %s = %+.4f (delta=%.3g, %d seasons per side)\n", param, elasticity, sensDelta, sensSeasons)
	},
}

func parseCarParameter(name string) (sim.CarParameter, error) {
	switch name {
	case "reliability":
		return sim.ParamReliability, nil
	case "ers_efficiency":
		return sim.ParamERSEfficiency, nil
	default:
		return 0, fmt.Errorf("unknown car parameter %q (want reliability or ers_efficiency)", name)
	}
}

func init() {
	sensitivityCmd.Flags().StringVar(&sensTeamName, "team", "", "Team name from the grid (default: first team)")
	sensitivityCmd.Flags().StringVar(&sensDriver, "driver", "", "Driver name (default: team's first driver)")
	sensitivityCmd.Flags().StringVar(&sensParameter, "param", "reliability", "Car parameter: reliability or ers_efficiency")
	sensitivityCmd.Flags().Float64Var(&sensDelta, "delta", 0.05, "Perturbation magnitude")
	sensitivityCmd.Flags().IntVar(&sensSeasons, "seasons", 200, "Season replications per perturbed evaluation")
	rootCmd.AddCommand(sensitivityCmd)
}
