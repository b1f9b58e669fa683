package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/gridsim/gridsim/sim"
)

var (
	raceTrackName   string // Circuit to simulate (empty = first in calendar)
	raceSimulations int    // Number of race replications
)

// raceCmd forecasts a single race as a Monte Carlo distribution
var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Forecast one race as win/podium/points distributions",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		calendar := loadCalendarOrDie()
		teams := loadGrid()
		track, err := findTrack(calendar, raceTrackName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Forecasting %q: %d replications, %d laps, seed=%d", track.Name, raceSimulations, lapsPerRace, baseSeed)
		startTime := time.Now()

		dist, err := sim.SimulateRaceMonteCarlo(track, teams, lapsPerRace, raceSimulations, baseSeed, noiseStd)
		if err != nil {
			logrus.Fatalf("race forecast failed: %v", err)
		}

		fmt.Printf("=== %s | %d laps | %d replications ===\n", track.Name, lapsPerRace, raceSimulations)
		printProbabilityTable("Win probability:", dist.WinnerProbabilities)
		printProbabilityTable("Podium probability:", dist.PodiumProbabilities)
		printPointsTable("Expected points:", dist.ExpectedPoints)

		logrus.Infof("Forecast complete in %v", time.Since(startTime))
	},
}

func init() {
	raceCmd.Flags().StringVar(&raceTrackName, "track", "", "Circuit name from the calendar (default: first race)")
	raceCmd.Flags().IntVar(&raceSimulations, "sims", 1000, "Number of race replications")
	rootCmd.AddCommand(raceCmd)
}
