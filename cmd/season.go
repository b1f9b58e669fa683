package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/gridsim/gridsim/sim"
)

var seasonReplications int // Number of full-season replications

// seasonCmd forecasts both championships over the full calendar
var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Forecast the drivers' and constructors' championships",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		calendar := loadCalendarOrDie()
		teams := loadGrid()

		logrus.Infof("Forecasting season: %d races x %d replications, seed=%d", len(calendar), seasonReplications, baseSeed)
		startTime := time.Now()

		dist, err := sim.SimulateSeasonMonteCarlo(calendar, teams, lapsPerRace, seasonReplications, baseSeed, noiseStd)
		if err != nil {
			logrus.Fatalf("season forecast failed: %v", err)
		}

		fmt.Printf("=== Season | %d races | %d replications ===\n", len(calendar), seasonReplications)
		printProbabilityTable("Drivers' championship:", dist.WDCProbabilities)
		printProbabilityTable("Constructors' championship:", dist.WCCProbabilities)
		printPointsTable("Expected driver points:", dist.ExpectedDriverPoints)
		printPointsTable("Expected team points:", dist.ExpectedTeamPoints)
		fmt.Printf("Title-fight entropy: WDC %.3f nats, WCC %.3f nats\n",
			sim.ChampionshipEntropy(dist.WDCProbabilities),
			sim.ChampionshipEntropy(dist.WCCProbabilities))

		logrus.Infof("Forecast complete in %v", time.Since(startTime))
	},
}

func init() {
	seasonCmd.Flags().IntVar(&seasonReplications, "seasons", 500, "Number of season replications")
	rootCmd.AddCommand(seasonCmd)
}
