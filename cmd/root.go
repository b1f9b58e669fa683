package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/gridsim/gridsim/sim"
)

var (
	// CLI flags shared by all simulation subcommands
	logLevel        string  // Log verbosity level
	tracksFile      string  // Path to the calendar YAML
	teamsFile       string  // Path to the grid YAML
	calibrationFile string  // Optional calibrated car parameters YAML
	baseSeed        int64   // Base seed; every replication seed derives from it
	lapsPerRace     int     // Race distance in laps
	noiseStd        float64 // Lap-time noise standard deviation in seconds
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gridsim",
	Short: "Seeded Monte Carlo championship forecaster",
	Long: `gridsim simulates motorsport races and full championship seasons with a
deterministic physics model plus seeded stochastic noise, hazards and
overtaking, and aggregates the replications into win, podium and title
probabilities.`,
}

// setupLogging applies the --log flag before a subcommand runs
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadGrid reads the team grid and, when --calibration is given, overlays
// the externally estimated car parameters before any simulation starts.
func loadGrid() []*sim.Team {
	teams, err := LoadTeams(teamsFile)
	if err != nil {
		logrus.Fatalf("unable to read teams config: %v", err)
	}
	if calibrationFile != "" {
		calibration, err := LoadCalibration(calibrationFile)
		if err != nil {
			logrus.Fatalf("unable to read calibration config: %v", err)
		}
		teams, err = ApplyCalibration(teams, calibration)
		if err != nil {
			logrus.Fatalf("unable to apply calibration: %v", err)
		}
		logrus.Infof("Applied calibrated parameters for %d teams", len(calibration))
	}
	return teams
}

func loadCalendarOrDie() []sim.Track {
	calendar, err := LoadCalendar(tracksFile)
	if err != nil {
		logrus.Fatalf("unable to read tracks config: %v", err)
	}
	return calendar
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up the flags every subcommand shares
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&tracksFile, "tracks", "config/tracks.yaml", "Calendar YAML file")
	rootCmd.PersistentFlags().StringVar(&teamsFile, "teams", "config/teams.yaml", "Grid YAML file")
	rootCmd.PersistentFlags().StringVar(&calibrationFile, "calibration", "", "Calibrated car parameters YAML file (optional)")
	rootCmd.PersistentFlags().Int64Var(&baseSeed, "seed", 42, "Base seed for replication seed derivation")
	rootCmd.PersistentFlags().IntVar(&lapsPerRace, "laps", 50, "Race distance in laps")
	rootCmd.PersistentFlags().Float64Var(&noiseStd, "noise", 0.05, "Lap-time noise standard deviation (seconds)")
}
