package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/belt-sim/belt-sim/sim/scenario"
)

var (
	// CLI flags for the simulation run
	scenarioPath   string  // Path to a YAML scenario file (empty = built-in demo)
	logLevel       string  // Log verbosity level
	ticksOverride  int     // Override the scenario's tick count
	framesPerTick  int     // Override render frames per logical tick
	cellsPerSecond float64 // Override visual belt speed
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "belt-sim",
	Short: "Tick-driven belt simulation engine for factory-building games",
}

// runCmd executes a scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a belt scenario to completion",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec := DefaultScenario()
		if scenarioPath != "" {
			spec, err = scenario.Load(scenarioPath)
			if err != nil {
				logrus.Fatalf("unable to read scenario: %v", err)
			}
		}
		if ticksOverride > 0 {
			spec.Ticks = ticksOverride
		}
		if framesPerTick > 0 {
			spec.FramesPerTick = framesPerTick
		}
		if cellsPerSecond > 0 {
			spec.Animation.CellsPerSecond = cellsPerSecond
		}

		runner, err := scenario.NewRunner(spec)
		if err != nil {
			logrus.Fatalf("unable to build scenario: %v", err)
		}

		logrus.Infof("Starting scenario %q: %d ticks, %d frames/tick",
			spec.Name, spec.Ticks, spec.FramesPerTick)

		startTime := time.Now()
		metrics := runner.Run()
		elapsed := time.Since(startTime)

		metrics.Print()
		for i, sink := range runner.Sinks() {
			logrus.Infof("sink %d received %d items", i, len(sink.Received()))
		}
		logrus.Infof("Scenario complete in %s.", elapsed)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file (default: built-in demo)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().IntVar(&ticksOverride, "ticks", 0, "Override the scenario tick count")
	runCmd.Flags().IntVar(&framesPerTick, "frames-per-tick", 0, "Override render frames per logical tick")
	runCmd.Flags().Float64Var(&cellsPerSecond, "cells-per-second", 0, "Override visual belt speed in cells per second")

	rootCmd.AddCommand(runCmd)
}
