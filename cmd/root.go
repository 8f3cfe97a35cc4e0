package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/fuel-sim/sim"
	"github.com/inference-sim/fuel-sim/sim/export"
)

var (
	// CLI flags for the scenario
	configPath     string    // YAML scenario; flags below override it
	seed           int64     // Seed for the station's random source
	pumps          int       // Number of pumps
	maxQueue       int       // Queue capacity per pump
	days           int       // Simulated days
	start          string    // First simulated day, YYYY-MM-DD
	markups        []float64 // Markup percent per brand, in brand order
	inventory      []float64 // Initial liters per brand, in brand order
	distribution   string    // Inter-arrival distribution
	allocation     string    // Allocation policy
	reportSchedule string    // Cron expression for day reports
	traceLevel     string    // Decision trace level

	// CLI flags for outputs
	outputPath  string // Sink file
	resultsPath string // JSON summary
	metricsOut  string // Prometheus textfile
	logLevel    string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fuelsim",
	Short: "Discrete-event simulator for multi-pump fuel stations",
}

// runCmd executes the simulation using the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the station simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		logrus.Infof("Starting simulation: %d pumps, queue %d, %d day(s), seed %d, allocation %q",
			cfg.Station.Pumps, cfg.Station.MaxQueue, cfg.Days, cfg.Seed, cfg.Station.Allocation)
		wallStart := time.Now()

		summary, err := runSimulation(cfg, outputPath, resultsPath, metricsOut)
		if err != nil {
			return err
		}

		logrus.Infof("Simulation complete in %s: %d arrivals, %d served, %d lost",
			time.Since(wallStart), summary.Arrivals, summary.ServedCars, summary.LostCars)
		fmt.Fprintf(cmd.OutOrStdout(), "Simulation finished. Results written to %s\n", outputPath)
		return nil
	},
}

// buildConfig loads the scenario (or the defaults) and applies every flag the
// user set explicitly, then validates the result.
func buildConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		logrus.Infof("CLI --seed %d overrides scenario seed %d", seed, cfg.Seed)
		cfg.Seed = seed
	}
	if flags.Changed("pumps") {
		cfg.Station.Pumps = pumps
	}
	if flags.Changed("max-queue") {
		cfg.Station.MaxQueue = maxQueue
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("markups") {
		if len(markups) != len(cfg.Station.Brands) {
			return cfg, fmt.Errorf("--markups needs %d values (%v), got %d", len(cfg.Station.Brands), cfg.Station.BrandNames(), len(markups))
		}
		for i := range cfg.Station.Brands {
			cfg.Station.Brands[i].MarkupPercent = markups[i]
		}
	}
	if flags.Changed("inventory") {
		if len(inventory) != len(cfg.Station.Brands) {
			return cfg, fmt.Errorf("--inventory needs %d values (%v), got %d", len(cfg.Station.Brands), cfg.Station.BrandNames(), len(inventory))
		}
		for i := range cfg.Station.Brands {
			cfg.Station.Brands[i].Inventory = inventory[i]
		}
	}
	if flags.Changed("distribution") {
		cfg.Station.Arrival.Distribution = distribution
	}
	if flags.Changed("allocation") {
		cfg.Station.Allocation = allocation
	}
	if flags.Changed("report-schedule") {
		cfg.ReportSchedule = reportSchedule
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = traceLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runSimulation runs cfg with the sink written to outputPath, then writes the
// optional JSON summary and Prometheus textfile.
func runSimulation(cfg sim.Config, outputPath, resultsPath, metricsPath string) (summary *sim.Summary, err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}()

	s, err := sim.NewSimulator(cfg, sim.NewTraceLogger(file))
	if err != nil {
		return nil, err
	}
	summary = s.Run()

	if resultsPath != "" {
		if err := summary.SaveJSON(resultsPath); err != nil {
			return summary, err
		}
		logrus.Infof("Summary written to %s", resultsPath)
	}
	if metricsPath != "" {
		exporter := export.NewExporter()
		exporter.Record(summary)
		if err := exporter.WriteTextfile(metricsPath); err != nil {
			return summary, fmt.Errorf("writing metrics textfile: %w", err)
		}
		logrus.Infof("Metrics written to %s", metricsPath)
	}
	return summary, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags to cmd. Defaults mirror sim.DefaultConfig.
func registerRunFlags(cmd *cobra.Command) {
	defaults := sim.DefaultConfig()
	markupDefaults := make([]float64, len(defaults.Station.Brands))
	inventoryDefaults := make([]float64, len(defaults.Station.Brands))
	for i, b := range defaults.Station.Brands {
		markupDefaults[i] = b.MarkupPercent
		inventoryDefaults[i] = b.Inventory
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML scenario file (flags override its values)")
	cmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for the station's random source")
	cmd.Flags().IntVar(&pumps, "pumps", defaults.Station.Pumps, fmt.Sprintf("Number of pumps (%d-%d)", sim.MinPumps, sim.MaxPumps))
	cmd.Flags().IntVar(&maxQueue, "max-queue", defaults.Station.MaxQueue, fmt.Sprintf("Queue capacity per pump (%d-%d)", sim.MinQueueLen, sim.MaxQueueLen))
	cmd.Flags().IntVar(&days, "days", defaults.Days, fmt.Sprintf("Simulated days (%d-%d)", sim.MinDays, sim.MaxDays))
	cmd.Flags().StringVar(&start, "start", "", "First simulated day, YYYY-MM-DD in UTC (default today)")
	cmd.Flags().Float64SliceVar(&markups, "markups", markupDefaults, "Comma-separated markup percent per brand, in brand order")
	cmd.Flags().Float64SliceVar(&inventory, "inventory", inventoryDefaults, "Comma-separated initial liters per brand, in brand order")
	cmd.Flags().StringVar(&distribution, "distribution", defaults.Station.Arrival.Distribution, "Inter-arrival distribution (uniform, normal)")
	cmd.Flags().StringVar(&allocation, "allocation", defaults.Station.Allocation, "Allocation policy (brand-affinity, shortest-queue)")
	cmd.Flags().StringVar(&reportSchedule, "report-schedule", defaults.ReportSchedule, "Cron expression for day reports")
	cmd.Flags().StringVar(&traceLevel, "trace-level", defaults.TraceLevel, "Decision trace level (none, decisions)")

	cmd.Flags().StringVar(&outputPath, "output", "simulation_output.txt", "File receiving the simulation trace")
	cmd.Flags().StringVar(&resultsPath, "results", "", "Write the JSON summary to this file")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus gauges to this textfile")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
