package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/gui"
	"github.com/san-kum/pendulums/internal/metrics"
	"github.com/san-kum/pendulums/internal/sim"
	"github.com/san-kum/pendulums/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	logLevel   string
	logFile    string

	// run
	duration  float64
	pendulums int
	damping   bool
	save      bool

	// export
	format  string
	outPath string
	size    int
)

// main registers the commands and opens the window when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "pendulums",
		Short:         "chaotic double pendulum lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".pendulums", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to file instead of stderr")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated duration in seconds")
	runCmd.Flags().IntVar(&pendulums, "pendulums", 1, "number of pendulums")
	runCmd.Flags().BoolVar(&damping, "damping", false, "enable damping")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run record")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export the trails of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "svg", "output format (svg, png)")
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <run_id>.<format>)")
	exportCmd.Flags().IntVar(&size, "size", 800, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, exportCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file.
// Command flags are applied by the callers.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return nil, err
	}
	if cfg.Spawn.Seed != 0 && !cmd.Flags().Changed("seed") {
		seed = cfg.Spawn.Seed
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// setupLogger installs the default logger. quiet discards output unless a
// log file was given, so a full-screen view is not overwritten.
func setupLogger(quiet bool) (func() error, error) {
	level, err := parseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	case quiet:
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return closer, nil
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

func newSimulation(cfg *config.Config, opts ...sim.Option) (*sim.Simulation, error) {
	rng := rand.New(rand.NewSource(uint64(seed)))
	s, err := sim.New(cfg, rng, append([]sim.Option{sim.WithLogger(slog.Default())}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}
	return s, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}
	slog.Info("gui: starting", "seed", seed, "pendulums", s.Registry().Len())
	gui.Run(s, cfg)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tracker := metrics.NewTracker(cfg.Physics.Gravity, 0)
	s, err := newSimulation(cfg, sim.WithObserver(tracker))
	if err != nil {
		return err
	}
	reach := cfg.Physics.InnerLength + cfg.Physics.OuterLength
	return viz.Run(s, tracker, reach, cfg.Render.FPS)
}
