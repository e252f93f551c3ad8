package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/workflow-sim/workflow-sim/sim"
	"github.com/workflow-sim/workflow-sim/sim/metrics"
)

var (
	logLevel      string        // Log verbosity level
	configFile    string        // Explicit config file
	presetName    string        // Preset applied beneath config file, env and flags
	presetsPath   string        // Presets file
	loadFactor    float64       // Derive work time from arrival rate when > 0
	metricsAddr   string        // Prometheus listen address; empty disables
	metricsLinger time.Duration // Keep serving metrics after the run
	frameDelay    time.Duration // Wall-clock pause after every clock advance
	traceOutput   string        // Write the decision trace as YAML
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "workflow-sim",
	Short: "Discrete-event simulator for staffing policies on a workstation line",
}

// runCmd executes the simulation using parameters from presets, config,
// environment and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the workflow simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		opts, err := resolveOptions(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		var recorder metrics.Recorder = metrics.NewNop()
		var server *metricsServer
		if metricsAddr != "" {
			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector())
			recorder = metrics.NewPrometheus(registry, "")
			server = newMetricsServer(metricsAddr, registry)
			if err := server.Start(); err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		flow, err := sim.NewFlow(opts, sim.WithRecorder(recorder))
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		flow.FrameDelay = frameDelay

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logrus.Infof("Starting simulation: policy=%s capacity=%d horizon=%.0fs seed=%d",
			opts.Policy, opts.Capacity, opts.Horizon(), opts.Seed)
		startTime := time.Now()

		toggle, release := pauseToggle()
		defer release()
		if err := runWithPauseToggle(ctx, flow, toggle); err != nil {
			logrus.Warnf("Simulation interrupted: %v", err)
		}

		fmt.Println(newRunReport(flow, time.Since(startTime)).Render())

		if traceOutput != "" {
			if err := writeTrace(traceOutput, flow); err != nil {
				logrus.Errorf("%v", err)
			}
		}

		if server != nil {
			if metricsLinger > 0 {
				logrus.Infof("Serving final metrics for %s", metricsLinger)
				select {
				case <-time.After(metricsLinger):
				case <-ctx.Done():
				}
			}
			if err := server.Shutdown(); err != nil {
				logrus.Errorf("metrics server shutdown: %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// presetsCmd lists the presets available to run --preset
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the named scenario presets",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		pf, err := LoadPresets(presetsPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Println(renderPresets(pf))
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveOptions builds the run options: defaults, then the preset, then
// the config file, environment and flags, then the load factor.
func resolveOptions(cmd *cobra.Command) (sim.Options, error) {
	base := sim.DefaultOptions()
	if presetName != "" {
		pf, err := LoadPresets(presetsPath)
		if err != nil {
			return base, err
		}
		if base, err = pf.Apply(presetName, base); err != nil {
			return base, err
		}
	}

	opts, err := loadOptions(configSource{ConfigFile: configFile, Base: base, Flags: cmd.Flags()})
	if err != nil {
		return opts, err
	}
	if loadFactor > 0 {
		opts = opts.WithLoadFactor(loadFactor)
		logrus.Infof("Load factor %.2f: work time %.1f ± %.1f min", loadFactor, opts.WorkTimeM, opts.WorkTimeD)
	}
	return opts, opts.Validate()
}

// runWithPauseToggle runs f to completion. Each value on toggle pauses a
// running simulation or resumes a paused one.
func runWithPauseToggle(ctx context.Context, f *sim.Flow, toggle <-chan struct{}) error {
	for {
		done := make(chan error, 1)
		go func() { done <- f.Run(ctx) }()

		var err error
		// A toggle that arrives after the pause request but before Run
		// returns already asks for the resume.
		pausing, resume := false, false
	wait:
		for {
			select {
			case err = <-done:
				break wait
			case <-toggle:
				if !pausing {
					pausing = true
					f.Pause()
				} else {
					resume = !resume
				}
			}
		}
		if err != nil {
			return err
		}
		if f.State() != sim.StatePaused {
			return nil
		}

		logrus.Warnf("[t=%.0fs] Paused with %d boxes in the line; toggle again to resume", f.Clock, f.UnitsInSystem())
		if !resume {
			select {
			case <-toggle:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		logrus.Warnf("[t=%.0fs] Resuming", f.Clock)
	}
}

func writeTrace(path string, f *sim.Flow) error {
	data, err := yaml.Marshal(f.Trace())
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	logrus.Infof("Wrote decision trace to %s", path)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&presetsPath, "presets", defaultPresetsPath, "Presets file")

	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (default is ./workflow-sim.yaml if present)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "Named preset to start from")
	runCmd.Flags().Float64Var(&loadFactor, "load-factor", 0, "Derive work time so one worker is loaded to this factor (0 keeps work-time flags)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	runCmd.Flags().DurationVar(&metricsLinger, "metrics-linger", 0, "Keep serving metrics this long after the run")
	runCmd.Flags().DurationVar(&frameDelay, "frame-delay", 0, "Wall-clock delay after every clock advance, for live observation")
	runCmd.Flags().StringVar(&traceOutput, "trace-output", "", "Write the decision trace to this YAML file (needs --trace-level decisions)")

	// Scenario options, layered over presets, config file and environment
	registerOptionFlags(runCmd.Flags(), sim.DefaultOptions())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(presetsCmd)
}
