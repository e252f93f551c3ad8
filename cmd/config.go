package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	sim "github.com/workflow-sim/workflow-sim/sim"
)

// envPrefix prefixes environment overrides, e.g. WORKFLOWSIM_ORDERS_PER_HOUR.
const envPrefix = "WORKFLOWSIM"

// defaultConfigName is looked up in the working directory when --config is
// not given.
const defaultConfigName = "workflow-sim"

// optionFlags maps each run flag to its configuration key.
var optionFlags = map[string]string{
	"capacity":                          "capacity",
	"work-time-m":                       "work_time_m",
	"work-time-d":                       "work_time_d",
	"orders-per-hour":                   "orders_per_hour",
	"policy":                            "policy",
	"reaction-time":                     "reaction_time",
	"helpers-m":                         "helpers_m",
	"helpers-d":                         "helpers_d",
	"wip-limit":                         "wip_limit",
	"managers-perfection":               "managers_perfection",
	"managerial-intervention-frequency": "managerial_intervention_frequency",
	"random-break-probability":          "random_break_probability",
	"random-break-duration-m":           "random_break_duration_m",
	"random-break-duration-d":           "random_break_duration_d",
	"days":                              "total_simulation_time_days",
	"seed":                              "seed",
	"max-time-step":                     "max_time_step",
	"break-chance-every":                "break_chance_every",
	"trace-level":                       "trace_level",
}

// setDefaults registers every option of base as a viper default.
func setDefaults(v *viper.Viper, base sim.Options) {
	v.SetDefault("capacity", base.Capacity)
	v.SetDefault("work_time_m", base.WorkTimeM)
	v.SetDefault("work_time_d", base.WorkTimeD)
	v.SetDefault("orders_per_hour", base.OrdersPerHour)
	v.SetDefault("policy", base.Policy)
	v.SetDefault("reaction_time", base.ReactionTime)
	v.SetDefault("helpers_m", base.HelpersM)
	v.SetDefault("helpers_d", base.HelpersD)
	v.SetDefault("wip_limit", base.WipLimit)
	v.SetDefault("managers_perfection", base.ManagersPerfection)
	v.SetDefault("managerial_intervention_frequency", base.ManagerialInterventionFrequency)
	v.SetDefault("random_break_probability", base.RandomBreakProbability)
	v.SetDefault("random_break_duration_m", base.RandomBreakDurationM)
	v.SetDefault("random_break_duration_d", base.RandomBreakDurationD)
	v.SetDefault("total_simulation_time_days", base.TotalSimulationTimeDays)
	v.SetDefault("seed", base.Seed)
	v.SetDefault("max_time_step", base.MaxTimeStep)
	v.SetDefault("break_chance_every", base.BreakChanceEvery)
	v.SetDefault("trace_level", base.TraceLevel)
}

// configSource says where the layered options come from.
type configSource struct {
	// ConfigFile is an explicit config path; empty looks for
	// ./workflow-sim.yaml and skips it if absent.
	ConfigFile string
	// Base is the lowest layer: the defaults, possibly with a preset applied.
	Base sim.Options
	// Flags holds the run flags; only flags set on the command line override.
	Flags *pflag.FlagSet
}

// loadOptions layers defaults, config file, environment and flags, in that
// order of increasing precedence.
func loadOptions(src configSource) (sim.Options, error) {
	v := viper.New()
	setDefaults(v, src.Base)

	if src.ConfigFile != "" {
		v.SetConfigFile(src.ConfigFile)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if src.ConfigFile != "" || !errors.As(err, &notFound) {
			return sim.Options{}, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	// Replace dots with underscores for nested keys in env vars
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if src.Flags != nil {
		for flag, key := range optionFlags {
			if f := src.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return sim.Options{}, fmt.Errorf("binding flag %s: %w", flag, err)
				}
			}
		}
	}

	var opts sim.Options
	if err := v.Unmarshal(&opts); err != nil {
		return sim.Options{}, fmt.Errorf("decoding config: %w", err)
	}
	return opts, nil
}

// registerOptionFlags declares one flag per option, with defaults from base.
func registerOptionFlags(fs *pflag.FlagSet, base sim.Options) {
	fs.Int("capacity", base.Capacity, "Number of workstations (and workers)")
	fs.Float64("work-time-m", base.WorkTimeM, "Mean work time per station (minutes)")
	fs.Float64("work-time-d", base.WorkTimeD, "Work time spread, ± around the mean (minutes)")
	fs.Float64("orders-per-hour", base.OrdersPerHour, "Order arrival rate")
	fs.String("policy", base.Policy, "Reallocation policy (passive, manager, kanban)")
	fs.Float64("reaction-time", base.ReactionTime, "Time a load condition must persist before it is perceived (minutes)")
	fs.Float64("helpers-m", base.HelpersM, "Mean helpers sent to an overloaded station (manager)")
	fs.Float64("helpers-d", base.HelpersD, "Helpers spread (manager)")
	fs.Int("wip-limit", base.WipLimit, "Waiting boxes that count as overload")
	fs.Float64("managers-perfection", base.ManagersPerfection, "Manager judgment quality; higher picks better donors")
	fs.Float64("managerial-intervention-frequency", base.ManagerialInterventionFrequency, "Cooldown between manager interventions (minutes)")
	fs.Float64("random-break-probability", base.RandomBreakProbability, "Breakdown probability per trial")
	fs.Float64("random-break-duration-m", base.RandomBreakDurationM, "Mean breakdown duration (minutes)")
	fs.Float64("random-break-duration-d", base.RandomBreakDurationD, "Breakdown duration spread (minutes)")
	fs.Float64("days", base.TotalSimulationTimeDays, "Simulated run length (days)")
	fs.Int64("seed", base.Seed, "Seed for all random streams")
	fs.Float64("max-time-step", base.MaxTimeStep, "Longest single clock advance (seconds)")
	fs.Float64("break-chance-every", base.BreakChanceEvery, "Interval between breakdown trials (seconds)")
	fs.String("trace-level", base.TraceLevel, "Decision trace level (none, decisions)")
}
