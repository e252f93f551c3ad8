package sim

import (
	"fmt"
	"math"

	"github.com/workflow-sim/workflow-sim/sim/trace"
)

// SecondsPerDay converts run length into simulated seconds.
const SecondsPerDay = 86400.0

// DefaultMaxTimeStep bounds a single clock advance, in seconds.
const DefaultMaxTimeStep = 50.0

// minManagedStations is the shortest line the manager and kanban policies
// can operate on.
const minManagedStations = 4

// Options configures a Flow. Durations follow the units people reason in:
// work and reaction times in minutes, arrivals per hour, run length in days.
type Options struct {
	Capacity      int     `mapstructure:"capacity" yaml:"capacity"`             // number of workstations and workers
	WorkTimeM     float64 `mapstructure:"work_time_m" yaml:"work_time_m"`       // mean work time, minutes
	WorkTimeD     float64 `mapstructure:"work_time_d" yaml:"work_time_d"`       // work time spread (±), minutes
	OrdersPerHour float64 `mapstructure:"orders_per_hour" yaml:"orders_per_hour"` // Poisson arrival rate
	Policy        string  `mapstructure:"policy" yaml:"policy"`                 // passive, manager or kanban
	ReactionTime  float64 `mapstructure:"reaction_time" yaml:"reaction_time"`   // load perception hysteresis, minutes
	HelpersM      float64 `mapstructure:"helpers_m" yaml:"helpers_m"`           // mean helpers per overload (manager)
	HelpersD      float64 `mapstructure:"helpers_d" yaml:"helpers_d"`           // helpers spread (manager)
	WipLimit      int     `mapstructure:"wip_limit" yaml:"wip_limit"`           // wait-queue occupancy counted as overload

	ManagersPerfection              float64 `mapstructure:"managers_perfection" yaml:"managers_perfection"`
	ManagerialInterventionFrequency float64 `mapstructure:"managerial_intervention_frequency" yaml:"managerial_intervention_frequency"` // minutes

	RandomBreakProbability float64 `mapstructure:"random_break_probability" yaml:"random_break_probability"`
	RandomBreakDurationM   float64 `mapstructure:"random_break_duration_m" yaml:"random_break_duration_m"` // minutes
	RandomBreakDurationD   float64 `mapstructure:"random_break_duration_d" yaml:"random_break_duration_d"` // minutes

	TotalSimulationTimeDays float64 `mapstructure:"total_simulation_time_days" yaml:"total_simulation_time_days"`

	Seed             int64   `mapstructure:"seed" yaml:"seed"`
	MaxTimeStep      float64 `mapstructure:"max_time_step" yaml:"max_time_step"`           // seconds
	BreakChanceEvery float64 `mapstructure:"break_chance_every" yaml:"break_chance_every"` // seconds
	TraceLevel       string  `mapstructure:"trace_level" yaml:"trace_level"`
}

// DefaultOptions returns the stock scenario: five passive stations, ten
// orders an hour, five-minute jobs, ten simulated days.
func DefaultOptions() Options {
	return Options{
		Capacity:                        5,
		WorkTimeM:                       5,
		WorkTimeD:                       3,
		OrdersPerHour:                   10,
		Policy:                          PolicyPassive,
		ReactionTime:                    5,
		HelpersM:                        2,
		HelpersD:                        1,
		WipLimit:                        3,
		ManagersPerfection:              1,
		ManagerialInterventionFrequency: 5,
		RandomBreakProbability:          0.001,
		RandomBreakDurationM:            60,
		RandomBreakDurationD:            20,
		TotalSimulationTimeDays:         10,
		Seed:                            42,
		MaxTimeStep:                     DefaultMaxTimeStep,
		BreakChanceEvery:                DefaultBreakChanceEvery,
		TraceLevel:                      "none",
	}
}

// Horizon returns the run length in seconds.
func (o Options) Horizon() float64 {
	return o.TotalSimulationTimeDays * SecondsPerDay
}

// OverloadFactor is the mean work time over the mean inter-arrival time.
// Values at or above 1 mean a single worker cannot keep up.
func (o Options) OverloadFactor() float64 {
	return o.WorkTimeM / (60 / o.OrdersPerHour)
}

// WithLoadFactor derives the work time from the arrival rate so that one
// worker is loaded to factor: mean = 60/ordersPerHour*factor minutes,
// spread = 60% of the mean, both rounded to one decimal.
func (o Options) WithLoadFactor(factor float64) Options {
	o.WorkTimeM = math.Round(60/o.OrdersPerHour*factor*10) / 10
	o.WorkTimeD = math.Round(o.WorkTimeM*0.6*10) / 10
	return o
}

// Validate checks the options fail-fast. Errors wrap ErrInvalidConfiguration.
func (o Options) Validate() error {
	if !IsValidPolicy(o.Policy) {
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfiguration, o.Policy)
	}
	if o.Capacity > MaxStations {
		return fmt.Errorf("%w: can't have more than %d workstations or workers, got %d", ErrInvalidConfiguration, MaxStations, o.Capacity)
	}
	switch canonicalPolicy(o.Policy) {
	case PolicyPassive:
		if o.Capacity < 1 {
			return fmt.Errorf("%w: a passive line needs at least one workstation, got %d", ErrInvalidConfiguration, o.Capacity)
		}
	case PolicyManager, PolicyKanban:
		if o.Capacity < minManagedStations {
			return fmt.Errorf("%w: a %s line needs at least %d workstations, got %d", ErrInvalidConfiguration, o.Policy, minManagedStations, o.Capacity)
		}
	}
	if o.OrdersPerHour <= 0 {
		return fmt.Errorf("%w: orders_per_hour must be positive, got %g", ErrInvalidConfiguration, o.OrdersPerHour)
	}
	if o.WorkTimeM < 0 || o.WorkTimeD < 0 {
		return fmt.Errorf("%w: work time mean and spread must be non-negative", ErrInvalidConfiguration)
	}
	if o.WipLimit < 1 {
		return fmt.Errorf("%w: wip_limit must be at least 1, got %d", ErrInvalidConfiguration, o.WipLimit)
	}
	if o.ReactionTime < 0 {
		return fmt.Errorf("%w: reaction_time must be non-negative, got %g", ErrInvalidConfiguration, o.ReactionTime)
	}
	if o.ManagersPerfection <= 0 {
		return fmt.Errorf("%w: managers_perfection must be positive, got %g", ErrInvalidConfiguration, o.ManagersPerfection)
	}
	if o.ManagerialInterventionFrequency < 0 {
		return fmt.Errorf("%w: managerial_intervention_frequency must be non-negative", ErrInvalidConfiguration)
	}
	if o.RandomBreakProbability < 0 || o.RandomBreakProbability > 1 {
		return fmt.Errorf("%w: random_break_probability must be in [0, 1], got %g", ErrInvalidConfiguration, o.RandomBreakProbability)
	}
	if o.RandomBreakDurationM < 0 || o.RandomBreakDurationD < 0 {
		return fmt.Errorf("%w: breakdown duration mean and spread must be non-negative", ErrInvalidConfiguration)
	}
	if o.TotalSimulationTimeDays <= 0 {
		return fmt.Errorf("%w: total_simulation_time_days must be positive, got %g", ErrInvalidConfiguration, o.TotalSimulationTimeDays)
	}
	if o.MaxTimeStep < 0 || o.BreakChanceEvery < 0 {
		return fmt.Errorf("%w: max_time_step and break_chance_every must be non-negative", ErrInvalidConfiguration)
	}
	if !trace.IsValidTraceLevel(o.TraceLevel) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfiguration, o.TraceLevel)
	}
	return nil
}
