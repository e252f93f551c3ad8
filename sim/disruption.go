package sim

import (
	"math/rand"

	"github.com/workflow-sim/workflow-sim/sim/workload"
)

// DefaultBreakChanceEvery is how often, in seconds, a breakdown trial is made.
const DefaultBreakChanceEvery = 200.0

// DisruptionKind tells what a disruption evaluation did.
type DisruptionKind int

const (
	DisruptionNone DisruptionKind = iota
	DisruptionStarted
	DisruptionRecovered
)

// DisruptionChange reports the outcome of one evaluation.
type DisruptionChange struct {
	Kind    DisruptionKind
	Station StationID
	// Until is the end time of a started breakdown.
	Until float64
	// Since is the start time of a recovered breakdown.
	Since float64
}

// DisruptionModel randomly degrades one workstation at a time for a sampled
// duration, independently of the reallocation policy.
type DisruptionModel struct {
	Probability float64
	Every       float64
	Duration    workload.Sampler

	rng            *rand.Rand
	previousChance float64
	active         StationID
	since          float64
	until          float64
}

// NewDisruptionModel creates a model making a Bernoulli(probability) trial
// every `every` seconds.
func NewDisruptionModel(probability, every float64, duration workload.Sampler, rng *rand.Rand) *DisruptionModel {
	if every <= 0 {
		every = DefaultBreakChanceEvery
	}
	return &DisruptionModel{
		Probability: probability,
		Every:       every,
		Duration:    duration,
		rng:         rng,
		active:      NoStation,
	}
}

// Active returns the disrupted station and its end time; ok is false when no
// disruption is in progress.
func (d *DisruptionModel) Active() (station StationID, until float64, ok bool) {
	return d.active, d.until, d.active != NoStation
}

// Evaluate advances the model to now. A running breakdown ends as soon as now
// reaches its end time. Trials happen on the fixed cadence and only while no
// breakdown is running.
func (d *DisruptionModel) Evaluate(line *Line, now float64) DisruptionChange {
	if d.active != NoStation && now >= d.until {
		station := d.active
		line.Station(station).SetSlow(false)
		d.active = NoStation
		return DisruptionChange{Kind: DisruptionRecovered, Station: station, Since: d.since}
	}

	elapsed := now - d.previousChance
	if elapsed <= d.Every {
		return DisruptionChange{}
	}
	d.previousChance = now - (elapsed - d.Every)

	if d.active != NoStation || d.Probability <= 0 {
		return DisruptionChange{}
	}
	if d.rng.Float64() >= d.Probability {
		return DisruptionChange{}
	}

	var candidates []*Workstation
	for _, ws := range line.Stations {
		if !ws.Slow() {
			candidates = append(candidates, ws)
		}
	}
	if len(candidates) == 0 {
		return DisruptionChange{}
	}
	ws := candidates[d.rng.Intn(len(candidates))]
	ws.SetSlow(true)
	d.active = ws.ID
	d.since = now
	d.until = now + max(d.Duration.Sample(d.rng), 0)
	return DisruptionChange{Kind: DisruptionStarted, Station: ws.ID, Until: d.until}
}
