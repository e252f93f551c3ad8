package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/workflow-sim/workflow-sim/sim/workload"
)

// Reasons attached to worker moves.
const (
	ReasonHelpOverloaded = "help-overloaded"
	ReasonOfferHelp      = "offer-help"
	ReasonReturnHome     = "return-home"
	ReasonPullForward    = "pull-forward"
	ReasonStepBack       = "step-back"
	ReasonStepHome       = "step-home"
)

// Policy names.
const (
	PolicyPassive = "passive"
	PolicyManager = "manager"
	PolicyKanban  = "kanban"
)

// validPolicies maps accepted policy names. "self" is the historical name of
// the passive policy.
var validPolicies = map[string]bool{
	"":            true,
	PolicyPassive: true,
	"self":        true,
	PolicyManager: true,
	PolicyKanban:  true,
}

// IsValidPolicy returns true if name is a recognized reallocation policy.
func IsValidPolicy(name string) bool {
	return validPolicies[name]
}

// canonicalPolicy maps aliases and the empty default to a policy name.
func canonicalPolicy(name string) string {
	switch name {
	case "", "self":
		return PolicyPassive
	}
	return name
}

// ReallocationPolicy moves workers between workstations. Reallocate runs once
// per clock advance, after the disruption model, and must not block.
type ReallocationPolicy interface {
	Name() string
	Reallocate(line *Line, now float64)
}

// Passive never moves anyone.
type Passive struct{}

func (p *Passive) Name() string { return PolicyPassive }

func (p *Passive) Reallocate(_ *Line, _ float64) {}

// Manager intervenes at most once per cooldown. Overloaded stations receive
// helpers picked, with imperfect judgment, among the least loaded stations;
// underloaded stations send a worker to the most loaded one; stations back to
// normal send visitors straight home.
type Manager struct {
	Helpers    workload.Sampler
	Perfection float64
	// Frequency is the cooldown between interventions, in seconds.
	Frequency float64

	rng              *rand.Rand
	lastIntervention float64
}

// NewManager creates a manager policy.
func NewManager(helpers workload.Sampler, perfection, frequency float64, rng *rand.Rand) *Manager {
	return &Manager{Helpers: helpers, Perfection: perfection, Frequency: frequency, rng: rng}
}

func (m *Manager) Name() string { return PolicyManager }

// LastIntervention returns the time of the most recent intervention.
func (m *Manager) LastIntervention() float64 { return m.lastIntervention }

func (m *Manager) Reallocate(line *Line, now float64) {
	if now-m.lastIntervention <= m.Frequency {
		return
	}
	m.lastIntervention = now

	for _, ws := range line.Stations {
		switch ws.PerceivedLoad(now) {
		case Overloaded:
			m.sendHelpers(line, ws)
		case Underloaded:
			m.offerHelp(line, ws)
		default:
			line.ReturnHome(ws, ReasonReturnHome)
		}
	}
}

// sendHelpers pulls the first worker of each chosen donor station into ws.
func (m *Manager) sendHelpers(line *Line, ws *Workstation) {
	helpers := int(math.Round(m.Helpers.Sample(m.rng)))
	if helpers <= 0 {
		return
	}
	donors := m.pickDonors(line.RankByWaiting(true), helpers)
	for _, donor := range donors {
		if donor.Staff() > 0 {
			line.Move(donor.roster[0], ws.ID, ReasonHelpOverloaded)
		}
	}
}

// pickDonors narrows the ranked candidates to round(helpers/perfection),
// shuffles them, and keeps the first helpers entries.
func (m *Manager) pickDonors(ranked []*Workstation, helpers int) []*Workstation {
	pool := len(ranked)
	if m.Perfection > 0 {
		pool = min(pool, int(math.Round(float64(helpers)/m.Perfection)))
	}
	pool = max(pool, 0)
	candidates := ranked[:pool]
	m.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:min(len(candidates), helpers)]
}

func (m *Manager) offerHelp(line *Line, ws *Workstation) {
	if ws.Staff() == 0 {
		return
	}
	ranked := line.RankByWaiting(false)
	if len(ranked) == 0 {
		return
	}
	line.Move(ws.roster[0], ranked[0].ID, ReasonOfferHelp)
}

// Kanban moves workers one station at a time along the chain every tick:
// an overloaded station pulls a worker from its predecessor, an underloaded
// one sends a worker back, and a normal one steps visitors toward home.
// A worker moves at most once per tick.
type Kanban struct{}

func (k *Kanban) Name() string { return PolicyKanban }

func (k *Kanban) Reallocate(line *Line, now float64) {
	moved := make(map[WorkerID]bool)
	move := func(id WorkerID, to StationID, reason string) {
		if line.Move(id, to, reason) {
			moved[id] = true
		}
	}

	for i, ws := range line.Stations {
		load := ws.PerceivedLoad(now)
		switch {
		case load == Overloaded && i > 0:
			prev := line.Stations[i-1]
			if id, ok := firstUnmoved(prev.roster, moved); ok {
				move(id, ws.ID, ReasonPullForward)
			}
		case load == Underloaded && i > 0 && ws.Staff() > 0:
			if id, ok := firstUnmoved(ws.roster, moved); ok {
				move(id, line.Stations[i-1].ID, ReasonStepBack)
			}
		case load == Normal:
			for _, id := range append([]WorkerID(nil), ws.roster...) {
				if moved[id] {
					continue
				}
				home := line.Workers[id].home
				if home == NoStation || home == ws.ID {
					continue
				}
				next := i + 1
				if int(home) < i {
					next = i - 1
				}
				if next < 0 || next >= len(line.Stations) {
					continue
				}
				move(id, line.Stations[next].ID, ReasonStepHome)
			}
		}
	}
}

func firstUnmoved(roster []WorkerID, moved map[WorkerID]bool) (WorkerID, bool) {
	for _, id := range roster {
		if !moved[id] {
			return id, true
		}
	}
	return 0, false
}

// NewReallocationPolicy creates the policy selected in opts.
// Valid names are defined in validPolicies.
// Panics on unrecognized names; Options.Validate rejects them first.
func NewReallocationPolicy(opts Options, rng *rand.Rand) ReallocationPolicy {
	if !IsValidPolicy(opts.Policy) {
		panic(fmt.Sprintf("unknown reallocation policy %q", opts.Policy))
	}
	switch canonicalPolicy(opts.Policy) {
	case PolicyPassive:
		return &Passive{}
	case PolicyManager:
		return NewManager(
			workload.NewUniformAround(opts.HelpersM, opts.HelpersD),
			opts.ManagersPerfection,
			opts.ManagerialInterventionFrequency*60,
			rng,
		)
	case PolicyKanban:
		return &Kanban{}
	default:
		panic(fmt.Sprintf("unhandled reallocation policy %q", opts.Policy))
	}
}
