package sim

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// SimulationKey is the master seed of a run. Two flows built from the same
// key and the same Options move the same workers at the same instants.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random stream names. Every consumer of randomness draws from its own
// stream, so adding draws in one place never shifts another.
const (
	SubsystemArrivals   = "arrivals"   // order gaps; seeded with the master seed itself
	SubsystemPolicy     = "policy"     // helper counts and donor shuffles
	SubsystemDisruption = "disruption" // breakdown trials, station and duration
)

// SubsystemStation names the work-time stream of one station.
func SubsystemStation(id StationID) string {
	return "station_" + strconv.Itoa(int(id))
}

// PartitionedRNG hands out one *rand.Rand per named stream. A stream's seed
// is the master seed XOR the FNV-1a hash of its name, except the arrival
// stream which uses the master seed unchanged.
//
// Not safe for concurrent use; the flow owns it.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: map[string]*rand.Rand{}}
}

// ForSubsystem returns the stream called name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	r, ok := p.streams[name]
	if !ok {
		r = rand.New(rand.NewSource(p.seedFor(name)))
		p.streams[name] = r
	}
	return r
}

func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemArrivals {
		return int64(p.key)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(p.key) ^ int64(h.Sum64())
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey { return p.key }
