// Tracks the residence-time statistic of boxes leaving the line.

package sim

import (
	"fmt"
	"math"
	"strings"
)

// Tally accumulates observations and summarizes them. A histogram is kept
// once SetHistogramParameters has been called.
type Tally struct {
	values []float64
	sum    float64
	sumSq  float64
	min    float64
	max    float64

	histFrom    float64
	histBinSize float64
	histTo      float64
	bins        []int // bins[0] underflow, bins[len-1] overflow
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{}
}

// SetHistogramParameters buckets observations into [from, to) with bins of
// binSize, plus one underflow and one overflow bucket. Observations already
// recorded are re-bucketed.
func (t *Tally) SetHistogramParameters(from, binSize, to float64) {
	if binSize <= 0 || to <= from {
		t.bins = nil
		return
	}
	t.histFrom, t.histBinSize, t.histTo = from, binSize, to
	n := int(math.Ceil((to - from) / binSize))
	t.bins = make([]int, n+2)
	for _, v := range t.values {
		t.bucket(v)
	}
}

// Add records one observation.
func (t *Tally) Add(v float64) {
	if len(t.values) == 0 || v < t.min {
		t.min = v
	}
	if len(t.values) == 0 || v > t.max {
		t.max = v
	}
	t.values = append(t.values, v)
	t.sum += v
	t.sumSq += v * v
	if t.bins != nil {
		t.bucket(v)
	}
}

func (t *Tally) bucket(v float64) {
	switch {
	case v < t.histFrom:
		t.bins[0]++
	case v >= t.histTo:
		t.bins[len(t.bins)-1]++
	default:
		i := int((v - t.histFrom) / t.histBinSize)
		t.bins[min(i+1, len(t.bins)-2)]++
	}
}

// Count returns the number of observations.
func (t *Tally) Count() int { return len(t.values) }

// Mean returns the average, or zero when empty.
func (t *Tally) Mean() float64 {
	if len(t.values) == 0 {
		return 0
	}
	return t.sum / float64(len(t.values))
}

// Min returns the smallest observation, or zero when empty.
func (t *Tally) Min() float64 { return t.min }

// Max returns the largest observation, or zero when empty.
func (t *Tally) Max() float64 { return t.max }

// StdDev returns the population standard deviation.
func (t *Tally) StdDev() float64 {
	n := float64(len(t.values))
	if n == 0 {
		return 0
	}
	mean := t.sum / n
	variance := t.sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Percentile returns the interpolated p-th percentile (0..100).
func (t *Tally) Percentile(p float64) float64 {
	return CalculatePercentile(sortedCopy(t.values), p)
}

// Histogram returns the buckets, underflow first and overflow last, or nil
// when no histogram was configured.
func (t *Tally) Histogram() []Bin {
	if t.bins == nil {
		return nil
	}
	out := make([]Bin, 0, len(t.bins))
	out = append(out, Bin{Key: -1, Lower: math.Inf(-1), Upper: t.histFrom, Count: t.bins[0]})
	for i := 1; i < len(t.bins)-1; i++ {
		lower := t.histFrom + float64(i-1)*t.histBinSize
		out = append(out, Bin{Key: i - 1, Lower: lower, Upper: math.Min(lower+t.histBinSize, t.histTo), Count: t.bins[i]})
	}
	out = append(out, Bin{Key: len(t.bins) - 2, Lower: t.histTo, Upper: math.Inf(1), Count: t.bins[len(t.bins)-1]})
	return out
}

// ResidenceStats is a snapshot of a Tally.
type ResidenceStats struct {
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	Bins   []Bin
}

// Stats summarizes the tally.
func (t *Tally) Stats() ResidenceStats {
	sorted := sortedCopy(t.values)
	return ResidenceStats{
		Count:  t.Count(),
		Mean:   t.Mean(),
		Min:    t.Min(),
		Max:    t.Max(),
		StdDev: t.StdDev(),
		P50:    CalculatePercentile(sorted, 50),
		P90:    CalculatePercentile(sorted, 90),
		P99:    CalculatePercentile(sorted, 99),
		Bins:   t.Histogram(),
	}
}

func (s ResidenceStats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "count=%d mean=%.1fs", s.Count, s.Mean)
	if s.Count > 0 {
		fmt.Fprintf(&sb, " min=%.1fs max=%.1fs sd=%.1fs p90=%.1fs", s.Min, s.Max, s.StdDev, s.P90)
	}
	return sb.String()
}

// histogramParameters picks residence-time buckets from the overload
// factor: an underloaded line gets fine bins over a short range, an
// overloaded one coarse bins over a long range.
func histogramParameters(o Options) (from, binSize, to float64) {
	work := o.WorkTimeM * 60
	stations := float64(o.Capacity)
	from = work * stations / 2
	if o.OverloadFactor() < 1 {
		return from, work, work * stations * 5
	}
	return from, work * 5, work * stations * 7
}
