package cmd

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	sim "github.com/workflow-sim/workflow-sim/sim"
	"github.com/workflow-sim/workflow-sim/sim/trace"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#6C7086")
	colorWarning = lipgloss.Color("#F9E2AF")
	colorError   = lipgloss.Color("#F38BA8")
	colorBorder  = lipgloss.Color("#45475A")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(22)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	slowStyle       = lipgloss.NewStyle().Foreground(colorError)
	fastStyle       = lipgloss.NewStyle().Foreground(colorWarning)
	overloadedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// stationColumns are the widths of the station table columns.
var stationColumns = []int{10, 8, 8, 8, 8, 12, 30}

// runReport is everything printed at the end of a run.
type runReport struct {
	Options   sim.Options
	State     sim.RunState
	Clock     float64
	Arrived   int
	Completed int
	InSystem  int
	Stats     sim.ResidenceStats
	Stations  []sim.StationSnapshot
	Summary   *trace.TraceSummary // nil when tracing is off
	Elapsed   time.Duration
}

func newRunReport(f *sim.Flow, elapsed time.Duration) runReport {
	r := runReport{
		Options:   f.Options,
		State:     f.State(),
		Clock:     f.Clock,
		Arrived:   f.Arrived(),
		Completed: f.Completed(),
		InSystem:  f.UnitsInSystem(),
		Stats:     f.ResidenceStats(),
		Stations:  f.Snapshot(),
		Elapsed:   elapsed,
	}
	if f.Trace().Enabled() {
		r.Summary = trace.Summarize(f.Trace())
	}
	return r
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func minutes(seconds float64) string {
	return fmt.Sprintf("%.1f min", seconds/60)
}

func cells(values ...string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = lipgloss.NewStyle().Width(stationColumns[i]).Render(v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Render formats the report for a terminal.
func (r runReport) Render() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("Workflow simulation (%s)", r.Options.Policy)))

	run := []string{
		row("State", r.State.String()),
		row("Simulated time", fmt.Sprintf("%.2f days", r.Clock/sim.SecondsPerDay)),
		row("Overload factor", fmt.Sprintf("%.2f", r.Options.OverloadFactor())),
		row("Boxes arrived", fmt.Sprintf("%d", r.Arrived)),
		row("Boxes completed", fmt.Sprintf("%d", r.Completed)),
		row("Boxes in system", fmt.Sprintf("%d", r.InSystem)),
		row("Wall time", r.Elapsed.Round(time.Millisecond).String()),
	}
	sections = append(sections, boxStyle.Render(strings.Join(run, "\n")))

	residence := []string{headerStyle.Render("Residence time")}
	if r.Stats.Count == 0 {
		residence = append(residence, "no box completed")
	} else {
		residence = append(residence,
			row("Mean", minutes(r.Stats.Mean)),
			row("Std dev", minutes(r.Stats.StdDev)),
			row("Min / Max", minutes(r.Stats.Min)+" / "+minutes(r.Stats.Max)),
			row("p50 / p90 / p99", minutes(r.Stats.P50)+" / "+minutes(r.Stats.P90)+" / "+minutes(r.Stats.P99)),
		)
		residence = append(residence, renderHistogram(r.Stats.Bins)...)
	}
	sections = append(sections, boxStyle.Render(strings.Join(residence, "\n")))

	table := []string{headerStyle.Render(cells("Station", "Workers", "Waiting", "Working", "Blocked", "Load", "Staff"))}
	for _, s := range r.Stations {
		name := s.Name
		switch s.State {
		case sim.StateDegraded:
			name = slowStyle.Render(s.Name + "*")
		case sim.StateAccelerated:
			name = fastStyle.Render(s.Name + "+")
		}
		load := s.Load.String()
		if s.Load == sim.Overloaded {
			load = overloadedStyle.Render(load)
		}
		table = append(table, cells(
			name,
			fmt.Sprintf("%d", len(s.Workers)),
			fmt.Sprintf("%d", s.Waiting),
			fmt.Sprintf("%d", s.InService),
			fmt.Sprintf("%d", s.Blocked),
			load,
			strings.Join(s.Workers, ", "),
		))
	}
	sections = append(sections, boxStyle.Render(strings.Join(table, "\n")))

	if r.Summary != nil {
		sections = append(sections, boxStyle.Render(renderSummary(r.Summary)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHistogram draws non-empty bins as bars scaled to the fullest bin.
func renderHistogram(bins []sim.Bin) []string {
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	if peak == 0 {
		return nil
	}
	const width = 30
	var lines []string
	for _, b := range bins {
		if b.Count == 0 {
			continue
		}
		var label string
		switch {
		case b.Key < 0:
			label = fmt.Sprintf("< %.0f", b.Upper/60)
		case math.IsInf(b.Upper, 1):
			label = fmt.Sprintf(">= %.0f", b.Lower/60)
		default:
			label = fmt.Sprintf("%.0f-%.0f", b.Lower/60, b.Upper/60)
		}
		bar := strings.Repeat("█", max(1, b.Count*width/peak))
		lines = append(lines, labelStyle.Render(label+" min")+bar+" "+fmt.Sprintf("%d", b.Count))
	}
	return lines
}

func renderSummary(s *trace.TraceSummary) string {
	lines := []string{
		headerStyle.Render("Decisions"),
		row("Worker moves", fmt.Sprintf("%d", s.TotalMoves)),
	}
	reasons := make([]string, 0, len(s.MovesByReason))
	for reason := range s.MovesByReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		lines = append(lines, row("  "+reason, fmt.Sprintf("%d", s.MovesByReason[reason])))
	}
	lines = append(lines,
		row("Breakdowns", fmt.Sprintf("%d (%d recovered)", s.Disruptions, s.Recoveries)),
		row("Time degraded", minutes(s.DegradedTime)),
	)
	return strings.Join(lines, "\n")
}
