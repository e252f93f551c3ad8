// Defines the Box, the unit of work that travels the whole line.

package sim

// BoxPalette is the cosmetic colour rotation for new boxes.
var BoxPalette = []string{"green", "blue", "magenta", "orange", "maroon"}

// Box visits every workstation of the line in chain order exactly once.
type Box struct {
	ID    int
	Color string

	TimeStart float64 // chain entry
	TimeEnd   float64 // chain exit, valid once Done

	// Delays holds the sampled work duration at each station visited so far.
	Delays []float64

	stage       int     // index of the station being visited
	workStarted float64 // clock when the current work delay began
	done        bool
}

// Stage returns the index of the station the box is visiting.
func (b *Box) Stage() int {
	return b.stage
}

// Done reports whether the box has left the last station.
func (b *Box) Done() bool {
	return b.done
}

// Residence returns the time spent in the line, or zero while in progress.
func (b *Box) Residence() float64 {
	if !b.Done() {
		return 0
	}
	return b.TimeEnd - b.TimeStart
}

// palette hands out box colours in rotation. Each Flow owns its own.
type palette struct {
	next int
}

func (p *palette) color() string {
	c := BoxPalette[p.next%len(BoxPalette)]
	p.next++
	return c
}
