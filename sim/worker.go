package sim

// WorkerID indexes a worker in its Line.
type WorkerID int

// Worker is a staffing unit. Its home is the first station it was ever
// assigned to and is only a lookup key.
type Worker struct {
	ID   WorkerID
	Name string

	station StationID
	home    StationID
}

// NewWorker creates an unassigned worker with no home.
func NewWorker(id WorkerID, name string) *Worker {
	return &Worker{ID: id, Name: name, station: NoStation, home: NoStation}
}

// Station returns the current assignment, or NoStation.
func (w *Worker) Station() StationID { return w.station }

// Home returns the remembered home station, or NoStation.
func (w *Worker) Home() StationID { return w.home }

// Away reports whether the worker is assigned somewhere other than home.
func (w *Worker) Away() bool {
	return w.home != NoStation && w.station != w.home
}
