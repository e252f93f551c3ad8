// Package sim provides the workstation line model and the discrete-event
// engine it runs on.
//
// # Reading Guide
//
// Start with these three files to understand the model:
//   - workstation.go: wait queue, active-work queue and operational state of one stage
//   - reallocation.go: the Passive, Manager and Kanban staffing policies
//   - flow.go: the scenario that moves boxes down the line and drives the policies
//
// # Architecture
//
// Flow embeds a Simulator (event heap, float64 clock in seconds, pause/stop).
// On every clock advance the Simulator fires OnTimeAdvanced, where Flow
// evaluates the DisruptionModel and then the ReallocationPolicy; both run to
// completion before any event at that time executes. Boxes move through the
// line as ArrivalEvent, WorkDoneEvent and SlotGrantEvent executions.
//
// Workers and workstations live in the Line arena and refer to each other by
// WorkerID and StationID. Line.Move is the only way a worker changes station.
//
// Sub-packages:
//   - sim/workload/: distribution samplers and the Poisson order stream
//   - sim/trace/: decision trace recording
//   - sim/metrics/: Recorder interface and its Prometheus implementation
//
// # Key Interfaces
//
//   - ReallocationPolicy: move workers given each station's perceived load
//   - workload.Sampler: draw a work time, gap, helper count or breakdown duration
//   - metrics.Recorder: receive run-time measurements
package sim
