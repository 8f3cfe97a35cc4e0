package sim

import (
	"time"
)

// EventKind discriminates the concrete event types.
type EventKind int

const (
	KindArrival EventKind = iota
	KindServiceStart
	KindServiceEnd
	KindDayReport
)

func (k EventKind) String() string {
	switch k {
	case KindArrival:
		return "Arrival"
	case KindServiceStart:
		return "ServiceStart"
	case KindServiceEnd:
		return "ServiceEnd"
	case KindDayReport:
		return "DayReport"
	default:
		return "Unknown"
	}
}

// Event defines the interface for all simulation events.
// Each event carries its virtual time and an Execute method that advances
// simulation state. The concrete types form a closed set; payloads are typed
// fields, never untyped values.
type Event interface {
	Timestamp() time.Time
	Kind() EventKind
	Execute(*Simulator)
}

// ArrivalEvent represents a car pulling into the station. It carries no payload:
// the car is generated when the event executes.
type ArrivalEvent struct {
	time time.Time
}

// NewArrivalEvent creates an ArrivalEvent at t.
func NewArrivalEvent(t time.Time) *ArrivalEvent {
	return &ArrivalEvent{time: t}
}

func (e *ArrivalEvent) Timestamp() time.Time { return e.time }
func (e *ArrivalEvent) Kind() EventKind      { return KindArrival }

// Execute routes the new car and schedules the next arrival.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	sim.handleArrival(e)
}

// ServiceStartEvent asks a pump to begin fueling the head of its queue.
type ServiceStartEvent struct {
	time   time.Time
	PumpID int
}

// NewServiceStartEvent creates a ServiceStartEvent for pumpID at t.
func NewServiceStartEvent(t time.Time, pumpID int) *ServiceStartEvent {
	return &ServiceStartEvent{time: t, PumpID: pumpID}
}

func (e *ServiceStartEvent) Timestamp() time.Time { return e.time }
func (e *ServiceStartEvent) Kind() EventKind      { return KindServiceStart }

// Execute starts service at the referenced pump, if it can.
func (e *ServiceStartEvent) Execute(sim *Simulator) {
	sim.handleServiceStart(e)
}

// ServiceEndEvent marks the end of fueling for a (pump, request) pair.
type ServiceEndEvent struct {
	time    time.Time
	PumpID  int
	Request *Request
}

// NewServiceEndEvent creates a ServiceEndEvent at t.
func NewServiceEndEvent(t time.Time, pumpID int, req *Request) *ServiceEndEvent {
	return &ServiceEndEvent{time: t, PumpID: pumpID, Request: req}
}

func (e *ServiceEndEvent) Timestamp() time.Time { return e.time }
func (e *ServiceEndEvent) Kind() EventKind      { return KindServiceEnd }

// Execute frees the pump and credits the sale.
func (e *ServiceEndEvent) Execute(sim *Simulator) {
	sim.handleServiceEnd(e)
}

// DayReportEvent emits a per-pump snapshot to the sink. Read-only.
type DayReportEvent struct {
	time time.Time
}

// NewDayReportEvent creates a DayReportEvent at t.
func NewDayReportEvent(t time.Time) *DayReportEvent {
	return &DayReportEvent{time: t}
}

func (e *DayReportEvent) Timestamp() time.Time { return e.time }
func (e *DayReportEvent) Kind() EventKind      { return KindDayReport }

// Execute writes the report.
func (e *DayReportEvent) Execute(sim *Simulator) {
	sim.handleDayReport(e)
}
