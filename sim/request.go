// Defines the Request struct that models one customer car in the simulation.
// Tracks arrival time, fuel brand, requested volume, tank side and outcome.

package sim

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used in sink lines.
const TimeLayout = "2006-01-02 15:04"

// TankSide is the side of the car the fuel filler is on.
type TankSide int

const (
	SideLeft TankSide = iota
	SideRight
)

func (s TankSide) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return fmt.Sprintf("TankSide(%d)", int(s))
	}
}

// RequestState represents the lifecycle state of a request.
type RequestState string

const (
	StateQueued    RequestState = "queued"
	StateInService RequestState = "in-service"
	StateServed    RequestState = "served"
	StateLost      RequestState = "lost"
)

// Request models a single car's visit.
// A request is resolved exactly once: it ends either served or lost.
type Request struct {
	ID          int       // Sequential identifier, starting at 1
	ArrivalTime time.Time // Virtual time of arrival
	Brand       string    // Requested fuel brand
	Volume      float64   // Requested liters, rounded to one decimal
	Side        TankSide  // Side of the filler cap

	State        RequestState
	ServiceStart time.Time // Set when fueling begins; zero while waiting
}

// NewRequest creates a request in the queued state.
func NewRequest(id int, arrival time.Time, brand string, volume float64, side TankSide) *Request {
	return &Request{
		ID:          id,
		ArrivalTime: arrival,
		Brand:       brand,
		Volume:      volume,
		Side:        side,
		State:       StateQueued,
	}
}

// Served reports whether the request completed fueling.
func (req *Request) Served() bool { return req.State == StateServed }

// Lost reports whether the request left without fuel.
func (req *Request) Lost() bool { return req.State == StateLost }

// Resolved reports whether the request reached a terminal state.
func (req *Request) Resolved() bool { return req.Served() || req.Lost() }

// MarkLost resolves the request as lost. Resolving twice is an engine bug.
func (req *Request) MarkLost() {
	if req.Resolved() {
		panic(fmt.Sprintf("request %d resolved twice (was %s, now lost)", req.ID, req.State))
	}
	req.State = StateLost
}

// MarkServed resolves the request as served. Resolving twice is an engine bug.
func (req *Request) MarkServed() {
	if req.Resolved() {
		panic(fmt.Sprintf("request %d resolved twice (was %s, now served)", req.ID, req.State))
	}
	req.State = StateServed
}

// markInService records the start of fueling.
func (req *Request) markInService(now time.Time) {
	req.State = StateInService
	req.ServiceStart = now
}

// WaitTime is the time spent between arrival and the start of fueling.
// Zero if fueling never started.
func (req *Request) WaitTime() time.Duration {
	if req.ServiceStart.IsZero() {
		return 0
	}
	return req.ServiceStart.Sub(req.ArrivalTime)
}

// This method returns a human-readable string representation of a Request.
func (req *Request) String() string {
	return fmt.Sprintf("car #%d [%s] %.1f L, arrived %s, side=%s",
		req.ID, req.Brand, req.Volume, req.ArrivalTime.Format(TimeLayout), req.Side)
}
