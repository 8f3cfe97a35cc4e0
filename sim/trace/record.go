// Package trace records allocation and loss decisions made during a station run.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

import "time"

// Loss causes.
const (
	CauseQueueFull  = "queue-full"
	CauseOutOfStock = "out-of-stock"
)

// CandidateQueue captures one pump's queue length as the policy saw it.
type CandidateQueue struct {
	PumpID   int    `json:"pump_id"`
	Brand    string `json:"brand"`
	QueueLen int    `json:"queue_len"`
	Busy     bool   `json:"busy"`
}

// AllocationRecord captures a single allocation policy decision.
type AllocationRecord struct {
	RequestID  int              `json:"request_id"`
	Clock      time.Time        `json:"clock"`
	Brand      string           `json:"brand"`
	Side       string           `json:"side"`
	ChosenPump int              `json:"chosen_pump"`
	Reason     string           `json:"reason"`
	Compatible bool             `json:"compatible"` // false when no pump could reach the tank side
	Candidates []CandidateQueue `json:"candidates,omitempty"`
}

// LossRecord captures a car leaving without fuel.
type LossRecord struct {
	RequestID int       `json:"request_id"`
	Clock     time.Time `json:"clock"`
	PumpID    int       `json:"pump_id"`
	Cause     string    `json:"cause"`
}
