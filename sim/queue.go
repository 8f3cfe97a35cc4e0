// Implements the Pump, which holds the bounded FIFO queue of cars waiting at
// one dispenser together with its busy flag and cumulative counters.

package sim

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PumpAccess describes which tank sides a pump can reach.
type PumpAccess int

const (
	AccessBoth PumpAccess = iota
	AccessLeftOnly
	AccessRightOnly
)

var pumpAccessNames = map[PumpAccess]string{
	AccessBoth:      "both",
	AccessLeftOnly:  "left-only",
	AccessRightOnly: "right-only",
}

func (a PumpAccess) String() string {
	if name, ok := pumpAccessNames[a]; ok {
		return name
	}
	return fmt.Sprintf("PumpAccess(%d)", int(a))
}

// ParsePumpAccess converts "both", "left-only" or "right-only" (case-insensitive).
func ParsePumpAccess(s string) (PumpAccess, error) {
	for access, name := range pumpAccessNames {
		if strings.EqualFold(s, name) {
			return access, nil
		}
	}
	return 0, fmt.Errorf("unknown pump access %q; valid: both, left-only, right-only", s)
}

// UnmarshalYAML accepts the string form of a PumpAccess.
func (a *PumpAccess) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePumpAccess(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML emits the string form of a PumpAccess.
func (a PumpAccess) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// Compatible reports whether a pump with this access can fuel a car with the filler on side.
func (a PumpAccess) Compatible(side TankSide) bool {
	switch a {
	case AccessBoth:
		return true
	case AccessLeftOnly:
		return side == SideLeft
	case AccessRightOnly:
		return side == SideRight
	default:
		return false
	}
}

// Pump is one fuel dispenser.
// Invariants: len(queue) <= MaxQueue; Busy is true iff a ServiceEnd is pending
// for this pump; counters never decrease.
type Pump struct {
	ID       int        // 1..K, stable for the run
	Brand    string     // brand dispensed
	Access   PumpAccess // reachable tank sides
	MaxQueue int        // queue capacity

	queue []*Request // FIFO of waiting cars
	Busy  bool

	Routed       int     // cars the allocation policy sent here
	ServedCars   int
	ServedLiters float64
	LostCars     int

	sink Sink
}

// NewPump creates an idle pump with an empty queue.
func NewPump(id int, brand string, access PumpAccess, maxQueue int, sink Sink) *Pump {
	if sink == nil {
		sink = DiscardSink
	}
	return &Pump{
		ID:       id,
		Brand:    brand,
		Access:   access,
		MaxQueue: maxQueue,
		queue:    make([]*Request, 0, max(maxQueue, 0)),
		sink:     sink,
	}
}

// TryEnqueue appends req to the tail of the queue.
// A full queue counts the car as lost and returns false; the caller resolves
// the request.
func (p *Pump) TryEnqueue(req *Request) bool {
	if len(p.queue) >= p.MaxQueue {
		p.LostCars++
		p.sink.Infof("[%s] Car %d left: queue full at pump %d.",
			req.ArrivalTime.Format(TimeLayout), req.ID, p.ID)
		return false
	}
	p.queue = append(p.queue, req)
	p.sink.Infof("[%s] Car %d queued at pump %d. Queue: %d/%d",
		req.ArrivalTime.Format(TimeLayout), req.ID, p.ID, len(p.queue), p.MaxQueue)
	return true
}

// Dequeue removes the request at the head of the queue.
// Returns nil if the queue is empty.
func (p *Pump) Dequeue() *Request {
	if len(p.queue) == 0 {
		return nil
	}
	head := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return head
}

// Peek returns the head of the queue without removing it, or nil.
func (p *Pump) Peek() *Request {
	if len(p.queue) == 0 {
		return nil
	}
	return p.queue[0]
}

// QueueLen returns the number of waiting cars.
func (p *Pump) QueueLen() int {
	return len(p.queue)
}

func (p *Pump) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pump %d [%s/%s] busy=%t queue=[", p.ID, p.Brand, p.Access, p.Busy)
	for i, req := range p.queue {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d", req.ID)
	}
	sb.WriteString("]")
	return sb.String()
}
