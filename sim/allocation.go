package sim

import "fmt"

// Allocation policy names accepted in StationConfig.Allocation.
const (
	AllocationBrandAffinity = "brand-affinity"
	AllocationShortestQueue = "shortest-queue"
)

// ValidAllocationPolicies is the set of recognized allocation policy names.
var ValidAllocationPolicies = map[string]bool{"": true, AllocationBrandAffinity: true, AllocationShortestQueue: true}

// maxQueueSpread is the largest tolerated gap between the longest and shortest
// candidate queue before long queues are excluded.
const maxQueueSpread = 2

// AllocationDecision encapsulates the pump chosen for a car.
type AllocationDecision struct {
	PumpID     int    // ID of the chosen pump (always a valid pump)
	Reason     string // Human-readable explanation
	Compatible bool   // false when no pump could reach the car's tank side
}

// AllocationPolicy decides which pump a newly arrived car joins.
// Implementations must not mutate pumps and must be deterministic.
type AllocationPolicy interface {
	Allocate(req *Request, pumps []*Pump) AllocationDecision
}

// NewAllocationPolicy creates the named policy. The empty name selects brand-affinity.
func NewAllocationPolicy(name string) (AllocationPolicy, error) {
	switch name {
	case "", AllocationBrandAffinity:
		return &BrandAffinity{}, nil
	case AllocationShortestQueue:
		return &ShortestQueue{}, nil
	default:
		return nil, fmt.Errorf("unknown allocation policy %q", name)
	}
}

// BrandAffinity prefers pumps that dispense the requested brand, then filters by
// tank-side access, then balances queue lengths.
//
// When no candidate can reach the tank side, the car is sent to the shortest
// queue among all pumps without re-checking compatibility; Compatible is false
// in that case so callers can observe the gap.
type BrandAffinity struct{}

// Allocate implements AllocationPolicy for BrandAffinity.
func (ba *BrandAffinity) Allocate(req *Request, pumps []*Pump) AllocationDecision {
	if len(pumps) == 0 {
		panic("BrandAffinity.Allocate: no pumps")
	}

	candidates := filterPumps(pumps, func(p *Pump) bool { return p.Brand == req.Brand })
	if len(candidates) == 0 {
		candidates = pumps
	}

	candidates = filterPumps(candidates, func(p *Pump) bool { return p.Access.Compatible(req.Side) })
	if len(candidates) == 0 {
		return sideFallback(req, pumps)
	}

	chosen := shortestQueue(balanceQueues(candidates))
	return AllocationDecision{
		PumpID:     chosen.ID,
		Reason:     fmt.Sprintf("brand-affinity (brand=%s, queue=%d)", chosen.Brand, chosen.QueueLen()),
		Compatible: true,
	}
}

// ShortestQueue ignores brand and sends the car to the side-compatible pump
// with the shortest queue. Same fallback and tie-breaking as BrandAffinity.
type ShortestQueue struct{}

// Allocate implements AllocationPolicy for ShortestQueue.
func (sq *ShortestQueue) Allocate(req *Request, pumps []*Pump) AllocationDecision {
	if len(pumps) == 0 {
		panic("ShortestQueue.Allocate: no pumps")
	}
	candidates := filterPumps(pumps, func(p *Pump) bool { return p.Access.Compatible(req.Side) })
	if len(candidates) == 0 {
		return sideFallback(req, pumps)
	}
	chosen := shortestQueue(candidates)
	return AllocationDecision{
		PumpID:     chosen.ID,
		Reason:     fmt.Sprintf("shortest-queue (queue=%d)", chosen.QueueLen()),
		Compatible: true,
	}
}

func sideFallback(req *Request, pumps []*Pump) AllocationDecision {
	chosen := shortestQueue(pumps)
	return AllocationDecision{
		PumpID:     chosen.ID,
		Reason:     fmt.Sprintf("no side-compatible pump (side=%s), fallback to shortest queue", req.Side),
		Compatible: false,
	}
}

// balanceQueues drops candidates whose queue exceeds min+1 when the spread
// between longest and shortest queue is larger than maxQueueSpread.
func balanceQueues(candidates []*Pump) []*Pump {
	minQ, maxQ := candidates[0].QueueLen(), candidates[0].QueueLen()
	for _, p := range candidates[1:] {
		minQ = min(minQ, p.QueueLen())
		maxQ = max(maxQ, p.QueueLen())
	}
	if maxQ-minQ <= maxQueueSpread {
		return candidates
	}
	return filterPumps(candidates, func(p *Pump) bool { return p.QueueLen() <= minQ+1 })
}

// shortestQueue returns the pump with the fewest waiting cars.
// Ties are broken by the smallest pump ID.
func shortestQueue(pumps []*Pump) *Pump {
	best := pumps[0]
	for _, p := range pumps[1:] {
		if p.QueueLen() < best.QueueLen() || (p.QueueLen() == best.QueueLen() && p.ID < best.ID) {
			best = p
		}
	}
	return best
}

func filterPumps(pumps []*Pump, keep func(*Pump) bool) []*Pump {
	out := make([]*Pump, 0, len(pumps))
	for _, p := range pumps {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
