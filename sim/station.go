package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Station owns the pumps, the fuel economics and the stochastic models of one forecourt.
// Pumps are held in a fixed slice; pump ID i lives at index i-1.
type Station struct {
	Pumps         []*Pump
	Brands        []string           // configuration order, used for sampling and averages
	BasePrice     map[string]float64 // brand → price per liter
	MarkupPercent map[string]float64 // brand → markup
	Inventory     map[string]float64 // brand → liters left; never replenished

	MinVolume float64
	MaxVolume float64

	Sampler *Sampler
	Policy  AllocationPolicy

	sink Sink
}

// NewStation builds a station from cfg. rng becomes the Sampler's only random source.
func NewStation(cfg StationConfig, rng *RandomSource, sink Sink) (*Station, error) {
	if sink == nil {
		sink = DiscardSink
	}
	if len(cfg.Brands) == 0 {
		return nil, fmt.Errorf("station needs at least one brand")
	}
	policy, err := NewAllocationPolicy(cfg.Allocation)
	if err != nil {
		return nil, err
	}
	arrivals, err := NewIntervalDistribution(cfg.Arrival)
	if err != nil {
		return nil, err
	}

	s := &Station{
		Brands:        cfg.BrandNames(),
		BasePrice:     make(map[string]float64, len(cfg.Brands)),
		MarkupPercent: make(map[string]float64, len(cfg.Brands)),
		Inventory:     make(map[string]float64, len(cfg.Brands)),
		MinVolume:     cfg.MinVolume,
		MaxVolume:     cfg.MaxVolume,
		Policy:        policy,
		sink:          sink,
	}
	for _, b := range cfg.Brands {
		s.BasePrice[b.Name] = b.BasePrice
		s.MarkupPercent[b.Name] = b.MarkupPercent
		s.Inventory[b.Name] = b.Inventory
	}

	layout := cfg.PumpLayout()
	if len(layout) == 0 {
		return nil, fmt.Errorf("station needs at least one pump")
	}
	s.Pumps = make([]*Pump, len(layout))
	for i, pc := range layout {
		s.Pumps[i] = NewPump(i+1, pc.Brand, pc.Access, cfg.MaxQueue, sink)
	}

	factor := ArrivalReductionFactor(s.AverageMarkup(), cfg.Arrival.Elasticity)
	s.Sampler = NewSampler(rng, arrivals, factor, cfg.Service)
	logrus.Debugf("station: %d pumps, brands=%v, arrival reduction factor %.3f", len(s.Pumps), s.Brands, factor)
	return s, nil
}

// Pump resolves a pump ID. The second result is false for unknown IDs.
func (s *Station) Pump(id int) (*Pump, bool) {
	if id < 1 || id > len(s.Pumps) {
		return nil, false
	}
	return s.Pumps[id-1], true
}

// AverageMarkup is the mean markup percent across brands, in configuration order.
func (s *Station) AverageMarkup() float64 {
	if len(s.Brands) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range s.Brands {
		total += s.MarkupPercent[b]
	}
	return total / float64(len(s.Brands))
}

// Dispatch asks the allocation policy for a pump and returns it with the decision.
func (s *Station) Dispatch(req *Request) (*Pump, AllocationDecision) {
	decision := s.Policy.Allocate(req, s.Pumps)
	pump, ok := s.Pump(decision.PumpID)
	if !ok {
		panic(fmt.Sprintf("allocation policy returned unknown pump %d", decision.PumpID))
	}
	if !decision.Compatible {
		s.sink.Infof("No side-compatible pump for car %d (side=%s).", req.ID, req.Side)
	}
	return pump, decision
}

// HasStock reports whether volume liters of brand are on hand.
// A brand with no inventory entry has no stock.
func (s *Station) HasStock(brand string, volume float64) bool {
	left, ok := s.Inventory[brand]
	return ok && !(left < volume)
}

// Withdraw deducts volume liters of brand. Callers check HasStock first;
// withdrawing more than is on hand is an engine bug.
func (s *Station) Withdraw(brand string, volume float64) {
	if !s.HasStock(brand, volume) {
		panic(fmt.Sprintf("withdraw %.1f L of %s with only %.1f L on hand", volume, brand, s.Inventory[brand]))
	}
	s.Inventory[brand] -= volume
}

// TotalProfit is the markup earned on dispensed fuel:
// Σ pumps served_liters × base_price[brand] × markup[brand]/100.
// Pumps whose brand lacks a price or markup contribute nothing.
func (s *Station) TotalProfit() float64 {
	total := 0.0
	for _, p := range s.Pumps {
		price, okPrice := s.BasePrice[p.Brand]
		markup, okMarkup := s.MarkupPercent[p.Brand]
		if !okPrice || !okMarkup {
			continue
		}
		total += p.ServedLiters * price * (markup / 100.0)
	}
	return total
}
