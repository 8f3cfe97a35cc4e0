// Aggregates the end-of-run statistics of a station simulation: per-pump
// counters, totals, profit, remaining stock and waiting times.

package sim

import (
	"time"

	"github.com/inference-sim/fuel-sim/sim/trace"
)

// PumpSummary is the final state of one pump.
type PumpSummary struct {
	ID           int     `json:"id"`
	Brand        string  `json:"brand"`
	Access       string  `json:"access"`
	Routed       int     `json:"routed"`
	ServedCars   int     `json:"served_cars"`
	ServedLiters float64 `json:"served_liters"`
	LostCars     int     `json:"lost_cars"`
	QueueLen     int     `json:"queue_len"` // cars still waiting when the run ended
	Busy         bool    `json:"busy"`
}

// Summary aggregates statistics about the simulation for final reporting.
type Summary struct {
	Seed     int64     `json:"seed"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Arrivals int       `json:"arrivals"`

	ServedCars   int     `json:"served_cars"`
	ServedLiters float64 `json:"served_liters"`
	LostCars     int     `json:"lost_cars"`
	Profit       float64 `json:"profit"`

	Inventory map[string]float64 `json:"inventory"` // liters left per brand
	Pumps     []PumpSummary      `json:"pumps"`

	WaitMeanMinutes float64 `json:"wait_mean_minutes"`
	WaitP90Minutes  float64 `json:"wait_p90_minutes"`

	Trace *trace.TraceSummary `json:"trace,omitempty"`
}

// Summarize snapshots the current station state. It does not mutate the simulator
// and may be called at any point, not only after Run.
func (sim *Simulator) Summarize() *Summary {
	st := sim.Station
	s := &Summary{
		Seed:      sim.seed,
		Start:     sim.Start,
		End:       sim.End,
		Arrivals:  sim.Arrivals,
		Profit:    st.TotalProfit(),
		Inventory: make(map[string]float64, len(st.Inventory)),
		Pumps:     make([]PumpSummary, len(st.Pumps)),
	}
	for brand, left := range st.Inventory {
		s.Inventory[brand] = left
	}
	for i, p := range st.Pumps {
		s.Pumps[i] = PumpSummary{
			ID:           p.ID,
			Brand:        p.Brand,
			Access:       p.Access.String(),
			Routed:       p.Routed,
			ServedCars:   p.ServedCars,
			ServedLiters: p.ServedLiters,
			LostCars:     p.LostCars,
			QueueLen:     p.QueueLen(),
			Busy:         p.Busy,
		}
		s.ServedCars += p.ServedCars
		s.ServedLiters += p.ServedLiters
		s.LostCars += p.LostCars
	}
	s.WaitMeanMinutes, s.WaitP90Minutes = waitStats(sim.waits)
	if sim.Trace.Enabled() {
		s.Trace = trace.Summarize(sim.Trace)
	}
	return s
}
