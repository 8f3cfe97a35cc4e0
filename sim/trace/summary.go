package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAllocations  int            `json:"total_allocations"`
	IncompatibleCount int            `json:"incompatible_count"`
	UniquePumps       int            `json:"unique_pumps"`
	PumpDistribution  map[int]int    `json:"pump_distribution"` // pump ID → cars routed
	LossesByCause     map[string]int `json:"losses_by_cause"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PumpDistribution: make(map[int]int),
		LossesByCause:    make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAllocations = len(st.Allocations)
	for _, a := range st.Allocations {
		summary.PumpDistribution[a.ChosenPump]++
		if !a.Compatible {
			summary.IncompatibleCount++
		}
	}
	for _, l := range st.Losses {
		summary.LossesByCause[l.Cause]++
	}

	summary.UniquePumps = len(summary.PumpDistribution)

	return summary
}
