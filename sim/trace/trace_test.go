package trace

import (
	"testing"
	"time"
)

func TestSimulationTrace_RecordAllocation_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceLevelDecisions)

	// WHEN an allocation record is recorded
	st.RecordAllocation(AllocationRecord{
		RequestID:  1,
		Clock:      time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
		Brand:      "A92",
		Side:       "Left",
		ChosenPump: 2,
		Reason:     "brand-affinity (queue=0)",
		Compatible: true,
	})

	// THEN the trace contains one allocation record with correct data
	if len(st.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(st.Allocations))
	}
	if st.Allocations[0].ChosenPump != 2 {
		t.Errorf("expected pump 2, got %d", st.Allocations[0].ChosenPump)
	}
}

func TestSimulationTrace_RecordLoss_AppendsRecord(t *testing.T) {
	st := NewSimulationTrace(TraceLevelDecisions)

	st.RecordLoss(LossRecord{RequestID: 4, PumpID: 1, Cause: CauseOutOfStock})

	if len(st.Losses) != 1 {
		t.Fatalf("expected 1 loss, got %d", len(st.Losses))
	}
	if st.Losses[0].Cause != CauseOutOfStock {
		t.Errorf("expected cause %q, got %q", CauseOutOfStock, st.Losses[0].Cause)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceLevelDecisions)

	st.RecordAllocation(AllocationRecord{RequestID: 1, ChosenPump: 1})
	st.RecordAllocation(AllocationRecord{RequestID: 2, ChosenPump: 3})
	st.RecordAllocation(AllocationRecord{RequestID: 3, ChosenPump: 2})

	for i, want := range []int{1, 2, 3} {
		if st.Allocations[i].RequestID != want {
			t.Errorf("allocations[%d].RequestID = %d, want %d", i, st.Allocations[i].RequestID, want)
		}
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must not be enabled")
	}
	if NewSimulationTrace(TraceLevelNone).Enabled() {
		t.Error("level none must not be enabled")
	}
	if !NewSimulationTrace(TraceLevelDecisions).Enabled() {
		t.Error("level decisions must be enabled")
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"decisions", true},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
