package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-01-05 is a Monday, 2026-01-10 a Saturday.
func weekday(hour int) time.Time { return time.Date(2026, 1, 5, hour, 30, 0, 0, time.UTC) }
func saturday(hour int) time.Time { return time.Date(2026, 1, 10, hour, 30, 0, 0, time.UTC) }

func TestTimeFactor(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"weekday morning peak start", weekday(7), 1.6},
		{"weekday morning peak end", weekday(9), 1.6},
		{"weekday midday", weekday(12), 1.0},
		{"weekday evening peak", weekday(18), 1.4},
		{"weekday late evening", weekday(21), 1.0},
		{"weekday night", weekday(22), 0.4},
		{"weekday early morning", weekday(5), 0.4},
		{"weekday six", weekday(6), 1.0},
		{"weekend midday", saturday(12), 1.3},
		{"weekend morning peak", saturday(8), 1.6 * 1.3},
		{"weekend night", saturday(2), 0.4 * 1.3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, TimeFactor(tc.at), 1e-12)
		})
	}
}

func TestArrivalReductionFactor(t *testing.T) {
	assert.InDelta(t, 1.0, ArrivalReductionFactor(0, 0.03), 1e-12)
	assert.InDelta(t, 0.79, ArrivalReductionFactor(7, 0.03), 1e-12)
	assert.Equal(t, 0.01, ArrivalReductionFactor(100, 0.03), "floored")
}

func newTestSampler(seed int64, arrivals IntervalDistribution, factor float64) *Sampler {
	return NewSampler(NewRandomSource(NewSimulationKey(seed)), arrivals, factor,
		ServiceConfig{OverheadMinutes: 0.5, MinutesPerLiter: 0.03})
}

func TestSampler_DegenerateUniform_ExactGap(t *testing.T) {
	// GIVEN uniform a=b=2 with no elasticity and a neutral hour
	s := newTestSampler(7, UniformInterval{A: 2, B: 2}, 1.0)

	// WHEN gaps are drawn at weekday noon
	for i := 0; i < 5; i++ {
		// THEN every gap is exactly two minutes
		assert.Equal(t, 2.0, s.InterArrivalMinutes(weekday(12)))
		assert.Equal(t, 2*time.Minute, s.SampleInterArrival(weekday(12)))
	}
}

func TestSampler_InterArrival_AppliesFactors(t *testing.T) {
	s := newTestSampler(7, UniformInterval{A: 2, B: 2}, 0.5)

	// 2 / 0.5 / 1.6 at the morning peak
	assert.InDelta(t, 2.5, s.InterArrivalMinutes(weekday(8)), 1e-12)
	// 2 / 0.5 / 0.4 at night
	assert.InDelta(t, 10.0, s.InterArrivalMinutes(weekday(23)), 1e-12)
}

func TestSampler_InterArrival_FlooredAtTenthOfMinute(t *testing.T) {
	s := newTestSampler(7, UniformInterval{A: 0, B: 0}, 1.0)

	assert.Equal(t, 0.1, s.InterArrivalMinutes(weekday(12)))
	assert.Equal(t, 6*time.Second, s.SampleInterArrival(weekday(12)))
}

func TestSampler_GenerateRequest(t *testing.T) {
	// GIVEN a sampler and three brands
	s := newTestSampler(42, UniformInterval{A: 1, B: 2}, 1.0)
	brands := []string{"A92", "A95", "Diesel"}
	now := weekday(12)

	// WHEN several cars are generated
	var reqs []*Request
	for i := 0; i < 50; i++ {
		reqs = append(reqs, s.GenerateRequest(now, brands, 10, 50))
	}

	// THEN ids increase from 1 and attributes stay in range
	for i, req := range reqs {
		assert.Equal(t, i+1, req.ID)
		assert.Contains(t, brands, req.Brand)
		assert.GreaterOrEqual(t, req.Volume, 10.0)
		assert.LessOrEqual(t, req.Volume, 50.0)
		assert.InDelta(t, math.Round(req.Volume*10)/10, req.Volume, 1e-9, "one decimal")
		assert.Equal(t, now, req.ArrivalTime)
		assert.Equal(t, StateQueued, req.State)
	}
	assert.Equal(t, uint64(150), s.Draws(), "three draws per car")
}

func TestSampler_GenerateRequest_FixedVolume(t *testing.T) {
	s := newTestSampler(1, UniformInterval{A: 1, B: 2}, 1.0)

	req := s.GenerateRequest(weekday(12), []string{"A92"}, 10, 10)

	assert.Equal(t, "A92", req.Brand)
	assert.Equal(t, 10.0, req.Volume)
}

func TestSampler_GenerateRequest_SameSeedSameCars(t *testing.T) {
	a := newTestSampler(99, UniformInterval{A: 1, B: 2}, 1.0)
	b := newTestSampler(99, UniformInterval{A: 1, B: 2}, 1.0)
	brands := []string{"A92", "A95", "Diesel"}

	for i := 0; i < 20; i++ {
		ra := a.GenerateRequest(weekday(12), brands, 10, 50)
		rb := b.GenerateRequest(weekday(12), brands, 10, 50)
		require.Equal(t, ra.String(), rb.String())
	}
}

func TestSampler_GenerateRequest_NoBrands_Panics(t *testing.T) {
	s := newTestSampler(1, UniformInterval{A: 1, B: 2}, 1.0)
	assert.Panics(t, func() { s.GenerateRequest(weekday(12), nil, 10, 50) })
}

func TestSampler_ServiceTime_Clamped(t *testing.T) {
	s := newTestSampler(1, UniformInterval{A: 1, B: 2}, 1.0)

	tests := []struct {
		volume float64
		want   float64
	}{
		{0, 0.5},
		{10, 0.8},
		{50, 2.0},
		{1000, 10.0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, s.ServiceMinutes(tc.volume), 1e-12, "volume %g", tc.volume)
	}
	assert.Equal(t, 2*time.Minute, s.ComputeServiceTime(50))
	assert.Equal(t, 48*time.Second, s.ComputeServiceTime(10))
}

func TestMinutesToDuration_SaturatesOnHugeSpans(t *testing.T) {
	assert.Equal(t, 90*time.Second, minutesToDuration(1.5))

	// 1e12 minutes does not fit a Duration; the result must stay positive
	d := minutesToDuration(1e12)
	assert.Positive(t, d)
	assert.Equal(t, time.Duration(maxDurationMinutes)*time.Minute, d)
}

func TestNewSampler_NilRNG_Panics(t *testing.T) {
	assert.Panics(t, func() { NewSampler(nil, UniformInterval{}, 1, ServiceConfig{}) })
}
