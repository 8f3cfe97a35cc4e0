package sim

import (
	"math"
	"time"
)

// Sampling bounds of the model.
const (
	minInterArrivalMinutes = 0.1  // forward-progress floor on the adjusted gap
	minFactor              = 0.01 // floor on divisors (arrival reduction, time of day)
	minServiceMinutes      = 0.5
	maxServiceMinutes      = 10.0
)

// Time-of-day and day-of-week demand multipliers. Hour windows are inclusive.
const (
	morningPeakFactor = 1.6 // 07:00-09:59
	eveningPeakFactor = 1.4 // 17:00-19:59
	nightFactor       = 0.4 // 22:00-05:59
	weekendFactor     = 1.3 // Saturday and Sunday
)

// TimeFactor returns the arrival intensity multiplier for t.
// Values above 1 shorten inter-arrival gaps.
func TimeFactor(t time.Time) float64 {
	hour := t.Hour()
	factor := 1.0
	switch {
	case hour >= 7 && hour <= 9:
		factor *= morningPeakFactor
	case hour >= 17 && hour <= 19:
		factor *= eveningPeakFactor
	case hour >= 22 || hour <= 5:
		factor *= nightFactor
	}
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		factor *= weekendFactor
	}
	return factor
}

// ArrivalReductionFactor models price elasticity: every markup percent removes
// elasticity of the base demand. Floored so the inter-arrival divisor stays positive.
func ArrivalReductionFactor(avgMarkupPercent, elasticity float64) float64 {
	return math.Max(minFactor, 1.0-avgMarkupPercent*elasticity)
}

// maxDurationMinutes is the longest span a Duration can hold, in whole minutes.
const maxDurationMinutes = float64(math.MaxInt64 / int64(time.Minute))

// minutesToDuration converts fractional minutes to a Duration, saturating at
// maxDurationMinutes.
func minutesToDuration(minutes float64) time.Duration {
	return time.Duration(math.Round(math.Min(minutes, maxDurationMinutes) * float64(time.Minute)))
}

// Sampler produces every random quantity of the model from one RandomSource:
// inter-arrival gaps, the attributes of new cars, and service durations.
type Sampler struct {
	rng             *RandomSource
	arrivals        IntervalDistribution
	arrivalFactor   float64
	serviceOverhead float64 // minutes per car
	minutesPerLiter float64
	nextID          int
}

// NewSampler creates a Sampler. arrivalFactor is the price-elasticity divisor
// (see ArrivalReductionFactor); it is fixed because markups do not change during a run.
func NewSampler(rng *RandomSource, arrivals IntervalDistribution, arrivalFactor float64, service ServiceConfig) *Sampler {
	if rng == nil {
		panic("NewSampler: rng must not be nil")
	}
	return &Sampler{
		rng:             rng,
		arrivals:        arrivals,
		arrivalFactor:   math.Max(minFactor, arrivalFactor),
		serviceOverhead: service.OverheadMinutes,
		minutesPerLiter: service.MinutesPerLiter,
	}
}

// InterArrivalMinutes draws the gap to the next arrival after now, in minutes.
func (s *Sampler) InterArrivalMinutes(now time.Time) float64 {
	base := s.arrivals.Sample(s.rng)
	adjusted := base / s.arrivalFactor / math.Max(minFactor, TimeFactor(now))
	return math.Max(minInterArrivalMinutes, adjusted)
}

// SampleInterArrival draws the gap to the next arrival after now.
func (s *Sampler) SampleInterArrival(now time.Time) time.Duration {
	return minutesToDuration(s.InterArrivalMinutes(now))
}

// GenerateRequest creates the next car. IDs increase strictly from 1.
// Draw order (brand, volume, side) is part of the reproducibility contract.
func (s *Sampler) GenerateRequest(now time.Time, brands []string, minVolume, maxVolume float64) *Request {
	if len(brands) == 0 {
		panic("GenerateRequest: no brands configured")
	}
	s.nextID++
	brand := brands[s.rng.Intn(len(brands))]
	volume := minVolume + s.rng.Float64()*(maxVolume-minVolume)
	volume = math.Round(volume*10) / 10
	side := SideRight
	if s.rng.Float64() < 0.5 {
		side = SideLeft
	}
	return NewRequest(s.nextID, now, brand, volume, side)
}

// ServiceMinutes is overhead + per-liter time, clamped to [0.5, 10] minutes.
func (s *Sampler) ServiceMinutes(volume float64) float64 {
	raw := s.serviceOverhead + s.minutesPerLiter*volume
	return math.Max(minServiceMinutes, math.Min(maxServiceMinutes, raw))
}

// ComputeServiceTime returns how long fueling volume liters takes.
func (s *Sampler) ComputeServiceTime(volume float64) time.Duration {
	return minutesToDuration(s.ServiceMinutes(volume))
}

// Draws reports how many random values the sampler has consumed.
func (s *Sampler) Draws() uint64 {
	return s.rng.Draws()
}
