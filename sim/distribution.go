package sim

import (
	"fmt"
	"math"
)

// IntervalDistribution draws a base inter-arrival gap in minutes.
type IntervalDistribution interface {
	// Sample returns a non-negative number of minutes.
	Sample(rng *RandomSource) float64
}

// UniformInterval draws uniformly from [A, B].
type UniformInterval struct {
	A, B float64
}

func (d UniformInterval) Sample(rng *RandomSource) float64 {
	return d.A + rng.Float64()*(d.B-d.A)
}

// NormalInterval draws |Mean + StdDev·Z| where Z is a standard normal built
// with the Box–Muller transform from two uniforms. Folding keeps the gap
// non-negative without truncating the tail.
type NormalInterval struct {
	Mean, StdDev float64
}

func (d NormalInterval) Sample(rng *RandomSource) float64 {
	u1 := 1.0 - rng.Float64() // (0, 1], so the log is finite
	u2 := 1.0 - rng.Float64()
	z := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2*math.Pi*u2)
	return math.Abs(d.Mean + d.StdDev*z)
}

// Distribution names accepted in ArrivalConfig.Distribution.
const (
	DistributionUniform = "uniform"
	DistributionNormal  = "normal"
)

// ValidDistributions is the set of recognized inter-arrival distribution names.
var ValidDistributions = map[string]bool{"": true, DistributionUniform: true, DistributionNormal: true}

// NewIntervalDistribution creates the inter-arrival distribution named in cfg.
// The empty name selects uniform.
func NewIntervalDistribution(cfg ArrivalConfig) (IntervalDistribution, error) {
	switch cfg.Distribution {
	case "", DistributionUniform:
		return UniformInterval{A: cfg.UniformA, B: cfg.UniformB}, nil
	case DistributionNormal:
		return NormalInterval{Mean: cfg.NormalMean, StdDev: cfg.NormalStdDev}, nil
	default:
		return nil, fmt.Errorf("unknown inter-arrival distribution %q; valid: uniform, normal", cfg.Distribution)
	}
}
