package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/fuel-sim/sim/trace"
)

// Parameter ranges accepted by Validate.
const (
	MinPumps    = 1
	MaxPumps    = 20
	MinQueueLen = 1
	MaxQueueLen = 20
	MinDays     = 1
	MaxDays     = 30
)

// StartLayout is the date format of Config.Start.
const StartLayout = "2006-01-02"

// DefaultReportSchedule fires the day report at every midnight.
const DefaultReportSchedule = "0 0 * * *"

// reportScheduleParser accepts standard five-field cron expressions and descriptors like @daily.
var reportScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// BrandConfig holds the economics and stock of one fuel brand.
type BrandConfig struct {
	Name          string  `yaml:"name"`
	BasePrice     float64 `yaml:"base_price"`
	MarkupPercent float64 `yaml:"markup_percent"`
	Inventory     float64 `yaml:"inventory"` // liters at start of run
}

// PumpConfig describes one entry of an explicit pump layout.
type PumpConfig struct {
	Brand  string     `yaml:"brand"`
	Access PumpAccess `yaml:"access"`
}

// ArrivalConfig parameterizes the inter-arrival model.
type ArrivalConfig struct {
	Distribution string  `yaml:"distribution"` // "uniform" (default) or "normal"
	UniformA     float64 `yaml:"uniform_a"`    // minutes
	UniformB     float64 `yaml:"uniform_b"`    // minutes
	NormalMean   float64 `yaml:"normal_mean"`
	NormalStdDev float64 `yaml:"normal_std_dev"`
	Elasticity   float64 `yaml:"elasticity"` // demand reduction per markup percent
}

// ServiceConfig parameterizes service duration.
type ServiceConfig struct {
	OverheadMinutes float64 `yaml:"overhead_minutes"`
	MinutesPerLiter float64 `yaml:"minutes_per_liter"`
}

// StationConfig groups everything needed to build a Station.
type StationConfig struct {
	Pumps      int           `yaml:"pumps"`
	MaxQueue   int           `yaml:"max_queue"`
	Brands     []BrandConfig `yaml:"brands"`
	Layout     []PumpConfig  `yaml:"layout,omitempty"` // empty: brands assigned round-robin, access both
	MinVolume  float64       `yaml:"min_volume"`
	MaxVolume  float64       `yaml:"max_volume"`
	Allocation string        `yaml:"allocation"`
	Arrival    ArrivalConfig `yaml:"arrival"`
	Service    ServiceConfig `yaml:"service"`
}

// Config is the complete, YAML-loadable description of a run.
type Config struct {
	Seed           int64         `yaml:"seed"`
	Days           int           `yaml:"days"`
	Start          string        `yaml:"start,omitempty"` // YYYY-MM-DD, UTC; empty means today
	ReportSchedule string        `yaml:"report_schedule"`
	TraceLevel     string        `yaml:"trace_level"`
	Station        StationConfig `yaml:"station"`
}

// DefaultBrands returns the three brands of the reference station.
func DefaultBrands() []BrandConfig {
	return []BrandConfig{
		{Name: "A92", BasePrice: 48.0, MarkupPercent: 7.0, Inventory: 5000},
		{Name: "A95", BasePrice: 52.0, MarkupPercent: 8.0, Inventory: 4000},
		{Name: "Diesel", BasePrice: 49.5, MarkupPercent: 6.0, Inventory: 3000},
	}
}

// DefaultConfig returns the reference scenario.
func DefaultConfig() Config {
	return Config{
		Seed:           42,
		Days:           1,
		ReportSchedule: DefaultReportSchedule,
		TraceLevel:     string(trace.TraceLevelNone),
		Station: StationConfig{
			Pumps:      3,
			MaxQueue:   5,
			Brands:     DefaultBrands(),
			MinVolume:  10,
			MaxVolume:  50,
			Allocation: AllocationBrandAffinity,
			Arrival: ArrivalConfig{
				Distribution: DistributionUniform,
				UniformA:     0.5,
				UniformB:     4.0,
				NormalMean:   10.0,
				NormalStdDev: 3.0,
				Elasticity:   0.03,
			},
			Service: ServiceConfig{
				OverheadMinutes: 0.5,
				MinutesPerLiter: 0.03,
			},
		},
	}
}

// LoadConfig reads a YAML scenario on top of DefaultConfig.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading station config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing station config: %w", err)
	}
	return cfg, nil
}

// BrandNames returns the brand names in configuration order.
func (c StationConfig) BrandNames() []string {
	names := make([]string, len(c.Brands))
	for i, b := range c.Brands {
		names[i] = b.Name
	}
	return names
}

// PumpLayout returns the effective layout: the explicit one, or brand
// brands[i % len(brands)] with access both for pump i+1.
func (c StationConfig) PumpLayout() []PumpConfig {
	if len(c.Layout) > 0 {
		return c.Layout
	}
	layout := make([]PumpConfig, c.Pumps)
	for i := range layout {
		layout[i] = PumpConfig{Brand: c.Brands[i%len(c.Brands)].Name, Access: AccessBoth}
	}
	return layout
}

// StartTime resolves Start; an empty Start means today at 00:00 UTC.
func (c Config) StartTime() (time.Time, error) {
	if c.Start == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.ParseInLocation(StartLayout, c.Start, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("start must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// ParseReportSchedule parses a report schedule; empty selects DefaultReportSchedule.
func ParseReportSchedule(expr string) (cron.Schedule, error) {
	if expr == "" {
		expr = DefaultReportSchedule
	}
	schedule, err := reportScheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid report_schedule %q: %w", expr, err)
	}
	return schedule, nil
}

// Validate checks ranges and cross-field consistency.
// The simulator itself trusts its input; callers validate before building it.
func (c Config) Validate() error {
	if c.Days < MinDays || c.Days > MaxDays {
		return fmt.Errorf("days must be in [%d, %d], got %d", MinDays, MaxDays, c.Days)
	}
	if _, err := c.StartTime(); err != nil {
		return err
	}
	if _, err := ParseReportSchedule(c.ReportSchedule); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q; valid: none, decisions", c.TraceLevel)
	}
	return c.Station.Validate()
}

// Validate checks the station section.
func (c StationConfig) Validate() error {
	if c.Pumps < MinPumps || c.Pumps > MaxPumps {
		return fmt.Errorf("station.pumps must be in [%d, %d], got %d", MinPumps, MaxPumps, c.Pumps)
	}
	if c.MaxQueue < MinQueueLen || c.MaxQueue > MaxQueueLen {
		return fmt.Errorf("station.max_queue must be in [%d, %d], got %d", MinQueueLen, MaxQueueLen, c.MaxQueue)
	}
	if len(c.Brands) == 0 {
		return fmt.Errorf("station.brands: at least one brand required")
	}
	seen := make(map[string]bool, len(c.Brands))
	for i, b := range c.Brands {
		prefix := fmt.Sprintf("station.brands[%d]", i)
		if b.Name == "" {
			return fmt.Errorf("%s: name is required", prefix)
		}
		if seen[b.Name] {
			return fmt.Errorf("%s: duplicate brand %q", prefix, b.Name)
		}
		seen[b.Name] = true
		if err := validateNonNegative(prefix+".base_price", b.BasePrice); err != nil {
			return err
		}
		if err := validateNonNegative(prefix+".markup_percent", b.MarkupPercent); err != nil {
			return err
		}
		if err := validateNonNegative(prefix+".inventory", b.Inventory); err != nil {
			return err
		}
	}
	if len(c.Layout) > 0 {
		if len(c.Layout) != c.Pumps {
			return fmt.Errorf("station.layout has %d entries, want %d (one per pump)", len(c.Layout), c.Pumps)
		}
		for i, p := range c.Layout {
			if !seen[p.Brand] {
				return fmt.Errorf("station.layout[%d]: unknown brand %q", i, p.Brand)
			}
		}
	}
	if err := validateNonNegative("station.min_volume", c.MinVolume); err != nil {
		return err
	}
	if err := validateNonNegative("station.max_volume", c.MaxVolume); err != nil {
		return err
	}
	if c.MinVolume <= 0 || c.MaxVolume < c.MinVolume {
		return fmt.Errorf("station volume range must satisfy 0 < min_volume <= max_volume, got [%g, %g]", c.MinVolume, c.MaxVolume)
	}
	if !ValidAllocationPolicies[c.Allocation] {
		return fmt.Errorf("unknown station.allocation %q; valid: brand-affinity, shortest-queue", c.Allocation)
	}
	if err := validateNonNegative("station.service.overhead_minutes", c.Service.OverheadMinutes); err != nil {
		return err
	}
	if err := validateNonNegative("station.service.minutes_per_liter", c.Service.MinutesPerLiter); err != nil {
		return err
	}
	return c.Arrival.validate()
}

func (a ArrivalConfig) validate() error {
	if !ValidDistributions[a.Distribution] {
		return fmt.Errorf("unknown arrival.distribution %q; valid: uniform, normal", a.Distribution)
	}
	fields := []struct {
		name string
		val  float64
	}{
		{"arrival.uniform_a", a.UniformA},
		{"arrival.uniform_b", a.UniformB},
		{"arrival.normal_mean", a.NormalMean},
		{"arrival.normal_std_dev", a.NormalStdDev},
		{"arrival.elasticity", a.Elasticity},
	}
	for _, f := range fields {
		if err := validateNonNegative(f.name, f.val); err != nil {
			return err
		}
	}
	if a.UniformB < a.UniformA {
		return fmt.Errorf("arrival.uniform_b (%g) must be >= arrival.uniform_a (%g)", a.UniformB, a.UniformA)
	}
	return nil
}

func validateNonNegative(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, val)
	}
	return nil
}
