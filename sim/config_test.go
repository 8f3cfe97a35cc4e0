package sim

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Station.Pumps)
	assert.Equal(t, 5, cfg.Station.MaxQueue)
	assert.Equal(t, []string{"A92", "A95", "Diesel"}, cfg.Station.BrandNames())
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	// GIVEN a file setting only a few fields
	path := writeConfig(t, `
seed: 9
days: 2
station:
  pumps: 4
  arrival:
    distribution: normal
`)

	// WHEN it is loaded
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// THEN those fields change and the rest keep their defaults
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 2, cfg.Days)
	assert.Equal(t, 4, cfg.Station.Pumps)
	assert.Equal(t, 5, cfg.Station.MaxQueue)
	assert.Equal(t, DistributionNormal, cfg.Station.Arrival.Distribution)
	assert.Equal(t, 0.5, cfg.Station.Arrival.UniformA)
	assert.Equal(t, 0.03, cfg.Station.Service.MinutesPerLiter)
}

func TestLoadConfig_UnknownField_Rejected(t *testing.T) {
	path := writeConfig(t, "station:\n  pumpz: 4\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pumpz")
}

func TestLoadConfig_BadAccess_Rejected(t *testing.T) {
	path := writeConfig(t, `
station:
  pumps: 1
  layout:
    - brand: A92
      access: sideways
`)

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Station.Layout = []PumpConfig{
		{Brand: "A92", Access: AccessBoth},
		{Brand: "A95", Access: AccessLeftOnly},
		{Brand: "Diesel", Access: AccessRightOnly},
	}
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "access: left-only")

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}

func TestConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero pumps", func(c *Config) { c.Station.Pumps = 0 }, "station.pumps"},
		{"too many pumps", func(c *Config) { c.Station.Pumps = 21 }, "station.pumps"},
		{"zero queue", func(c *Config) { c.Station.MaxQueue = 0 }, "station.max_queue"},
		{"queue too long", func(c *Config) { c.Station.MaxQueue = 21 }, "station.max_queue"},
		{"zero days", func(c *Config) { c.Days = 0 }, "days"},
		{"too many days", func(c *Config) { c.Days = 31 }, "days"},
		{"bad start", func(c *Config) { c.Start = "05/01/2026" }, "start"},
		{"bad schedule", func(c *Config) { c.ReportSchedule = "every day" }, "report_schedule"},
		{"bad trace level", func(c *Config) { c.TraceLevel = "verbose" }, "trace_level"},
		{"no brands", func(c *Config) { c.Station.Brands = nil }, "brand"},
		{"duplicate brand", func(c *Config) { c.Station.Brands[1].Name = "A92" }, "duplicate"},
		{"empty brand name", func(c *Config) { c.Station.Brands[0].Name = "" }, "name"},
		{"negative markup", func(c *Config) { c.Station.Brands[0].MarkupPercent = -1 }, "markup_percent"},
		{"negative inventory", func(c *Config) { c.Station.Brands[2].Inventory = -5 }, "inventory"},
		{"negative price", func(c *Config) { c.Station.Brands[0].BasePrice = -1 }, "base_price"},
		{"min above max volume", func(c *Config) { c.Station.MinVolume = 60 }, "volume"},
		{"zero min volume", func(c *Config) { c.Station.MinVolume = 0 }, "volume"},
		{"nan max volume", func(c *Config) { c.Station.MaxVolume = math.NaN() }, "station.max_volume"},
		{"infinite max volume", func(c *Config) { c.Station.MaxVolume = math.Inf(1) }, "station.max_volume"},
		{"uniform b below a", func(c *Config) { c.Station.Arrival.UniformB = 0.1 }, "uniform_b"},
		{"negative std dev", func(c *Config) { c.Station.Arrival.NormalStdDev = -1 }, "normal_std_dev"},
		{"unknown distribution", func(c *Config) { c.Station.Arrival.Distribution = "poisson" }, "distribution"},
		{"unknown allocation", func(c *Config) { c.Station.Allocation = "random" }, "allocation"},
		{"negative overhead", func(c *Config) { c.Station.Service.OverheadMinutes = -1 }, "overhead_minutes"},
		{"layout length mismatch", func(c *Config) {
			c.Station.Layout = []PumpConfig{{Brand: "A92"}}
		}, "layout"},
		{"layout unknown brand", func(c *Config) {
			c.Station.Layout = []PumpConfig{{Brand: "A92"}, {Brand: "LPG"}, {Brand: "A95"}}
		}, "LPG"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.wantErr), "error %q should mention %q", err, tc.wantErr)
		})
	}
}

func TestConfig_StartTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Start = "2026-03-14"
	start, err := cfg.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), start)

	cfg.Start = ""
	start, err = cfg.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, start.Location())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
}

func TestParseReportSchedule(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	daily, err := ParseReportSchedule("")
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 1), daily.Next(start))

	descriptor, err := ParseReportSchedule("@daily")
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 1), descriptor.Next(start))

	shifts, err := ParseReportSchedule("0 6,18 * * *")
	require.NoError(t, err)
	assert.Equal(t, start.Add(6*time.Hour), shifts.Next(start))

	_, err = ParseReportSchedule("61 * * * *")
	assert.Error(t, err)
}

func TestStationConfig_PumpLayout_Default(t *testing.T) {
	cfg := DefaultConfig().Station
	cfg.Pumps = 4

	layout := cfg.PumpLayout()

	require.Len(t, layout, 4)
	assert.Equal(t, PumpConfig{Brand: "A92", Access: AccessBoth}, layout[3])
}
