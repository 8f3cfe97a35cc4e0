// Package export publishes a finished station run in the Prometheus text
// exposition format, so results can be picked up by a node_exporter textfile
// collector or diffed between runs.
package export

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/fuel-sim/sim"
)

// Exporter holds the gauges for one run on a private registry.
type Exporter struct {
	registry *prometheus.Registry

	servedCars   *prometheus.GaugeVec
	lostCars     *prometheus.GaugeVec
	servedLiters *prometheus.GaugeVec
	inventory    *prometheus.GaugeVec
	profit       prometheus.Gauge
	arrivals     prometheus.Gauge
}

// NewExporter creates an Exporter with all gauges registered.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		servedCars: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fuelsim_pump_served_cars",
				Help: "Cars fueled by each pump during the run.",
			},
			[]string{"pump", "brand"},
		),
		lostCars: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fuelsim_pump_lost_cars",
				Help: "Cars lost at each pump, to a full queue or to missing stock.",
			},
			[]string{"pump", "brand"},
		),
		servedLiters: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fuelsim_pump_served_liters",
				Help: "Liters dispensed by each pump during the run.",
			},
			[]string{"pump", "brand"},
		),
		inventory: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fuelsim_inventory_liters",
				Help: "Liters left per brand at the end of the run.",
			},
			[]string{"brand"},
		),
		profit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fuelsim_profit",
			Help: "Markup earned on dispensed fuel.",
		}),
		arrivals: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fuelsim_arrivals",
			Help: "Cars that arrived at the station.",
		}),
	}
	e.registry.MustRegister(e.servedCars, e.lostCars, e.servedLiters, e.inventory, e.profit, e.arrivals)
	return e
}

// Registry exposes the private registry, e.g. for promhttp.HandlerFor.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Record sets every gauge from summary. Recording twice overwrites.
func (e *Exporter) Record(summary *sim.Summary) {
	for _, p := range summary.Pumps {
		pump := strconv.Itoa(p.ID)
		e.servedCars.WithLabelValues(pump, p.Brand).Set(float64(p.ServedCars))
		e.lostCars.WithLabelValues(pump, p.Brand).Set(float64(p.LostCars))
		e.servedLiters.WithLabelValues(pump, p.Brand).Set(p.ServedLiters)
	}
	for brand, left := range summary.Inventory {
		e.inventory.WithLabelValues(brand).Set(left)
	}
	e.profit.Set(summary.Profit)
	e.arrivals.Set(float64(summary.Arrivals))
}

// WriteTextfile writes all gauges to path in the text exposition format.
func (e *Exporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
