package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"parking-attendant/internal/parking"
)

var (
	lotCapacityDesc = prometheus.NewDesc(
		"parking_lot_capacity",
		"Number of slots in the lot.",
		[]string{"attendant", "lot_index", "lot_name"}, nil,
	)
	lotOccupiedDesc = prometheus.NewDesc(
		"parking_lot_occupied",
		"Number of slots currently holding a vehicle.",
		[]string{"attendant", "lot_index", "lot_name"}, nil,
	)
)

// occupancyCollector reads lot occupancy from whichever attendant the
// facility is serving at scrape time.
type occupancyCollector struct {
	facility *parking.Facility
}

func (c *occupancyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- lotCapacityDesc
	ch <- lotOccupiedDesc
}

func (c *occupancyCollector) Collect(ch chan<- prometheus.Metric) {
	attendant, _ := c.facility.Current()
	if attendant == nil {
		return
	}

	for _, lot := range attendant.Attendant.Status() {
		labels := []string{attendant.ID(), strconv.Itoa(lot.Index), lot.Name}
		ch <- prometheus.MustNewConstMetric(lotCapacityDesc, prometheus.GaugeValue, float64(lot.Capacity), labels...)
		ch <- prometheus.MustNewConstMetric(lotOccupiedDesc, prometheus.GaugeValue, float64(lot.Occupied), labels...)
	}
}

func newRegistry(facility *parking.Facility) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		&occupancyCollector{facility: facility},
	)
	return registry
}
