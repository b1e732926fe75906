package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// IntGauge is a gauge holding an exact int64. It is collected as a regular
// prometheus gauge.
type IntGauge struct {
	val  atomic.Int64
	desc *prometheus.Desc
}

// NewIntGauge creates an unregistered IntGauge
func NewIntGauge(opts prometheus.GaugeOpts) *IntGauge {
	return &IntGauge{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(opts.Namespace, opts.Subsystem, opts.Name),
			opts.Help,
			nil,
			opts.ConstLabels,
		),
	}
}

func (g *IntGauge) Inc()                   { g.val.Add(1) }
func (g *IntGauge) Dec()                   { g.val.Add(-1) }
func (g *IntGauge) Add(n int64)            { g.val.Add(n) }
func (g *IntGauge) Sub(n int64)            { g.val.Add(-n) }
func (g *IntGauge) Set(n int64)            { g.val.Store(n) }
func (g *IntGauge) Value() int64           { return g.val.Load() }
func (g *IntGauge) Desc() *prometheus.Desc { return g.desc }

// Describe implements prometheus.Collector
func (g *IntGauge) Describe(ch chan<- *prometheus.Desc) {
	ch <- g.desc
}

// Collect implements prometheus.Collector
func (g *IntGauge) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, float64(g.Value()))
}
