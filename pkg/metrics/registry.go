// Package metrics is a lazily populated registry of named gauges, counters
// and histograms backed by prometheus/client_golang, plus the HTTP endpoint
// that exposes them.
//
// Instruments are created on first use. Recording never returns an error:
// when an instrument cannot be registered the call is logged and dropped.
package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/model"
	"go.uber.org/zap"
)

// Options tunes how instruments are built on first use
type Options struct {
	// DefaultBuckets applies to histograms without an entry in Buckets.
	// prometheus.DefBuckets is used when empty.
	DefaultBuckets []float64
	// Help maps metric names to their help text; the name itself is used otherwise
	Help map[string]string
	// Buckets maps histogram names to their bucket upper bounds
	Buckets map[string][]float64
}

// Registry holds one store per instrument kind and the prometheus registry
// every instrument is registered with
type Registry struct {
	registry *prometheus.Registry
	options  atomic.Pointer[Options]

	// name -> help text the instrument was built with
	described sync.Map

	gauges     *store[prometheus.Gauge]
	intGauges  *store[*IntGauge]
	counters   *store[prometheus.Counter]
	histograms *store[prometheus.Histogram]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{
		registry:   prometheus.NewRegistry(),
		gauges:     newStore[prometheus.Gauge](KindGauge),
		intGauges:  newStore[*IntGauge](KindIntGauge),
		counters:   newStore[prometheus.Counter](KindCounter),
		histograms: newStore[prometheus.Histogram](KindHistogram),
	}
	r.options.Store(&Options{})
	return r
}

// SetOptions replaces the build options. Instruments that already exist keep
// the help text and buckets they were created with.
func (r *Registry) SetOptions(opts Options) {
	r.options.Store(&opts)
}

// Gatherer exposes the underlying prometheus registry for scraping
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Len returns the number of registered instruments across all kinds
func (r *Registry) Len() int {
	return r.gauges.len() + r.intGauges.len() + r.counters.len() + r.histograms.len()
}

// Reset unregisters and forgets every instrument. Intended for tests.
func (r *Registry) Reset() {
	r.described.Clear()
	r.gauges.clear(func(g prometheus.Gauge) { r.registry.Unregister(g) })
	r.intGauges.clear(func(g *IntGauge) { r.registry.Unregister(g) })
	r.counters.clear(func(c prometheus.Counter) { r.registry.Unregister(c) })
	r.histograms.clear(func(h prometheus.Histogram) { r.registry.Unregister(h) })
}

func (r *Registry) help(name string) string {
	if h, ok := r.options.Load().Help[name]; ok && h != "" {
		return h
	}
	return name
}

func (r *Registry) buckets(name string) []float64 {
	opts := r.options.Load()
	if b, ok := opts.Buckets[name]; ok && len(b) > 0 {
		return b
	}
	if len(opts.DefaultBuckets) > 0 {
		return opts.DefaultBuckets
	}
	return prometheus.DefBuckets
}

// describedHelp returns the help text name was registered with
func (r *Registry) describedHelp(name string) string {
	if h, ok := r.described.Load(name); ok {
		return h.(string)
	}
	return name
}

// register adds c to the prometheus registry and records its help text.
// Only legacy metric names are accepted: the text format would otherwise
// escape distinct names like "a-b" and "a_b" into the same family.
func (r *Registry) register(name, help string, c prometheus.Collector) error {
	if !model.IsValidLegacyMetricName(name) {
		return fmt.Errorf("invalid metric name %q", name)
	}
	if err := r.registry.Register(c); err != nil {
		return err
	}
	r.described.Store(name, help)
	return nil
}

func (r *Registry) newGauge(name string) (prometheus.Gauge, error) {
	help := r.help(name)
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	if err := r.register(name, help, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *Registry) newIntGauge(name string) (*IntGauge, error) {
	help := r.help(name)
	g := NewIntGauge(prometheus.GaugeOpts{Name: name, Help: help})
	if err := r.register(name, help, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *Registry) newCounter(name string) (prometheus.Counter, error) {
	help := r.help(name)
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	if err := r.register(name, help, c); err != nil {
		return nil, err
	}
	return c, nil
}

// newHistogram panics on unsorted buckets; the store recovers that as a
// registration failure
func (r *Registry) newHistogram(name string) (prometheus.Histogram, error) {
	help := r.help(name)
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: r.buckets(name),
	})
	if err := r.register(name, help, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *Registry) gauge(name string) (prometheus.Gauge, bool) {
	return r.gauges.getOrCreate(name, r.newGauge)
}

func (r *Registry) intGauge(name string) (*IntGauge, bool) {
	return r.intGauges.getOrCreate(name, r.newIntGauge)
}

func (r *Registry) counter(name string) (prometheus.Counter, bool) {
	return r.counters.getOrCreate(name, r.newCounter)
}

func (r *Registry) histogram(name string) (prometheus.Histogram, bool) {
	return r.histograms.getOrCreate(name, r.newHistogram)
}

func (r *Registry) IntGaugeInc(name string) {
	if g, ok := r.intGauge(name); ok {
		g.Inc()
	}
}

func (r *Registry) IntGaugeDec(name string) {
	if g, ok := r.intGauge(name); ok {
		g.Dec()
	}
}

func (r *Registry) IntGaugeAdd(name string, n int64) {
	if g, ok := r.intGauge(name); ok {
		g.Add(n)
	}
}

func (r *Registry) IntGaugeSub(name string, n int64) {
	if g, ok := r.intGauge(name); ok {
		g.Sub(n)
	}
}

func (r *Registry) IntGaugeSet(name string, n int64) {
	if g, ok := r.intGauge(name); ok {
		g.Set(n)
	}
}

func (r *Registry) GaugeInc(name string) {
	if g, ok := r.gauge(name); ok {
		g.Inc()
	}
}

func (r *Registry) GaugeDec(name string) {
	if g, ok := r.gauge(name); ok {
		g.Dec()
	}
}

func (r *Registry) GaugeAdd(name string, v float64) {
	if g, ok := r.gauge(name); ok {
		g.Add(v)
	}
}

func (r *Registry) GaugeSub(name string, v float64) {
	if g, ok := r.gauge(name); ok {
		g.Sub(v)
	}
}

func (r *Registry) GaugeSet(name string, v float64) {
	if g, ok := r.gauge(name); ok {
		g.Set(v)
	}
}

// CounterInc increments a counter. Counters have no decrement.
func (r *Registry) CounterInc(name string) {
	if c, ok := r.counter(name); ok {
		c.Inc()
	}
}

// CounterAdd adds v to a counter. Negative values are dropped.
func (r *Registry) CounterAdd(name string, v float64) {
	if v < 0 {
		logger.Logger.Warn("Ignoring negative counter increment",
			zap.String("name", name),
			zap.Float64("value", v))
		return
	}
	if c, ok := r.counter(name); ok {
		c.Add(v)
	}
}

func (r *Registry) HistogramObserve(name string, v float64) {
	if h, ok := r.histogram(name); ok {
		h.Observe(v)
	}
}

// HistogramStartTimer starts a timer whose ObserveDuration records the elapsed
// seconds into the named histogram
func (r *Registry) HistogramStartTimer(name string) *prometheus.Timer {
	if h, ok := r.histogram(name); ok {
		return prometheus.NewTimer(h)
	}
	return prometheus.NewTimer(discard)
}

var discard = prometheus.ObserverFunc(func(float64) {})
