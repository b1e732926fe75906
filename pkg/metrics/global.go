//go:build !nometrics

package metrics

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global metrics registry instance
	globalRegistry   *Registry
	globalExposition *ExpositionService
	once             sync.Once
)

// GetRegistry returns the global metrics registry, initializing it if necessary
func GetRegistry() *Registry {
	once.Do(func() {
		globalRegistry = NewRegistry()
		globalExposition = NewExpositionService(globalRegistry)
	})
	return globalRegistry
}

// Enabled reports whether this build records metrics
func Enabled() bool { return true }

// Configure sets help text and bucket layouts for instruments created afterwards
func Configure(opts Options) {
	GetRegistry().SetOptions(opts)
}

// Start launches the global exposition endpoint on addr. Repeated calls are ignored.
func Start(addr string) {
	GetRegistry()
	globalExposition.Start(addr)
}

// ExpositionAddr returns the address the global endpoint is bound to, or ""
func ExpositionAddr() string {
	GetRegistry()
	return globalExposition.Addr()
}

// Reset forgets every instrument in the global registry. Intended for tests.
func Reset() {
	GetRegistry().Reset()
}

// WriteSnapshot writes the current global snapshot in text exposition format
func WriteSnapshot(w io.Writer) error {
	return GetRegistry().Snapshot().WriteText(w)
}

func IntGaugeInc(name string)          { GetRegistry().IntGaugeInc(name) }
func IntGaugeDec(name string)          { GetRegistry().IntGaugeDec(name) }
func IntGaugeAdd(name string, n int64) { GetRegistry().IntGaugeAdd(name, n) }
func IntGaugeSub(name string, n int64) { GetRegistry().IntGaugeSub(name, n) }
func IntGaugeSet(name string, n int64) { GetRegistry().IntGaugeSet(name, n) }

func GaugeInc(name string)            { GetRegistry().GaugeInc(name) }
func GaugeDec(name string)            { GetRegistry().GaugeDec(name) }
func GaugeAdd(name string, v float64) { GetRegistry().GaugeAdd(name, v) }
func GaugeSub(name string, v float64) { GetRegistry().GaugeSub(name, v) }
func GaugeSet(name string, v float64) { GetRegistry().GaugeSet(name, v) }

func CounterInc(name string)            { GetRegistry().CounterInc(name) }
func CounterAdd(name string, v float64) { GetRegistry().CounterAdd(name, v) }

func HistogramObserve(name string, v float64) { GetRegistry().HistogramObserve(name, v) }

func HistogramStartTimer(name string) *prometheus.Timer {
	return GetRegistry().HistogramStartTimer(name)
}
