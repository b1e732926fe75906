package metrics

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStore_ConcurrentFirstUseCreatesOnce(t *testing.T) {
	s := newStore[prometheus.Counter](KindCounter)

	var calls atomic.Int32
	factory := func(name string) (prometheus.Counter, error) {
		calls.Add(1)
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name}), nil
	}

	const workers = 64
	results := make([]prometheus.Counter, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			c, ok := s.getOrCreate("shared_total", factory)
			assert.True(t, ok)
			results[i] = c
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, s.len())
	for _, c := range results {
		assert.Same(t, results[0], c)
	}
}

func TestStore_FastPathSkipsFactory(t *testing.T) {
	s := newStore[*IntGauge](KindIntGauge)
	g := NewIntGauge(prometheus.GaugeOpts{Name: "g", Help: "g"})

	_, ok := s.getOrCreate("g", func(string) (*IntGauge, error) { return g, nil })
	require.True(t, ok)

	got, ok := s.getOrCreate("g", func(string) (*IntGauge, error) {
		t.Fatal("factory must not run for a registered name")
		return nil, nil
	})
	assert.True(t, ok)
	assert.Same(t, g, got)
}

func TestStore_FactoryErrorDegrades(t *testing.T) {
	s := newStore[prometheus.Gauge](KindGauge)

	g, ok := s.getOrCreate("broken", func(string) (prometheus.Gauge, error) {
		return nil, errors.New("rejected")
	})

	assert.False(t, ok)
	assert.Nil(t, g)
	assert.Equal(t, 0, s.len())

	// The name can be registered again once the store is cleared
	s.clear(func(prometheus.Gauge) {})
	_, ok = s.getOrCreate("broken", func(name string) (prometheus.Gauge, error) {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name}), nil
	})
	assert.True(t, ok)
	assert.Equal(t, 1, s.len())
}

func TestStore_FailedNameWarnsOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	previous := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = previous })

	s := newStore[prometheus.Counter](KindCounter)

	var calls atomic.Int32
	factory := func(string) (prometheus.Counter, error) {
		calls.Add(1)
		return nil, errors.New("collides")
	}

	for i := 0; i < 100; i++ {
		_, ok := s.getOrCreate("dup_total", factory)
		assert.False(t, ok)
	}

	assert.Equal(t, int32(1), calls.Load())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Failed to register metric", entry.Message)
	assert.Equal(t, "dup_total", entry.ContextMap()["name"])
	assert.Equal(t, "counter", entry.ContextMap()["kind"])

	// Other names are unaffected
	_, ok := s.getOrCreate("other_total", func(name string) (prometheus.Counter, error) {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name}), nil
	})
	assert.True(t, ok)
}

func TestStore_FactoryPanicIsRecovered(t *testing.T) {
	s := newStore[prometheus.Histogram](KindHistogram)

	assert.NotPanics(t, func() {
		_, ok := s.getOrCreate("h", func(string) (prometheus.Histogram, error) {
			panic("bad buckets")
		})
		assert.False(t, ok)
	})

	// The write lock was released by the panic path
	_, ok := s.get("h")
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	s := newStore[prometheus.Counter](KindCounter)
	for _, name := range []string{"a", "b", "c"} {
		_, ok := s.getOrCreate(name, func(n string) (prometheus.Counter, error) {
			return prometheus.NewCounter(prometheus.CounterOpts{Name: n, Help: n}), nil
		})
		require.True(t, ok)
	}

	var released []prometheus.Counter
	s.clear(func(c prometheus.Counter) { released = append(released, c) })

	assert.Len(t, released, 3)
	assert.Equal(t, 0, s.len())
}
