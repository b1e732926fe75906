package services

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/gateixeira/walletmon/pkg/metrics"
)

const (
	metricGoroutines = "go_goroutines_current"
	metricHeapAlloc  = "heap_alloc_bytes"
)

// RuntimeMetricsService refreshes process gauges on a fixed interval
type RuntimeMetricsService struct {
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	mutex    sync.Mutex
}

func NewRuntimeMetricsService(interval time.Duration, ctx context.Context) *RuntimeMetricsService {
	ctx, cancel := context.WithCancel(ctx)

	return &RuntimeMetricsService{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

func (s *RuntimeMetricsService) Start() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Update immediately on start
	s.updateMetrics()

	for {
		select {
		case <-s.ctx.Done():
			logger.Logger.Info("Runtime metrics service stopped")
			return
		case <-ticker.C:
			s.updateMetrics()
		}
	}
}

func (s *RuntimeMetricsService) Stop() {
	s.cancel()
	<-s.done // Wait for completion
}

func (s *RuntimeMetricsService) updateMetrics() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	metrics.IntGaugeSet(metricGoroutines, int64(runtime.NumGoroutine()))
	metrics.GaugeSet(metricHeapAlloc, float64(mem.HeapAlloc))
}
