package server

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gateixeira/walletmon/pkg/logger"
	"go.uber.org/zap"
)

// GracefulShutdown waits for a termination signal and bounds how long the
// background services may take to stop
type GracefulShutdown struct {
	timeout  time.Duration
	shutdown chan struct{}
	once     sync.Once
}

// NewGracefulShutdown creates a new graceful shutdown handler
func NewGracefulShutdown(timeout time.Duration) *GracefulShutdown {
	return &GracefulShutdown{
		timeout:  timeout,
		shutdown: make(chan struct{}),
	}
}

// Start begins listening for shutdown signals
func (gs *GracefulShutdown) Start() {
	sigChan := make(chan os.Signal, 1)

	signal.Notify(sigChan,
		syscall.SIGINT,  // Ctrl+C
		syscall.SIGTERM, // Termination signal
		syscall.SIGQUIT, // Quit signal
	)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		logger.Logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		gs.Trigger()
	}()
}

// Trigger initiates shutdown without a signal. Safe to call more than once.
func (gs *GracefulShutdown) Trigger() {
	gs.once.Do(func() { close(gs.shutdown) })
}

// Wait blocks until shutdown is initiated
func (gs *GracefulShutdown) Wait() {
	<-gs.shutdown
}

// IsShuttingDown returns true if shutdown has been initiated
func (gs *GracefulShutdown) IsShuttingDown() bool {
	select {
	case <-gs.shutdown:
		return true
	default:
		return false
	}
}

// Drain runs every stop function concurrently and returns once they all
// finish or the timeout elapses. It reports whether everything stopped in time.
func (gs *GracefulShutdown) Drain(stops ...func()) bool {
	var wg sync.WaitGroup
	for _, stop := range stops {
		wg.Add(1)
		go func(stop func()) {
			defer wg.Done()
			stop()
		}(stop)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	logger.Logger.Info("Stopping background services...", zap.Duration("timeout", gs.timeout))

	select {
	case <-done:
		return true
	case <-time.After(gs.timeout):
		logger.Logger.Error("Background services did not stop in time", zap.Duration("timeout", gs.timeout))
		return false
	}
}
