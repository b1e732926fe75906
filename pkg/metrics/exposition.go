package metrics

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gateixeira/walletmon/internal/middleware"
	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DefaultAddr is the loopback address the exposition endpoint binds by default
const DefaultAddr = "127.0.0.1:3000"

// ExpositionService serves the text exposition of a Registry on every path.
// It is started at most once and runs until the process exits.
type ExpositionService struct {
	registry *Registry
	once     sync.Once

	mu   sync.RWMutex
	addr string
}

// NewExpositionService creates a service for the given registry
func NewExpositionService(registry *Registry) *ExpositionService {
	return &ExpositionService{registry: registry}
}

// Handler builds the HTTP handler serving the registry snapshot
func (e *ExpositionService) Handler() http.Handler {
	promHandler := promhttp.HandlerFor(e.registry.Gatherer(), promhttp.HandlerOpts{
		ErrorLog:           zap.NewStdLog(logger.Logger),
		ErrorHandling:      promhttp.ContinueOnError,
		DisableCompression: true,
	})

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.AllowMethods(http.MethodGet, http.MethodHead))

	// No path routing: every path returns the snapshot. NoRoute responses
	// start out as 404, so the status is set before promhttp writes.
	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusOK)
		promHandler.ServeHTTP(c.Writer, c.Request)
	})

	return r
}

// Start binds addr and serves in the background. Only the first call has any
// effect. A bind failure is logged and the service stays down; there is no retry.
func (e *ExpositionService) Start(addr string) {
	e.once.Do(func() {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Logger.Error("Failed to bind metrics exposition listener",
				zap.String("addr", addr),
				zap.Error(err))
			return
		}

		e.mu.Lock()
		e.addr = ln.Addr().String()
		e.mu.Unlock()

		srv := &http.Server{
			Handler:           e.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Logger.Error("Metrics exposition server stopped", zap.Error(err))
			}

			e.mu.Lock()
			e.addr = ""
			e.mu.Unlock()
		}()

		logger.Logger.Info("Metrics exposition listening", zap.String("addr", ln.Addr().String()))
	})
}

// Addr returns the bound address, or "" when the service is not serving
func (e *ExpositionService) Addr() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.addr
}
