package server

import (
	"context"
	"time"

	"github.com/gateixeira/walletmon/internal/adapters/file"
	"github.com/gateixeira/walletmon/internal/config"
	"github.com/gateixeira/walletmon/internal/services"
	"github.com/gateixeira/walletmon/internal/wallet"
	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/gateixeira/walletmon/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupAndRun starts the metrics endpoint and the background services, then
// blocks until the process is asked to terminate
func SetupAndRun(config *config.Config) {
	logger.InitLogger(config.Vars.LogLevel)
	defer logger.SyncLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.Configure(config.MetricsOptions())
	metrics.Start(config.Vars.MetricsAddr)

	ctx := context.Background()

	inboxService := services.NewInboxService(
		config.Vars.SlateInboxDir,
		file.NewAdapter(),
		config.GetSlatePollInterval(),
		logReceived,
		ctx,
	)
	runtimeService := services.NewRuntimeMetricsService(config.GetRuntimeMetricsInterval(), ctx)

	gracefulShutdown := NewGracefulShutdown(30 * time.Second)

	go inboxService.Start()
	go runtimeService.Start()
	gracefulShutdown.Start()

	logger.Logger.Info("Starting walletmon",
		zap.String("metrics_addr", config.Vars.MetricsAddr),
		zap.Bool("metrics_enabled", metrics.Enabled()),
		zap.String("environment", config.Vars.Environment),
		zap.String("slate_inbox_dir", config.Vars.SlateInboxDir),
		zap.Duration("slate_poll_interval", config.GetSlatePollInterval()),
		zap.String("log_level", config.Vars.LogLevel),
	)

	if metrics.Enabled() && metrics.ExpositionAddr() == "" {
		logger.Logger.Warn("Metrics exposition is not serving; continuing without it")
	}

	// Wait for a termination signal
	gracefulShutdown.Wait()

	// The exposition endpoint has no teardown and ends with the process
	gracefulShutdown.Drain(inboxService.Stop, runtimeService.Stop)

	logger.Logger.Info("Shutdown complete")
}

func logReceived(slate *wallet.Slate) {
	logger.Logger.Debug("Slate handed off",
		zap.String("slate_id", slate.ID.String()),
		zap.Int("participants", slate.NumParticipants))
}
