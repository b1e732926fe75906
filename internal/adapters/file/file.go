package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gateixeira/walletmon/internal/wallet"
	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/gateixeira/walletmon/pkg/metrics"
	"go.uber.org/zap"
)

const (
	metricSent     = "slates_sent_total"
	metricReceived = "slates_received_total"
	metricErrors   = "slate_errors_total"
	metricInFlight = "slate_io_in_flight"
	metricWrite    = "slate_write_seconds"
	metricRead     = "slate_read_seconds"
	metricBytes    = "slate_bytes"
)

// slateFile is the part of *os.File SendTxAsync writes through
type slateFile interface {
	io.WriteCloser
	Sync() error
}

var createFile = func(name string) (slateFile, error) {
	return os.Create(name)
}

// Adapter exchanges slates through files on the local filesystem. It only
// works asynchronously: one side writes a file, the other reads it later.
type Adapter struct{}

// NewAdapter creates a file adapter
func NewAdapter() wallet.Adapter {
	return &Adapter{}
}

func (a *Adapter) SupportsSync() bool {
	return false
}

func (a *Adapter) SendTxSync(dest string, slate *wallet.Slate) (*wallet.Slate, error) {
	return nil, wallet.NewError(wallet.KindUnsupported, "file adapter cannot send synchronously", nil)
}

// SendTxAsync writes slate as JSON to dest and syncs it to disk
func (a *Adapter) SendTxAsync(dest string, slate *wallet.Slate) (err error) {
	metrics.IntGaugeInc(metricInFlight)
	timer := metrics.HistogramStartTimer(metricWrite)
	defer func() {
		timer.ObserveDuration()
		metrics.IntGaugeDec(metricInFlight)
		if err != nil {
			metrics.CounterInc(metricErrors)
			logger.Logger.Warn("Failed to send slate", zap.String("dest", dest), zap.Error(err))
		}
	}()

	data, err := json.Marshal(slate)
	if err != nil {
		return wallet.NewError(wallet.KindFormat, "", err)
	}

	f, err := createFile(dest)
	if err != nil {
		return wallet.NewError(wallet.KindSlateSend, dest, err)
	}

	if err := writeSlate(f, data); err != nil {
		removePartial(dest)
		return wallet.NewError(wallet.KindSlateSend, dest, err)
	}

	metrics.CounterInc(metricSent)
	metrics.HistogramObserve(metricBytes, float64(len(data)))
	logger.Logger.Debug("Slate sent",
		zap.String("dest", dest),
		zap.String("slate_id", slate.ID.String()),
		zap.Int("bytes", len(data)))

	return nil
}

// writeSlate writes and syncs data, always closing f. The first error wins.
func writeSlate(f slateFile, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// removePartial deletes a slate file that was not completely written so the
// inbox never picks it up
func removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Logger.Warn("Failed to remove partial slate", zap.String("path", path), zap.Error(err))
	}
}

// ReceiveTxAsync reads and decodes the slate stored at path
func (a *Adapter) ReceiveTxAsync(path string) (slate *wallet.Slate, err error) {
	metrics.IntGaugeInc(metricInFlight)
	timer := metrics.HistogramStartTimer(metricRead)
	defer func() {
		timer.ObserveDuration()
		metrics.IntGaugeDec(metricInFlight)
		if err != nil {
			metrics.CounterInc(metricErrors)
			logger.Logger.Warn("Failed to receive slate", zap.String("path", path), zap.Error(err))
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wallet.NewError(wallet.KindSlateReceive, path, err)
	}

	slate = &wallet.Slate{}
	if err := json.Unmarshal(data, slate); err != nil {
		return nil, wallet.NewError(wallet.KindFormat, fmt.Sprintf("decoding %s", path), err)
	}

	metrics.CounterInc(metricReceived)
	metrics.HistogramObserve(metricBytes, float64(len(data)))
	logger.Logger.Debug("Slate received",
		zap.String("path", path),
		zap.String("slate_id", slate.ID.String()))

	return slate, nil
}

func (a *Adapter) Listen(params map[string]string) error {
	return wallet.NewError(wallet.KindUnsupported, "file adapter cannot listen", nil)
}
