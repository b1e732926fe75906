package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gateixeira/walletmon/internal/wallet"
	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/gateixeira/walletmon/pkg/metrics"
	"go.uber.org/zap"
)

const (
	slateExt         = ".slate"
	processedDirName = "processed"
	failedDirName    = "failed"

	metricInboxPending = "slate_inbox_pending"
)

// InboxService picks up slate files dropped into a directory and receives
// them through a wallet adapter
type InboxService struct {
	dir      string
	adapter  wallet.Adapter
	interval time.Duration
	handler  func(*wallet.Slate)
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewInboxService creates an inbox watcher for dir. handler may be nil.
func NewInboxService(dir string, adapter wallet.Adapter, interval time.Duration, handler func(*wallet.Slate), ctx context.Context) *InboxService {
	ctx, cancel := context.WithCancel(ctx)

	return &InboxService{
		dir:      dir,
		adapter:  adapter,
		interval: interval,
		handler:  handler,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start scans the inbox immediately and then on every tick until stopped
func (s *InboxService) Start() {
	defer close(s.done)

	for _, sub := range []string{processedDirName, failedDirName} {
		if err := os.MkdirAll(filepath.Join(s.dir, sub), 0o755); err != nil {
			logger.Logger.Error("Failed to prepare inbox directory", zap.String("dir", s.dir), zap.Error(err))
			return
		}
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan()

	for {
		select {
		case <-s.ctx.Done():
			logger.Logger.Debug("Inbox service stopped")
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

// Stop cancels the loop and waits for the current scan to finish
func (s *InboxService) Stop() {
	s.cancel()
	<-s.done
}

func (s *InboxService) scan() {
	pending, err := s.pendingFiles()
	if err != nil {
		logger.Logger.Error("Failed to list inbox", zap.String("dir", s.dir), zap.Error(err))
		return
	}

	metrics.IntGaugeSet(metricInboxPending, int64(len(pending)))

	for _, path := range pending {
		if s.ctx.Err() != nil {
			return
		}
		if err := s.process(path); err != nil {
			logger.Logger.Error("Failed to process inbox slate", zap.String("path", path), zap.Error(err))
		}
		metrics.IntGaugeDec(metricInboxPending)
	}
}

func (s *InboxService) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), slateExt) {
			continue
		}
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// process receives one slate and moves its file out of the inbox
func (s *InboxService) process(path string) error {
	slate, err := s.adapter.ReceiveTxAsync(path)
	if err != nil {
		if moveErr := moveInto(path, filepath.Join(s.dir, failedDirName)); moveErr != nil {
			return errors.Join(err, moveErr)
		}
		return err
	}

	if s.handler != nil {
		s.handler(slate)
	}

	if err := moveInto(path, filepath.Join(s.dir, processedDirName)); err != nil {
		return err
	}

	logger.Logger.Info("Inbox slate received",
		zap.String("slate_id", slate.ID.String()),
		zap.Uint64("amount", slate.Amount))
	return nil
}

func moveInto(path, dir string) error {
	target := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", path, dir, err)
	}
	return nil
}
