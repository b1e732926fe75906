//go:build !nometrics

package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gateixeira/walletmon/internal/wallet"
	"github.com/gateixeira/walletmon/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_RecordsMetrics(t *testing.T) {
	metrics.Reset()
	defer metrics.Reset()

	adapter := NewAdapter()
	dir := t.TempDir()
	dest := filepath.Join(dir, "tx.slate")

	require.NoError(t, adapter.SendTxAsync(dest, wallet.NewSlate(2, 10, 1, 5)))
	_, err := adapter.ReceiveTxAsync(dest)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.slate"), []byte("]"), 0o644))
	_, err = adapter.ReceiveTxAsync(filepath.Join(dir, "bad.slate"))
	require.Error(t, err)

	snap := metrics.GetRegistry().Snapshot()

	sent, ok := snap.Find(metrics.KindCounter, "slates_sent_total")
	require.True(t, ok)
	assert.Equal(t, 1.0, sent.Value)

	received, ok := snap.Find(metrics.KindCounter, "slates_received_total")
	require.True(t, ok)
	assert.Equal(t, 1.0, received.Value)

	failed, ok := snap.Find(metrics.KindCounter, "slate_errors_total")
	require.True(t, ok)
	assert.Equal(t, 1.0, failed.Value)

	inFlight, ok := snap.Find(metrics.KindIntGauge, "slate_io_in_flight")
	require.True(t, ok)
	assert.Equal(t, 0.0, inFlight.Value)

	writes, ok := snap.Find(metrics.KindHistogram, "slate_write_seconds")
	require.True(t, ok)
	assert.Equal(t, uint64(1), writes.Count)

	reads, ok := snap.Find(metrics.KindHistogram, "slate_read_seconds")
	require.True(t, ok)
	assert.Equal(t, uint64(2), reads.Count)

	sizes, ok := snap.Find(metrics.KindHistogram, "slate_bytes")
	require.True(t, ok)
	assert.Equal(t, uint64(2), sizes.Count)
}
