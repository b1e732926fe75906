package cli

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gateixeira/walletmon/pkg/metrics"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var (
	dumpAddr string
	dumpRaw  bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Scrape a running endpoint and print its metrics",
	Long: `Fetch the exposition served by "walletmon serve" and print one line per
metric. With --raw the response body is printed unchanged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get("http://" + dumpAddr + "/")
		if err != nil {
			return fmt.Errorf("failed to scrape %s: %w", dumpAddr, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("scrape of %s returned status %d", dumpAddr, resp.StatusCode)
		}

		if dumpRaw {
			_, err := io.Copy(cmd.OutOrStdout(), resp.Body)
			return err
		}

		return summarize(cmd.OutOrStdout(), resp.Body)
	},
}

// summarize parses a text exposition and prints "name kind value" per metric
func summarize(w io.Writer, r io.Reader) error {
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(r)
	if err != nil {
		return fmt.Errorf("failed to parse exposition: %w", err)
	}

	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mf := families[name]
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s %s %s\n", name, strings.ToLower(mf.GetType().String()), formatValue(mf.GetType(), m))
		}
	}
	return nil
}

func formatValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return fmt.Sprintf("%g", m.GetUntyped().GetValue())
	}
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpAddr, "addr", "a", metrics.DefaultAddr, "address of the exposition endpoint")
	dumpCmd.Flags().BoolVar(&dumpRaw, "raw", false, "print the response body unchanged")
	rootCmd.AddCommand(dumpCmd)
}
