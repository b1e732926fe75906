package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gateixeira/walletmon/pkg/metrics"
	"github.com/spf13/cobra"
)

var (
	printMetrics bool
	rootCmd      = &cobra.Command{
		Use:   "walletmon",
		Short: "Wallet slate exchange with built-in metrics exposition",
		Long: `walletmon exchanges transaction slates through files and records what it
does in a process-wide metrics registry. The registry is served as plain-text
Prometheus exposition by "walletmon serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&printMetrics, "print-metrics", false, "print this process's metrics snapshot to stderr on exit")
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if !printMetrics {
			return nil
		}
		return metrics.WriteSnapshot(cmd.ErrOrStderr())
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SetVersion sets the string printed by --version
func SetVersion(v string) {
	rootCmd.Version = v
}
