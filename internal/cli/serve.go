package cli

import (
	"github.com/gateixeira/walletmon/cmd/server"
	"github.com/gateixeira/walletmon/internal/config"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveInboxDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve metrics and watch the slate inbox",
	Long: `Start the metrics exposition endpoint and the background services.

Every path on the endpoint returns the current snapshot in the Prometheus
text format. Slate files dropped into the inbox directory are received and
moved to processed/ or failed/.

Examples:
  walletmon serve                          # 127.0.0.1:3000, ./data/inbox
  walletmon serve --addr 127.0.0.1:9100    # custom address`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfig()
		if serveAddr != "" {
			cfg.Vars.MetricsAddr = serveAddr
		}
		if serveInboxDir != "" {
			cfg.Vars.SlateInboxDir = serveInboxDir
		}

		server.SetupAndRun(cfg)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "exposition address (overrides METRICS_ADDR)")
	serveCmd.Flags().StringVar(&serveInboxDir, "inbox", "", "slate inbox directory (overrides SLATE_INBOX_DIR)")
	rootCmd.AddCommand(serveCmd)
}
