package root

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pwshgo/telemetry/pkg/telemetry"
	"github.com/pwshgo/telemetry/pkg/version"
)

const sendFlushTimeout = 3 * time.Second

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <name> <value>",
		Short: "Send one generic metric event through the full pipeline",
		Long:  `Shape, scrub, and dispatch a single named metric, then flush. Useful for verifying endpoint connectivity.`,
		Args:  cobra.ExactArgs(2),
		RunE:  runSendCommand,
	}
}

func runSendCommand(_ *cobra.Command, args []string) error {
	cfg := telemetry.LoadConfig()
	if !cfg.Enabled() {
		return fmt.Errorf("telemetry is disabled by opt-out; unset PWSHGO_TELEMETRY_OPTOUT to send")
	}

	client := telemetry.NewClient(slog.Default(), cfg, version.Version)
	defer client.Close()

	client.ReportMetric(args[0], args[1])
	client.Flush(sendFlushTimeout)

	fmt.Printf("sent metric %q (node %s)\n", args[0], client.NodeID())
	return nil
}
