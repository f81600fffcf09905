// Package root implements the telemetryctl command tree, a small inspection
// and debugging tool for the pwshgo telemetry pipeline.
package root

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pwshgo/telemetry/pkg/telemetry"
	"github.com/pwshgo/telemetry/pkg/version"
)

type rootFlags struct {
	debugMode bool
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "telemetryctl",
		Short: "telemetryctl - inspect and exercise pwshgo telemetry",
		Long:  "telemetryctl shows the local telemetry state (consent, identity, endpoint) and can send test records through the full pipeline",
		Example: `  telemetryctl status
  telemetryctl send startup.count 1`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.debugMode {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))

			telemetry.SetGlobalVersion(version.Version)
			telemetry.SetGlobalDebugMode(flags.debugMode)
		},
		// If no subcommand is specified, show help
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
