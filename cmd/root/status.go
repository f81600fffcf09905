package root

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pwshgo/telemetry/pkg/telemetry"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local telemetry state",
		Long:  `Display the consent decision, node identity, and endpoint configuration resolved from the current environment`,
		Args:  cobra.NoArgs,
		Run:   runStatusCommand,
	}
}

func runStatusCommand(_ *cobra.Command, _ []string) {
	cfg := telemetry.LoadConfig()

	if cfg.Enabled() {
		fmt.Printf("Telemetry:  %s\n", color.GreenString("enabled"))
	} else {
		fmt.Printf("Telemetry:  %s\n", color.RedString("disabled (opt-out)"))
	}
	fmt.Printf("Endpoint:   %s\n", cfg.Endpoint)
	fmt.Printf("State dir:  %s\n", cfg.StateDir)

	if cfg.Enabled() {
		// Resolving the identity may persist it on first run; a disabled
		// installation never touches the state dir.
		client := telemetry.NewClient(nil, cfg, "status")
		defer client.Close()
		fmt.Printf("Node id:    %s\n", client.NodeID())
		fmt.Printf("Session id: %s\n", client.SessionID())
	}
}
