package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwshgo/telemetry/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  `Display the version and commit hash`,
		Args:  cobra.NoArgs,
		Run:   runVersionCommand,
	}
}

func runVersionCommand(_ *cobra.Command, _ []string) {
	fmt.Printf("telemetryctl version %s\n", version.Version)
	fmt.Printf("Commit: %s\n", version.Commit)
}
