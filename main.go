package main

import (
	"os"

	"github.com/pwshgo/telemetry/cmd/root"
)

func main() {
	if err := root.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
