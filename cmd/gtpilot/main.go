// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Command gtpilot starts the GT Pilot dashboard or runs one of its
// subcommands. See --help for options.
package main

import (
	"os"

	"github.com/gtpilot/gtpilot/internal/logging"
	"github.com/gtpilot/gtpilot/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("gtpilot: %v", err)
		os.Exit(1)
	}
}
