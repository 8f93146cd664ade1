// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for GT Pilot.
//
// Usage:
//
//	go run . [flags]
//	./gtpilot [flags]
//
// This launches the GT Pilot CLI. See --help for options.
package main

import (
	"log"
	"os"

	"github.com/gtpilot/gtpilot/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("GT Pilot CLI error: %v", err)
		os.Exit(1)
	}
}
