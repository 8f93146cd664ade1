// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the gtpilot command line using Cobra. It loads
// configuration, opens the local store and hands the services to the TUI
// or to one-shot subcommands.
package cli
