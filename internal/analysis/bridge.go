// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package analysis turns the dashboard metrics into a Gemini prompt and
// returns the model's answer as display text. Failures never propagate:
// every outcome is a string fit for the result pane.
package analysis

import (
	"context"
	"strings"

	"github.com/gtpilot/gtpilot/internal/logging"
	"github.com/gtpilot/gtpilot/internal/model"
	"github.com/gtpilot/gtpilot/internal/state"
)

const (
	MsgMissingCredential = "API key not configured. Please set the API_KEY environment variable."
	MsgUnknownError      = "An unknown error occurred during analysis."
	errorPrefix          = "Error during analysis: "
)

// Generator produces text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// Bridge runs analyses through a Generator.
type Bridge struct {
	Gen   Generator
	Model string
	// Credential reports the Gemini credential; empty means unconfigured.
	Credential func() string
}

// NewBridge returns a Bridge reading its credential from state.Credential.
func NewBridge(gen Generator, model string) *Bridge {
	if model == "" {
		model = DefaultModel
	}
	return &Bridge{Gen: gen, Model: model, Credential: state.Credential.String}
}

// Analyze asks the generator for an analysis of metrics. Without a
// credential the generator is not called.
func (b *Bridge) Analyze(ctx context.Context, metrics []model.Metric) string {
	cred := ""
	if b.Credential != nil {
		cred = strings.TrimSpace(b.Credential())
	}
	if cred == "" {
		return MsgMissingCredential
	}
	if b.Gen == nil {
		return MsgUnknownError
	}

	text, err := b.Gen.GenerateContent(ctx, b.Model, BuildPrompt(metrics))
	if err != nil {
		logging.Errorf("Error analyzing performance with Gemini: %v", err)
		if msg := err.Error(); msg != "" {
			return errorPrefix + msg
		}
		return MsgUnknownError
	}
	return text
}
