// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gtpilot/gtpilot/internal/db"
)

// ErrInjected is returned by fakes configured to fail.
var ErrInjected = errors.New("injected failure")

// FixedClock always reports T.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// FakeClipboard records written text; Err makes WriteAll fail.
type FakeClipboard struct {
	mu   sync.Mutex
	Text string
	Err  error
}

func (f *FakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Text = text
	return nil
}

// FakeGenerator is an analysis generator that returns canned results and
// records the prompts it received.
type FakeGenerator struct {
	mu      sync.Mutex
	Text    string
	Err     error
	Calls   int
	Model   string
	Prompts []string
	// Block, when non-nil, is received from before returning.
	Block chan struct{}
}

func (f *FakeGenerator) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	f.Calls++
	f.Model = model
	f.Prompts = append(f.Prompts, prompt)
	block := f.Block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.Text, f.Err
}

// CallCount returns the number of GenerateContent calls.
func (f *FakeGenerator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// FlakyStore wraps a db.Store and fails the selected operations.
type FlakyStore struct {
	db.Store
	FailGet, FailSet, FailRemove bool
}

func (s *FlakyStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if s.FailGet {
		return "", false, ErrInjected
	}
	return s.Store.GetItem(ctx, key)
}

func (s *FlakyStore) SetItem(ctx context.Context, key, value string) error {
	if s.FailSet {
		return ErrInjected
	}
	return s.Store.SetItem(ctx, key, value)
}

func (s *FlakyStore) RemoveItem(ctx context.Context, key string) error {
	if s.FailRemove {
		return ErrInjected
	}
	return s.Store.RemoveItem(ctx, key)
}
