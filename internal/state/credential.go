// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// package state holds transient process-wide secrets shared between the CLI
// and the TUI, such as the Gemini credential.
package state

import "sync"

// Credential is the concurrency-safe mailbox for the Gemini API credential.
// It stores bytes so the value can be zeroed on exit.
var Credential = &secretMailbox{}

type secretMailbox struct {
	value []byte
	mu    sync.RWMutex
}

// Set stores a copy of secret, replacing any previous value.
func (s *secretMailbox) Set(secret []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipe()
	if secret == nil {
		return
	}
	s.value = make([]byte, len(secret))
	copy(s.value, secret)
}

// SetString is Set for string inputs read from config or environment.
func (s *secretMailbox) SetString(secret string) {
	if secret == "" {
		s.Set(nil)
		return
	}
	s.Set([]byte(secret))
}

// Get returns a copy of the secret, or nil when empty. Callers should zero
// the copy when done with it.
func (s *secretMailbox) Get() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.value == nil {
		return nil
	}
	out := make([]byte, len(s.value))
	copy(out, s.value)
	return out
}

// String returns the secret as a string for HTTP query construction.
func (s *secretMailbox) String() string {
	return string(s.Get())
}

// IsSet reports whether a non-empty secret is stored.
func (s *secretMailbox) IsSet() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.value) > 0
}

// Clear zeroes and drops the stored secret.
func (s *secretMailbox) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipe()
}

func (s *secretMailbox) wipe() {
	for i := range s.value {
		s.value[i] = 0
	}
	s.value = nil
}
