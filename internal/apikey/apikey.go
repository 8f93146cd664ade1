// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package apikey manages the internal GT Pilot API key: a "gtp_" prefixed
// random token persisted in the local store. Nothing consumes the key; it
// exists to be displayed, copied and rotated.
package apikey

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/gtpilot/gtpilot/internal/audit"
	"github.com/gtpilot/gtpilot/internal/db"
	"github.com/gtpilot/gtpilot/internal/logging"
)

const (
	Prefix    = "gtp_"
	RandomLen = 32
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// ConfirmPrompt is shown before a key is replaced.
	ConfirmPrompt = "Are you sure you want to regenerate the API key? The old key will be invalidated."
	// EventGenerated is the audit event recorded for every new key.
	EventGenerated = "API Key Generated"
	// CopyStatusReset is how long a copy result stays visible.
	CopyStatusReset = 2 * time.Second

	maskRune = '•'
)

// Generate returns a new key: Prefix followed by RandomLen characters
// from [A-Za-z0-9], drawn from crypto/rand.
func Generate() (string, error) {
	var b strings.Builder
	b.Grow(len(Prefix) + RandomLen)
	b.WriteString(Prefix)
	limit := big.NewInt(int64(len(alphabet)))
	for i := 0; i < RandomLen; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random data: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// generateFunc allows tests to pin generated keys.
var generateFunc = Generate

// Confirmer decides whether a destructive action may proceed.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard is the OS clipboard.
var SystemClipboard Clipboard = systemClipboard{}

// CopyStatus is the result shown on the copy button.
type CopyStatus int

const (
	CopyIdle CopyStatus = iota
	CopyCopied
	CopyFailed
)

// Label returns the button label for s.
func (s CopyStatus) Label() string {
	switch s {
	case CopyCopied:
		return "Copied!"
	case CopyFailed:
		return "Failed!"
	default:
		return "Copy"
	}
}

// Manager owns the current key.
type Manager struct {
	store db.Store
	log   *audit.Logger

	mu  sync.RWMutex
	key string
}

// NewManager returns a Manager backed by store that records key events in log.
func NewManager(store db.Store, log *audit.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Load reads the stored key, generating and persisting one when absent.
func (m *Manager) Load(ctx context.Context) error {
	stored, ok, err := m.store.GetItem(ctx, db.KeyAPIKey)
	if err != nil {
		return fmt.Errorf("failed to read api key: %w", err)
	}
	if ok && stored != "" {
		m.mu.Lock()
		m.key = stored
		m.mu.Unlock()
		return nil
	}
	return m.replace(ctx, "")
}

// Regenerate asks confirm with ConfirmPrompt. A decline leaves everything
// untouched and reports false. On acceptance a new key, distinct from the
// current one, is stored and audited.
func (m *Manager) Regenerate(ctx context.Context, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(ConfirmPrompt) {
		return false, nil
	}
	if err := m.replace(ctx, m.Key()); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) replace(ctx context.Context, old string) error {
	var key string
	for {
		k, err := generateFunc()
		if err != nil {
			return err
		}
		if k != old {
			key = k
			break
		}
	}
	if err := m.store.SetItem(ctx, db.KeyAPIKey, key); err != nil {
		return fmt.Errorf("failed to store api key: %w", err)
	}
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	if m.log != nil {
		m.log.Log(ctx, EventGenerated)
	}
	logging.Debugf("apikey: new key stored")
	return nil
}

// Key returns the current key, empty before Load.
func (m *Manager) Key() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key
}

// Masked returns one bullet per key character.
func (m *Manager) Masked() string {
	return Mask(m.Key())
}

// Display returns the key when visible, otherwise its mask.
func (m *Manager) Display(visible bool) string {
	if visible {
		return m.Key()
	}
	return m.Masked()
}

// Mask replaces every character of key with a bullet.
func Mask(key string) string {
	return strings.Repeat(string(maskRune), len([]rune(key)))
}

// Copy writes the key to clip (SystemClipboard when nil).
func (m *Manager) Copy(clip Clipboard) CopyStatus {
	if clip == nil {
		clip = SystemClipboard
	}
	if err := clip.WriteAll(m.Key()); err != nil {
		logging.Warnf("apikey: copy failed: %v", err)
		return CopyFailed
	}
	return CopyCopied
}
