// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package terminal implements the mock command terminal of the control
// panel. It is a fixed command table over a line history; nothing is
// executed outside the process.
package terminal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	Welcome = "Welcome to the GT Pilot Internal Terminal. Type `help` for commands."

	HelpMessage = `GT Pilot Internal Cognition Terminal v71.0.1
Available commands:
  analyze   - Triggers performance analysis with Gemini.
  import    - Simulates a timestamp-based data import.
  exec      - Simulates executing a named hook.
  echo      - Prints the arguments back to the terminal.
  help      - Displays this help message.
  clear     - Clears the terminal screen.`

	// ImportTimeLayout matches an ISO-8601 UTC timestamp with milliseconds.
	ImportTimeLayout = "2006-01-02T15:04:05.000Z"

	defaultHook = "unnamed_hook"
)

// Hooks connects the terminal to the rest of the application.
type Hooks interface {
	Analyze()
	LogAudit(event string)
}

// nowFunc is overridden in tests.
var nowFunc = time.Now

// Terminal holds the scrollback and dispatches submitted lines.
type Terminal struct {
	hooks Hooks

	mu      sync.Mutex
	history []string
}

// New returns a terminal showing the welcome line.
func New(hooks Hooks) *Terminal {
	return &Terminal{hooks: hooks, history: []string{Welcome}}
}

// Submit runs one input line. Blank lines are ignored.
func (t *Terminal) Submit(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	t.add("> " + line)
	switch cmd {
	case "help":
		t.add(HelpMessage)
	case "analyze":
		t.add("Executing analysis trigger...")
		t.audit("Analysis triggered via terminal")
		if t.hooks != nil {
			t.hooks.Analyze()
		}
	case "import":
		ts := nowFunc().UTC().Format(ImportTimeLayout)
		t.add("Import hook triggered. Timestamp: " + ts)
		t.audit("Data import triggered via terminal at " + ts)
	case "exec":
		name := defaultHook
		if len(args) > 0 {
			name = args[0]
		}
		t.add(fmt.Sprintf("Executing hook: %s...", name))
		t.audit(fmt.Sprintf("Hook '%s' executed via terminal", name))
	case "echo":
		t.add(strings.Join(args, " "))
	case "clear":
		t.mu.Lock()
		t.history = nil
		t.mu.Unlock()
	default:
		t.add("Error: command not found: " + fields[0])
	}
}

// History returns a copy of the scrollback, oldest first.
func (t *Terminal) History() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.history))
	copy(out, t.history)
	return out
}

func (t *Terminal) add(line string) {
	t.mu.Lock()
	t.history = append(t.history, line)
	t.mu.Unlock()
}

func (t *Terminal) audit(event string) {
	if t.hooks != nil {
		t.hooks.LogAudit(event)
	}
}
