// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHooks struct {
	analyzed int
	events   []string
}

func (r *recordingHooks) Analyze()              { r.analyzed++ }
func (r *recordingHooks) LogAudit(event string) { r.events = append(r.events, event) }

func newTerm() (*Terminal, *recordingHooks) {
	h := &recordingHooks{}
	return New(h), h
}

func TestNew_StartsWithWelcome(t *testing.T) {
	term, _ := newTerm()
	assert.Equal(t, []string{Welcome}, term.History())
}

func TestSubmit_BlankIgnored(t *testing.T) {
	term, h := newTerm()
	term.Submit("")
	term.Submit("   \t")
	assert.Len(t, term.History(), 1)
	assert.Empty(t, h.events)
}

func TestSubmit_Help(t *testing.T) {
	term, _ := newTerm()
	term.Submit("help")
	hist := term.History()
	require.Len(t, hist, 3)
	assert.Equal(t, "> help", hist[1])
	assert.Equal(t, HelpMessage, hist[2])
	assert.Contains(t, hist[2], "v71.0.1")
}

func TestSubmit_Analyze(t *testing.T) {
	term, h := newTerm()
	term.Submit("ANALYZE")
	hist := term.History()
	assert.Equal(t, []string{Welcome, "> ANALYZE", "Executing analysis trigger..."}, hist)
	assert.Equal(t, []string{"Analysis triggered via terminal"}, h.events)
	assert.Equal(t, 1, h.analyzed)

	term.Submit("analyze")
	assert.Equal(t, 2, h.analyzed, "the terminal path does not de-duplicate")
}

func TestSubmit_Import(t *testing.T) {
	nowFunc = func() time.Time {
		return time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.FixedZone("X", 3600))
	}
	defer func() { nowFunc = time.Now }()

	term, h := newTerm()
	term.Submit("import")
	hist := term.History()
	require.Len(t, hist, 3)
	assert.Equal(t, "Import hook triggered. Timestamp: 2025-01-02T02:04:05.678Z", hist[2])
	assert.Equal(t, []string{"Data import triggered via terminal at 2025-01-02T02:04:05.678Z"}, h.events)
}

func TestSubmit_Exec(t *testing.T) {
	term, h := newTerm()
	term.Submit("exec")
	term.Submit("exec sync_crm extra")
	hist := term.History()
	assert.Equal(t, "Executing hook: unnamed_hook...", hist[2])
	assert.Equal(t, "Executing hook: sync_crm...", hist[4])
	assert.Equal(t, []string{
		"Hook 'unnamed_hook' executed via terminal",
		"Hook 'sync_crm' executed via terminal",
	}, h.events)
}

func TestSubmit_Echo(t *testing.T) {
	term, h := newTerm()
	term.Submit("echo  hello   world")
	hist := term.History()
	assert.Equal(t, "> echo  hello   world", hist[1])
	assert.Equal(t, "hello world", hist[2])
	assert.Empty(t, h.events)

	term.Submit("echo")
	assert.Equal(t, "", term.History()[4])
}

func TestSubmit_Clear(t *testing.T) {
	term, _ := newTerm()
	term.Submit("echo a")
	term.Submit("clear")
	assert.Empty(t, term.History())

	term.Submit("echo b")
	assert.Equal(t, []string{"> echo b", "b"}, term.History())
}

func TestSubmit_Unknown(t *testing.T) {
	term, h := newTerm()
	term.Submit("Foo bar")
	assert.Equal(t, "Error: command not found: Foo", term.History()[2])
	assert.Empty(t, h.events)
}

func TestSubmit_NilHooks(t *testing.T) {
	term := New(nil)
	assert.NotPanics(t, func() {
		term.Submit("analyze")
		term.Submit("exec x")
	})
}

func TestHistory_ReturnsCopy(t *testing.T) {
	term, _ := newTerm()
	h := term.History()
	h[0] = "mutated"
	assert.Equal(t, Welcome, term.History()[0])
}
