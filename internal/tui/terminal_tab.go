// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func (m mainModel) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.input.SetValue("")
		m.term.Submit(line)
		m.refreshTerminal()
		m.refreshAudit()

		var cmds []tea.Cmd
		for ; m.hooks.analyzes > 0; m.hooks.analyzes-- {
			cmds = append(cmds, m.startAnalysis())
		}
		return m, tea.Batch(cmds...)
	case key.Matches(msg, m.keys.HistUp), key.Matches(msg, m.keys.HistDn):
		var cmd tea.Cmd
		m.termView, cmd = m.termView.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refreshTerminal renders the history into the viewport and scrolls to
// the newest line.
func (m *mainModel) refreshTerminal() {
	var lines []string
	for _, entry := range m.term.History() {
		for _, l := range strings.Split(entry, "\n") {
			lines = append(lines, ansi.Truncate(l, m.termView.Width, "…"))
		}
	}
	m.termView.SetContent(strings.Join(lines, "\n"))
	m.termView.GotoBottom()
}

func (m mainModel) viewTerminal() string {
	return m.termView.View() + "\n" + m.input.View()
}
