// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gtpilot/gtpilot/internal/analysis"
	"github.com/gtpilot/gtpilot/internal/db"
	"github.com/gtpilot/gtpilot/internal/i18n"
	"github.com/gtpilot/gtpilot/internal/logging"
	"github.com/gtpilot/gtpilot/internal/model"
)

func (m mainModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.RangeNext):
		m.setTimeRange(m.timeRange.Next())
	case key.Matches(msg, m.keys.RangePrev):
		m.setTimeRange(m.timeRange.Prev())
	case key.Matches(msg, m.keys.Analyze):
		// The button is disabled while an analysis runs.
		if m.loading {
			return m, nil
		}
		return m, m.startAnalysis()
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.resultView, cmd = m.resultView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *mainModel) setTimeRange(r model.TimeRange) {
	m.timeRange = r
	if m.deps.Store == nil {
		return
	}
	if err := m.deps.Store.SetItem(m.ctx, db.KeyTimeRange, string(r)); err != nil {
		logging.Warnf("tui: failed to store time range: %v", err)
	}
}

// startAnalysis clears the previous result and runs the analyzer in a
// command. It does not check loading; the terminal path may overlap runs.
func (m *mainModel) startAnalysis() tea.Cmd {
	wasLoading := m.loading
	m.loading = true
	m.result = ""
	m.refreshResult()
	m.logAudit(eventAnalysisStarted)

	ctx, an := m.ctx, m.deps.Analyzer
	snapshot := make([]model.Metric, len(m.metrics))
	copy(snapshot, m.metrics)
	run := func() tea.Msg {
		if an == nil {
			return analysisDoneMsg{text: analysis.MsgMissingCredential}
		}
		return analysisDoneMsg{text: an.Analyze(ctx, snapshot)}
	}
	if wasLoading {
		return run
	}
	return tea.Batch(m.spin.Tick, run)
}

func (m *mainModel) refreshResult() {
	if m.result == "" {
		m.resultView.SetContent("")
		return
	}
	style := lipgloss.NewStyle()
	if isFailure(m.result) {
		style = errorStyle
	}
	wrapped := style.Width(m.resultView.Width).Render(m.result)
	m.resultView.SetContent(wrapped)
	m.resultView.GotoTop()
}

// isFailure reports whether text is one of the analyzer's failure strings.
func isFailure(text string) bool {
	return text == analysis.MsgMissingCredential ||
		text == analysis.MsgUnknownError ||
		strings.HasPrefix(text, "Error during analysis: ")
}

func (m mainModel) viewSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("settings.time_range")))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("◀ "))
	b.WriteString(selectedItemStyle.Render(string(m.timeRange)))
	b.WriteString(helpStyle.Render(" ▶"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(buttonStyle.Render(m.spin.View() + " " + i18n.T("settings.analyzing")))
	} else {
		b.WriteString(activeButtonStyle.Render(i18n.T("settings.analyze")))
	}

	if m.result != "" {
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render(i18n.T("settings.result_heading")))
		b.WriteString("\n")
		b.WriteString(m.resultView.View())
	}
	return b.String()
}
