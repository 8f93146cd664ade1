// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gtpilot/gtpilot/internal/i18n"
)

func (m mainModel) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		return m.updateConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.panelOpen = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.TabNext):
		return m, m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.TabPrev):
		return m, m.switchTab((m.tab + tabCount - 1) % tabCount)
	}

	// Digits are terminal input while the terminal tab is active.
	if m.tab != terminalTab {
		switch {
		case key.Matches(msg, m.keys.Tab1):
			return m, m.switchTab(settingsTab)
		case key.Matches(msg, m.keys.Tab2):
			return m, m.switchTab(apiKeyTab)
		case key.Matches(msg, m.keys.Tab3):
			return m, m.switchTab(terminalTab)
		}
	}

	switch m.tab {
	case apiKeyTab:
		return m.updateAPIKey(msg)
	case terminalTab:
		return m.updateTerminal(msg)
	default:
		return m.updateSettings(msg)
	}
}

// switchTab activates t and moves input focus to the terminal when needed.
func (m *mainModel) switchTab(t panelTab) tea.Cmd {
	m.tab = t
	if t == terminalTab {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m mainModel) viewPanel() string {
	tabs := []struct {
		tab   panelTab
		label string
	}{
		{settingsTab, i18n.T("panel.tab_settings")},
		{apiKeyTab, i18n.T("panel.tab_apikey")},
		{terminalTab, i18n.T("panel.tab_terminal")},
	}
	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.tab == m.tab {
			rendered = append(rendered, activeTabStyle.Render(t.label))
		} else {
			rendered = append(rendered, tabStyle.Render(t.label))
		}
	}

	var content string
	switch m.tab {
	case apiKeyTab:
		content = m.viewAPIKey()
	case terminalTab:
		content = m.viewTerminal()
	default:
		content = m.viewSettings()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("panel.title")))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n\n")
	b.WriteString(content)
	return panelStyle.Width(m.innerWidth() - 2).Render(b.String())
}
