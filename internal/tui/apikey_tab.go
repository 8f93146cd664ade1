// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/gtpilot/gtpilot/internal/apikey"
	"github.com/gtpilot/gtpilot/internal/i18n"
)

func (m mainModel) updateAPIKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reveal):
		m.revealed = !m.revealed
	case key.Matches(msg, m.keys.Copy):
		if m.deps.Keys == nil {
			return m, nil
		}
		m.copyStatus = m.deps.Keys.Copy(m.deps.Clipboard)
		m.copySeq++
		seq := m.copySeq
		return m, tea.Tick(apikey.CopyStatusReset, func(time.Time) tea.Msg { return copyResetMsg{seq: seq} })
	case key.Matches(msg, m.keys.Regenerate):
		m.confirming = true
		m.confirmCursor = 0 // Default to No
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.auditView, cmd = m.auditView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m mainModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.confirming = false
	case key.Matches(msg, m.keys.ChooseYes):
		m.confirmCursor = 1
	case key.Matches(msg, m.keys.ChooseNo):
		m.confirmCursor = 0
	case key.Matches(msg, m.keys.Confirm):
		m.confirming = false
		if m.confirmCursor == 1 {
			return m, m.rotateKey()
		}
	}
	return m, nil
}

// rotateKey replaces the key; the modal has already collected consent.
func (m mainModel) rotateKey() tea.Cmd {
	ctx, keys := m.ctx, m.deps.Keys
	return func() tea.Msg {
		if keys == nil {
			return keyRotatedMsg{}
		}
		_, err := keys.Regenerate(ctx, apikey.ConfirmFunc(func(string) bool { return true }))
		return keyRotatedMsg{err: err}
	}
}

// refreshAudit rebuilds the audit list, one truncated line per entry.
func (m *mainModel) refreshAudit() {
	if m.deps.Audit == nil || m.deps.Audit.Len() == 0 {
		m.auditView.SetContent(helpStyle.Render(i18n.T("apikey.audit_empty")))
		return
	}
	entries := m.deps.Audit.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = ansi.Truncate(e, m.auditView.Width, "…")
	}
	m.auditView.SetContent(strings.Join(lines, "\n"))
}

func (m mainModel) copyLabel() string {
	switch m.copyStatus {
	case apikey.CopyCopied:
		return successStyle.Render(i18n.T("apikey.copied"))
	case apikey.CopyFailed:
		return errorStyle.Render(i18n.T("apikey.failed"))
	default:
		return buttonStyle.Render(i18n.T("apikey.copy"))
	}
}

func (m mainModel) viewAPIKey() string {
	display := ""
	if m.deps.Keys != nil {
		display = m.deps.Keys.Display(m.revealed)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("apikey.label")))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, keyStyle.Render(display), "  ", m.copyLabel()))
	if m.keyErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.keyErr.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(i18n.T("apikey.audit_heading")))
	b.WriteString("\n")
	b.WriteString(m.auditView.View())
	return b.String()
}

func (m mainModel) viewConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("apikey.confirm_title")))
	b.WriteString("\n\n")
	b.WriteString(specialStyle.Render(apikey.ConfirmPrompt))
	b.WriteString("\n\n")

	noButton := buttonStyle.Render(i18n.T("apikey.confirm_no"))
	yesButton := buttonStyle.Render(i18n.T("apikey.confirm_yes"))
	if m.confirmCursor == 1 {
		yesButton = activeButtonStyle.Render(i18n.T("apikey.confirm_yes"))
	} else {
		noButton = activeButtonStyle.Render(i18n.T("apikey.confirm_no"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.confirmHelp()))

	return dialogBoxStyle.Render(b.String())
}
