// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gtpilot/gtpilot/internal/i18n"
	"github.com/gtpilot/gtpilot/internal/metrics"
)

const (
	fps           = 30
	labelWidth    = 20
	minBarWidth   = 10
	maxBarWidth   = 50
	settleEpsilon = 0.01
)

// barState is the animated fill of one gauge, in percent.
type barState struct {
	pos, vel float64
}

func animTick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg { return animTickMsg{} })
}

// stepBars advances every bar one frame toward its metric and reports
// whether any bar is still moving.
func (m *mainModel) stepBars() bool {
	moving := false
	for i := range m.bars {
		target := metrics.Clamp(m.metrics[i].Value)
		b := &m.bars[i]
		b.pos, b.vel = m.spring.Update(b.pos, b.vel, target)
		if math.Abs(target-b.pos) < settleEpsilon && math.Abs(b.vel) < settleEpsilon {
			b.pos, b.vel = target, 0
			continue
		}
		moving = true
	}
	return moving
}

func (m mainModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.metrics)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case key.Matches(msg, m.keys.Prev):
		if n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Open):
		m.logAudit(eventPanelOpened)
		m.panelOpen = true
		if m.tab == terminalTab {
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m mainModel) barWidth() int {
	return min(maxBarWidth, max(minBarWidth, m.innerWidth()-labelWidth-14))
}

func (m mainModel) viewBars() string {
	width := m.barWidth()
	var b strings.Builder
	for i, mt := range m.metrics {
		filled := int(math.Round(m.bars[i].pos / 100 * float64(width)))
		filled = min(width, max(0, filled))

		fill := barFillStyle
		label := itemStyle
		cursor := "  "
		if i == m.selected {
			fill = barSelectedFillStyle
			label = selectedItemStyle
			cursor = "▶ "
		}
		b.WriteString(cursor)
		b.WriteString(label.Render(fmt.Sprintf("%-*s", labelWidth, mt.Label)))
		b.WriteString(" ")
		b.WriteString(fill.Render(strings.Repeat("█", filled)))
		b.WriteString(barTrackStyle.Render(strings.Repeat("░", width-filled)))
		b.WriteString(" ")
		b.WriteString(label.Render(fmt.Sprintf("%6s", metrics.FormatPercent(mt.Value))))
		if i < len(m.metrics)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// viewDial renders the rotary selector: one marker per metric.
func (m mainModel) viewDial() string {
	if len(m.metrics) == 0 {
		return ""
	}
	markers := make([]string, len(m.metrics))
	for i := range m.metrics {
		if i == m.selected {
			markers[i] = selectedItemStyle.Render("●")
		} else {
			markers[i] = helpStyle.Render("○")
		}
	}
	dial := "◀ " + strings.Join(markers, helpStyle.Render(" ─ ")) + " ▶"
	return dial + "   " + i18n.T("app.selected", m.metrics[m.selected].Label)
}
