// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal dashboard for GT Pilot.
// This file, tui.go, holds the top-level model that routes input between
// the dashboard and the control panel tabs.
package tui // import "github.com/gtpilot/gtpilot/internal/tui"

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/harmonica"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gtpilot/gtpilot/internal/apikey"
	"github.com/gtpilot/gtpilot/internal/audit"
	"github.com/gtpilot/gtpilot/internal/db"
	"github.com/gtpilot/gtpilot/internal/i18n"
	"github.com/gtpilot/gtpilot/internal/logging"
	"github.com/gtpilot/gtpilot/internal/metrics"
	"github.com/gtpilot/gtpilot/internal/model"
	"github.com/gtpilot/gtpilot/internal/terminal"
)

// Audit events emitted by the dashboard.
const (
	eventPanelOpened      = "Control Panel opened"
	eventAnalysisStarted  = "Analysis started"
	eventAnalysisFinished = "Analysis finished"
)

// panelTab identifies the active control panel tab.
type panelTab int

const (
	settingsTab panelTab = iota
	apiKeyTab
	terminalTab
	tabCount
)

// Analyzer produces the analysis text for a set of metrics.
type Analyzer interface {
	Analyze(ctx context.Context, metrics []model.Metric) string
}

// Deps are the services the dashboard drives. Audit and Keys should be
// loaded before Run.
type Deps struct {
	Store     db.Store
	Audit     *audit.Logger
	Keys      *apikey.Manager
	Analyzer  Analyzer
	Clipboard apikey.Clipboard
	// Metrics are generated when nil.
	Metrics []model.Metric
}

// Messages
type (
	animTickMsg     struct{}
	analysisDoneMsg struct{ text string }
	copyResetMsg    struct{ seq int }
	keyRotatedMsg   struct{ err error }
)

// mainModel is the top-level model. All UI state is ephemeral; only the
// audit log, the API key and the time range live in the store.
type mainModel struct {
	ctx  context.Context
	deps Deps
	keys keyMap
	help help.Model

	metrics  []model.Metric
	bars     []barState
	spring   harmonica.Spring
	selected int

	panelOpen bool
	tab       panelTab

	// Settings tab
	timeRange  model.TimeRange
	loading    bool
	result     string
	spin       spinner.Model
	resultView viewport.Model

	// API key tab
	revealed      bool
	copyStatus    apikey.CopyStatus
	copySeq       int
	confirming    bool
	confirmCursor int // 0 = No, 1 = Yes
	keyErr        error
	auditView     viewport.Model

	// Terminal tab
	term     *terminal.Terminal
	hooks    *terminalHooks
	input    textinput.Model
	termView viewport.Model

	width, height int
}

// terminalHooks connects the mock terminal to the audit log and records
// analysis requests for the model to act on after Submit returns.
type terminalHooks struct {
	ctx      context.Context
	log      *audit.Logger
	analyzes int
}

func (h *terminalHooks) Analyze() { h.analyzes++ }

func (h *terminalHooks) LogAudit(event string) {
	if h.log != nil {
		h.log.Log(h.ctx, event)
	}
}

func newModel(ctx context.Context, deps Deps) mainModel {
	ms := deps.Metrics
	if ms == nil {
		ms = metrics.Generate(nil)
	}

	hooks := &terminalHooks{ctx: ctx, log: deps.Audit}

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = i18n.T("terminal.placeholder")
	in.CharLimit = 256

	m := mainModel{
		ctx:       ctx,
		deps:      deps,
		keys:      newKeyMap(),
		help:      help.New(),
		metrics:   ms,
		bars:      make([]barState, len(ms)),
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		timeRange: loadTimeRange(ctx, deps.Store),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(specialStyle),
		),
		resultView: viewport.New(60, 8),
		auditView:  viewport.New(60, 8),
		term:       terminal.New(hooks),
		hooks:      hooks,
		input:      in,
		termView:   viewport.New(60, 10),
		width:      100,
		height:     32,
	}
	m.resize()
	m.refreshAudit()
	m.refreshTerminal()
	return m
}

func loadTimeRange(ctx context.Context, store db.Store) model.TimeRange {
	if store == nil {
		return model.TimeRangeLast30Days
	}
	v, ok, err := store.GetItem(ctx, db.KeyTimeRange)
	if err != nil {
		logging.Warnf("tui: failed to read time range: %v", err)
	}
	if !ok {
		return model.TimeRangeLast30Days
	}
	return model.ParseTimeRange(v)
}

// Init starts the bar animation.
func (m mainModel) Init() tea.Cmd {
	return animTick()
}

// Update is the main message loop.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshAudit()
		m.refreshTerminal()
		m.refreshResult()
		return m, nil

	case animTickMsg:
		if m.stepBars() {
			return m, animTick()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case analysisDoneMsg:
		m.result = msg.text
		m.loading = false
		m.logAudit(eventAnalysisFinished)
		m.refreshResult()
		return m, nil

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copyStatus = apikey.CopyIdle
		}
		return m, nil

	case keyRotatedMsg:
		m.keyErr = msg.err
		m.refreshAudit()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m, tea.Quit
		}
		if !m.panelOpen {
			return m.updateDashboard(msg)
		}
		return m.updatePanel(msg)
	}

	// Cursor blink and other input-internal messages.
	if m.panelOpen && m.tab == terminalTab {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders either the dashboard or the open control panel.
func (m mainModel) View() string {
	if m.confirming {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.viewConfirm(),
		)
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	if m.panelOpen {
		b.WriteString(m.viewPanel())
	} else {
		b.WriteString(m.viewBars())
		b.WriteString("\n\n")
		b.WriteString(m.viewDial())
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.currentHelp()))
	return docStyle.Render(b.String())
}

func (m mainModel) currentHelp() []key.Binding {
	if !m.panelOpen {
		return m.keys.dashboardHelp()
	}
	switch m.tab {
	case apiKeyTab:
		return m.keys.apiKeyHelp()
	case terminalTab:
		return m.keys.terminalHelp()
	default:
		return m.keys.settingsHelp()
	}
}

func (m mainModel) viewHeader() string {
	title := mainTitleStyle.Render(i18n.T("app.title"))
	badge := statusMessageStyle.Render(string(m.timeRange))
	return AlignFooter(title, badge, m.innerWidth()) + "\n" + helpStyle.Render(i18n.T("app.subtitle"))
}

// logAudit appends event to the audit log and refreshes the list view.
func (m *mainModel) logAudit(event string) {
	if m.deps.Audit != nil {
		m.deps.Audit.Log(m.ctx, event)
	}
	m.refreshAudit()
}

// innerWidth is the usable width inside docStyle's margins.
func (m mainModel) innerWidth() int {
	return max(20, m.width-4)
}

func (m *mainModel) resize() {
	w := max(20, m.innerWidth()-4)
	m.resultView.Width = w
	m.resultView.Height = max(3, m.height-20)
	m.auditView.Width = w
	m.auditView.Height = max(3, m.height-21)
	m.termView.Width = w
	m.termView.Height = max(3, m.height-17)
	m.input.Width = max(10, w-4)
	m.help.Width = m.innerWidth()
}

// Run starts the dashboard and blocks until the user quits. Pending
// analyses are cancelled on return.
func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
