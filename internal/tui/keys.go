// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/gtpilot/gtpilot/internal/i18n"
)

// keyMap holds every binding of the dashboard. Help texts are translated,
// so the map is built after i18n.Init.
type keyMap struct {
	// Dashboard
	Next  key.Binding
	Prev  key.Binding
	Open  key.Binding
	Quit  key.Binding
	Force key.Binding

	// Control panel
	Close     key.Binding
	TabNext   key.Binding
	TabPrev   key.Binding
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	RangeNext key.Binding
	RangePrev key.Binding
	Analyze   key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding

	// API key tab
	Reveal     key.Binding
	Copy       key.Binding
	Regenerate key.Binding

	// Confirmation modal
	ChooseNo  key.Binding
	ChooseYes key.Binding
	Confirm   key.Binding

	// Terminal tab
	Submit key.Binding
	HistUp key.Binding
	HistDn key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab", " "),
			key.WithHelp("→/l", i18n.T("keys.rotate")),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", i18n.T("keys.rotate_back")),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("keys.open_panel")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", i18n.T("keys.quit")),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", i18n.T("keys.quit")),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", i18n.T("keys.close")),
		),
		TabNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", i18n.T("keys.next_tab")),
		),
		TabPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1/2/3", i18n.T("keys.switch_tab")),
		),
		Tab2: key.NewBinding(key.WithKeys("2")),
		Tab3: key.NewBinding(key.WithKeys("3")),
		RangeNext: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←/→", i18n.T("keys.time_range")),
		),
		RangePrev: key.NewBinding(
			key.WithKeys("left", "h"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter/a", i18n.T("keys.analyze")),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/↓", i18n.T("keys.scroll")),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", i18n.T("keys.reveal")),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", i18n.T("keys.copy")),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", i18n.T("keys.regenerate")),
		),
		ChooseNo: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/→", i18n.T("keys.choose")),
		),
		ChooseYes: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("keys.confirm")),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("keys.run")),
		),
		HistUp: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("↑/↓", i18n.T("keys.scroll")),
		),
		HistDn: key.NewBinding(
			key.WithKeys("down", "pgdown"),
		),
	}
}

func (k keyMap) dashboardHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Open, k.Quit}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.RangeNext, k.Analyze, k.ScrollUp, k.Tab1, k.TabNext, k.Close}
}

func (k keyMap) apiKeyHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Copy, k.Regenerate, k.ScrollUp, k.Tab1, k.Close}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.ChooseNo, k.Confirm, k.Close}
}

func (k keyMap) terminalHelp() []key.Binding {
	return []key.Binding{k.Submit, k.HistUp, k.TabNext, k.Close}
}
