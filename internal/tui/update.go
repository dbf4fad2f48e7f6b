package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeclock/internal/clock"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if m.state == StateTimer {
			m.refresh()
		}
		return m, tick()

	case tea.KeyMsg:
		if m.state == StateLeaveForm || m.state == StateSettingsForm {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.refresh()
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.refresh()
		default:
			return m.updateTabKeys(msg)
		}
	}

	return m, nil
}

func (m Model) updateTabKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	today := clock.DateOf(m.clock.Now())

	switch m.state {
	case StateTimer:
		var err error
		switch {
		case key.Matches(msg, m.keys.Start):
			_, err = m.tracker.Start(today, m.clock.Now(), "")
		case key.Matches(msg, m.keys.Pause):
			_, err = m.tracker.Pause(today)
		case key.Matches(msg, m.keys.Resume):
			_, err = m.tracker.Resume(today)
		case key.Matches(msg, m.keys.Stop):
			_, err = m.tracker.Stop(today, m.clock.Now())
		case key.Matches(msg, m.keys.Continue):
			_, err = m.tracker.Continue(today, "")
		default:
			return m, nil
		}
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
		m.refresh()

	case StateLeave:
		if key.Matches(msg, m.keys.Add) {
			m.previousState = m.state
			m.state = StateLeaveForm
			m.newLeaveForm()
			return m, m.form.Init()
		}

	case StateSettings:
		if key.Matches(msg, m.keys.Edit) {
			m.previousState = m.state
			m.state = StateSettingsForm
			m.newSettingsForm()
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateLeaveForm:
			m.commitLeaveForm()
		case StateSettingsForm:
			m.commitSettingsForm()
		}
		m.state = m.previousState
		m.form = nil
		m.refresh()
		return m, nil
	}

	return m, cmd
}
