package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timeclock/internal/leave"
	"github.com/julianstephens/timeclock/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateLeaveForm || m.state == StateSettingsForm {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateTimer:
		content = m.viewTimer()
	case StateWeek:
		content = m.viewWeek()
	case StateLeave:
		content = m.viewLeave()
	case StateSettings:
		content = m.viewSettings()
	}

	sections := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render("  "+m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Timer", "Week", "Leave", "Settings"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTimer() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.today.Date))
	b.WriteString("  ")
	switch m.today.State {
	case models.StateRunning:
		b.WriteString(runningStyle.Render("● running"))
	case models.StatePaused:
		b.WriteString(pausedStyle.Render("❚❚ paused"))
	case models.StateEnded:
		b.WriteString(labelStyle.Render("■ ended"))
	default:
		b.WriteString(labelStyle.Render("○ idle"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %.2fh\n", labelStyle.Render("Worked:"), m.today.WorkedHours))

	overtime := m.today.WorkedHours - m.settings.StandardHoursPerDay
	if overtime > 0 {
		b.WriteString(fmt.Sprintf("  %s %.2fh\n", labelStyle.Render("Overtime:"), overtime))
	}

	if m.today.Open != nil {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Since:"),
			m.today.Open.StartTime.Local().Format("15:04")))
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Elapsed:"),
			m.today.Elapsed.Truncate(time.Second)))
	}

	if len(m.today.Entries) > 0 {
		b.WriteString("\n")
		for _, e := range m.today.Entries {
			end := "  ..."
			if e.EndTime != nil {
				end = e.EndTime.Local().Format("15:04")
			}
			line := fmt.Sprintf("  %s-%s", e.StartTime.Local().Format("15:04"), end)
			if e.Description != "" {
				line += "  " + e.Description
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  [s]tart  [p]ause  [r]esume  [x] stop  [c]ontinue"))

	return docStyle.Render(b.String())
}

func (m Model) viewWeek() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Week %s to %s", m.week.StartDate, m.week.EndDate)))
	b.WriteString("\n\n")

	totals := make(map[string]float64)
	now := m.clock.Now()
	for _, e := range m.week.Entries {
		totals[e.Date] += e.LiveDurationHours(now)
	}
	dates := make([]string, 0, len(totals))
	for d := range totals {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	if len(dates) == 0 {
		b.WriteString(labelStyle.Render("  No entries this week"))
		b.WriteString("\n")
	}
	for _, d := range dates {
		b.WriteString(fmt.Sprintf("  %s  %6.2fh\n", d, totals[d]))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %.2fh (%d working days)\n",
		labelStyle.Render("Total:"), m.week.TotalHours, m.week.WorkingDays))
	b.WriteString(fmt.Sprintf("  %s %.2fh\n", labelStyle.Render("Overtime:"), m.week.Overtime))

	return docStyle.Render(b.String())
}

func (m Model) viewLeave() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Leave %d", m.clock.Now().Year())))
	b.WriteString("\n\n")

	if len(m.leave) == 0 {
		b.WriteString(labelStyle.Render("  No leave recorded"))
		b.WriteString("\n")
	}
	for _, d := range m.leave {
		line := fmt.Sprintf("  %s  %-8s", d.Date, d.Type)
		if d.Description != "" {
			line += "  " + d.Description
		}
		b.WriteString(line + "\n")
	}

	counts := leave.CountByType(m.leave)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %d days (%d vacation, %d sick)\n",
		labelStyle.Render("Total:"), counts.Total, counts.Vacation, counts.Sick))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  [a]dd leave"))

	return docStyle.Render(b.String())
}

func (m Model) viewSettings() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %.2fh\n", labelStyle.Render("Standard hours/day:   "), m.settings.StandardHoursPerDay))
	b.WriteString(fmt.Sprintf("  %s %.2fh\n", labelStyle.Render("Weekly hours:         "), m.settings.WeeklyHours))
	b.WriteString(fmt.Sprintf("  %s %dm\n", labelStyle.Render("Pause duration:       "), m.settings.PauseDurationMinutes))
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Monthly overtime mode:"), m.settings.MonthlyOvertimeMode))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  [e]dit settings"))

	return docStyle.Render(b.String())
}
