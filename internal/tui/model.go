package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/leave"
	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/report"
	"github.com/julianstephens/timeclock/internal/storage"
	"github.com/julianstephens/timeclock/internal/tracker"
)

type SessionState int

const (
	StateTimer SessionState = iota
	StateWeek
	StateLeave
	StateSettings
	StateLeaveForm
	StateSettingsForm

	tabCount = 4
)

// tickMsg drives the live timer display.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type LeaveFormModel struct {
	Type        string
	From        string
	To          string
	Description string
}

type SettingsFormModel struct {
	StandardHours string
	WeeklyHours   string
	PauseMinutes  string
	OvertimeMode  string
}

type Model struct {
	store    storage.Provider
	clock    clock.Clock
	tracker  *tracker.Tracker
	reporter *report.Aggregator

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	quitting      bool
	width         int
	height        int

	today    tracker.DayStatus
	week     report.WeeklySummary
	leave    []models.LeaveDay
	settings storage.Settings

	form         *huh.Form
	leaveForm    *LeaveFormModel
	settingsForm *SettingsFormModel

	errMsg string
}

func NewModel(store storage.Provider, clk clock.Clock) Model {
	m := Model{
		store:    store,
		clock:    clk,
		tracker:  tracker.New(store, clk),
		reporter: report.New(store, clk),
		state:    StateTimer,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// refresh reloads everything the visible tabs render.
func (m *Model) refresh() {
	now := m.clock.Now()
	today := clock.DateOf(now)

	settings, err := m.store.GetSettings()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.settings = settings

	status, err := m.tracker.Status(today)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.today = status

	week, err := m.reporter.Weekly(now, settings)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.week = week

	from := fmt.Sprintf("%04d-01-01", now.Year())
	to := fmt.Sprintf("%04d-12-31", now.Year())
	days, err := m.store.LeaveDaysInRange(from, to)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.leave = days
}

func (m *Model) newLeaveForm() {
	today := clock.DateOf(m.clock.Now())
	m.leaveForm = &LeaveFormModel{
		Type: string(models.LeaveVacation),
		From: today,
		To:   today,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Leave type").
				Options(
					huh.NewOption("Vacation", string(models.LeaveVacation)),
					huh.NewOption("Sick", string(models.LeaveSick)),
				).
				Value(&m.leaveForm.Type),
			huh.NewInput().
				Title("From (YYYY-MM-DD)").
				Value(&m.leaveForm.From).
				Validate(validateDate),
			huh.NewInput().
				Title("To (YYYY-MM-DD)").
				Value(&m.leaveForm.To).
				Validate(validateDate),
			huh.NewInput().
				Title("Description").
				Value(&m.leaveForm.Description),
		),
	)
}

func (m *Model) newSettingsForm() {
	m.settingsForm = &SettingsFormModel{
		StandardHours: strconv.FormatFloat(m.settings.StandardHoursPerDay, 'g', -1, 64),
		WeeklyHours:   strconv.FormatFloat(m.settings.WeeklyHours, 'g', -1, 64),
		PauseMinutes:  strconv.Itoa(m.settings.PauseDurationMinutes),
		OvertimeMode:  m.settings.MonthlyOvertimeMode,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Standard hours per day").
				Value(&m.settingsForm.StandardHours).
				Validate(validateFloat),
			huh.NewInput().
				Title("Weekly hours").
				Value(&m.settingsForm.WeeklyHours).
				Validate(validateFloat),
			huh.NewInput().
				Title("Pause duration (minutes)").
				Value(&m.settingsForm.PauseMinutes).
				Validate(validateInt),
			huh.NewSelect[string]().
				Title("Monthly overtime mode").
				Options(
					huh.NewOption("Sum of daily overtime", storage.MonthlyOvertimeDailySum),
					huh.NewOption("Total vs monthly threshold", storage.MonthlyOvertimeThreshold),
				).
				Value(&m.settingsForm.OvertimeMode),
		),
	)
}

// commitLeaveForm expands and commits the staged leave request.
func (m *Model) commitLeaveForm() {
	from, err := clock.ParseDate(m.leaveForm.From)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	to, err := clock.ParseDate(m.leaveForm.To)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	preview, err := leave.Expand(from, to, models.LeaveType(m.leaveForm.Type),
		m.leaveForm.Description, m.settings, m.clock.Now())
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	if err := leave.NewManager(m.store).Commit(preview); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

func (m *Model) commitSettingsForm() {
	settings := m.settings
	if f, err := strconv.ParseFloat(m.settingsForm.StandardHours, 64); err == nil && f > 0 {
		settings.StandardHoursPerDay = f
	}
	if f, err := strconv.ParseFloat(m.settingsForm.WeeklyHours, 64); err == nil && f > 0 {
		settings.WeeklyHours = f
	}
	if n, err := strconv.Atoi(m.settingsForm.PauseMinutes); err == nil && n >= 0 {
		settings.PauseDurationMinutes = n
	}
	settings.MonthlyOvertimeMode = m.settingsForm.OvertimeMode

	if err := m.store.SaveSettings(settings); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

func validateDate(s string) error {
	_, err := clock.ParseDate(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateFloat(s string) error {
	if f, err := strconv.ParseFloat(s, 64); err != nil || f <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateInt(s string) error {
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative whole number")
	}
	return nil
}
