// Package tui is the terminal front end: a task list beside a single focus
// timer.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iammorganparry/focus/internal/app"
	"github.com/iammorganparry/focus/internal/model"
	"github.com/iammorganparry/focus/internal/session"
	"github.com/iammorganparry/focus/internal/tasks"
)

const progressWidth = 30

// Model is the root bubbletea model.
type Model struct {
	app   *app.App
	clock *Clock

	// Terminal dimensions
	width  int
	height int

	// Task list
	cursor int

	// New task input
	input  textinput.Model
	adding bool

	// Status line
	notice string
	err    string

	keys     KeyMap
	help     help.Model
	showHelp bool
}

// NewRootModel creates the root model. clock must be the session.Clock the
// app's engine was built with.
func NewRootModel(a *app.App, clock *Clock) Model {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.Prompt = "❯ "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 200
	ti.Width = 50

	return Model{
		app:   a,
		clock: clock,
		input: ti,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		inputWidth := m.width - 8
		if inputWidth < 10 {
			inputWidth = 10
		}
		m.input.Width = inputWidth
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			return m, tea.Quit
		}
		if m.adding {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	before := m.app.Session()
	bound, _ := m.app.BoundTask()

	if !m.clock.fire(msg.handle) {
		return m, nil
	}

	after := m.app.Session()
	if before.Active() && after.Status == model.StatusIdle {
		m.err = ""
		if bound.Text != "" {
			m.notice = "✓ Session complete: " + bound.Text
		} else {
			m.notice = "✓ Session complete"
		}
	}
	return m, m.clock.drain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
			m.showHelp = false
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	list := m.app.Tasks()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(list)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Start):
		if task, ok := selected(list, m.cursor); ok {
			m.report(m.app.StartSession(task.ID), "")
		}

	case key.Matches(msg, m.keys.Pause):
		m.app.TogglePause()

	case key.Matches(msg, m.keys.Stop):
		if m.app.Session().Active() {
			m.app.StopSession()
			m.report(nil, "Session stopped")
		}

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := selected(list, m.cursor); ok {
			m.report(m.app.ToggleTask(task.ID), "")
		}

	case key.Matches(msg, m.keys.Delete):
		if task, ok := selected(list, m.cursor); ok {
			m.report(m.app.DeleteTask(task.ID), "Deleted "+task.Text)
			if m.cursor >= len(list)-1 && m.cursor > 0 {
				m.cursor--
			}
		}
	}

	return m, m.clock.drain()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		text := m.input.Value()
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		_, err := m.app.AddTask(text)
		if errors.Is(err, tasks.ErrValidation) {
			// Blank entries are dropped quietly.
			return m, nil
		}
		m.report(err, "")
		if err == nil {
			m.cursor = len(m.app.Tasks()) - 1
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// report sets the status line from the outcome of an action.
func (m *Model) report(err error, ok string) {
	if err != nil {
		m.err = userMessage(err)
		m.notice = ""
		return
	}
	m.err = ""
	if ok != "" {
		m.notice = ok
	}
}

func userMessage(err error) string {
	var target *session.InvalidTargetError
	switch {
	case errors.As(err, &target) && target.Reason == "completed":
		return "That task is already done"
	case errors.As(err, &target):
		return "That task no longer exists"
	case errors.Is(err, tasks.ErrPersist):
		return "Could not save tasks: " + err.Error()
	default:
		return err.Error()
	}
}

func selected(list []model.Task, cursor int) (model.Task, bool) {
	if cursor < 0 || cursor >= len(list) {
		return model.Task{}, false
	}
	return list[cursor], true
}

// View renders the UI
func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	sections := []string{
		m.renderHeader(),
		m.renderTimer(),
		m.renderTasks(),
		m.renderStats(),
	}
	if m.adding {
		sections = append(sections, m.input.View())
	}
	if line := m.renderStatusLine(); line != "" {
		sections = append(sections, line)
	}
	if m.adding {
		sections = append(sections, m.help.View(inputKeys{m.keys}))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return HeaderStyle.Render("FOCUS") + "  " + SubtitleStyle.Render("one task at a time") + "\n"
}

func (m Model) renderTimer() string {
	snap := m.app.Session()

	var status string
	switch snap.Status {
	case model.StatusRunning:
		status = StatusRunningStyle.Render("● Focusing")
	case model.StatusPaused:
		status = StatusPausedStyle.Render("❚❚ Paused")
	default:
		status = StatusIdleStyle.Render("○ Ready")
	}

	label := DimStyle.Render("Pick a task and press enter")
	if task, ok := m.app.BoundTask(); ok {
		label = TaskActiveStyle.Render(task.Text)
	}

	pct := session.Progress(snap.Remaining, snap.Duration)
	body := lipgloss.JoinVertical(lipgloss.Left,
		PanelTitleStyle.Render("Timer"),
		ClockStyle.Render(session.FormatClock(snap.Remaining))+"  "+status,
		progressBar(pct, progressWidth)+" "+DimStyle.Render(fmt.Sprintf("%3.0f%%", pct)),
		label,
	)
	return PanelStyle.Render(body)
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return ProgressFilledStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) renderTasks() string {
	list := m.app.Tasks()
	boundID := m.app.Session().BoundTaskID

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Tasks"))
	b.WriteString("\n")

	if len(list) == 0 {
		b.WriteString(DimStyle.Render("No tasks yet. Press a to add one."))
		return PanelStyle.Render(b.String())
	}

	for i, task := range list {
		style := TaskPendingStyle
		switch {
		case task.Completed:
			style = TaskCompleteStyle
		case task.ID == boundID:
			style = TaskActiveStyle
		}
		pointer := "  "
		if i == m.cursor {
			pointer = "❯ "
		}
		counter := renderCounter(task)
		row := pointer + task.StatusIcon() + " " + style.Render(task.Text) + "  " + counter
		if i == m.cursor {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(row)
		if i < len(list)-1 {
			b.WriteString("\n")
		}
	}
	return PanelStyle.Render(b.String())
}

// renderCounter shows completed/target sessions, starred once the target is met.
func renderCounter(task model.Task) string {
	text := fmt.Sprintf("%d/%d", task.CompletedSessions, task.TargetSessions)
	if task.TargetReached() {
		return CounterReachedStyle.Render(text + " ★")
	}
	return CounterStyle.Render(text)
}

func (m Model) renderStats() string {
	s := m.app.Stats()
	stat := func(label string, value int) string {
		return StatLabelStyle.Render(label+" ") + StatValueStyle.Render(fmt.Sprint(value))
	}
	return " " + strings.Join([]string{
		stat("Sessions", s.CompletedSessions),
		stat("Minutes", s.FocusMinutes),
		stat("Done", s.CompletedTasks) + StatLabelStyle.Render(fmt.Sprintf("/%d", s.TotalTasks)),
	}, DimStyle.Render(" │ "))
}

func (m Model) renderStatusLine() string {
	switch {
	case m.err != "":
		return " " + ErrorStyle.Render(m.err)
	case m.notice != "":
		return " " + SuccessStyle.Render(m.notice)
	}
	return ""
}

// helpView renders the help overlay
func (m Model) helpView() string {
	full := m.help
	full.ShowAll = true
	content := PanelTitleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		full.View(m.keys) + "\n\n" +
		DimStyle.Render("Press ? or esc to close")

	box := PanelStyle.Padding(1, 2).Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
