// Package inbox is the interactive notification sink: a small Bubble Tea
// view listing fired reminders, where a keypress resolves each one as
// acknowledged, snoozed, or dismissed.
package inbox

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/myslennya/taskpanel/internal/keys"
	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/notify"
	"github.com/myslennya/taskpanel/internal/reminder"
	"github.com/myslennya/taskpanel/internal/theme"
)

// FiredMsg carries a fired (task, mode) pair into the Bubble Tea runtime.
type FiredMsg struct {
	Fired notify.Fired
}

// Model is the Bubble Tea model for the notification inbox.
type Model struct {
	dispatcher    *notify.InboxDispatcher
	evaluator     reminder.Evaluator
	keys          *keys.KeyMap
	snoozeMinutes int

	pending []notify.Fired
	cursor  int
	width   int
}

// New creates an inbox bound to the given dispatcher. snoozeMinutes is the
// duration applied by the quick-snooze key.
func New(d *notify.InboxDispatcher, evaluator reminder.Evaluator, snoozeMinutes int) Model {
	if snoozeMinutes <= 0 {
		snoozeMinutes = reminder.DefaultSnoozeMinutes
	}
	return Model{
		dispatcher:    d,
		evaluator:     evaluator,
		keys:          keys.DefaultKeyMap(),
		snoozeMinutes: snoozeMinutes,
		width:         80,
	}
}

// Init starts listening for fired reminders.
func (m Model) Init() tea.Cmd {
	return m.waitForFire()
}

// waitForFire returns a command that blocks until the next fired pair.
func (m Model) waitForFire() tea.Cmd {
	return func() tea.Msg {
		fired, ok := <-m.dispatcher.Fires()
		if !ok {
			return nil
		}
		return FiredMsg{Fired: fired}
	}
}

// Update handles incoming fires and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case FiredMsg:
		m.pending = append(m.pending, msg.Fired)
		return m, m.waitForFire()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.pending)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Acknowledge):
			return m.resolve(reminder.ActionAcknowledge), nil

		case key.Matches(msg, m.keys.Snooze):
			return m.resolve(reminder.ActionSnooze), nil

		case key.Matches(msg, m.keys.Dismiss):
			return m.resolve(reminder.ActionDismiss), nil
		}
	}

	return m, nil
}

// resolve sends the response for the selected notification and removes it
// from the pending list.
func (m Model) resolve(action reminder.Action) Model {
	if len(m.pending) == 0 || m.cursor >= len(m.pending) {
		return m
	}

	fired := m.pending[m.cursor]
	m.dispatcher.Respond(reminder.Response{
		TaskID:        fired.Task.ID,
		Mode:          fired.Mode,
		Action:        action,
		SnoozeMinutes: m.snoozeMinutes,
	})

	m.pending = append(m.pending[:m.cursor], m.pending[m.cursor+1:]...)
	if m.cursor >= len(m.pending) && m.cursor > 0 {
		m.cursor--
	}
	return m
}

// View renders the pending notifications with the selected one highlighted.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Reminders"))
	b.WriteString("\n\n")

	if len(m.pending) == 0 {
		b.WriteString(theme.HelpStyle.Render("No pending reminders."))
		b.WriteString("\n")
	}

	for i, fired := range m.pending {
		line := fmt.Sprintf("%s  %s",
			theme.ModeStyle(fired.Mode).Render(notify.Title(fired.Mode)),
			m.renderBody(fired.Task),
		)
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(
		"a mark done · s snooze · d dismiss · j/k move · q quit",
	))
	b.WriteString("\n")

	return b.String()
}

// renderBody flattens the notification body onto one line.
func (m Model) renderBody(task model.Task) string {
	due, hasDue := m.evaluator.ParseDue(task.Due)
	return strings.ReplaceAll(notify.Body(task, due, hasDue), "\n", "  ")
}
