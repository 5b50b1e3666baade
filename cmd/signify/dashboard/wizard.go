package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"signify/cmd/signify/ui"
	"signify/internal/intake"
	"signify/internal/logging"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// completionDelay is the pause between accepting the final answer and
// showing the confirmation screen. UX pacing only.
const completionDelay = 300 * time.Millisecond

// wizardCompleteMsg fires after the completion delay.
type wizardCompleteMsg struct{}

// wizardModel drives an intake.Flow from the keyboard: yes/no keys for
// binary questions, a text input for numeric ones, with back navigation.
type wizardModel struct {
	styles ui.Styles
	flow   *intake.Flow

	number   textinput.Model
	finished bool // flow completed, waiting on or past the pacing delay
	showDone bool // confirmation screen visible
}

func newWizardModel(styles ui.Styles, questions []intake.Question) (wizardModel, error) {
	flow, err := intake.New(questions, func() {
		logging.L(logging.CategoryIntake).Info("intake flow completed",
			zap.Int("questions", len(questions)))
	})
	if err != nil {
		return wizardModel{}, err
	}

	number := textinput.New()
	number.Placeholder = "Enter number"
	number.CharLimit = 6
	number.Width = 12

	m := wizardModel{styles: styles, flow: flow, number: number}
	m.syncInput()
	return m, nil
}

// syncInput prepares the numeric input for the current question,
// restoring a previously entered value when the respondent navigated
// back.
func (m *wizardModel) syncInput() {
	if m.flow.State().Completed {
		return
	}
	q := m.flow.Current()
	if q.Type != intake.TypeNumeric {
		m.number.Blur()
		return
	}
	m.number.SetValue("")
	if prev, ok := m.flow.Answer(q.ID); ok && prev.Number > 0 {
		m.number.SetValue(strconv.Itoa(prev.Number))
	}
	m.number.CursorEnd()
	m.number.Focus()
}

// submit pushes a raw value into the flow and handles completion pacing.
func (m wizardModel) submit(raw string) (wizardModel, tea.Cmd) {
	if err := m.flow.Submit(raw); err != nil {
		// Numeric validation failure: input stays, nothing advances.
		return m, nil
	}
	if m.flow.State().Completed {
		m.finished = true
		return m, tea.Tick(completionDelay, func(time.Time) tea.Msg { return wizardCompleteMsg{} })
	}
	m.syncInput()
	return m, nil
}

func (m wizardModel) update(msg tea.Msg) (wizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case wizardCompleteMsg:
		m.showDone = true
		return m, nil

	case tea.KeyMsg:
		if m.showDone {
			// Any key leaves the confirmation screen.
			return m, func() tea.Msg { return intakeDoneMsg{completed: true} }
		}
		if m.finished {
			return m, nil
		}

		q := m.flow.Current()
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return intakeDoneMsg{} }
		case tea.KeyLeft:
			_ = m.flow.Back()
			m.syncInput()
			return m, nil
		case tea.KeyEnter:
			if q.Type == intake.TypeNumeric {
				return m.submit(m.number.Value())
			}
			return m, nil
		}

		if q.Type == intake.TypeYesNo {
			switch strings.ToLower(msg.String()) {
			case "y":
				return m.submit("yes")
			case "n":
				return m.submit("no")
			case "b":
				_ = m.flow.Back()
				m.syncInput()
				return m, nil
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.number, cmd = m.number.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.number, cmd = m.number.Update(msg)
	return m, cmd
}

func (m wizardModel) view() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Community Health Check"))
	sb.WriteString("\n")

	if m.showDone || m.finished {
		if m.showDone {
			sb.WriteString(m.styles.Success.Render("✓ Thank you for reporting."))
			sb.WriteString("\n")
			sb.WriteString(m.styles.Body.Render("Your responses help protect your community."))
			sb.WriteString("\n\n")
			sb.WriteString(m.styles.Help.Render("press any key to continue"))
		}
		return sb.String()
	}

	state := m.flow.State()
	q := m.flow.Current()

	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Question %d of %d", state.Index+1, m.flow.Len())))
	sb.WriteString("\n")
	sb.WriteString(ui.ProgressBar(m.styles, state.Index+1, m.flow.Len(), 40))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Bold.Render(q.Text))
	sb.WriteString("\n\n")

	if q.Type == intake.TypeYesNo {
		yes, no := "  Yes (y)  ", "  No (n)  "
		if prev, ok := m.flow.Answer(q.ID); ok {
			if prev.YesNo == "yes" {
				yes = m.styles.BadgeActive.Render(yes)
			} else {
				no = m.styles.BadgeActive.Render(no)
			}
		}
		sb.WriteString("  " + yes + "   " + no + "\n")
	} else {
		sb.WriteString("  " + m.number.View() + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("← back • esc cancel • your responses are private"))
	return sb.String()
}
