package dashboard

import (
	"strings"
	"testing"

	"signify/internal/intake"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testWizard(t *testing.T) wizardModel {
	t.Helper()
	m, err := newWizardModel(testStyles(), intake.DefaultQuestions())
	if err != nil {
		t.Fatalf("newWizardModel: %v", err)
	}
	return m
}

func TestWizardYesAdvances(t *testing.T) {
	m := testWizard(t)

	m, _ = m.update(keyRune('y'))
	if got := m.flow.State().Index; got != 1 {
		t.Fatalf("index after yes = %d, want 1", got)
	}
	ans, ok := m.flow.Answer(1)
	if !ok || ans.YesNo != "yes" {
		t.Fatalf("answer 1 = %+v (ok=%v), want yes", ans, ok)
	}
}

func TestWizardIgnoresOtherKeysOnYesNo(t *testing.T) {
	m := testWizard(t)

	m, _ = m.update(keyRune('x'))
	if got := m.flow.State().Index; got != 0 {
		t.Fatalf("index after stray key = %d, want 0", got)
	}
}

func TestWizardNumericRejectsNonPositive(t *testing.T) {
	m := testWizard(t)
	m, _ = m.update(keyRune('y'))
	m, _ = m.update(keyRune('n'))

	// Question 3 is numeric.
	m.number.SetValue("0")
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.flow.State().Index; got != 2 {
		t.Fatalf("index after invalid number = %d, want 2", got)
	}
	if _, ok := m.flow.Answer(3); ok {
		t.Fatal("rejected answer was recorded")
	}

	m.number.SetValue("4")
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.flow.State().Index; got != 3 {
		t.Fatalf("index after valid number = %d, want 3", got)
	}
}

func TestWizardBackRestoresNumericInput(t *testing.T) {
	m := testWizard(t)
	m, _ = m.update(keyRune('y'))
	m, _ = m.update(keyRune('n'))
	m.number.SetValue("6")
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.flow.State().Index; got != 2 {
		t.Fatalf("index after back = %d, want 2", got)
	}
	if got := m.number.Value(); got != "6" {
		t.Fatalf("restored input = %q, want \"6\"", got)
	}
}

func TestWizardCompletionScreen(t *testing.T) {
	m := testWizard(t)
	m, _ = m.update(keyRune('y'))
	m, _ = m.update(keyRune('y'))
	m.number.SetValue("3")
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.update(keyRune('n'))

	var cmd tea.Cmd
	m, cmd = m.update(keyRune('n'))
	if !m.finished {
		t.Fatal("flow not finished after final answer")
	}
	if cmd == nil {
		t.Fatal("expected pacing tick command")
	}

	// Keys during the pacing delay are swallowed.
	m, _ = m.update(keyRune('y'))
	if m.showDone {
		t.Fatal("confirmation shown before the delay elapsed")
	}

	m, _ = m.update(wizardCompleteMsg{})
	if !m.showDone {
		t.Fatal("confirmation not shown after delay")
	}
	if !strings.Contains(m.view(), "Thank you") {
		t.Fatalf("confirmation view missing thank-you line:\n%s", m.view())
	}

	m, cmd = m.update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected leave command from confirmation screen")
	}
	msg := cmd()
	done, ok := msg.(intakeDoneMsg)
	if !ok || !done.completed {
		t.Fatalf("leave message = %#v, want completed intakeDoneMsg", msg)
	}
}

func TestWizardEscapeCancels(t *testing.T) {
	m := testWizard(t)
	m, _ = m.update(keyRune('y'))

	_, cmd := m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	done, ok := cmd().(intakeDoneMsg)
	if !ok || done.completed {
		t.Fatalf("cancel message = %#v, want uncompleted intakeDoneMsg", done)
	}
}

func TestWizardViewShowsProgress(t *testing.T) {
	m := testWizard(t)
	view := m.view()
	if !strings.Contains(view, "Question 1 of 5") {
		t.Fatalf("view missing progress line:\n%s", view)
	}
	m, _ = m.update(keyRune('y'))
	if !strings.Contains(m.view(), "Question 2 of 5") {
		t.Fatalf("view did not advance:\n%s", m.view())
	}
}
