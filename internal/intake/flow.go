// Package intake implements the sequential survey intake flow: one answer
// per question, in fixed order, with forward/backward navigation and a
// completion callback once every question has been answered.
//
// The flow is an explicit state machine. Position is either AtQuestion(i)
// for i in [0, N) or Completed; there are no transitions out of Completed.
// A new submission always starts a fresh Flow.
package intake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// QuestionType discriminates how an answer is collected and validated.
type QuestionType string

const (
	// TypeYesNo questions accept exactly "yes" or "no".
	TypeYesNo QuestionType = "yes_no"
	// TypeNumeric questions accept a positive integer count.
	TypeNumeric QuestionType = "numeric"
)

// Question is one entry in the ordered question list for a survey instance.
// Questions are immutable once the flow is created.
type Question struct {
	ID   int
	Text string
	Type QuestionType
}

// Answer holds the committed value for a single question. Exactly one of
// YesNo or Number is meaningful, depending on the question's type.
type Answer struct {
	QuestionID int
	YesNo      string
	Number     int
}

// State is the flow position: AtQuestion(Index) while collecting answers,
// or Completed once the final answer has been accepted.
type State struct {
	Index     int
	Completed bool
}

var (
	// ErrNoQuestions is returned by New when the question list is empty.
	ErrNoQuestions = errors.New("intake: flow requires at least one question")
	// ErrCompleted is returned when submitting or navigating after completion.
	ErrCompleted = errors.New("intake: flow already completed")
	// ErrInvalidAnswer is returned for a yes/no answer other than yes or no.
	ErrInvalidAnswer = errors.New("intake: answer must be yes or no")
	// ErrNotPositive is returned for a numeric answer that is empty, not a
	// number, or not greater than zero. The flow does not advance.
	ErrNotPositive = errors.New("intake: answer must be a positive number")
)

// Flow collects one answer per question in order. It is not safe for
// concurrent use; it is driven by a single event loop.
type Flow struct {
	questions  []Question
	answers    map[int]Answer
	state      State
	onComplete func()
}

// New creates a flow positioned at the first question. onComplete fires
// exactly once, when the final answer is accepted; it may be nil.
func New(questions []Question, onComplete func()) (*Flow, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Flow{
		questions:  qs,
		answers:    make(map[int]Answer, len(qs)),
		onComplete: onComplete,
	}, nil
}

// State returns the current flow position.
func (f *Flow) State() State { return f.state }

// Len returns the number of questions in the flow.
func (f *Flow) Len() int { return len(f.questions) }

// Current returns the question at the flow's position. It panics if called
// after completion; callers must check State first.
func (f *Flow) Current() Question {
	if f.state.Completed {
		panic("intake: Current called on completed flow")
	}
	return f.questions[f.state.Index]
}

// Answer returns the stored answer for a question ID, if one exists.
// Revisiting a question via Back does not clear its stored answer, so the
// UI can pre-fill the previous value.
func (f *Flow) Answer(questionID int) (Answer, bool) {
	a, ok := f.answers[questionID]
	return a, ok
}

// Answers returns a copy of all committed answers keyed by question ID.
func (f *Flow) Answers() map[int]Answer {
	out := make(map[int]Answer, len(f.answers))
	for id, a := range f.answers {
		out[id] = a
	}
	return out
}

// Submit validates raw input against the current question's type and, on
// acceptance, records the answer and advances the flow. Submitting the
// final answer transitions to Completed and fires the completion callback.
// On a validation error the position and stored answers are unchanged.
func (f *Flow) Submit(raw string) error {
	if f.state.Completed {
		return ErrCompleted
	}

	q := f.questions[f.state.Index]
	answer := Answer{QuestionID: q.ID}

	switch q.Type {
	case TypeYesNo:
		v := strings.ToLower(strings.TrimSpace(raw))
		if v != "yes" && v != "no" {
			return ErrInvalidAnswer
		}
		answer.YesNo = v
	case TypeNumeric:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			return ErrNotPositive
		}
		answer.Number = n
	default:
		return fmt.Errorf("intake: unknown question type %q", q.Type)
	}

	// Re-answering after Back overwrites the stored value for this
	// question only.
	f.answers[q.ID] = answer

	if f.state.Index == len(f.questions)-1 {
		f.state = State{Completed: true}
		if f.onComplete != nil {
			f.onComplete()
		}
		return nil
	}
	f.state.Index++
	return nil
}

// Back moves to the previous question. At the first question it is a
// no-op. The answer previously given for the current question is retained.
func (f *Flow) Back() error {
	if f.state.Completed {
		return ErrCompleted
	}
	if f.state.Index > 0 {
		f.state.Index--
	}
	return nil
}

// DefaultQuestions returns the standard community health question set used
// by the demo intake channel.
func DefaultQuestions() []Question {
	return []Question{
		{ID: 1, Text: "Have you or anyone in your household experienced fever in the last 7 days?", Type: TypeYesNo},
		{ID: 2, Text: "Have you or anyone in your household had difficulty breathing?", Type: TypeYesNo},
		{ID: 3, Text: "How many people live in your household?", Type: TypeNumeric},
		{ID: 4, Text: "Do you have access to clean drinking water daily?", Type: TypeYesNo},
		{ID: 5, Text: "Have you noticed any unusual health symptoms in your community?", Type: TypeYesNo},
	}
}
