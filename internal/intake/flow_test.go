package intake

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeQuestions() []Question {
	return []Question{
		{ID: 10, Text: "Fever in the last week?", Type: TypeYesNo},
		{ID: 11, Text: "Difficulty breathing?", Type: TypeYesNo},
		{ID: 12, Text: "Household size?", Type: TypeNumeric},
	}
}

func TestNew_RequiresQuestions(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestNew_StartsAtFirstQuestion(t *testing.T) {
	for n := 1; n <= 5; n++ {
		f, err := New(DefaultQuestions()[:n], nil)
		require.NoError(t, err)
		assert.Equal(t, State{Index: 0}, f.State())
		assert.Equal(t, n, f.Len())
	}
}

func TestSubmit_YesNoAdvances(t *testing.T) {
	f, err := New(threeQuestions(), nil)
	require.NoError(t, err)

	require.NoError(t, f.Submit("yes"))
	assert.Equal(t, State{Index: 1}, f.State())

	require.NoError(t, f.Submit("no"))
	assert.Equal(t, State{Index: 2}, f.State())

	a, ok := f.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "yes", a.YesNo)
}

func TestSubmit_YesNoRejectsOtherValues(t *testing.T) {
	f, err := New(threeQuestions(), nil)
	require.NoError(t, err)

	for _, raw := range []string{"", "maybe", "y", "1"} {
		assert.ErrorIs(t, f.Submit(raw), ErrInvalidAnswer, "input %q", raw)
		assert.Equal(t, State{Index: 0}, f.State())
	}

	// Case and whitespace are forgiven; the value space is still binary.
	require.NoError(t, f.Submit(" Yes "))
	a, _ := f.Answer(10)
	assert.Equal(t, "yes", a.YesNo)
}

func TestSubmit_NumericRejectsNonPositive(t *testing.T) {
	f, err := New([]Question{{ID: 1, Type: TypeNumeric}}, nil)
	require.NoError(t, err)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		assert.ErrorIs(t, f.Submit(raw), ErrNotPositive, "input %q", raw)
		assert.Equal(t, State{Index: 0}, f.State())
		_, ok := f.Answer(1)
		assert.False(t, ok, "rejected input must not record an answer")
	}
}

func TestSubmit_NumericRecordsAndAdvances(t *testing.T) {
	f, err := New([]Question{
		{ID: 1, Type: TypeNumeric},
		{ID: 2, Type: TypeYesNo},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, f.Submit("4"))
	assert.Equal(t, State{Index: 1}, f.State())
	a, ok := f.Answer(1)
	require.True(t, ok)
	assert.Equal(t, 4, a.Number)
}

func TestBack_NoopAtStartAndRetainsAnswers(t *testing.T) {
	f, err := New(threeQuestions(), nil)
	require.NoError(t, err)

	require.NoError(t, f.Back())
	assert.Equal(t, State{Index: 0}, f.State())

	require.NoError(t, f.Submit("yes"))
	require.NoError(t, f.Back())
	assert.Equal(t, State{Index: 0}, f.State())

	// The answer for the revisited question survives the navigation.
	a, ok := f.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "yes", a.YesNo)
}

func TestCompletion_CallbackFiresExactlyOnce(t *testing.T) {
	fired := 0
	f, err := New(threeQuestions(), func() { fired++ })
	require.NoError(t, err)

	require.NoError(t, f.Submit("yes"))
	require.NoError(t, f.Submit("no"))
	require.NoError(t, f.Submit("4"))

	assert.Equal(t, State{Completed: true}, f.State())
	assert.Equal(t, 1, fired)

	// No transitions exist out of Completed.
	assert.ErrorIs(t, f.Submit("yes"), ErrCompleted)
	assert.ErrorIs(t, f.Back(), ErrCompleted)
	assert.Equal(t, 1, fired)
}

func TestResubmit_OverwritesOnlyThatQuestion(t *testing.T) {
	f, err := New(threeQuestions(), nil)
	require.NoError(t, err)

	require.NoError(t, f.Submit("yes"))
	require.NoError(t, f.Submit("no"))
	require.NoError(t, f.Back())
	require.NoError(t, f.Back())

	// Re-answer the first question with a different value.
	require.NoError(t, f.Submit("no"))

	want := map[int]Answer{
		10: {QuestionID: 10, YesNo: "no"},
		11: {QuestionID: 11, YesNo: "no"},
	}
	if diff := cmp.Diff(want, f.Answers()); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

// The worked scenario: yes_no, yes_no, numeric.
func TestScenario_ThreeQuestionRun(t *testing.T) {
	fired := 0
	f, err := New(threeQuestions(), func() { fired++ })
	require.NoError(t, err)

	require.NoError(t, f.Submit("yes"))
	assert.Equal(t, State{Index: 1}, f.State())

	require.NoError(t, f.Submit("no"))
	assert.Equal(t, State{Index: 2}, f.State())

	assert.ErrorIs(t, f.Submit("0"), ErrNotPositive)
	assert.Equal(t, State{Index: 2}, f.State())
	assert.Equal(t, 0, fired)

	require.NoError(t, f.Submit("4"))
	assert.Equal(t, State{Completed: true}, f.State())
	assert.Equal(t, 1, fired)

	want := map[int]Answer{
		10: {QuestionID: 10, YesNo: "yes"},
		11: {QuestionID: 11, YesNo: "no"},
		12: {QuestionID: 12, Number: 4},
	}
	if diff := cmp.Diff(want, f.Answers()); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestCurrent_PanicsAfterCompletion(t *testing.T) {
	f, err := New([]Question{{ID: 1, Type: TypeYesNo}}, nil)
	require.NoError(t, err)
	require.NoError(t, f.Submit("yes"))
	assert.Panics(t, func() { f.Current() })
}
