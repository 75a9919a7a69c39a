package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/wizard"
)

func testGraph() *domain.Graph {
	return &domain.Graph{
		ID:    "test",
		Title: "Test graph",
		Entry: "start",
		Steps: map[string]*domain.Step{
			"start": {
				ID:       "start",
				Question: "Which way?",
				Options: []domain.Option{
					{Label: "Left", Value: "left", Next: "left"},
					{Label: "Right", Value: "right", Next: "right"},
				},
			},
			"left": {
				ID:   "left",
				Next: "end",
				Requires: []domain.Requirement{
					{Section: "Findings", Fields: []string{"extent", "fibrotic"}},
					{Section: "Exam", Fields: []string{"crackles"}},
				},
			},
			"right": {ID: "right", Content: "Right branch."},
			"end":   {ID: "end", Content: "Done."},
		},
	}
}

func newEngine(t *testing.T) *wizard.Engine {
	t.Helper()
	eng, err := wizard.NewEngine(testGraph())
	require.NoError(t, err)
	return eng
}

func TestNewEngine_RejectsInvalidGraph(t *testing.T) {
	g := testGraph()
	g.Entry = "missing"
	_, err := wizard.NewEngine(g)
	assert.Error(t, err)
}

func TestEngine_StartAndCurrent(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()

	assert.Equal(t, "start", state.CurrentStep)
	assert.Empty(t, state.History)
	assert.Empty(t, state.Answers)

	step, err := eng.Current(state)
	require.NoError(t, err)
	assert.Equal(t, "start", step.ID)
}

func TestEngine_CurrentUnknownStep(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()
	state.CurrentStep = "nowhere"

	_, err := eng.Current(state)
	assert.ErrorIs(t, err, domain.ErrUnknownStep)
}

func TestEngine_SelectOption(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()

	next, err := eng.SelectOption(state, "left")
	require.NoError(t, err)

	assert.Equal(t, "left", next.CurrentStep)
	assert.Equal(t, []string{"start"}, next.History)
	assert.Equal(t, "left", next.Answers["start"])

	// The input state is untouched.
	assert.Equal(t, "start", state.CurrentStep)
	assert.Empty(t, state.Answers)
}

func TestEngine_SelectOptionUnknownValue(t *testing.T) {
	eng := newEngine(t)
	_, err := eng.SelectOption(eng.Start(), "up")
	assert.Error(t, err)
}

func TestEngine_ReselectReplacesAnswer(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()

	next, err := eng.SelectOption(state, "left")
	require.NoError(t, err)
	back := eng.GoBack(next)

	redone, err := eng.SelectOption(back, "right")
	require.NoError(t, err)
	assert.Equal(t, "right", redone.Answers["start"], "revised answer replaces the old value")
	assert.Equal(t, []string{"start"}, redone.History)
}

func TestEngine_NavigateToSelfIsNoOp(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()

	same, err := eng.NavigateTo(state, "start")
	require.NoError(t, err)
	assert.Equal(t, "start", same.CurrentStep)
	assert.Empty(t, same.History, "a self-transition must not grow the history")
}

func TestEngine_GoBack(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()

	next, err := eng.SelectOption(state, "left")
	require.NoError(t, err)

	back := eng.GoBack(next)
	assert.Equal(t, "start", back.CurrentStep)
	assert.Empty(t, back.History)
	assert.Equal(t, "left", back.Answers["start"], "answers survive back-navigation")
}

func TestEngine_GoBackPastEntry(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()

	// Repeated back at the entry stays put.
	for i := 0; i < 3; i++ {
		state = eng.GoBack(state)
	}
	assert.Equal(t, "start", state.CurrentStep)
	assert.Empty(t, state.History)
}

func TestEngine_ToggleAnswer(t *testing.T) {
	eng := newEngine(t)
	state := eng.Start()

	state = eng.ToggleAnswer(state, "symptoms", "dyspnee")
	state = eng.ToggleAnswer(state, "symptoms", "toux")
	assert.Equal(t, []string{"dyspnee", "toux"}, state.Values("symptoms"))

	state = eng.ToggleAnswer(state, "symptoms", "dyspnee")
	assert.Equal(t, []string{"toux"}, state.Values("symptoms"))

	state = eng.ToggleAnswer(state, "symptoms", "toux")
	assert.Empty(t, state.Values("symptoms"))
}

func TestEngine_AdvanceGated(t *testing.T) {
	eng := newEngine(t)
	state, err := eng.SelectOption(eng.Start(), "left")
	require.NoError(t, err)

	_, err = eng.Advance(state)
	var incomplete *wizard.IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, map[string][]string{
		"Findings": {"extent", "fibrotic"},
		"Exam":     {"crackles"},
	}, incomplete.Missing)

	state = eng.RecordAnswer(state, "extent", "<5")
	state = eng.RecordAnswer(state, "fibrotic", "no")
	_, err = eng.Advance(state)
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, map[string][]string{"Exam": {"crackles"}}, incomplete.Missing)

	state = eng.RecordAnswer(state, "crackles", "yes")
	next, err := eng.Advance(state)
	require.NoError(t, err)
	assert.Equal(t, "end", next.CurrentStep)
	assert.Equal(t, []string{"start", "left"}, next.History)
}

func TestEngine_AdvanceWithoutContinuation(t *testing.T) {
	eng := newEngine(t)
	state, err := eng.SelectOption(eng.Start(), "right")
	require.NoError(t, err)

	_, err = eng.Advance(state)
	assert.Error(t, err)
}

func TestEngine_Reset(t *testing.T) {
	eng := newEngine(t)
	state, err := eng.SelectOption(eng.Start(), "left")
	require.NoError(t, err)
	state = eng.RecordAnswer(state, "extent", "<5")

	fresh := eng.Reset()
	assert.Equal(t, "start", fresh.CurrentStep)
	assert.Empty(t, fresh.History)
	assert.Empty(t, fresh.Answers)
}

func TestIncompleteError_Message(t *testing.T) {
	err := &wizard.IncompleteError{Missing: map[string][]string{
		"Exam":     {"crackles"},
		"Findings": {"extent"},
	}}
	// Sections are sorted for a stable message.
	assert.Equal(t, "required answers missing (Exam: crackles; Findings: extent)", err.Error())
}
