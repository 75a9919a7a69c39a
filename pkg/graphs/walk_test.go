package graphs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulmotools/ildflow/pkg/graphs"
	"github.com/pulmotools/ildflow/pkg/wizard"
)

// Walks the diagnostic pathway end to end down the bronchoscopy branch.
func TestDiagnostic_BronchoscopyBranch(t *testing.T) {
	eng, err := wizard.NewEngine(graphs.Diagnostic())
	require.NoError(t, err)

	state := eng.Start()
	assert.Equal(t, "initial", state.CurrentStep)

	state, err = eng.Advance(state)
	require.NoError(t, err)
	assert.Equal(t, "environmental", state.CurrentStep)

	for _, answer := range []string{"no", "no", "no", "yes", "yes"} {
		state, err = eng.SelectOption(state, answer)
		require.NoError(t, err)
	}

	assert.Equal(t, "appropriate_management", state.CurrentStep)
	final, err := eng.Current(state)
	require.NoError(t, err)
	assert.True(t, final.Terminal())

	assert.Equal(t, []string{
		"initial", "environmental", "extrapulmonary",
		"multidisciplinary", "clinical_radiologic", "bronchoscopy",
	}, state.History)
	assert.Equal(t, "yes", state.Answers["bronchoscopy"])
}

func TestDiagnostic_RecoveryShortCircuit(t *testing.T) {
	eng, err := wizard.NewEngine(graphs.Diagnostic())
	require.NoError(t, err)

	state, err := eng.Advance(eng.Start())
	require.NoError(t, err)

	state, err = eng.SelectOption(state, "yes")
	require.NoError(t, err)
	assert.Equal(t, "remove_cause", state.CurrentStep)

	state, err = eng.SelectOption(state, "yes")
	require.NoError(t, err)
	assert.Equal(t, "no_further_steps", state.CurrentStep)
}

// The ILA graph gates its evaluation step on the three HRCT findings.
func TestILA_EvaluationGating(t *testing.T) {
	eng, err := wizard.NewEngine(graphs.ILA())
	require.NoError(t, err)

	state, err := eng.SelectOption(eng.Start(), "symptoms")
	require.NoError(t, err)
	assert.Equal(t, "evaluate", state.CurrentStep)

	_, err = eng.Advance(state)
	var incomplete *wizard.IncompleteError
	require.ErrorAs(t, err, &incomplete)

	state = eng.RecordAnswer(state, "extent", ">10")
	state = eng.RecordAnswer(state, "fibrotic", "yes")
	state = eng.RecordAnswer(state, "distribution", "basal_peripheral")
	state, err = eng.Advance(state)
	require.NoError(t, err)
	assert.Equal(t, "recommendation", state.CurrentStep)
}

// The incidental-finding branch routes through the prone CT confirmation.
func TestILA_IncidentalBranch(t *testing.T) {
	eng, err := wizard.NewEngine(graphs.ILA())
	require.NoError(t, err)

	state, err := eng.SelectOption(eng.Start(), "incidental")
	require.NoError(t, err)
	assert.Equal(t, "prone_ct", state.CurrentStep)
}

func TestIPF_RecordsPatternFields(t *testing.T) {
	eng, err := wizard.NewEngine(graphs.IPF())
	require.NoError(t, err)

	g := eng.Graph()
	entry := g.Step(g.Entry)
	require.NotNil(t, entry)
	require.NotEmpty(t, entry.Options)

	state, err := eng.SelectOption(eng.Start(), entry.Options[0].Value)
	require.NoError(t, err)
	assert.Equal(t, entry.Options[0].Value, state.Answers[entry.AnswerField()])
}
