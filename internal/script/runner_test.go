package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/regime"
)

func newVehicle(t *testing.T) *regime.Machine {
	t.Helper()
	m, err := regime.New("parked",
		regime.WithID("test-machine"),
		regime.WithEvents(
			regime.Event{Name: "ignite", Transitions: []regime.Transition{
				{From: "parked", To: "idling", Undoable: true},
			}},
			regime.Event{Name: "park", Transitions: []regime.Transition{
				{From: "idling", To: "parked", Undoable: true},
			}},
		),
	)
	require.NoError(t, err)
	return m
}

func TestRunRecordsStepsAndTrace(t *testing.T) {
	m := newVehicle(t)
	s := &Script{Name: "demo", Steps: []Step{
		{Op: OpTrigger, Event: "ignite", Data: map[string]any{"message": "hi"}},
		{Op: OpUndo},
	}}

	res := Run(m, s)

	assert.Equal(t, "demo", res.Script)
	assert.Equal(t, "parked", res.Final)
	require.Len(t, res.Steps, 2)
	assert.True(t, res.Steps[0].Applied)
	assert.True(t, res.Steps[1].Applied)
	assert.False(t, res.Failed())

	require.Len(t, res.Trace, 2)
	assert.Equal(t, "ignite", res.Trace[0].Event)
	assert.True(t, res.Trace[1].Undo)
	assert.Equal(t, map[string]any{"message": "hi"}, res.Trace[1].Data)
}

func TestRunContinuesPastErrors(t *testing.T) {
	m := newVehicle(t)
	s := &Script{Name: "demo", Steps: []Step{
		{Op: OpTrigger, Event: "warp"},
		{Op: OpTrigger, Event: "ignite"},
	}}

	res := Run(m, s)

	require.Len(t, res.Steps, 2)
	assert.False(t, res.Steps[0].Applied)
	assert.Contains(t, res.Steps[0].Error, "EVENT_NOT_FOUND")
	assert.True(t, res.Steps[1].Applied, "execution continues after a failed step")
	assert.True(t, res.Failed())
	assert.Equal(t, "idling", res.Final)
}

func TestRunNoOpStepsProduceNoTrace(t *testing.T) {
	m := newVehicle(t)
	s := &Script{Name: "demo", Steps: []Step{
		{Op: OpUndo},
		{Op: OpRedo},
	}}

	res := Run(m, s)

	assert.Empty(t, res.Trace)
	assert.False(t, res.Steps[0].Applied)
	assert.False(t, res.Steps[1].Applied)
	assert.False(t, res.Failed(), "no-ops are not failures")
}

func TestRunUnsubscribesAfterRun(t *testing.T) {
	m := newVehicle(t)
	res := Run(m, &Script{Name: "demo", Steps: []Step{
		{Op: OpTrigger, Event: "ignite"},
	}})
	require.Len(t, res.Trace, 1)

	// A move after the run must not grow the captured trace.
	applied, err := m.Trigger("park", nil)
	require.NoError(t, err)
	require.True(t, applied)
	assert.Len(t, res.Trace, 1)
}

func TestRunEmptyDataIsNilPayload(t *testing.T) {
	m := newVehicle(t)
	res := Run(m, &Script{Name: "demo", Steps: []Step{
		{Op: OpTrigger, Event: "ignite", Data: map[string]any{}},
	}})

	require.Len(t, res.Trace, 1)
	assert.Nil(t, res.Trace[0].Data)
}
