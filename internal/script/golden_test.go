package script

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/regime"
)

func TestGoldenIgniteUndoRedo(t *testing.T) {
	m := newVehicle(t)
	s, err := Load(filepath.Join("testdata", "ignite.yaml"))
	require.NoError(t, err)
	require.Empty(t, s.Validate())

	res := RunWithGolden(t, m, s)
	assert.Equal(t, "idling", res.Final)
}

func TestGoldenUnknownTarget(t *testing.T) {
	m, err := regime.New("a",
		regime.WithID("test-machine"),
		regime.WithTransitions(
			regime.Transition{From: "a", To: "b"},
			regime.Transition{From: "b", To: "a"},
		),
	)
	require.NoError(t, err)

	s, err := Load(filepath.Join("testdata", "unknown-target.yaml"))
	require.NoError(t, err)

	res := RunWithGolden(t, m, s)
	assert.True(t, res.Failed())
}
