package script

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/regime"
)

// RunWithGolden executes the script and compares the canonical JSON result
// against testdata/golden/{script.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/script -update
func RunWithGolden(t *testing.T, m *regime.Machine, s *Script) *Result {
	t.Helper()

	res := Run(m, s)

	data, err := MarshalResult(res)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)

	return res
}

// MarshalResult serializes a result as indented JSON with a trailing
// newline. encoding/json sorts map keys, so payload maps serialize
// deterministically.
func MarshalResult(res *Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
