// Package script executes YAML scenarios against a machine and captures a
// deterministic trace of the committed changes.
//
// A script is a named sequence of steps (move, trigger, undo, redo). The
// runner subscribes to the machine for the duration of the run, records
// every delivered change in order, and reports a per-step outcome. Step
// failures are recorded and execution continues, so one run surfaces the
// whole scenario's behavior.
//
// Traces serialize to canonical JSON and can be compared against golden
// files with RunWithGolden (regenerate with go test -update).
package script
