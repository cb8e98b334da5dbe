// Package defn loads machine definitions from YAML documents.
//
// A definition names the initial state and declares plain transitions and
// named events. Documents are validated before a machine is built, so a bad
// file fails with positioned errors instead of surfacing later as a
// registration error.
//
// Guards are deliberately not expressible in a document: a guard is a Go
// function evaluated at selection time, and the document format carries only
// data. Callers that need guarded transitions register them in code after
// building the machine.
package defn
