package stream

import "github.com/temirov/repokit/internal/layout"

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindEntry   EventKind = "entry"
	EventKindSummary EventKind = "summary"
	EventKindDone    EventKind = "done"
)

// Event is one message passed from a tree walk to a renderer.
type Event struct {
	Version int
	Kind    EventKind
	Root    string
	Entry   *layout.Line
	Summary *SummaryEvent
}

// SummaryEvent counts the entries listed under a root, the root itself excluded.
type SummaryEvent struct {
	Directories int
	Files       int
	Skipped     int
}
