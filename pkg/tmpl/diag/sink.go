package diag

import (
	"fmt"
	"sync"
	"time"

	"mercator-hq/stencil/pkg/tmpl/ast"
)

// EventKind identifies a parse lifecycle event.
type EventKind string

const (
	EventParseStarted   EventKind = "parse_started"
	EventNestingEntered EventKind = "nesting_entered"
	EventNestingExited  EventKind = "nesting_exited"
	EventNodeEmitted    EventKind = "node_emitted"
	EventParseFinished  EventKind = "parse_finished"
	EventParseFailed    EventKind = "parse_failed"
)

// Event is a structural notification emitted by the parser.
// Fields that do not apply to a kind are left zero.
type Event struct {
	Kind EventKind

	// Offset is the byte offset the event refers to.
	Offset int

	// Depth is the nesting depth after entering or before exiting.
	Depth int

	// Node is the kind of node emitted (EventNodeEmitted only).
	Node ast.NodeKind

	// Nodes is the running node count.
	Nodes int

	// InputLen is the input size in bytes (EventParseStarted only).
	InputLen int

	// Elapsed is the parse duration (EventParseFinished and EventParseFailed).
	Elapsed time.Duration

	// Err is the parse error (EventParseFailed only).
	Err error
}

func (e Event) String() string {
	switch e.Kind {
	case EventNestingEntered, EventNestingExited:
		return fmt.Sprintf("%s depth=%d offset=%d", e.Kind, e.Depth, e.Offset)
	case EventNodeEmitted:
		return fmt.Sprintf("%s node=%s offset=%d nodes=%d", e.Kind, e.Node, e.Offset, e.Nodes)
	case EventParseFailed:
		return fmt.Sprintf("%s offset=%d err=%v", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s offset=%d nodes=%d", e.Kind, e.Offset, e.Nodes)
}

// Sink receives parse events. Implementations must not assume events from
// different parses are serialized unless they are attached to one parser
// that is used from a single goroutine.
type Sink interface {
	Record(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Record(e Event) { f(e) }

// Nop discards every event.
var Nop Sink = nopSink{}

type nopSink struct{}

func (nopSink) Record(Event) {}

// Multi fans events out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil && s != Nop {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return Nop
	case 1:
		return live[0]
	}
	return multiSink(live)
}

type multiSink []Sink

func (m multiSink) Record(e Event) {
	for _, s := range m {
		s.Record(e)
	}
}

// Recorder keeps every event it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
