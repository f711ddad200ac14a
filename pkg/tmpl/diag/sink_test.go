package diag

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"mercator-hq/stencil/pkg/tmpl/ast"
)

func TestMulti(t *testing.T) {
	t.Run("no live sinks", func(t *testing.T) {
		if got := Multi(nil, Nop); got != Nop {
			t.Errorf("Multi(nil, Nop) = %T, want Nop", got)
		}
	})

	t.Run("single sink returned as is", func(t *testing.T) {
		r := &Recorder{}
		if got := Multi(nil, r); got != Sink(r) {
			t.Errorf("Multi(nil, r) = %T, want the recorder", got)
		}
	})

	t.Run("fan out in order", func(t *testing.T) {
		var order []string
		a := SinkFunc(func(Event) { order = append(order, "a") })
		b := SinkFunc(func(Event) { order = append(order, "b") })

		Multi(a, nil, b).Record(Event{Kind: EventParseStarted})
		if got := strings.Join(order, ""); got != "ab" {
			t.Errorf("order = %q, want %q", got, "ab")
		}
	})
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record(Event{Kind: EventNodeEmitted, Node: ast.KindLiteral})
		}()
	}
	wg.Wait()
	r.Record(Event{Kind: EventParseFinished})

	if got := r.Count(EventNodeEmitted); got != 10 {
		t.Errorf("Count(node_emitted) = %d, want 10", got)
	}
	kinds := r.Kinds()
	if len(kinds) != 11 || kinds[10] != EventParseFinished {
		t.Errorf("Kinds() = %v", kinds)
	}

	events := r.Events()
	events[0].Kind = EventParseFailed
	if r.Count(EventParseFailed) != 0 {
		t.Error("Events() did not return a copy")
	}

	r.Reset()
	if len(r.Events()) != 0 {
		t.Error("Reset() kept events")
	}
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Kind: EventNestingEntered, Depth: 2, Offset: 4}, "nesting_entered depth=2 offset=4"},
		{Event{Kind: EventNodeEmitted, Node: ast.KindIdentifier, Offset: 6, Nodes: 5}, "node_emitted node=identifier offset=6 nodes=5"},
		{Event{Kind: EventParseFailed, Offset: 3, Err: errors.New("boom")}, "parse_failed offset=3 err=boom"},
		{Event{Kind: EventParseFinished, Offset: 11, Nodes: 5}, "parse_finished offset=11 nodes=5"},
	}
	for _, tt := range tests {
		t.Run(string(tt.event.Kind), func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
