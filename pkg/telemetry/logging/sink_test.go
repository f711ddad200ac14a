package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"mercator-hq/stencil/pkg/tmpl/parser"
)

func TestSink(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		input    string
		cfg      parser.Config
		want     []string
		wantNone []string
	}{
		{
			name:     "failure logged at info",
			level:    "info",
			input:    "{{a.{{b}}}}",
			cfg:      parser.Config{MaxDepth: 1, MaxNodes: 100},
			want:     []string{"parse failed", "kind=depth_exceeded", "offset=4", "limit=1", "source=t.tmpl"},
			wantNone: []string{"nesting_entered", "parse finished"},
		},
		{
			name:     "success silent at info",
			level:    "info",
			input:    "{{a}}",
			cfg:      parser.DefaultConfig(),
			wantNone: []string{"parse"},
		},
		{
			name:  "structure logged at debug",
			level: "debug",
			input: "{{a}}",
			cfg:   parser.DefaultConfig(),
			want:  []string{"parse started", "nesting_entered", "node_emitted", "node=identifier", "parse finished", "nodes=3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.level, Format: "text", Writer: buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			ctx := WithSource(context.Background(), "t.tmpl")
			p, err := parser.New(tt.cfg, parser.WithSink(NewSink(ctx, logger)))
			if err != nil {
				t.Fatalf("parser.New() error = %v", err)
			}
			_, _ = p.Parse(tt.input)

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.wantNone {
				if strings.Contains(out, unwanted) {
					t.Errorf("output unexpectedly contains %q:\n%s", unwanted, out)
				}
			}
		})
	}
}
