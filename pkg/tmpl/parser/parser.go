package parser

import (
	"time"

	"mercator-hq/stencil/pkg/tmpl/ast"
	"mercator-hq/stencil/pkg/tmpl/diag"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
	"mercator-hq/stencil/pkg/tmpl/scanner"
)

// Parser turns template text into an *ast.Document.
// A Parser is immutable after construction and safe for concurrent use;
// each Parse call owns its scanner, guard and tree.
type Parser struct {
	config Config
	sink   diag.Sink
}

// Option configures a Parser.
type Option func(*Parser)

// WithSink attaches a diagnostics sink. A nil sink disables diagnostics.
func WithSink(sink diag.Sink) Option {
	return func(p *Parser) {
		if sink == diag.Nop {
			sink = nil
		}
		p.sink = sink
	}
}

// New creates a parser with the given configuration.
// It returns a *tmplErrors.ConfigError if a limit is not positive.
func New(cfg Config, opts ...Option) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Parser{config: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewParser creates a parser with default limits and no sink.
func NewParser() *Parser {
	return &Parser{config: DefaultConfig()}
}

// Config returns the parser's configuration.
func (p *Parser) Config() Config {
	return p.config
}

// Sink returns the attached diagnostics sink, or nil.
func (p *Parser) Sink() diag.Sink {
	return p.sink
}

// WithSink returns a copy of p that reports to sink.
func (p *Parser) WithSink(sink diag.Sink) *Parser {
	cp := *p
	WithSink(sink)(&cp)
	return &cp
}

// Parse parses input. On failure it returns a *tmplErrors.Error and no tree.
// Unless StrictClose is set, a "}}" outside any variable is literal text, so
// input without "{{" always parses to at most one Literal.
func (p *Parser) Parse(input string) (*ast.Document, error) {
	st := &state{
		sc:          scanner.New(input),
		guard:       newGuard(p.config),
		sink:        p.sink,
		strictClose: p.config.StrictClose,
	}

	if st.sink != nil {
		st.start = time.Now()
		st.sink.Record(diag.Event{Kind: diag.EventParseStarted, InputLen: len(input)})
	}

	doc, err := st.parseDocument()
	if err != nil {
		if st.sink != nil {
			st.sink.Record(diag.Event{
				Kind:    diag.EventParseFailed,
				Offset:  tmplErrors.OffsetOf(err),
				Nodes:   st.guard.nodes,
				Elapsed: time.Since(st.start),
				Err:     err,
			})
		}
		return nil, err
	}

	if st.sink != nil {
		st.sink.Record(diag.Event{
			Kind:    diag.EventParseFinished,
			Offset:  len(input),
			Nodes:   st.guard.nodes,
			Elapsed: time.Since(st.start),
		})
	}
	return doc, nil
}

// Parse parses input with the default configuration, in which a stray "}}"
// is literal text.
func Parse(input string) (*ast.Document, error) {
	return NewParser().Parse(input)
}

// state is the per-call parse state.
type state struct {
	sc          *scanner.Scanner
	guard       *guard
	sink        diag.Sink
	strictClose bool
	start       time.Time
}

func (st *state) parseDocument() (*ast.Document, error) {
	if err := st.register(ast.KindDocument, st.sc.Pos()); err != nil {
		return nil, err
	}
	doc := &ast.Document{}

	for {
		text, pos := st.sc.NextLiteralRun(st.strictClose)
		if text != "" {
			if err := st.register(ast.KindLiteral, pos); err != nil {
				return nil, err
			}
			doc.Nodes = append(doc.Nodes, &ast.Literal{Text: text, Start: pos})
		}

		if st.sc.AtEOF() {
			break
		}
		if st.sc.AtClose() {
			pos := st.sc.Pos()
			return nil, tmplErrors.New(tmplErrors.KindUnexpectedToken, pos,
				"%q does not close any variable", scanner.CloseMarker)
		}

		v, err := st.parseVariable(true)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, v)
	}

	doc.EndOffset = st.sc.Offset()
	return doc, nil
}

// parseVariable parses "{{" path "}}" with the cursor on "{{". Padding
// whitespace is accepted only inside the outermost pair.
func (st *state) parseVariable(outermost bool) (*ast.Variable, error) {
	open := st.sc.Pos()

	if err := st.guard.enter(open); err != nil {
		return nil, err
	}
	defer st.exitNesting()
	st.emit(diag.Event{Kind: diag.EventNestingEntered, Offset: open.Offset, Depth: st.guard.depth})

	if err := st.register(ast.KindVariable, open); err != nil {
		return nil, err
	}
	if _, err := st.sc.ExpectOpen(); err != nil {
		return nil, err
	}

	if outermost {
		st.sc.SkipSpace()
	}

	v := &ast.Variable{Start: open}
	for {
		seg, err := st.parseSegment(open)
		if err != nil {
			return nil, err
		}
		v.Segments = append(v.Segments, seg)

		if !st.sc.ConsumeSeparator() {
			break
		}
	}

	if outermost {
		st.sc.SkipSpace()
	}
	if err := st.sc.ExpectClose(open); err != nil {
		return nil, err
	}

	v.EndOffset = st.sc.Offset()
	return v, nil
}

func (st *state) parseSegment(open ast.Position) (ast.Segment, error) {
	if st.sc.AtEOF() {
		return nil, tmplErrors.New(tmplErrors.KindUnterminatedDelimiter, open,
			"variable opened here is never closed")
	}
	if st.sc.AtOpen() {
		return st.parseVariable(false)
	}

	name, pos, err := st.sc.NextIdentifier()
	if err != nil {
		return nil, err
	}
	if err := st.register(ast.KindIdentifier, pos); err != nil {
		return nil, err
	}
	return &ast.Identifier{Name: name, Start: pos}, nil
}

func (st *state) register(kind ast.NodeKind, pos ast.Position) error {
	if err := st.guard.register(pos); err != nil {
		return err
	}
	st.emit(diag.Event{Kind: diag.EventNodeEmitted, Node: kind, Offset: pos.Offset, Nodes: st.guard.nodes})
	return nil
}

func (st *state) exitNesting() {
	st.emit(diag.Event{Kind: diag.EventNestingExited, Depth: st.guard.depth, Offset: st.sc.Offset()})
	st.guard.exit()
}

func (st *state) emit(e diag.Event) {
	if st.sink != nil {
		st.sink.Record(e)
	}
}
