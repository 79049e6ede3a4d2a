// Package whentext parses natural-language date and time expressions into
// structured values.
//
// The package understands single instants ("July 17th at 3 PM"), ranges
// ("3-4 PM", "Jun 3rd to 5th"), lists ("7/17 4 or 5 PM"), durations
// ("in thirty minutes", "2 hours ago") and mixtures of these. Fields that
// one part of an expression leaves out are borrowed from its neighbors, so
// "3-4 PM" yields two afternoon times and "7/17 4 or 5 PM" yields two
// datetimes on July 17th.
//
// The zero-effort entry point is the package-level Parse function, which
// shares a lazily built Parser:
//
//	values, err := whentext.Parse("next Monday at noon", whentext.DefaultConfig())
//
// Programs that want control over parser lifetime build their own:
//
//	p, err := whentext.NewParser()
//	...
//	values, err := p.Parse("3p tomorrow", cfg)
//
// Parsing is driven by a compiled grammar; building a Parser compiles it
// once and the result is safe for concurrent use. All calendar arithmetic
// is relative to Config.Now, which defaults to the wall clock.
package whentext

import (
	"context"
	"fmt"
	"sync"
	"time"

	llxparser "github.com/ava12/llx/parser"
	"github.com/ava12/llx/source"
	"github.com/ava12/llx/tree"
)

// Direction selects which occurrence of an underspecified moment wins when
// the text itself does not say. "Monday" with DirectionNext means the
// upcoming Monday; with DirectionPrevious the most recent one.
type Direction int

const (
	// DirectionNext resolves forward from Config.Now. The default.
	DirectionNext Direction = iota
	// DirectionPrevious resolves backward from Config.Now.
	DirectionPrevious
	// DirectionThis resolves to the nearest occurrence, today included.
	DirectionThis
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrevious:
		return "previous"
	case DirectionThis:
		return "this"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a direction name, as accepted on command lines,
// back into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "next":
		return DirectionNext, nil
	case "previous":
		return DirectionPrevious, nil
	case "this":
		return DirectionThis, nil
	}
	return 0, fmt.Errorf("whentext: unknown direction %q", s)
}

// Config controls how parsed expressions are resolved into values.
type Config struct {
	// InferDatetimes completes partial results: a bare date gets midnight,
	// a bare time gets a calendar day near Now, and a duration range gets
	// anchored at Now. When false, partial results stay partial (Date,
	// Time, Duration values).
	InferDatetimes bool

	// Direction picks an occurrence for underspecified moments such as a
	// bare weekday or a bare time of day.
	Direction Direction

	// Now is the reference instant for all relative arithmetic. The zero
	// value means time.Now() at the moment of the call.
	Now time.Time
}

// DefaultConfig returns the configuration used by casual callers:
// datetime inference on, forward resolution, wall-clock now.
func DefaultConfig() Config {
	return Config{InferDatetimes: true}
}

// Parser converts natural-language text into Values. A Parser holds the
// compiled grammar and is safe for concurrent use by multiple goroutines.
type Parser struct {
	llx *llxparser.Parser
}

// NewParser compiles the grammar and returns a ready Parser.
func NewParser() (*Parser, error) {
	g, err := compileGrammar()
	if err != nil {
		return nil, err
	}
	lp, err := llxparser.New(g)
	if err != nil {
		return nil, err
	}
	return &Parser{llx: lp}, nil
}

// MustNewParser is like NewParser but panics on error. The grammar is a
// compile-time constant, so failure here means a programming error.
func MustNewParser() *Parser {
	p, err := NewParser()
	if err != nil {
		panic(err)
	}
	return p
}

var sharedParser = sync.OnceValues(NewParser)

// Parse parses text with a shared package-level Parser. See Parser.Parse.
func Parse(text string, cfg Config) ([]Value, error) {
	p, err := sharedParser()
	if err != nil {
		return nil, err
	}
	return p.Parse(text, cfg)
}

// ParseMatched parses text with a shared package-level Parser. See
// Parser.ParseMatched.
func ParseMatched(text string, cfg Config) ([]Match, error) {
	p, err := sharedParser()
	if err != nil {
		return nil, err
	}
	return p.ParseMatched(text, cfg)
}

// Parse extracts every date, time, duration, range and list expression
// from text and returns them in order of appearance. Text that is not part
// of any expression is skipped. Parsing nothing is not an error: the
// result is simply empty.
//
// A sole top-level list is flattened, so "4 or 5 PM" yields two values,
// not one list of two.
func (p *Parser) Parse(text string, cfg Config) ([]Value, error) {
	nodes, now, err := p.analyze(text, cfg)
	if err != nil {
		return nil, err
	}
	var out []Value
	for _, n := range nodes {
		v, err := render(n, cfg, now)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 1 {
		if l, ok := out[0].(List); ok {
			return []Value(l), nil
		}
	}
	return out, nil
}

// ParseMatched is like Parse but also reports, for every value, the exact
// substring of text it was parsed from and its byte offsets.
func (p *Parser) ParseMatched(text string, cfg Config) ([]Match, error) {
	nodes, now, err := p.analyze(text, cfg)
	if err != nil {
		return nil, err
	}
	var out []Match
	for _, n := range nodes {
		v, err := render(n, cfg, now)
		if err != nil {
			return nil, err
		}
		m := Match{Value: v}
		if at := n.span(); at.valid() {
			m.Start, m.End = at.start, at.end
			m.Text = text[at.start:at.end]
		}
		out = append(out, m)
	}
	return out, nil
}

// analyze runs the grammar and the semantic passes, returning the
// renderable nodes and the resolved reference instant.
func (p *Parser) analyze(text string, cfg Config) ([]node, time.Time, error) {
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	src := source.New("input", []byte(text))
	queue := source.NewQueue().Append(src)
	hooks := llxparser.Hooks{
		Nodes: llxparser.NodeHooks{llxparser.AnyNode: tree.NodeHook},
	}
	res, err := p.llx.Parse(context.Background(), queue, hooks)
	if err != nil {
		// Text the grammar cannot shape carries no expressions.
		return nil, now, nil
	}
	root, ok := res.(tree.Element)
	if !ok {
		return nil, now, nil
	}
	b := &builder{cfg: cfg, now: now, src: src}
	nodes, err := b.phrase(root)
	if err != nil {
		return nil, now, err
	}
	out := nodes[:0]
	for _, n := range nodes {
		switch v := n.(type) {
		case *unknownNode, *ambiguousNode:
			// A lone integer or stray word is not a date expression.
		case *datetimeNode:
			if v.d != nil || v.t != nil {
				out = append(out, n)
			}
		default:
			out = append(out, n)
		}
	}
	return out, now, nil
}
