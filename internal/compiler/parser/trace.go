package parser

import (
	"fmt"
	"io"

	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

type EventKind int

const (
	EventToken EventKind = iota
	EventScopeEnter
	EventScopeExit
	EventDeclare
	EventUse
	EventCall
	EventUpdate
	EventTypeCheck
	EventFunction
	EventDone
)

// Event is one step of an analysis, reported to a Tracer.
type Event struct {
	Kind  EventKind
	Name  string
	Type  symbols.Type
	Value symbols.Type // value side of a type check
	Token token.Token
}

func (e Event) String() string {
	switch e.Kind {
	case EventToken:
		return fmt.Sprintf("token %s", e.Token)
	case EventScopeEnter:
		return fmt.Sprintf("enter scope %q", e.Name)
	case EventScopeExit:
		return fmt.Sprintf("exit scope %q", e.Name)
	case EventDeclare:
		return fmt.Sprintf("declare '%s' as %s", e.Name, e.Type)
	case EventUse:
		return fmt.Sprintf("use '%s' (%s)", e.Name, e.Type)
	case EventCall:
		return fmt.Sprintf("call '%s'", e.Name)
	case EventUpdate:
		return fmt.Sprintf("increment/decrement '%s'", e.Name)
	case EventTypeCheck:
		return fmt.Sprintf("type check %s <- %s", e.Type, e.Value)
	case EventFunction:
		return fmt.Sprintf("function '%s' returns %s", e.Name, e.Type)
	case EventDone:
		return "analysis completed"
	default:
		return "unknown event"
	}
}

// Tracer receives analysis events as they happen.
type Tracer interface {
	Emit(Event)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(Event)

func (f TracerFunc) Emit(e Event) { f(e) }

type nopTracer struct{}

func (nopTracer) Emit(Event) {}

type writerTracer struct {
	w      io.Writer
	tokens bool
}

// NewWriterTracer prints one line per event to w. Token events are skipped
// unless tokens is set.
func NewWriterTracer(w io.Writer, tokens bool) Tracer {
	return &writerTracer{w: w, tokens: tokens}
}

func (t *writerTracer) Emit(e Event) {
	if e.Kind == EventToken && !t.tokens {
		return
	}
	fmt.Fprintf(t.w, "trace: %s\n", e)
}
