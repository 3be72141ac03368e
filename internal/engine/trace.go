// Package engine evaluates box-cricket scoring rules. Every function is
// pure over its inputs: the same ball log always produces the same score
// and stats, which is what lets the speculative client path and the
// authoritative server path share one implementation.
package engine

// Tracer receives rule-evaluation events. Implementations must not
// influence results; the hook exists for debugging and observability only.
type Tracer interface {
	Trace(event string, kv map[string]any)
}

// NopTracer discards all events.
type NopTracer struct{}

// Trace implements Tracer.
func (NopTracer) Trace(string, map[string]any) {}

func trace(t Tracer, event string, kv map[string]any) {
	if t != nil {
		t.Trace(event, kv)
	}
}
