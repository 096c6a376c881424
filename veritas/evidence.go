package veritas

import (
	"errors"
	"fmt"
)

// ErrMissingEvidence signals that a required binding is absent. The Verifier
// maps it to an UNCERTAIN verdict; it never escapes Verify.
var ErrMissingEvidence = errors.New("evidence not bound")

// Evidence accumulates named observations for one evaluation pass.
// Rebinding an existing name replaces the value (last write wins); this is
// how incremental binding across multiple observation steps is expected to
// work, not an error.
//
// Evidence is not safe for concurrent mutation. Evaluations that run in
// parallel should each construct their own Evidence.
type Evidence struct {
	bindings map[string]any

	Source   string         // How the evidence was gathered (optional)
	Metadata map[string]any // Additional context, never consulted by the verifier
}

// NewEvidence creates empty evidence
func NewEvidence() *Evidence {
	return &Evidence{bindings: make(map[string]any)}
}

// Bind records one observation, replacing any previous value under the same
// name. Returns the receiver for chaining.
func (e *Evidence) Bind(name string, value any) *Evidence {
	if e.bindings == nil {
		e.bindings = make(map[string]any)
	}
	e.bindings[name] = value
	return e
}

// BindAll merges a set of observations, last write wins
func (e *Evidence) BindAll(values map[string]any) *Evidence {
	for name, value := range values {
		e.Bind(name, value)
	}
	return e
}

// Lookup returns a bound value and whether it was present
func (e *Evidence) Lookup(name string) (any, bool) {
	if e == nil || e.bindings == nil {
		return nil, false
	}
	value, ok := e.bindings[name]
	return value, ok
}

// Value returns a bound value, or an error wrapping ErrMissingEvidence
// naming the absent binding.
func (e *Evidence) Value(name string) (any, error) {
	value, ok := e.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingEvidence, name)
	}
	return value, nil
}

// Len returns the number of bindings
func (e *Evidence) Len() int {
	if e == nil {
		return 0
	}
	return len(e.bindings)
}

// Snapshot returns a copy of the bindings. Results hold a snapshot so the
// audit record stays stable even if the caller keeps binding afterwards.
func (e *Evidence) Snapshot() map[string]any {
	out := make(map[string]any, e.Len())
	if e != nil {
		for name, value := range e.bindings {
			out[name] = value
		}
	}
	return out
}
