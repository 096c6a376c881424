package veritas

import "errors"

// ErrScopeClosed is returned when a claim scope is used after it has
// produced its verification result.
var ErrScopeClosed = errors.New("claim scope closed")

// Claim is a scoped claim context: a bounded unit of work that accumulates
// evidence and runs exactly one verification when the scope closes.
//
//	c := veritas.Open(truth)
//	c.Bind("result", compute())
//	result, err := c.Close()
//
// A Claim belongs to a single goroutine.
type Claim struct {
	truth    Truth
	evidence *Evidence
	verifier *Verifier
	result   *Result
	closed   bool
}

// Open starts a claim scope with a default verifier
func Open(t Truth) *Claim {
	return OpenWith(t, NewVerifier())
}

// OpenWith starts a claim scope with an explicit verifier
func OpenWith(t Truth, v *Verifier) *Claim {
	return &Claim{truth: t, evidence: NewEvidence(), verifier: v}
}

// Bind adds one observation to the scope's evidence. Last write wins for
// repeated names. Returns ErrScopeClosed once the scope has closed.
func (c *Claim) Bind(name string, value any) error {
	if c.closed {
		return ErrScopeClosed
	}
	c.evidence.Bind(name, value)
	return nil
}

// BindAll merges observations into the scope's evidence
func (c *Claim) BindAll(values map[string]any) error {
	if c.closed {
		return ErrScopeClosed
	}
	c.evidence.BindAll(values)
	return nil
}

// Observe binds a value and returns it, so intermediate values can be
// captured inline:
//
//	total, err := c.Observe("total", sum(items))
func (c *Claim) Observe(name string, value any) (any, error) {
	if err := c.Bind(name, value); err != nil {
		return value, err
	}
	return value, nil
}

// Close ends the scope and runs the verification exactly once. A second
// Close returns ErrScopeClosed without re-verifying.
func (c *Claim) Close() (Result, error) {
	if c.closed {
		return Result{}, ErrScopeClosed
	}
	c.closed = true
	result := c.verifier.Verify(c.truth, c.evidence)
	c.result = &result
	return result, nil
}

// Result returns the verification result and whether the scope has produced
// one. An abandoned scope (body error in Run) has no result.
func (c *Claim) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// Run executes body inside a fresh claim scope and closes it afterwards.
// If body returns an error the scope is abandoned: the error propagates,
// no verification runs, and no verdict exists - a harness failure, outside
// the KILLED/SURVIVED/UNCERTAIN taxonomy. Panics in body propagate the same
// way.
func Run(t Truth, body func(c *Claim) error) (Result, error) {
	return RunWith(t, NewVerifier(), body)
}

// RunWith is Run with an explicit verifier
func RunWith(t Truth, v *Verifier, body func(c *Claim) error) (Result, error) {
	c := OpenWith(t, v)
	if err := body(c); err != nil {
		c.closed = true
		return Result{}, err
	}
	return c.Close()
}
