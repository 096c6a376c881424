package veritas

import (
	"errors"
	"fmt"
)

// Options tunes verification
type Options struct {
	Atol float64 // Absolute tolerance for numeric equality
	Rtol float64 // Relative tolerance for numeric equality

	// Strict treats UNCERTAIN as a failure in Check. It never changes the
	// verdict itself.
	Strict bool
}

// DefaultOptions returns the standard tolerances
func DefaultOptions() Options {
	return Options{Atol: 1e-9, Rtol: 1e-9}
}

// Verifier evaluates truths against evidence. Verification always
// terminates with one of the three verdicts; missing evidence, mismatched
// kinds, and panicking predicates all map to UNCERTAIN rather than errors.
//
// A Verifier is stateless and safe for concurrent use.
type Verifier struct {
	opts Options
}

// NewVerifier creates a verifier with default options
func NewVerifier() *Verifier {
	return NewVerifierWithOptions(DefaultOptions())
}

// NewVerifierWithOptions creates a verifier with explicit options. Zero
// tolerances are replaced with the defaults.
func NewVerifierWithOptions(opts Options) *Verifier {
	def := DefaultOptions()
	if opts.Atol == 0 {
		opts.Atol = def.Atol
	}
	if opts.Rtol == 0 {
		opts.Rtol = def.Rtol
	}
	return &Verifier{opts: opts}
}

// Verify evaluates a truth against evidence and returns a complete Result.
// Evaluating the same (truth, evidence) pair twice yields identical results.
func (v *Verifier) Verify(t Truth, ev *Evidence) Result {
	form := t.Falsify()
	result := Result{
		Verdict:  Uncertain,
		Form:     form,
		Evidence: ev.Snapshot(),
	}
	result.Trace = append(result.Trace,
		fmt.Sprintf("constructing falsification form for: %s", t.Statement()),
		fmt.Sprintf("falsification form: %s", form.Description),
		fmt.Sprintf("evidence bindings: %v", result.Evidence),
	)

	for _, name := range form.Needs {
		if _, ok := ev.Lookup(name); !ok {
			result.Reasoning = fmt.Sprintf("evidence not bound: %s", name)
			result.Trace = append(result.Trace, fmt.Sprintf("cannot evaluate: missing %s", name))
			return result
		}
	}

	switch tt := t.(type) {
	case *Analytic:
		v.verifyAnalytic(tt, ev, &result)
	case *Modal:
		v.verifyModal(tt, ev, &result)
	case *Empirical:
		v.verifyEmpirical(tt, ev, &result)
	case *Probabilistic:
		v.verifyProbabilistic(tt, ev, &result)
	default:
		result.Reasoning = fmt.Sprintf("unsupported truth type %T", t)
		result.Trace = append(result.Trace, "cannot evaluate: unknown truth type")
	}
	return result
}

func (v *Verifier) verifyAnalytic(t *Analytic, ev *Evidence, result *Result) {
	actual, _ := ev.Lookup(t.lhs)
	if equalValues(actual, t.rhs, v.opts.Atol, v.opts.Rtol) {
		result.Verdict = Survived
		result.Reasoning = "falsification condition not met with given evidence"
	} else {
		result.Verdict = Killed
		result.Reasoning = fmt.Sprintf("falsification condition met: %s (got %v)", result.Form.Description, actual)
	}
	result.Trace = append(result.Trace, fmt.Sprintf("compared %s=%v against expected %v", t.lhs, actual, t.rhs))
}

func (v *Verifier) verifyModal(t *Modal, ev *Evidence, result *Result) {
	state, _ := ev.Lookup(t.stateVar)
	holds, err := callPredicate(t.invariant, state)
	if err != nil {
		result.Reasoning = fmt.Sprintf("invariant evaluation failed: %v", err)
		result.Trace = append(result.Trace, "cannot evaluate: invariant predicate failed")
		return
	}
	if holds {
		result.Verdict = Survived
		result.Reasoning = fmt.Sprintf("invariant holds for %s=%v", t.stateVar, state)
	} else {
		result.Verdict = Killed
		result.Reasoning = fmt.Sprintf("falsification condition met: invariant violated at %s=%v", t.stateVar, state)
	}
	result.Trace = append(result.Trace, fmt.Sprintf("invariant(%v) = %v", state, holds))
}

func (v *Verifier) verifyEmpirical(t *Empirical, ev *Evidence, result *Result) {
	observation, _ := ev.Lookup(t.observationVar)
	ok, err := callPredicate(t.expected, observation)
	if err != nil {
		result.Reasoning = fmt.Sprintf("observation check failed: %v", err)
		result.Trace = append(result.Trace, "cannot evaluate: expected predicate failed")
		return
	}
	if ok {
		result.Verdict = Survived
		result.Reasoning = "observation does not contradict the claim"
	} else {
		result.Verdict = Killed
		if t.contradiction != "" {
			result.Reasoning = t.contradiction
		} else {
			result.Reasoning = fmt.Sprintf("falsification condition met: %s=%v contradicts the claim", t.observationVar, observation)
		}
	}
	result.Trace = append(result.Trace, fmt.Sprintf("expected(%v) = %v", observation, ok))
}

func (v *Verifier) verifyProbabilistic(t *Probabilistic, ev *Evidence, result *Result) {
	raw, _ := ev.Lookup(t.metric)
	metric, ok := numericValue(raw)
	if !ok {
		result.Reasoning = fmt.Sprintf("metric %s is not numeric (got %T)", t.metric, raw)
		result.Trace = append(result.Trace, "cannot evaluate: non-numeric metric")
		return
	}
	if relationHolds(metric, t.threshold, t.direction, v.opts.Atol, v.opts.Rtol) {
		result.Verdict = Survived
		result.Reasoning = fmt.Sprintf("%s=%v satisfies %s %v", t.metric, metric, t.direction, t.threshold)
	} else {
		result.Verdict = Killed
		result.Reasoning = fmt.Sprintf("falsification condition met: %s=%v violates %s %v", t.metric, metric, t.direction, t.threshold)
	}
	result.Trace = append(result.Trace, fmt.Sprintf("checked %v %s %v", metric, t.direction, t.threshold))
}

// callPredicate runs a caller-supplied predicate, converting panics into
// errors so a flawed predicate produces UNCERTAIN instead of crashing the
// evaluation loop.
func callPredicate(p Predicate, value any) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predicate panicked: %v", r)
		}
	}()
	return p(value), nil
}

// ErrClaimKilled and ErrClaimUncertain classify Check failures
var (
	ErrClaimKilled    = errors.New("claim killed")
	ErrClaimUncertain = errors.New("claim uncertain")
)

// Check verifies a truth and converts the verdict into a test-style error:
// nil when the claim survives, ErrClaimKilled when it is killed, and
// ErrClaimUncertain when it is uncertain and the verifier is strict.
func (v *Verifier) Check(t Truth, ev *Evidence) (Result, error) {
	result := v.Verify(t, ev)
	switch {
	case result.Verdict == Killed:
		return result, fmt.Errorf("%w: %s: %s", ErrClaimKilled, t.Statement(), result.Reasoning)
	case result.Verdict == Uncertain && v.opts.Strict:
		return result, fmt.Errorf("%w: %s: %s", ErrClaimUncertain, t.Statement(), result.Reasoning)
	}
	return result, nil
}

// Falsify verifies a truth against evidence with a default verifier
func Falsify(t Truth, ev *Evidence) Result {
	return NewVerifier().Verify(t, ev)
}

// QuickCheck evaluates a truth against raw bindings and returns just the
// verdict. Convenience for simple cases.
func QuickCheck(t Truth, bindings map[string]any) Verdict {
	return Falsify(t, NewEvidence().BindAll(bindings)).Verdict
}
