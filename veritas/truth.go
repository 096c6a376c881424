// Package veritas implements a falsification-verification engine: typed
// falsifiable claims (truths) are evaluated against bound evidence and
// produce a KILLED / SURVIVED / UNCERTAIN verdict with an explanation.
//
// A truth never decides itself; construction only validates that the claim
// is well-formed. Evaluation happens in the Verifier, which always
// terminates with a verdict and never raises for missing or mismatched
// evidence.
package veritas

import "fmt"

// Kind identifies the truth type of a claim
type Kind string

const (
	KindAnalytic      Kind = "analytic"      // Equality claims: ∃x: lhs ≠ rhs
	KindModal         Kind = "modal"         // Necessity claims: find a state where ¬P
	KindEmpirical     Kind = "empirical"     // Observation claims: observation contradicts
	KindProbabilistic Kind = "probabilistic" // Threshold claims: metric violates relation
)

// Truth is any falsifiable statement. Implementations are immutable after
// construction; the Verifier dispatches on the concrete type.
type Truth interface {
	// Statement returns the human-readable claim text.
	Statement() string

	// Kind returns the truth type.
	Kind() Kind

	// Falsify returns the falsification form: the condition that, if
	// observed, kills the claim.
	Falsify() Form
}

// Form describes a falsification condition
type Form struct {
	Description string   `json:"description"`     // What satisfies this form
	Needs       []string `json:"needs,omitempty"` // Evidence names that must be bound
}

// ConfigError reports a malformed truth at construction time. It is the
// only error path in the engine that represents a programmer mistake;
// evaluation problems are returned as UNCERTAIN verdicts instead.
type ConfigError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s truth: %s: %s", e.Kind, e.Field, e.Reason)
}

// Analytic is an equality claim, falsified by finding lhs ≠ rhs
type Analytic struct {
	statement string
	lhs       string
	rhs       any
}

// NewAnalytic creates an analytic truth. lhs names the evidence binding
// holding the computed value; rhs is the expected value.
func NewAnalytic(statement, lhs string, rhs any) (*Analytic, error) {
	if lhs == "" {
		return nil, &ConfigError{Kind: KindAnalytic, Field: "lhs", Reason: "binding name must not be empty"}
	}
	return &Analytic{statement: statement, lhs: lhs, rhs: rhs}, nil
}

func (t *Analytic) Statement() string { return t.statement }
func (t *Analytic) Kind() Kind        { return KindAnalytic }

func (t *Analytic) Falsify() Form {
	return Form{
		Description: fmt.Sprintf("find %s where %s != %v", t.lhs, t.lhs, t.rhs),
		Needs:       []string{t.lhs},
	}
}

// Predicate is a boolean-valued check over a single bound value. A predicate
// that panics during evaluation yields an UNCERTAIN verdict, not a crash.
type Predicate func(value any) bool

// Modal is a necessity claim: an invariant that must hold in every state.
// A single evaluation checks one state sample; exhaustive coverage is the
// caller's job via repeated evaluation (see runner.Fuzzer).
type Modal struct {
	statement string
	stateVar  string
	invariant Predicate
}

// NewModal creates a modal truth. stateVar defaults to "state" when empty.
func NewModal(statement, stateVar string, invariant Predicate) (*Modal, error) {
	if invariant == nil {
		return nil, &ConfigError{Kind: KindModal, Field: "invariant", Reason: "predicate must not be nil"}
	}
	if stateVar == "" {
		stateVar = "state"
	}
	return &Modal{statement: statement, stateVar: stateVar, invariant: invariant}, nil
}

func (t *Modal) Statement() string { return t.statement }
func (t *Modal) Kind() Kind        { return KindModal }

func (t *Modal) Falsify() Form {
	return Form{
		Description: fmt.Sprintf("find %s where the invariant does not hold", t.stateVar),
		Needs:       []string{t.stateVar},
	}
}

// Empirical is an observation-grounded claim, falsified by an observation
// that contradicts it.
type Empirical struct {
	statement      string
	observationVar string
	expected       Predicate
	contradiction  string
}

// NewEmpirical creates an empirical truth. expected returns true when the
// observation does not contradict the claim. observationVar defaults to
// "observation" when empty; contradiction is optional reasoning text used
// when the claim is killed.
func NewEmpirical(statement, observationVar string, expected Predicate, contradiction string) (*Empirical, error) {
	if expected == nil {
		return nil, &ConfigError{Kind: KindEmpirical, Field: "expected", Reason: "predicate must not be nil"}
	}
	if observationVar == "" {
		observationVar = "observation"
	}
	return &Empirical{
		statement:      statement,
		observationVar: observationVar,
		expected:       expected,
		contradiction:  contradiction,
	}, nil
}

func (t *Empirical) Statement() string { return t.statement }
func (t *Empirical) Kind() Kind        { return KindEmpirical }

func (t *Empirical) Falsify() Form {
	desc := t.contradiction
	if desc == "" {
		desc = fmt.Sprintf("find %s that contradicts the claim", t.observationVar)
	}
	return Form{Description: desc, Needs: []string{t.observationVar}}
}

// Direction is the relation a probabilistic claim requires between its
// metric and threshold. It encodes the survival relation, not the
// falsification relation: "accuracy > 0.6" survives when metric > threshold.
type Direction string

const (
	DirGT  Direction = ">"
	DirGTE Direction = ">="
	DirLT  Direction = "<"
	DirLTE Direction = "<="
	DirEQ  Direction = "=="
)

// ParseDirection parses a direction token. "=" is accepted as an alias
// for "==".
func ParseDirection(token string) (Direction, error) {
	switch token {
	case ">":
		return DirGT, nil
	case ">=":
		return DirGTE, nil
	case "<":
		return DirLT, nil
	case "<=":
		return DirLTE, nil
	case "==", "=":
		return DirEQ, nil
	}
	return "", &ConfigError{Kind: KindProbabilistic, Field: "direction", Reason: fmt.Sprintf("unknown token %q", token)}
}

// Probabilistic is a threshold claim over a named numeric metric
type Probabilistic struct {
	statement string
	metric    string
	threshold float64
	direction Direction
}

// NewProbabilistic creates a probabilistic truth. The direction must be one
// of >, >=, <, <=, == (or the = alias) and the threshold must be a number.
func NewProbabilistic(statement, metric string, threshold float64, direction string) (*Probabilistic, error) {
	if metric == "" {
		return nil, &ConfigError{Kind: KindProbabilistic, Field: "metric", Reason: "metric name must not be empty"}
	}
	if threshold != threshold { // NaN
		return nil, &ConfigError{Kind: KindProbabilistic, Field: "threshold", Reason: "threshold must be a number"}
	}
	dir, err := ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	return &Probabilistic{statement: statement, metric: metric, threshold: threshold, direction: dir}, nil
}

func (t *Probabilistic) Statement() string { return t.statement }
func (t *Probabilistic) Kind() Kind        { return KindProbabilistic }

func (t *Probabilistic) Falsify() Form {
	return Form{
		Description: fmt.Sprintf("find %s where not (%s %s %v)", t.metric, t.metric, t.direction, t.threshold),
		Needs:       []string{t.metric},
	}
}
