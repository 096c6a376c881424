package veritas

import "fmt"

// Builder helpers for common claim patterns. Equality, Invariant and
// Threshold are thin constructors; Grounding and Feasibility carry over
// older claim typologies that map onto the empirical kind.

// Equality builds an analytic truth: the value bound under lhs must equal
// rhs.
func Equality(statement, lhs string, rhs any) (*Analytic, error) {
	return NewAnalytic(statement, lhs, rhs)
}

// Invariant builds a modal truth over the default "state" variable
func Invariant(statement string, predicate Predicate) (*Modal, error) {
	return NewModal(statement, "state", predicate)
}

// Threshold builds a probabilistic truth from a direction token
func Threshold(statement, metric string, threshold float64, direction string) (*Probabilistic, error) {
	return NewProbabilistic(statement, metric, threshold, direction)
}

// EmpiricalClaim builds an empirical truth over the default "observation"
// variable
func EmpiricalClaim(statement string, expected Predicate, contradiction string) (*Empirical, error) {
	return NewEmpirical(statement, "observation", expected, contradiction)
}

// Grounding builds an empirical truth asserting that supporting evidence of
// the named type exists: the "support" binding must be non-nil and, for
// strings, non-empty.
func Grounding(claim, evidenceType string) (*Empirical, error) {
	return NewEmpirical(
		fmt.Sprintf("%s has %s support", claim, evidenceType),
		"support",
		func(v any) bool {
			if v == nil {
				return false
			}
			s, isString := v.(string)
			return !isString || s != ""
		},
		fmt.Sprintf("no %s found for: %s", evidenceType, claim),
	)
}

// Feasibility builds an empirical truth asserting that nothing blocks the
// claim: the "blocker" binding must be nil.
func Feasibility(statement string) (*Empirical, error) {
	return NewEmpirical(
		statement,
		"blocker",
		func(v any) bool { return v == nil },
		"a blocker was observed",
	)
}
