// Package claimfile reads YAML claim documents and evidence documents and
// turns claim specs into veritas truths. It is glue around the engine: the
// engine itself never touches files.
package claimfile

import (
	"fmt"
	"os"

	"github.com/deorlovnis/popping-lab/veritas"
	"gopkg.in/yaml.v3"
)

// Document is a parsed claim file
type Document struct {
	Claims []ClaimSpec `yaml:"claims"`
}

// ClaimSpec is one claim entry. Kind selects which parameter fields apply;
// decoding rejects specs whose kind-specific fields are malformed, so a bad
// file fails before any evaluation starts (configuration tier).
type ClaimSpec struct {
	ID        string `yaml:"id"`
	Statement string `yaml:"statement"`
	Kind      string `yaml:"kind"`

	// Analytic
	LHS string `yaml:"lhs,omitempty"`
	RHS any    `yaml:"rhs,omitempty"`

	// Modal
	Var       string         `yaml:"var,omitempty"`
	Invariant *InvariantSpec `yaml:"invariant,omitempty"`

	// Empirical
	Observation   string `yaml:"observation,omitempty"`
	Expect        string `yaml:"expect,omitempty"` // non_nil, nil, non_empty, equals
	Equals        any    `yaml:"equals,omitempty"`
	Contradiction string `yaml:"contradiction,omitempty"`

	// Probabilistic
	Metric    string   `yaml:"metric,omitempty"`
	Threshold *float64 `yaml:"threshold,omitempty"`
	Direction string   `yaml:"direction,omitempty"`
}

// InvariantSpec is a numeric invariant over the modal state variable:
// the state must satisfy "state <op> bound".
type InvariantSpec struct {
	Op    string  `yaml:"op"`
	Bound float64 `yaml:"bound"`
}

// Load reads and parses a claim file
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claim file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a claim document, assigns missing IDs (claim-1, claim-2, ...)
// and rejects duplicates and malformed specs.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse claim file: %w", err)
	}

	seen := make(map[string]bool, len(doc.Claims))
	for i := range doc.Claims {
		spec := &doc.Claims[i]
		if spec.ID == "" {
			spec.ID = fmt.Sprintf("claim-%d", i+1)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("duplicate claim id %q", spec.ID)
		}
		seen[spec.ID] = true

		// Surface malformed specs at load time.
		if _, err := spec.Truth(); err != nil {
			return nil, fmt.Errorf("claim %q: %w", spec.ID, err)
		}
	}
	return &doc, nil
}

// Truth converts the spec into a veritas truth
func (s *ClaimSpec) Truth() (veritas.Truth, error) {
	switch veritas.Kind(s.Kind) {
	case veritas.KindAnalytic:
		return veritas.NewAnalytic(s.Statement, s.LHS, s.RHS)

	case veritas.KindModal:
		if s.Invariant == nil {
			return nil, fmt.Errorf("modal claim needs an invariant")
		}
		predicate, err := compileInvariant(s.Invariant)
		if err != nil {
			return nil, err
		}
		return veritas.NewModal(s.Statement, s.Var, predicate)

	case veritas.KindEmpirical:
		predicate, err := compileExpect(s.Expect, s.Equals)
		if err != nil {
			return nil, err
		}
		return veritas.NewEmpirical(s.Statement, s.Observation, predicate, s.Contradiction)

	case veritas.KindProbabilistic:
		if s.Threshold == nil {
			return nil, fmt.Errorf("probabilistic claim needs a threshold")
		}
		return veritas.NewProbabilistic(s.Statement, s.Metric, *s.Threshold, s.Direction)
	}
	return nil, fmt.Errorf("unknown claim kind %q", s.Kind)
}

// compileInvariant builds a numeric state predicate. A non-numeric state
// makes the predicate panic with a descriptive message, which the verifier
// converts into an UNCERTAIN verdict.
func compileInvariant(spec *InvariantSpec) (veritas.Predicate, error) {
	dir, err := veritas.ParseDirection(spec.Op)
	if err != nil {
		return nil, fmt.Errorf("invariant op: %w", err)
	}
	bound := spec.Bound
	return func(state any) bool {
		return numericRelation(state, dir, bound)
	}, nil
}

func numericRelation(value any, dir veritas.Direction, bound float64) bool {
	n, ok := toFloat(value)
	if !ok {
		panic(fmt.Sprintf("state %v (%T) is not numeric", value, value))
	}
	switch dir {
	case veritas.DirGT:
		return n > bound
	case veritas.DirGTE:
		return n >= bound
	case veritas.DirLT:
		return n < bound
	case veritas.DirLTE:
		return n <= bound
	default:
		return n == bound
	}
}

// compileExpect builds an observation predicate from an expect token
func compileExpect(expect string, equals any) (veritas.Predicate, error) {
	switch expect {
	case "non_nil":
		return func(v any) bool { return v != nil }, nil
	case "nil":
		return func(v any) bool { return v == nil }, nil
	case "non_empty":
		return func(v any) bool {
			switch o := v.(type) {
			case nil:
				return false
			case string:
				return o != ""
			case []any:
				return len(o) > 0
			case map[string]any:
				return len(o) > 0
			}
			return true
		}, nil
	case "equals":
		return func(v any) bool { return looseEqual(v, equals) }, nil
	case "":
		return nil, fmt.Errorf("empirical claim needs an expect token")
	}
	return nil, fmt.Errorf("unknown expect token %q", expect)
}

// looseEqual compares YAML-decoded scalars: numbers numerically, everything
// else by direct comparison.
func looseEqual(a, b any) bool {
	an, aok := toFloat(a)
	bn, bok := toFloat(b)
	if aok && bok {
		return an == bn
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
