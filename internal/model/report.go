package model

import "time"

// Report is the complete output of checking a claim document. The schema is
// what surrounding tooling serializes into claims.yaml-style artifacts.
type Report struct {
	Subject   string    `json:"subject" yaml:"subject"` // Claim document path or label
	CheckedAt time.Time `json:"checked_at" yaml:"checked_at"`

	Claims []ClaimResult `json:"claims" yaml:"claims"`

	Summary    Summary    `json:"summary" yaml:"summary"`
	Principles Principles `json:"principles" yaml:"principles"`
}

// ClaimResult is the serialized outcome of one claim evaluation
type ClaimResult struct {
	ID        string         `json:"id" yaml:"id"`
	Statement string         `json:"statement" yaml:"statement"`
	Kind      string         `json:"kind" yaml:"kind"`
	Verdict   string         `json:"verdict" yaml:"verdict"` // KILLED, SURVIVED, UNCERTAIN
	Reasoning string         `json:"reasoning" yaml:"reasoning"`
	Evidence  map[string]any `json:"evidence,omitempty" yaml:"evidence,omitempty"` // Snapshot used for the verdict
	Cached    bool           `json:"cached,omitempty" yaml:"cached,omitempty"`     // Served from the verdict cache
}

// Summary aggregates verdicts with diagnostic signals
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Killed    int `json:"killed" yaml:"killed"`
	Survived  int `json:"survived" yaml:"survived"`
	Uncertain int `json:"uncertain" yaml:"uncertain"`

	Index      int      `json:"index" yaml:"index"`           // Survival index (0-100)
	Confidence string   `json:"confidence" yaml:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals" yaml:"signals"`
}

// Signal is a diagnostic observation with transparent data
type Signal struct {
	Type        SignalType     `json:"type" yaml:"type"`
	Severity    SignalSeverity `json:"severity" yaml:"severity"`
	Description string         `json:"description" yaml:"description"`
	Data        map[string]any `json:"data,omitempty" yaml:"data,omitempty"` // Inputs and formulas behind the signal
}

// SignalType classifies diagnostic signals
type SignalType string

const (
	SignalSurvivalRate  SignalType = "survival_rate"  // Share of claims that survived
	SignalKilledClaims  SignalType = "killed_claims"  // Falsified claims present
	SignalUncertainty   SignalType = "uncertainty"    // Share of inconclusive verdicts
	SignalEmptyDocument SignalType = "empty_document" // Nothing to evaluate
)

// SignalSeverity indicates the importance of a signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// Principles documents the engine's ground rules as applied to this report
type Principles struct {
	NonNormative  bool `json:"non_normative" yaml:"non_normative"`   // Reports falsification outcomes, not truth
	Transparent   bool `json:"transparent" yaml:"transparent"`       // Every verdict carries its reasoning
	Deterministic bool `json:"deterministic" yaml:"deterministic"`   // Same claim + evidence always yields the same verdict
}

// DefaultPrinciples returns the standard principles
func DefaultPrinciples() Principles {
	return Principles{
		NonNormative:  true,
		Transparent:   true,
		Deterministic: true,
	}
}
