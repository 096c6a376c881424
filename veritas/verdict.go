package veritas

// Verdict is the outcome of a falsification attempt.
//
// KILLED: the falsification condition was met - the claim is false.
// SURVIVED: the condition was not met and the test was valid.
// UNCERTAIN: inconclusive - evidence missing, mismatched, or undecidable.
//
// "Could not be decided" stays inside the verdict set rather than becoming
// an error, so batch callers (fuzz loops, test runners) can keep iterating
// past inconclusive samples.
type Verdict string

const (
	Killed    Verdict = "KILLED"
	Survived  Verdict = "SURVIVED"
	Uncertain Verdict = "UNCERTAIN"
)

func (v Verdict) String() string { return string(v) }

// Result is the complete outcome of verifying one truth against one body of
// evidence. It is owned by the caller and never mutated after the Verifier
// returns it; Evidence holds a snapshot taken at evaluation time.
type Result struct {
	Verdict   Verdict        `json:"verdict"`
	Reasoning string         `json:"reasoning"` // Which form was checked and why it passed or failed
	Form      Form           `json:"form"`
	Evidence  map[string]any `json:"evidence"`
	Trace     []string       `json:"trace,omitempty"` // Step-by-step evaluation record
}

func (r Result) String() string {
	s := "Verdict: " + string(r.Verdict)
	if r.Reasoning != "" {
		s += "\nReasoning: " + r.Reasoning
	}
	return s
}
