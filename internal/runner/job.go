package runner

import (
	"context"
	"fmt"

	"github.com/deorlovnis/popping-lab/veritas"
)

// GatherFunc produces evidence for one evaluation. Gatherers may reach out
// to external systems (the engine itself never does); rate limiting applies
// to them, not to the pure in-memory verification.
type GatherFunc func(ctx context.Context) (*veritas.Evidence, error)

// EvalJob verifies one truth against one body of evidence. Either Bindings
// or Gather supplies the evidence; Gather wins when both are set.
type EvalJob struct {
	ID       string
	Truth    veritas.Truth
	Verifier *veritas.Verifier

	Bindings map[string]any
	Gather   GatherFunc

	Limiter      *Limiter // Optional, applied before Gather
	GathererName string   // Rate-limit key, defaults to the job ID
}

// EvalResult is the outcome of one evaluation job. Err is a harness
// failure (cancelled context, broken gatherer) and carries no verdict;
// otherwise Result holds the complete verification outcome.
type EvalResult struct {
	ID     string
	Result veritas.Result
	Err    error
}

// GetError returns the harness error, if any
func (r *EvalResult) GetError() error { return r.Err }

// Execute runs the evaluation
func (j *EvalJob) Execute(ctx context.Context) Result {
	verifier := j.Verifier
	if verifier == nil {
		verifier = veritas.NewVerifier()
	}

	evidence := veritas.NewEvidence().BindAll(j.Bindings)
	if j.Gather != nil {
		if j.Limiter != nil {
			key := j.GathererName
			if key == "" {
				key = j.ID
			}
			if err := j.Limiter.Wait(ctx, key); err != nil {
				return &EvalResult{ID: j.ID, Err: fmt.Errorf("rate limit wait: %w", err)}
			}
		}

		gathered, err := j.Gather(ctx)
		if err != nil {
			return &EvalResult{ID: j.ID, Err: fmt.Errorf("gather evidence: %w", err)}
		}
		evidence = gathered
	}

	return &EvalResult{ID: j.ID, Result: verifier.Verify(j.Truth, evidence)}
}
