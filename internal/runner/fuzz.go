package runner

import (
	"context"
	"sort"

	"github.com/deorlovnis/popping-lab/veritas"
)

// Generator produces the bindings for one fuzz sample. It must be safe for
// concurrent calls; sample indices arrive in no particular order.
type Generator func(sample int) map[string]any

// Fuzzer drives a property loop: the same truth evaluated against many
// generated evidence sets. A single KILLED sample falsifies the claim.
type Fuzzer struct {
	truth    veritas.Truth
	verifier *veritas.Verifier
	workers  int
}

// NewFuzzer creates a fuzzer. A nil verifier uses the defaults.
func NewFuzzer(truth veritas.Truth, verifier *veritas.Verifier, workers int) *Fuzzer {
	if verifier == nil {
		verifier = veritas.NewVerifier()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Fuzzer{truth: truth, verifier: verifier, workers: workers}
}

// Outcome aggregates a fuzz run
type Outcome struct {
	Samples   int
	Killed    int
	Survived  int
	Uncertain int
	Failures  int // Harness errors, no verdict

	// FirstKill is the lowest-numbered killed sample, the counterexample a
	// caller would report.
	FirstKill       *veritas.Result
	FirstKillSample int
}

// Falsified reports whether any sample killed the claim
func (o *Outcome) Falsified() bool { return o.Killed > 0 }

// Run evaluates samples [0, n) through the worker pool. Workers drain the
// queue while samples are still being submitted, so the queue buffer never
// blocks the producer for long.
func (f *Fuzzer) Run(ctx context.Context, n int, gen Generator) *Outcome {
	pool := NewPool(f.workers)
	pool.Start()

	for i := 0; i < n; i++ {
		pool.Submit(&sampleJob{
			ctx:      ctx,
			sample:   i,
			truth:    f.truth,
			verifier: f.verifier,
			gen:      gen,
		})
	}

	outcome := &Outcome{Samples: n, FirstKillSample: -1}

	var kills []sampleKill
	for _, r := range pool.Wait() {
		sr := r.(*sampleResult)
		switch {
		case sr.err != nil:
			outcome.Failures++
		case sr.result.Verdict == veritas.Killed:
			outcome.Killed++
			kills = append(kills, sampleKill{sample: sr.sample, result: sr.result})
		case sr.result.Verdict == veritas.Survived:
			outcome.Survived++
		default:
			outcome.Uncertain++
		}
	}

	if len(kills) > 0 {
		sort.Slice(kills, func(i, j int) bool { return kills[i].sample < kills[j].sample })
		first := kills[0]
		outcome.FirstKill = &first.result
		outcome.FirstKillSample = first.sample
	}
	return outcome
}

type sampleKill struct {
	sample int
	result veritas.Result
}

// sampleJob evaluates one generated sample
type sampleJob struct {
	ctx      context.Context // Caller's context, checked alongside the pool's
	sample   int
	truth    veritas.Truth
	verifier *veritas.Verifier
	gen      Generator
}

type sampleResult struct {
	sample int
	result veritas.Result
	err    error
}

func (r *sampleResult) GetError() error { return r.err }

func (j *sampleJob) Execute(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return &sampleResult{sample: j.sample, err: ctx.Err()}
	case <-j.ctx.Done():
		return &sampleResult{sample: j.sample, err: j.ctx.Err()}
	default:
	}

	bindings := j.gen(j.sample)
	evidence := veritas.NewEvidence().BindAll(bindings)
	return &sampleResult{sample: j.sample, result: j.verifier.Verify(j.truth, evidence)}
}
