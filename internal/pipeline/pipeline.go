// Package pipeline orchestrates the complete check process: load a claim
// document, evaluate every claim concurrently, and assemble the report.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deorlovnis/popping-lab/internal/cache"
	"github.com/deorlovnis/popping-lab/internal/claimfile"
	"github.com/deorlovnis/popping-lab/internal/model"
	"github.com/deorlovnis/popping-lab/internal/runner"
	"github.com/deorlovnis/popping-lab/internal/summary"
	"github.com/deorlovnis/popping-lab/veritas"
)

// Pipeline runs claim documents through verification and rendering
type Pipeline struct {
	verifier *veritas.Verifier
	store    cache.Store // nil when caching is disabled
	renderer *Renderer
	config   *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var store cache.Store
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".veritas", "cache")
			}
		}
		if dir != "" {
			store = cache.NewLayeredStore(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	return &Pipeline{
		verifier: veritas.NewVerifierWithOptions(veritas.Options{
			Atol: cfg.Tolerance.Atol,
			Rtol: cfg.Tolerance.Rtol,
		}),
		store:    store,
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}
}

// CheckFile loads a claim document plus an optional evidence file and
// evaluates every claim
func (p *Pipeline) CheckFile(ctx context.Context, claimsPath, evidencePath string) (*model.Report, error) {
	doc, err := claimfile.Load(claimsPath)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}

	var evidence *claimfile.EvidenceDocument
	if evidencePath != "" {
		evidence, err = claimfile.LoadEvidence(evidencePath)
		if err != nil {
			return nil, fmt.Errorf("load evidence: %w", err)
		}
	}

	return p.Check(ctx, claimsPath, doc, evidence)
}

// Check evaluates every claim in the document against the evidence and
// assembles the report. Claim order in the report matches document order
// regardless of completion order.
func (p *Pipeline) Check(ctx context.Context, subject string, doc *claimfile.Document, evidence *claimfile.EvidenceDocument) (*model.Report, error) {
	type compiled struct {
		spec     *claimfile.ClaimSpec
		truth    veritas.Truth
		bindings map[string]any
		key      string
	}

	resultsByID := make(map[string]model.ClaimResult, len(doc.Claims))
	var pending []compiled

	for i := range doc.Claims {
		spec := &doc.Claims[i]
		truth, err := spec.Truth()
		if err != nil {
			return nil, fmt.Errorf("claim %s: %w", spec.ID, err)
		}

		bindings := evidence.For(spec.ID)
		key := ""
		if p.store != nil {
			key = cache.Key(p.cacheDescriptor(spec), bindings)
			if key != "" {
				if hit, found := p.store.Get(key); found {
					cached := *hit
					cached.Cached = true
					resultsByID[spec.ID] = cached
					if p.config.Output.Verbose {
						fmt.Fprintf(os.Stderr, "[pipeline] cache hit: %s\n", spec.ID)
					}
					continue
				}
			}
		}

		pending = append(pending, compiled{spec: spec, truth: truth, bindings: bindings, key: key})
	}

	if len(pending) > 0 {
		pool := runner.NewPool(p.config.Workers)
		pool.Start()
		defer pool.Shutdown()

		for _, c := range pending {
			pool.Submit(&runner.EvalJob{
				ID:       c.spec.ID,
				Truth:    c.truth,
				Verifier: p.verifier,
				Bindings: c.bindings,
			})
		}

		keys := make(map[string]string, len(pending))
		specs := make(map[string]*claimfile.ClaimSpec, len(pending))
		for _, c := range pending {
			keys[c.spec.ID] = c.key
			specs[c.spec.ID] = c.spec
		}

		for _, raw := range pool.Wait() {
			res, ok := raw.(*runner.EvalResult)
			if !ok {
				continue
			}
			if res.Err != nil {
				return nil, fmt.Errorf("evaluate %s: %w", res.ID, res.Err)
			}

			spec := specs[res.ID]
			cr := model.ClaimResult{
				ID:        res.ID,
				Statement: spec.Statement,
				Kind:      spec.Kind,
				Verdict:   string(res.Result.Verdict),
				Reasoning: res.Result.Reasoning,
				Evidence:  res.Result.Evidence,
			}
			resultsByID[res.ID] = cr

			if p.store != nil && keys[res.ID] != "" {
				stored := cr
				if err := p.store.Set(keys[res.ID], &stored, 0); err != nil && p.config.Output.Verbose {
					fmt.Fprintf(os.Stderr, "[pipeline] cache write failed: %v\n", err)
				}
			}
		}
	}

	claims := make([]model.ClaimResult, 0, len(doc.Claims))
	for i := range doc.Claims {
		if cr, ok := resultsByID[doc.Claims[i].ID]; ok {
			claims = append(claims, cr)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &model.Report{
		Subject:    subject,
		CheckedAt:  time.Now().UTC(),
		Claims:     claims,
		Summary:    summary.Summarize(claims),
		Principles: model.DefaultPrinciples(),
	}, nil
}

// claimDescriptor is the cache identity of one evaluation: the complete
// claim spec plus the tolerances the verifier was built with. Two claims
// that differ in any parameter or tolerance hash to different keys.
type claimDescriptor struct {
	Spec *claimfile.ClaimSpec `json:"spec"`
	Atol float64              `json:"atol"`
	Rtol float64              `json:"rtol"`
}

func (p *Pipeline) cacheDescriptor(spec *claimfile.ClaimSpec) claimDescriptor {
	return claimDescriptor{
		Spec: spec,
		Atol: p.config.Tolerance.Atol,
		Rtol: p.config.Tolerance.Rtol,
	}
}

// RenderReport renders the report to the configured outputs and prints the
// summary to stdout
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
