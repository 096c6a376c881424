package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/deorlovnis/popping-lab/internal/claimfile"
	"github.com/deorlovnis/popping-lab/internal/model"
	"github.com/deorlovnis/popping-lab/internal/runner"
	"github.com/deorlovnis/popping-lab/veritas"
	"github.com/spf13/cobra"
)

var (
	fuzzEvidence string
	fuzzSamples  int
	fuzzSeed     int64
	fuzzSpread   float64
	fuzzWorkers  int
)

// fuzzCmd represents the fuzz command
var fuzzCmd = &cobra.Command{
	Use:   "fuzz <claims.yaml>",
	Short: "Hunt for counterexamples by perturbing evidence",
	Long: `Fuzz evaluates each claim many times, randomly perturbing every
numeric binding around its value from the evidence file. A single
killed sample falsifies the claim and is printed as a counterexample.

This is a stronger test than check: a claim that survives fuzzing has
withstood a whole neighborhood of evidence, not one fixed sample.

Example:
  veritas fuzz claims.yaml --evidence evidence.yaml
  veritas fuzz claims.yaml --evidence evidence.yaml --samples 10000 --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runFuzz,
}

func init() {
	rootCmd.AddCommand(fuzzCmd)

	fuzzCmd.Flags().StringVarP(&fuzzEvidence, "evidence", "e", "", "evidence file with the base bindings to perturb")
	fuzzCmd.Flags().IntVar(&fuzzSamples, "samples", 0, "samples per claim (0 = config default)")
	fuzzCmd.Flags().Int64Var(&fuzzSeed, "seed", 0, "random seed (0 = time-based)")
	fuzzCmd.Flags().Float64Var(&fuzzSpread, "spread", 0, "relative perturbation applied to numeric bindings (0 = config default)")
	fuzzCmd.Flags().IntVar(&fuzzWorkers, "workers", 0, "evaluation workers (0 = config default)")
}

func runFuzz(cmd *cobra.Command, args []string) error {
	claimsPath := args[0]

	cfg := model.DefaultConfig()
	if fuzzSamples > 0 {
		cfg.Fuzz.Samples = fuzzSamples
	}
	if fuzzSeed != 0 {
		cfg.Fuzz.Seed = fuzzSeed
	}
	if fuzzSpread > 0 {
		cfg.Fuzz.Spread = fuzzSpread
	}
	if fuzzWorkers > 0 {
		cfg.Workers = fuzzWorkers
	}

	seed := cfg.Fuzz.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	doc, err := claimfile.Load(claimsPath)
	if err != nil {
		return fmt.Errorf("load claims: %w", err)
	}

	var evidence *claimfile.EvidenceDocument
	if fuzzEvidence != "" {
		evidence, err = claimfile.LoadEvidence(fuzzEvidence)
		if err != nil {
			return fmt.Errorf("load evidence: %w", err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Fuzzing: %s\n", claimsPath)
		fmt.Fprintf(os.Stderr, "Samples per claim: %d\n", cfg.Fuzz.Samples)
		fmt.Fprintf(os.Stderr, "Spread: %g, seed: %d\n", cfg.Fuzz.Spread, seed)
		fmt.Fprintln(os.Stderr)
	}

	verifier := veritas.NewVerifierWithOptions(veritas.Options{
		Atol: cfg.Tolerance.Atol,
		Rtol: cfg.Tolerance.Rtol,
	})

	falsified := 0
	for i := range doc.Claims {
		spec := &doc.Claims[i]
		truth, err := spec.Truth()
		if err != nil {
			return fmt.Errorf("claim %s: %w", spec.ID, err)
		}

		base := evidence.For(spec.ID)
		gen := perturbingGenerator(base, cfg.Fuzz.Spread, seed+int64(i))

		fuzzer := runner.NewFuzzer(truth, verifier, cfg.Workers)
		outcome := fuzzer.Run(context.Background(), cfg.Fuzz.Samples, gen)

		if outcome.Falsified() {
			falsified++
			fmt.Printf("✗ %s: killed at sample %d of %d\n", spec.ID, outcome.FirstKillSample, outcome.Samples)
			fmt.Printf("  %s\n", outcome.FirstKill.Reasoning)
			for name, value := range outcome.FirstKill.Evidence {
				fmt.Printf("  %s = %v\n", name, value)
			}
		} else {
			fmt.Printf("✓ %s: survived %d samples (%d uncertain)\n", spec.ID, outcome.Samples, outcome.Uncertain)
		}
	}

	if falsified > 0 {
		return fmt.Errorf("%d claims falsified", falsified)
	}
	return nil
}

// perturbingGenerator scales every numeric binding by a random factor in
// [1-spread, 1+spread]. Non-numeric bindings pass through unchanged. Each
// sample index always produces the same bindings for a given seed.
func perturbingGenerator(base map[string]any, spread float64, seed int64) runner.Generator {
	return func(sample int) map[string]any {
		rng := rand.New(rand.NewSource(seed + int64(sample)))
		out := make(map[string]any, len(base))
		for name, value := range base {
			if f, ok := toFloat(value); ok {
				factor := 1 + spread*(2*rng.Float64()-1)
				out[name] = f * factor
			} else {
				out[name] = value
			}
		}
		return out
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
