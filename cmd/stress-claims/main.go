// Stress program to exercise the fuzzer against hand-built claims.
// This shows counterexample hunting and tolerance behavior working.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/deorlovnis/popping-lab/internal/runner"
	"github.com/deorlovnis/popping-lab/veritas"
)

func main() {
	fmt.Println("=== Claim Fuzzing Stress Test ===")
	fmt.Println()

	verifier := veritas.NewVerifier()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cases := []struct {
		name  string
		truth veritas.Truth
		gen   runner.Generator
	}{
		{
			name:  "balance never goes negative (true invariant)",
			truth: must(veritas.NewModal("balance stays non-negative", "balance", func(v any) bool { return v.(float64) >= 0 })),
			gen: func(sample int) map[string]any {
				rng := rand.New(rand.NewSource(int64(sample)))
				return map[string]any{"balance": rng.Float64() * 1000}
			},
		},
		{
			name:  "latency below 100ms (falsifiable)",
			truth: must(veritas.Threshold("p99 latency under 100ms", "latency_ms", 100, "<")),
			gen: func(sample int) map[string]any {
				rng := rand.New(rand.NewSource(int64(sample)))
				// Mostly fast, occasionally slow. The fuzzer should find a kill.
				latency := rng.Float64() * 90
				if rng.Float64() < 0.01 {
					latency += 50
				}
				return map[string]any{"latency_ms": latency}
			},
		},
		{
			name:  "checksum matches (missing evidence)",
			truth: must(veritas.Equality("checksum matches expected", "checksum", "abc123")),
			gen: func(sample int) map[string]any {
				return map[string]any{"digest": "abc123"} // Wrong name on purpose
			},
		},
	}

	for _, tc := range cases {
		fmt.Printf("Fuzzing: %s\n", tc.name)
		fmt.Println(strings.Repeat("-", 60))

		fuzzer := runner.NewFuzzer(tc.truth, verifier, 8)
		outcome := fuzzer.Run(ctx, 10_000, tc.gen)

		if outcome.Falsified() {
			fmt.Printf("  ✗ KILLED at sample %d of %d\n", outcome.FirstKillSample, outcome.Samples)
			fmt.Printf("     %s\n", outcome.FirstKill.Reasoning)
			for name, value := range outcome.FirstKill.Evidence {
				fmt.Printf("     %s = %v\n", name, value)
			}
		} else if outcome.Uncertain == outcome.Samples {
			fmt.Printf("  ? UNCERTAIN for all %d samples\n", outcome.Samples)
		} else {
			fmt.Printf("  ✓ survived %d samples (%d uncertain, %d failures)\n",
				outcome.Samples, outcome.Uncertain, outcome.Failures)
		}
		fmt.Println()
	}

	fmt.Println("=== Stress Test Complete ===")
	fmt.Println()
	fmt.Println("Note: surviving a fuzz run is not proof. It means the claim")
	fmt.Println("withstood this neighborhood of evidence.")
}

func must(t veritas.Truth, err error) veritas.Truth {
	if err != nil {
		panic(err)
	}
	return t
}
