package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/deorlovnis/popping-lab/internal/model"
	"github.com/deorlovnis/popping-lab/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	evidencePath string
	outJSON      string
	outMD        string
	checkTimeout time.Duration
	workers      int
	noCache      bool
	noFooter     bool
	strict       bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claims.yaml>",
	Short: "Evaluate a claim document against evidence",
	Long: `Check loads a claim document, binds evidence to each claim, and
attempts to falsify every claim:
- KILLED: the evidence contradicts the claim
- SURVIVED: the claim withstood this evidence
- UNCERTAIN: the question could not be decided

The exit code is nonzero when any claim is killed, so check can gate
CI pipelines.

Example:
  veritas check claims.yaml
  veritas check claims.yaml --evidence evidence.yaml --json report.json
  veritas check claims.yaml --evidence evidence.yaml --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&evidencePath, "evidence", "e", "", "evidence file (claims without evidence come out UNCERTAIN)")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "evaluation workers (0 = config default)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the verdict cache (force fresh evaluation)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&strict, "strict", false, "treat UNCERTAIN verdicts as failures")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claimsPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claimsPath)
		if evidencePath != "" {
			fmt.Fprintf(os.Stderr, "Evidence: %s\n", evidencePath)
		}
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	if workers > 0 {
		cfg.Workers = workers
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	p := pipeline.NewPipeline(cfg)

	report, err := p.CheckFile(ctx, claimsPath, evidencePath)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Evaluated %d claims\n", len(report.Claims))
		fmt.Fprintf(os.Stderr, "✓ Survival index: %d/100\n", report.Summary.Index)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if report.Summary.Killed > 0 {
		return fmt.Errorf("%d claims killed", report.Summary.Killed)
	}
	if strict && report.Summary.Uncertain > 0 {
		return fmt.Errorf("%d claims uncertain (strict mode)", report.Summary.Uncertain)
	}
	return nil
}
