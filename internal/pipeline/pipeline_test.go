package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deorlovnis/popping-lab/internal/model"
)

const checkClaims = `
claims:
  - id: addition
    statement: "add(2,2) equals 4"
    kind: analytic
    lhs: result
    rhs: 4
  - id: balance
    statement: "balance stays non-negative"
    kind: modal
    var: balance
    invariant:
      op: ">="
      bound: 0
  - id: accuracy
    statement: "model accuracy above 0.6"
    kind: probabilistic
    metric: accuracy
    threshold: 0.6
    direction: ">"
`

const checkEvidence = `
bindings:
  result: 4
  balance: 100
claims:
  accuracy:
    accuracy: 0.42
`

func writeFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	claimsPath := filepath.Join(dir, "claims.yaml")
	evidencePath := filepath.Join(dir, "evidence.yaml")
	if err := os.WriteFile(claimsPath, []byte(checkClaims), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(evidencePath, []byte(checkEvidence), 0644); err != nil {
		t.Fatal(err)
	}
	return claimsPath, evidencePath
}

func testConfig(t *testing.T, cacheEnabled bool) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Workers = 2
	cfg.Cache.Enabled = cacheEnabled
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	return cfg
}

func TestCheckFile(t *testing.T) {
	claimsPath, evidencePath := writeFiles(t)
	p := NewPipeline(testConfig(t, false))

	report, err := p.CheckFile(context.Background(), claimsPath, evidencePath)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}

	if len(report.Claims) != 3 {
		t.Fatalf("expected 3 claim results, got %d", len(report.Claims))
	}

	// Report order follows document order, not completion order.
	wantOrder := []string{"addition", "balance", "accuracy"}
	wantVerdict := []string{"SURVIVED", "SURVIVED", "KILLED"}
	for i, c := range report.Claims {
		if c.ID != wantOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantOrder[i], c.ID)
		}
		if c.Verdict != wantVerdict[i] {
			t.Errorf("claim %s: expected %s, got %s (%s)", c.ID, wantVerdict[i], c.Verdict, c.Reasoning)
		}
	}

	if report.Summary.Killed != 1 || report.Summary.Survived != 2 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
	if !report.Principles.NonNormative {
		t.Error("expected non-normative principles")
	}
}

func TestCheckFile_MissingEvidenceIsUncertain(t *testing.T) {
	claimsPath, _ := writeFiles(t)
	p := NewPipeline(testConfig(t, false))

	report, err := p.CheckFile(context.Background(), claimsPath, "")
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	for _, c := range report.Claims {
		if c.Verdict != "UNCERTAIN" {
			t.Errorf("claim %s: expected UNCERTAIN without evidence, got %s", c.ID, c.Verdict)
		}
	}
}

func TestCheckFile_CacheHitsOnSecondRun(t *testing.T) {
	claimsPath, evidencePath := writeFiles(t)
	cfg := testConfig(t, true)

	first, err := NewPipeline(cfg).CheckFile(context.Background(), claimsPath, evidencePath)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	for _, c := range first.Claims {
		if c.Cached {
			t.Errorf("claim %s: unexpected cache hit on first run", c.ID)
		}
	}

	// Fresh pipeline over the same cache dir: disk layer serves everything.
	second, err := NewPipeline(cfg).CheckFile(context.Background(), claimsPath, evidencePath)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for _, c := range second.Claims {
		if !c.Cached {
			t.Errorf("claim %s: expected cache hit on second run", c.ID)
		}
		if c.Verdict == "" {
			t.Errorf("claim %s: cached result lost its verdict", c.ID)
		}
	}
}

func TestCheckFile_CacheDistinguishesClaimParameters(t *testing.T) {
	// Two claims identical except for the invariant bound, checked back to
	// back over the same cache dir. The second must be evaluated on its own
	// terms, not served the first claim's verdict.
	dir := t.TempDir()
	evidencePath := filepath.Join(dir, "evidence.yaml")
	if err := os.WriteFile(evidencePath, []byte("bindings:\n  state: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	const claimTemplate = `
claims:
  - id: positive-state
    statement: "state is positive enough"
    kind: modal
    var: state
    invariant:
      op: ">"
      bound: %d
`
	looseClaims := filepath.Join(dir, "loose.yaml")
	strictClaims := filepath.Join(dir, "strict.yaml")
	if err := os.WriteFile(looseClaims, []byte(fmt.Sprintf(claimTemplate, 0)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(strictClaims, []byte(fmt.Sprintf(claimTemplate, 10)), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t, true)

	first, err := NewPipeline(cfg).CheckFile(context.Background(), looseClaims, evidencePath)
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if first.Claims[0].Verdict != "SURVIVED" {
		t.Fatalf("state=5 satisfies > 0, got %s", first.Claims[0].Verdict)
	}

	second, err := NewPipeline(cfg).CheckFile(context.Background(), strictClaims, evidencePath)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if second.Claims[0].Verdict != "KILLED" {
		t.Errorf("state=5 violates > 10, got %s (cached=%v)", second.Claims[0].Verdict, second.Claims[0].Cached)
	}
	if second.Claims[0].Cached {
		t.Error("a claim with different parameters must not hit the cache")
	}
}

func TestCheckFile_BadClaimFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.yaml")
	if err := os.WriteFile(path, []byte("claims:\n  - statement: x\n    kind: warp\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewPipeline(testConfig(t, false)).CheckFile(context.Background(), path, "")
	if err == nil {
		t.Fatal("expected error for unknown claim kind")
	}
}

func TestRenderer_Files(t *testing.T) {
	claimsPath, evidencePath := writeFiles(t)
	p := NewPipeline(testConfig(t, false))

	report, err := p.CheckFile(context.Background(), claimsPath, evidencePath)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	r := NewRenderer(true)

	if err := r.RenderJSON(report, jsonPath); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if err := r.RenderMarkdown(report, mdPath); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(md)
	if !strings.Contains(text, "Survival index") {
		t.Error("markdown missing survival index")
	}
	if !strings.Contains(text, "accuracy") {
		t.Error("markdown missing claim section")
	}
	if !strings.Contains(text, "not been proven") {
		t.Error("markdown missing footer")
	}

	noFooter := filepath.Join(dir, "nofooter.md")
	if err := NewRenderer(false).RenderMarkdown(report, noFooter); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	md2, _ := os.ReadFile(noFooter)
	if strings.Contains(string(md2), "not been proven") {
		t.Error("footer rendered despite being disabled")
	}
}
