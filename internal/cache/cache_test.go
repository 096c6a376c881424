package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/deorlovnis/popping-lab/internal/model"
)

// claimIdentity mirrors the descriptor the pipeline hashes: every claim
// parameter plus the tolerances in play.
type claimIdentity struct {
	Statement string
	Kind      string
	Var       string
	Op        string
	Bound     float64
	Atol      float64
	Rtol      float64
}

func sampleResult() *model.ClaimResult {
	return &model.ClaimResult{
		ID:        "addition",
		Statement: "add(2,2) equals 4",
		Kind:      "analytic",
		Verdict:   "SURVIVED",
		Reasoning: "falsification condition not met with given evidence",
		Evidence:  map[string]any{"result": 4},
	}
}

func TestKey_StableAndDistinct(t *testing.T) {
	claim := claimIdentity{Statement: "add(2,2) equals 4", Kind: "analytic"}
	other := claimIdentity{Statement: "add(2,2) equals 5", Kind: "analytic"}

	bindings := map[string]any{"result": 4, "extra": "x"}
	if Key(claim, bindings) != Key(claim, bindings) {
		t.Error("key should be stable for identical inputs")
	}
	if Key(claim, bindings) == Key(other, bindings) {
		t.Error("different claims should produce different keys")
	}
	if Key(claim, bindings) == Key(claim, map[string]any{"result": 5}) {
		t.Error("different evidence should produce different keys")
	}
	if !strings.HasPrefix(Key(claim, bindings), "veritas:v1:") {
		t.Errorf("key missing version prefix: %q", Key(claim, bindings))
	}
}

func TestKey_DistinguishesClaimParameters(t *testing.T) {
	// Same statement, same kind: only a parameter or a tolerance differs.
	// Each variation must hash differently or one claim's verdict would be
	// served for another.
	base := claimIdentity{
		Statement: "state is positive", Kind: "modal",
		Var: "state", Op: ">", Bound: 0,
		Atol: 1e-9, Rtol: 1e-9,
	}
	bindings := map[string]any{"state": 5}

	variations := map[string]claimIdentity{}
	v := base
	v.Bound = 10
	variations["different bound"] = v
	v = base
	v.Op = ">="
	variations["different op"] = v
	v = base
	v.Atol = 1e-3
	variations["different atol"] = v
	v = base
	v.Rtol = 1e-3
	variations["different rtol"] = v

	baseKey := Key(base, bindings)
	for name, varied := range variations {
		if Key(varied, bindings) == baseKey {
			t.Errorf("%s: expected a distinct key", name)
		}
	}
}

func TestKey_Unserializable(t *testing.T) {
	claim := claimIdentity{Statement: "fn claim", Kind: "analytic"}
	if key := Key(claim, map[string]any{"fn": func() {}}); key != "" {
		t.Errorf("unserializable bindings should yield empty key, got %q", key)
	}
	if key := Key(func() {}, map[string]any{"result": 4}); key != "" {
		t.Errorf("unserializable descriptor should yield empty key, got %q", key)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	result := sampleResult()

	if err := store.Set("k", result, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found := store.Get("k")
	if !found {
		t.Fatal("expected hit")
	}
	if got.Verdict != "SURVIVED" || got.ID != "addition" {
		t.Errorf("unexpected cached result: %+v", got)
	}

	// The cached copy is isolated from the original.
	result.Verdict = "KILLED"
	got, _ = store.Get("k")
	if got.Verdict != "SURVIVED" {
		t.Error("cached result should be a copy")
	}

	_ = store.Delete("k")
	if _, found := store.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskStore(t *testing.T) {
	store := NewDiskStore(t.TempDir(), time.Minute)
	result := sampleResult()

	if err := store.Set("veritas:v1:abc", result, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := store.Get("veritas:v1:abc")
	if !found {
		t.Fatal("expected hit")
	}
	if got.Reasoning != result.Reasoning {
		t.Errorf("round trip lost reasoning: %+v", got)
	}
}

func TestDiskStore_Expiry(t *testing.T) {
	store := NewDiskStore(t.TempDir(), time.Minute)

	if err := store.Set("k", sampleResult(), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := store.Get("k"); found {
		t.Error("expired entry should miss")
	}
}

func TestLayeredStore_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	store := NewLayeredStore(time.Minute, dir, time.Minute)

	if err := store.Set("k", sampleResult(), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Fresh layered store over the same dir: memory is cold, disk warm.
	reopened := NewLayeredStore(time.Minute, dir, time.Minute)
	got, found := reopened.Get("k")
	if !found {
		t.Fatal("expected disk hit through fresh store")
	}
	if got.Verdict != "SURVIVED" {
		t.Errorf("unexpected verdict %q", got.Verdict)
	}

	// Now present in memory as well.
	if _, found := reopened.memory.Get("k"); !found {
		t.Error("disk hit should be promoted to memory")
	}
}
