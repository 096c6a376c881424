package veritas

import "testing"

func TestEquality(t *testing.T) {
	truth, err := Equality("add(2,2) equals 4", "result", 4)
	if err != nil {
		t.Fatalf("Equality: %v", err)
	}
	if got := QuickCheck(truth, map[string]any{"result": 4}); got != Survived {
		t.Errorf("expected SURVIVED, got %s", got)
	}
}

func TestInvariant(t *testing.T) {
	truth, err := Invariant("state stays non-negative", func(v any) bool {
		n, ok := numericValue(v)
		return ok && n >= 0
	})
	if err != nil {
		t.Fatalf("Invariant: %v", err)
	}
	if got := QuickCheck(truth, map[string]any{"state": 5}); got != Survived {
		t.Errorf("expected SURVIVED for state=5, got %s", got)
	}
	if got := QuickCheck(truth, map[string]any{"state": -1}); got != Killed {
		t.Errorf("expected KILLED for state=-1, got %s", got)
	}
}

func TestThreshold(t *testing.T) {
	truth, err := Threshold("accuracy above 0.6", "accuracy", 0.6, ">")
	if err != nil {
		t.Fatalf("Threshold: %v", err)
	}
	if got := QuickCheck(truth, map[string]any{"accuracy": 0.7}); got != Survived {
		t.Errorf("expected SURVIVED, got %s", got)
	}

	if _, err := Threshold("bad", "accuracy", 0.6, "about"); err == nil {
		t.Error("expected configuration error for unknown direction token")
	}
}

func TestEmpiricalClaim(t *testing.T) {
	truth, err := EmpiricalClaim("service responds", func(v any) bool {
		return v == "ok"
	}, "service did not respond")
	if err != nil {
		t.Fatalf("EmpiricalClaim: %v", err)
	}
	if got := QuickCheck(truth, map[string]any{"observation": "ok"}); got != Survived {
		t.Errorf("expected SURVIVED, got %s", got)
	}
	if got := QuickCheck(truth, map[string]any{"observation": "timeout"}); got != Killed {
		t.Errorf("expected KILLED, got %s", got)
	}
}

func TestGrounding(t *testing.T) {
	truth, err := Grounding("parser handles unicode", "test")
	if err != nil {
		t.Fatalf("Grounding: %v", err)
	}

	cases := []struct {
		name    string
		support any
		want    Verdict
	}{
		{"support present", "TestParserUnicode", Survived},
		{"nil support", nil, Killed},
		{"empty string support", "", Killed},
		{"non-string support", 42, Survived},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := QuickCheck(truth, map[string]any{"support": tc.support})
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFeasibility(t *testing.T) {
	truth, err := Feasibility("release can ship today")
	if err != nil {
		t.Fatalf("Feasibility: %v", err)
	}
	if got := QuickCheck(truth, map[string]any{"blocker": nil}); got != Survived {
		t.Errorf("no blocker should survive, got %s", got)
	}

	result := Falsify(truth, NewEvidence().Bind("blocker", "disk full"))
	if result.Verdict != Killed {
		t.Errorf("blocker should kill, got %s", result.Verdict)
	}
	if result.Reasoning != "a blocker was observed" {
		t.Errorf("unexpected reasoning: %q", result.Reasoning)
	}
}
