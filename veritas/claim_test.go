package veritas

import (
	"errors"
	"fmt"
	"testing"
)

func TestClaim_BindAndClose(t *testing.T) {
	truth := mustAnalytic(t, "add(2,2) equals 4", "result", 4)

	c := Open(truth)
	if err := c.Bind("result", 2+2); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	result, err := c.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if result.Verdict != Survived {
		t.Errorf("expected SURVIVED, got %s (%s)", result.Verdict, result.Reasoning)
	}

	stored, ok := c.Result()
	if !ok {
		t.Fatal("expected result attached after close")
	}
	if stored.Verdict != result.Verdict {
		t.Errorf("stored verdict %s differs from returned %s", stored.Verdict, result.Verdict)
	}
}

func TestClaim_ScopeDiscipline(t *testing.T) {
	truth := mustAnalytic(t, "add(2,2) equals 4", "result", 4)

	c := Open(truth)
	if _, err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := c.Bind("result", 4); !errors.Is(err, ErrScopeClosed) {
		t.Errorf("Bind after close: expected ErrScopeClosed, got %v", err)
	}
	if err := c.BindAll(map[string]any{"result": 4}); !errors.Is(err, ErrScopeClosed) {
		t.Errorf("BindAll after close: expected ErrScopeClosed, got %v", err)
	}
	if _, err := c.Observe("result", 4); !errors.Is(err, ErrScopeClosed) {
		t.Errorf("Observe after close: expected ErrScopeClosed, got %v", err)
	}
	if _, err := c.Close(); !errors.Is(err, ErrScopeClosed) {
		t.Errorf("second Close: expected ErrScopeClosed, got %v", err)
	}
}

func TestClaim_ExactlyOneVerification(t *testing.T) {
	truth := mustAnalytic(t, "add(2,2) equals 4", "result", 4)

	c := Open(truth)
	_ = c.Bind("result", 4)
	first, err := c.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The closed scope keeps the original result even after a rejected bind.
	_ = c.Bind("result", 99)
	stored, _ := c.Result()
	if stored.Verdict != first.Verdict || stored.Evidence["result"] != 4 {
		t.Errorf("result changed after scope closed: %+v", stored)
	}
}

func TestClaim_Observe(t *testing.T) {
	truth := mustAnalytic(t, "sum equals 6", "total", 6)

	c := Open(truth)
	total, err := c.Observe("total", 1+2+3)
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if total != 6 {
		t.Errorf("Observe should return the value, got %v", total)
	}

	result, _ := c.Close()
	if result.Verdict != Survived {
		t.Errorf("expected SURVIVED, got %s", result.Verdict)
	}
}

func TestRun_VerifiesOnCleanExit(t *testing.T) {
	truth := mustAnalytic(t, "add(2,2) equals 4", "result", 4)

	result, err := Run(truth, func(c *Claim) error {
		return c.Bind("result", 4)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Verdict != Survived {
		t.Errorf("expected SURVIVED, got %s", result.Verdict)
	}
}

func TestRun_BodyErrorSkipsVerification(t *testing.T) {
	truth := mustAnalytic(t, "add(2,2) equals 4", "result", 4)
	harnessErr := fmt.Errorf("fixture broke")

	var scope *Claim
	_, err := Run(truth, func(c *Claim) error {
		scope = c
		_ = c.Bind("result", 4)
		return harnessErr
	})
	if !errors.Is(err, harnessErr) {
		t.Fatalf("expected harness error to propagate, got %v", err)
	}
	if _, ok := scope.Result(); ok {
		t.Error("no verification result should exist after a body error")
	}
	if bindErr := scope.Bind("late", 1); !errors.Is(bindErr, ErrScopeClosed) {
		t.Errorf("abandoned scope should reject binds, got %v", bindErr)
	}
}

func TestRun_BodyPanicPropagates(t *testing.T) {
	truth := mustAnalytic(t, "add(2,2) equals 4", "result", 4)

	var scope *Claim
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate out of Run")
			}
		}()
		_, _ = Run(truth, func(c *Claim) error {
			scope = c
			panic("harness bug")
		})
	}()

	if _, ok := scope.Result(); ok {
		t.Error("no verification result should exist after a body panic")
	}
}

func TestRunWith_CustomTolerance(t *testing.T) {
	truth := mustAnalytic(t, "roughly one", "result", 1.0)
	loose := NewVerifierWithOptions(Options{Atol: 0.1, Rtol: 0.1})

	result, err := RunWith(truth, loose, func(c *Claim) error {
		return c.Bind("result", 1.05)
	})
	if err != nil {
		t.Fatalf("RunWith: %v", err)
	}
	if result.Verdict != Survived {
		t.Errorf("loose tolerance should survive 1.05, got %s", result.Verdict)
	}
}
