package veritas

import (
	"errors"
	"testing"
)

func TestEvidence_BindLastWriteWins(t *testing.T) {
	ev := NewEvidence().Bind("x", 1).Bind("x", 2)

	value, err := ev.Value("x")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value != 2 {
		t.Errorf("expected rebind to replace value, got %v", value)
	}
	if ev.Len() != 1 {
		t.Errorf("expected single binding, got %d", ev.Len())
	}
}

func TestEvidence_ValueMissing(t *testing.T) {
	ev := NewEvidence()

	_, err := ev.Value("absent")
	if !errors.Is(err, ErrMissingEvidence) {
		t.Fatalf("expected ErrMissingEvidence, got %v", err)
	}
}

func TestEvidence_BindAll(t *testing.T) {
	ev := NewEvidence().Bind("a", 1)
	ev.BindAll(map[string]any{"b": 2, "a": 10})

	if v, _ := ev.Value("a"); v != 10 {
		t.Errorf("BindAll should overwrite, got %v", v)
	}
	if v, _ := ev.Value("b"); v != 2 {
		t.Errorf("BindAll should merge, got %v", v)
	}
}

func TestEvidence_SnapshotIsCopy(t *testing.T) {
	ev := NewEvidence().Bind("x", 1)
	snap := ev.Snapshot()
	snap["x"] = 99
	snap["y"] = 1

	if v, _ := ev.Value("x"); v != 1 {
		t.Errorf("mutating a snapshot should not affect evidence, got %v", v)
	}
	if _, ok := ev.Lookup("y"); ok {
		t.Error("snapshot additions leaked into evidence")
	}
}

func TestEvidence_NilBindingIsPresent(t *testing.T) {
	ev := NewEvidence().Bind("observation", nil)

	value, ok := ev.Lookup("observation")
	if !ok {
		t.Fatal("nil binding should still count as bound")
	}
	if value != nil {
		t.Errorf("expected nil value, got %v", value)
	}
}
