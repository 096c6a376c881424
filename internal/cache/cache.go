// Package cache stores claim verdicts across runs. Verification is
// deterministic, so a cached result is exactly the result a re-evaluation
// would produce; the disk layer doubles as the audit copy of past verdicts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/deorlovnis/popping-lab/internal/model"
)

// Store is the verdict cache interface
type Store interface {
	Get(key string) (*model.ClaimResult, bool)
	Set(key string, result *model.ClaimResult, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key fingerprints a claim and the evidence bound to it. The descriptor must
// carry everything that determines the verdict: the full claim parameters
// (not just the statement) and the comparison tolerances, since two claims
// differing only in a bound or tolerance yield different verdicts from the
// same evidence. Returns "" when either part is not serializable, in which
// case the caller skips caching; an unhashable pair is not an error, just
// uncacheable.
func Key(descriptor any, bindings map[string]any) string {
	claim, err := json.Marshal(descriptor)
	if err != nil {
		return ""
	}
	digest, err := json.Marshal(bindings) // Map keys are sorted, so the digest is stable
	if err != nil {
		return ""
	}

	h := sha256.New()
	h.Write(claim)
	h.Write([]byte{0})
	h.Write(digest)
	return "veritas:v1:" + hex.EncodeToString(h.Sum(nil))
}
