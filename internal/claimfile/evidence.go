package claimfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EvidenceDocument is a parsed evidence file: global bindings plus optional
// per-claim overrides keyed by claim id.
type EvidenceDocument struct {
	Bindings map[string]any            `yaml:"bindings"`
	Claims   map[string]map[string]any `yaml:"claims"`
}

// LoadEvidence reads and parses an evidence file
func LoadEvidence(path string) (*EvidenceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read evidence file: %w", err)
	}

	var doc EvidenceDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse evidence file %s: %w", path, err)
	}
	return &doc, nil
}

// For returns the bindings for one claim: global bindings with per-claim
// overrides applied on top (last write wins, same rule as Evidence.Bind).
func (d *EvidenceDocument) For(claimID string) map[string]any {
	merged := make(map[string]any)
	if d == nil {
		return merged
	}
	for name, value := range d.Bindings {
		merged[name] = value
	}
	for name, value := range d.Claims[claimID] {
		merged[name] = value
	}
	return merged
}
