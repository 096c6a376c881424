// Package summary aggregates claim verdicts into a survival index and
// diagnostic signals. Diagnostics are non-normative: they never change a
// verdict, and every number carries the inputs and formula behind it.
package summary

import (
	"fmt"

	"github.com/deorlovnis/popping-lab/internal/model"
	"github.com/deorlovnis/popping-lab/veritas"
)

// Summarize computes the summary for a set of claim results
func Summarize(results []model.ClaimResult) model.Summary {
	s := model.Summary{Total: len(results)}
	for _, r := range results {
		switch veritas.Verdict(r.Verdict) {
		case veritas.Killed:
			s.Killed++
		case veritas.Survived:
			s.Survived++
		default:
			s.Uncertain++
		}
	}

	if s.Total == 0 {
		s.Index = 0
		s.Confidence = "low"
		s.Signals = append(s.Signals, model.Signal{
			Type:        model.SignalEmptyDocument,
			Severity:    model.SeverityCritical,
			Description: "No claims to evaluate",
			Data:        map[string]any{"total": 0},
		})
		return s
	}

	// Index is the share of claims that survived; uncertain claims count
	// against it because an untestable claim is not a supported claim.
	s.Index = s.Survived * 100 / s.Total
	s.Signals = append(s.Signals, survivalSignal(s))

	if s.Killed > 0 {
		s.Signals = append(s.Signals, killedSignal(results, s))
	}
	if s.Uncertain > 0 {
		s.Signals = append(s.Signals, uncertaintySignal(s))
	}

	s.Confidence = confidence(s)
	return s
}

func survivalSignal(s model.Summary) model.Signal {
	ratio := float64(s.Survived) / float64(s.Total)
	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityWarning
	}
	return model.Signal{
		Type:        model.SignalSurvivalRate,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d claims survived", s.Survived, s.Total),
		Data: map[string]any{
			"survived": s.Survived,
			"total":    s.Total,
			"ratio":    ratio,
			"formula":  "survived / total * 100",
		},
	}
}

func killedSignal(results []model.ClaimResult, s model.Summary) model.Signal {
	var killedIDs []string
	for _, r := range results {
		if veritas.Verdict(r.Verdict) == veritas.Killed {
			killedIDs = append(killedIDs, r.ID)
		}
	}
	return model.Signal{
		Type:        model.SignalKilledClaims,
		Severity:    model.SeverityCritical,
		Description: fmt.Sprintf("%d claims falsified", s.Killed),
		Data: map[string]any{
			"killed": s.Killed,
			"claims": killedIDs,
		},
	}
}

func uncertaintySignal(s model.Summary) model.Signal {
	ratio := float64(s.Uncertain) / float64(s.Total)
	severity := model.SeverityInfo
	if s.Uncertain == s.Total {
		severity = model.SeverityCritical
	} else if ratio > 0.25 {
		severity = model.SeverityWarning
	}
	return model.Signal{
		Type:        model.SignalUncertainty,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d claims could not be decided", s.Uncertain, s.Total),
		Data: map[string]any{
			"uncertain": s.Uncertain,
			"total":     s.Total,
			"ratio":     ratio,
			"formula":   "uncertain / total",
		},
	}
}

// confidence reflects how decisive the evaluation was, not how good the
// verdicts are: a fully-killed document still earns high confidence.
func confidence(s model.Summary) string {
	uncertainRatio := float64(s.Uncertain) / float64(s.Total)
	switch {
	case uncertainRatio > 0.5:
		return "low"
	case s.Uncertain == 0 && s.Total >= 5:
		return "high"
	default:
		return "medium"
	}
}
