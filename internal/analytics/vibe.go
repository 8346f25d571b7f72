package analytics

import (
	"time"

	"github.com/s3nik/ccjournal/internal/core"
)

// Energy levels by total active span.
const (
	EnergyQuick    = "quick hit"
	EnergySteady   = "steady"
	EnergyDeep     = "deep work"
	EnergyMarathon = "marathon"
)

// Focus levels by distinct project count.
const (
	FocusLaser     = "laser-focused"
	FocusBalanced  = "balanced"
	FocusScattered = "scattered"
)

// Vibe is the narrative character of a day's work.
type Vibe struct {
	Energy    string
	Focus     string
	Highlight string
	Methods   []string
	Span      time.Duration
	Projects  int
}

// ComputeVibe derives a day's vibe from its sessions. patterns carries the
// per-session detector verdicts in the same order as sessions.
func ComputeVibe(sessions []core.Session, patterns []Patterns) Vibe {
	if len(sessions) == 0 {
		return Vibe{}
	}

	var span time.Duration
	projects := make(map[string]bool)
	for _, s := range sessions {
		span += s.Duration()
		projects[s.Project] = true
	}

	v := Vibe{
		Energy:   energyLevel(span),
		Focus:    focusLevel(len(projects)),
		Span:     span,
		Projects: len(projects),
	}

	if ranks := RankProjects(sessions); len(ranks) > 0 && ranks[0].Score > 0 {
		v.Highlight = ranks[0].Project
	}
	v.Methods = methodKeywords(patterns)
	return v
}

func energyLevel(span time.Duration) string {
	switch {
	case span < time.Hour:
		return EnergyQuick
	case span < 4*time.Hour:
		return EnergySteady
	case span < 8*time.Hour:
		return EnergyDeep
	default:
		return EnergyMarathon
	}
}

func focusLevel(projects int) string {
	switch {
	case projects <= 1:
		return FocusLaser
	case projects <= 3:
		return FocusBalanced
	default:
		return FocusScattered
	}
}

// methodKeywords names each working pattern that fired in any session,
// in a fixed order.
func methodKeywords(patterns []Patterns) []string {
	var merged Patterns
	for _, p := range patterns {
		merged.TDD = merged.TDD || p.TDD
		merged.ResearchHeavy = merged.ResearchHeavy || p.ResearchHeavy
		merged.SpecDriven = merged.SpecDriven || p.SpecDriven
		merged.SafetyFirst = merged.SafetyFirst || p.SafetyFirst
		merged.ParallelWork = merged.ParallelWork || p.ParallelWork
	}

	var methods []string
	if merged.TDD {
		methods = append(methods, "test-driven")
	}
	if merged.ResearchHeavy {
		methods = append(methods, "research-first")
	}
	if merged.SpecDriven {
		methods = append(methods, "spec-driven")
	}
	if merged.SafetyFirst {
		methods = append(methods, "safety-conscious")
	}
	if merged.ParallelWork {
		methods = append(methods, "parallel delegation")
	}
	return methods
}
