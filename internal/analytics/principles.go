package analytics

import (
	"fmt"
	"sort"

	"github.com/s3nik/ccjournal/internal/core"
)

const maxPrinciples = 5

// principleSpec maps one detected pattern to its catalog entry plus an
// evidence measure used for ordering.
type principleSpec struct {
	name      string
	extension string
	fired     func(Patterns) bool
	evidence  func(core.Session) int
	example   func(core.Session) string
}

var principleCatalog = []principleSpec{
	{
		name:      "Test-Driven Iteration",
		extension: "Alternate between running tests and editing code so every change is verified the moment it lands.",
		fired:     func(p Patterns) bool { return p.TDD },
		evidence:  func(s core.Session) int { return s.CommandKinds[core.CommandTest] },
		example: func(s core.Session) string {
			return fmt.Sprintf("ran the %s test suite %d times while editing", s.Project, s.CommandKinds[core.CommandTest])
		},
	},
	{
		name:      "Research-First Development",
		extension: "Read the existing code before writing new code; understanding the terrain beats guessing.",
		fired:     func(p Patterns) bool { return p.ResearchHeavy },
		evidence:  func(s core.Session) int { return s.ResearchCount + s.WebResearchCount },
		example: func(s core.Session) string {
			return fmt.Sprintf("%d research lookups in %s before making changes", s.ResearchCount+s.WebResearchCount, s.Project)
		},
	},
	{
		name:      "Spec Before Code",
		extension: "Write the design down first; a page of markdown is cheaper to change than a module.",
		fired:     func(p Patterns) bool { return p.SpecDriven },
		evidence:  func(s core.Session) int { return len(s.FilesCreated) + len(s.FilesModified) },
		example: func(s core.Session) string {
			return fmt.Sprintf("a documentation-only session in %s shaping the plan", s.Project)
		},
	},
	{
		name:      "Safety Nets First",
		extension: "Invest in hooks, linters, and permissions before the work that needs them.",
		fired:     func(p Patterns) bool { return p.SafetyFirst },
		evidence:  func(s core.Session) int { return len(s.Events) },
		example: func(s core.Session) string {
			return fmt.Sprintf("a session in %s spent entirely on safety tooling", s.Project)
		},
	},
	{
		name:      "Parallel Agent Delegation",
		extension: "Split independent work across agents and integrate the results instead of working serially.",
		fired:     func(p Patterns) bool { return p.ParallelWork },
		evidence:  func(s core.Session) int { return s.Delegations },
		example: func(s core.Session) string {
			return fmt.Sprintf("delegated %d tasks in parallel while working on %s", s.Delegations, s.Project)
		},
	},
}

// ExtractPrinciples maps the day's fired patterns to the principle catalog.
// Each principle cites the session with the strongest supporting evidence;
// output is ordered by that evidence and capped.
func ExtractPrinciples(sessions []core.Session, patterns []Patterns) []core.Principle {
	type candidate struct {
		principle core.Principle
		evidence  int
	}

	var candidates []candidate
	for _, spec := range principleCatalog {
		best, bestEvidence := -1, 0
		for i, p := range patterns {
			if !spec.fired(p) {
				continue
			}
			if e := spec.evidence(sessions[i]); best == -1 || e > bestEvidence {
				best, bestEvidence = i, e
			}
		}
		if best == -1 {
			continue
		}
		candidates = append(candidates, candidate{
			principle: core.Principle{
				Name:      spec.name,
				Example:   spec.example(sessions[best]),
				Extension: spec.extension,
			},
			evidence: bestEvidence,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].evidence > candidates[j].evidence
	})
	if len(candidates) > maxPrinciples {
		candidates = candidates[:maxPrinciples]
	}

	principles := make([]core.Principle, len(candidates))
	for i, c := range candidates {
		principles[i] = c.principle
	}
	return principles
}
