// Package analytics turns reconstructed sessions into the heuristic layer
// behind daily narratives: deliverable buckets, working-pattern detection,
// prompt-impact ranking, vibe, and engineering principles. Everything here
// is pure and deterministic over its inputs.
package analytics

import "github.com/s3nik/ccjournal/internal/core"

// DayReport is the full analytic picture of one date.
type DayReport struct {
	Date         string
	Sessions     []core.Session
	Patterns     []Patterns // index-aligned with Sessions
	Deliverables []BucketGroup
	TopPrompts   []ScoredPrompt
	Slumps       []ScoredPrompt
	Vibe         Vibe
	Ranks        []ProjectRank
	Principles   []core.Principle
}

// Empty reports whether the date had no activity at all. An empty day is a
// well-formed result, not an error.
func (r *DayReport) Empty() bool {
	return len(r.Sessions) == 0
}

// Analyze runs the whole engine over one date's sessions.
func Analyze(date string, sessions []core.Session) *DayReport {
	report := &DayReport{Date: date, Sessions: sessions}
	if len(sessions) == 0 {
		return report
	}

	report.Patterns = make([]Patterns, len(sessions))
	var prompts []core.Prompt
	for i, s := range sessions {
		report.Patterns[i] = DetectPatterns(s)
		prompts = append(prompts, s.Prompts...)
	}

	report.Deliverables = Deliverables(sessions)
	report.TopPrompts, report.Slumps = Leaderboard(prompts)
	report.Vibe = ComputeVibe(sessions, report.Patterns)
	report.Ranks = RankProjects(sessions)
	report.Principles = ExtractPrinciples(sessions, report.Patterns)
	return report
}
