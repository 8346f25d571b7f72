package analytics

import (
	"strings"

	"github.com/s3nik/ccjournal/internal/core"
)

// Patterns are the boolean working-style verdicts for one session. Each
// detector is a pure function of the session's event list.
type Patterns struct {
	TDD           bool
	ResearchHeavy bool
	SpecDriven    bool
	SafetyFirst   bool
	ParallelWork  bool
}

// Any reports whether at least one pattern fired.
func (p Patterns) Any() bool {
	return p.TDD || p.ResearchHeavy || p.SpecDriven || p.SafetyFirst || p.ParallelWork
}

const researchHeavyRatio = 0.3

// DetectPatterns runs every detector over one session.
func DetectPatterns(s core.Session) Patterns {
	return Patterns{
		TDD:           detectTDD(s),
		ResearchHeavy: detectResearchHeavy(s),
		SpecDriven:    detectSpecDriven(s),
		SafetyFirst:   detectSafetyFirst(s),
		ParallelWork:  s.Delegations >= 2,
	}
}

// detectTDD looks for interleaving, not mere co-occurrence: at least two
// switches between running tests and editing code in event order.
func detectTDD(s core.Session) bool {
	const (
		phaseNone = iota
		phaseTest
		phaseEdit
	)
	phase, switches := phaseNone, 0
	for _, ev := range s.Events {
		var next int
		switch {
		case ev.Action == core.ActionCommand && ev.CommandKind == core.CommandTest:
			next = phaseTest
		case ev.Action == core.ActionCreatedFile || ev.Action == core.ActionModifiedFile:
			next = phaseEdit
		default:
			continue
		}
		if phase != phaseNone && next != phase {
			switches++
		}
		phase = next
	}
	return switches >= 2
}

func detectResearchHeavy(s core.Session) bool {
	total := len(s.Events)
	if total < 5 {
		return false
	}
	research := s.ResearchCount + s.WebResearchCount
	return float64(research)/float64(total) >= researchHeavyRatio
}

// detectSpecDriven fires when every file touched is a markdown document and
// none of them is a test file.
func detectSpecDriven(s core.Session) bool {
	paths := append(append([]string{}, s.FilesCreated...), s.FilesModified...)
	if len(paths) == 0 {
		return false
	}
	for _, p := range paths {
		lower := strings.ToLower(p)
		if !strings.HasSuffix(lower, ".md") {
			return false
		}
		if hasToken(pathTokens(lower), "test", "spec") {
			return false
		}
	}
	return true
}

// safetyMarkers is the allow-list of safety-tooling indicators. A session is
// safety-first only when every file touch and command stays inside it.
var safetyMarkers = []string{
	"hook", "permission", "settings", "lint", "vet", "audit", "security", "backup",
}

func detectSafetyFirst(s core.Session) bool {
	var checked int
	for _, ev := range s.Events {
		var subject string
		switch ev.Action {
		case core.ActionCreatedFile, core.ActionModifiedFile:
			subject = ev.Path
		case core.ActionCommand:
			subject = ev.Command
		default:
			continue
		}
		checked++
		if !matchesSafetyMarker(subject) {
			return false
		}
	}
	return checked > 0
}

func matchesSafetyMarker(subject string) bool {
	lower := strings.ToLower(subject)
	for _, marker := range safetyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
