package analytics

import (
	"sort"
	"strings"

	"github.com/s3nik/ccjournal/internal/core"
)

// Impact-score weights per downstream event class.
const (
	weightFiles       = 3
	weightTasks       = 5
	weightCommands    = 1
	weightDelegations = 4
)

const leaderboardSize = 5

// ScoredPrompt is one user prompt with its downstream impact tally.
type ScoredPrompt struct {
	core.Prompt
	Score          int
	FilesTouched   int
	TasksCompleted int
	Commands       int
	Delegations    int
}

// SlumpKind classifies a zero-impact prompt by its text.
type SlumpKind string

const (
	SlumpExploration SlumpKind = "exploration"
	SlumpSetup       SlumpKind = "setup"
	SlumpOther       SlumpKind = "other"
)

// ScorePrompt computes a prompt's impact from the events attributed to it.
func ScorePrompt(p core.Prompt) ScoredPrompt {
	sp := ScoredPrompt{Prompt: p}
	for _, ev := range p.Events {
		switch ev.Action {
		case core.ActionCreatedFile, core.ActionModifiedFile:
			sp.FilesTouched++
		case core.ActionTaskCompleted:
			sp.TasksCompleted++
		case core.ActionCommand, core.ActionGitOperation:
			sp.Commands++
		case core.ActionDelegated:
			sp.Delegations++
		}
	}
	sp.Score = weightFiles*sp.FilesTouched +
		weightTasks*sp.TasksCompleted +
		weightCommands*sp.Commands +
		weightDelegations*sp.Delegations
	return sp
}

// Leaderboard returns the top prompts by impact score alongside the
// zero-score slumps. Ties rank the earlier prompt first, and no prompt is
// ever dropped: everything not on the leaderboard with a score of zero shows
// up classified in the slump list.
func Leaderboard(prompts []core.Prompt) (top []ScoredPrompt, slumps []ScoredPrompt) {
	scored := make([]ScoredPrompt, 0, len(prompts))
	for _, p := range prompts {
		scored = append(scored, ScorePrompt(p))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Time.Before(scored[j].Time)
	})

	for _, sp := range scored {
		if sp.Score == 0 {
			slumps = append(slumps, sp)
			continue
		}
		if len(top) < leaderboardSize {
			top = append(top, sp)
		}
	}
	return top, slumps
}

// Work categories for prompt text, used by the history view. "slash" covers
// bare slash commands and other sub-10-character fragments.
const (
	WorkDebugging   = "debugging"
	WorkBuilding    = "building"
	WorkRefactoring = "refactoring"
	WorkTesting     = "testing"
	WorkLearning    = "learning"
	WorkDeploying   = "deploying"
	WorkSlash       = "slash"
	WorkCoding      = "coding"
)

// WorkCategory buckets a prompt by the kind of work it asks for, most
// specific intent first.
func WorkCategory(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "fix", "bug", "error", "issue", "broken", "not working"):
		return WorkDebugging
	case containsAny(lower, "add", "create", "build", "implement", "new feature"):
		return WorkBuilding
	case containsAny(lower, "refactor", "clean", "improve", "optimize"):
		return WorkRefactoring
	case containsAny(lower, "test", "spec", "coverage"):
		return WorkTesting
	case containsAny(lower, "review", "explain", "understand", "how does"):
		return WorkLearning
	case containsAny(lower, "deploy", "release", "publish"):
		return WorkDeploying
	case strings.HasPrefix(lower, "/") || len(lower) < 10:
		return WorkSlash
	default:
		return WorkCoding
	}
}

// ClassifySlump buckets a zero-impact prompt by keyword.
func ClassifySlump(text string) SlumpKind {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "what", "how", "why", "explain", "look", "show", "find", "check", "read", "?"):
		return SlumpExploration
	case containsAny(lower, "install", "setup", "set up", "init", "configure", "clone", "update"):
		return SlumpSetup
	default:
		return SlumpOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
