package session

import (
	"testing"
	"time"

	"github.com/s3nik/ccjournal/internal/core"
)

func ev(ts, project string, action core.Action) core.Event {
	return core.Event{Date: "2026-02-11", TS: ts, Project: project, Action: action}
}

func TestReconstruct_SingleSessionWithDerivedCounts(t *testing.T) {
	prompt := ev("09:00:00", "acme", core.ActionUserPrompt)
	prompt.Prompt = "build the api"
	created := ev("09:01:00", "acme", core.ActionCreatedFile)
	created.Path = "src/api.py"
	done := ev("09:05:00", "acme", core.ActionTaskCompleted)
	done.Task = "wire the endpoint"

	sessions := Reconstruct("2026-02-11", []core.Event{prompt, created, done}, 0)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	s := sessions[0]
	if s.Project != "acme" {
		t.Errorf("project = %q", s.Project)
	}
	if len(s.FilesCreated) != 1 || s.FilesCreated[0] != "src/api.py" {
		t.Errorf("files created = %v", s.FilesCreated)
	}
	if s.TasksCompleted != 1 {
		t.Errorf("tasks completed = %d, want 1", s.TasksCompleted)
	}
	if len(s.Prompts) != 1 {
		t.Fatalf("prompts = %d, want 1", len(s.Prompts))
	}
	if got := len(s.Prompts[0].Events); got != 2 {
		t.Errorf("prompt downstream events = %d, want 2", got)
	}
	if s.Duration() != 5*time.Minute {
		t.Errorf("duration = %v, want 5m", s.Duration())
	}
}

func TestReconstruct_GroupsByProject(t *testing.T) {
	events := []core.Event{
		ev("09:00:00", "acme", core.ActionCommand),
		ev("09:30:00", "widgets", core.ActionCommand),
		ev("10:00:00", "acme", core.ActionCommand),
	}
	sessions := Reconstruct("2026-02-11", events, 0)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	// Ordered by start time.
	if sessions[0].Project != "acme" || sessions[1].Project != "widgets" {
		t.Errorf("session order = %s, %s", sessions[0].Project, sessions[1].Project)
	}
	if len(sessions[0].Events) != 2 {
		t.Errorf("acme events = %d, want 2", len(sessions[0].Events))
	}
}

func TestReconstruct_IdleThresholdSplits(t *testing.T) {
	events := []core.Event{
		ev("09:00:00", "acme", core.ActionCommand),
		ev("09:10:00", "acme", core.ActionCommand),
		// Three hour gap.
		ev("12:10:00", "acme", core.ActionCommand),
	}

	if got := Reconstruct("2026-02-11", events, 0); len(got) != 1 {
		t.Errorf("no threshold: %d sessions, want 1", len(got))
	}
	sessions := Reconstruct("2026-02-11", events, time.Hour)
	if len(sessions) != 2 {
		t.Fatalf("1h threshold: %d sessions, want 2", len(sessions))
	}
	if len(sessions[0].Events) != 2 || len(sessions[1].Events) != 1 {
		t.Errorf("split = %d/%d events, want 2/1", len(sessions[0].Events), len(sessions[1].Events))
	}
}

func TestReconstruct_StableOrderOnTimestampTies(t *testing.T) {
	first := ev("09:00:00", "acme", core.ActionCreatedFile)
	first.Path = "a.go"
	second := ev("09:00:00", "acme", core.ActionCreatedFile)
	second.Path = "b.go"

	sessions := Reconstruct("2026-02-11", []core.Event{first, second}, 0)
	if len(sessions) != 1 {
		t.Fatal("expected one session")
	}
	got := sessions[0].FilesCreated
	if got[0] != "a.go" || got[1] != "b.go" {
		t.Errorf("tied events reordered: %v", got)
	}
}

func TestReconstruct_CommandKindsAndGit(t *testing.T) {
	test := ev("09:00:00", "acme", core.ActionCommand)
	test.CommandKind = core.CommandTest
	plain := ev("09:01:00", "acme", core.ActionCommand)
	git := ev("09:02:00", "acme", core.ActionGitOperation)
	git.Command = "git push"

	sessions := Reconstruct("2026-02-11", []core.Event{test, plain, git}, 0)
	kinds := sessions[0].CommandKinds
	if kinds[core.CommandTest] != 1 || kinds[core.CommandOther] != 1 || kinds[core.CommandGit] != 1 {
		t.Errorf("command kinds = %v", kinds)
	}
}

func TestReconstruct_SkipsOtherDatesAndEmptyInput(t *testing.T) {
	other := core.Event{Date: "2026-02-10", TS: "09:00:00", Project: "acme", Action: core.ActionCommand}
	if got := Reconstruct("2026-02-11", []core.Event{other}, 0); len(got) != 0 {
		t.Errorf("foreign-date events produced %d sessions", len(got))
	}
	if got := Reconstruct("2026-02-11", nil, 0); len(got) != 0 {
		t.Errorf("nil input produced %d sessions", len(got))
	}
}
