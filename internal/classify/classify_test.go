package classify

import (
	"fmt"
	"testing"

	"github.com/s3nik/ccjournal/internal/core"
)

func assistantLine(tool, inputJSON string) []byte {
	return []byte(fmt.Sprintf(`{"type":"assistant","timestamp":"2026-02-11T14:30:00Z","cwd":"/Users/dev/acme","message":{"model":"claude-sonnet-4-5","role":"assistant","content":[{"type":"tool_use","name":%q,"input":%s}]}}`, tool, inputJSON))
}

func TestLine_UserPrompt(t *testing.T) {
	line := []byte(`{"type":"user","timestamp":"2026-02-11T09:15:30Z","cwd":"/Users/dev/acme","message":{"role":"user","content":"add a login page"}}`)
	res, err := Line(line)
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if len(res.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(res.Events))
	}
	ev := res.Events[0]
	if ev.Action != core.ActionUserPrompt {
		t.Errorf("action = %s, want user_prompt", ev.Action)
	}
	if ev.Date != "2026-02-11" || ev.TS != "09:15:30" {
		t.Errorf("date/ts = %s %s", ev.Date, ev.TS)
	}
	if ev.Project != "acme" {
		t.Errorf("project = %s, want acme", ev.Project)
	}
}

func TestLine_EmptyPromptSkipped(t *testing.T) {
	line := []byte(`{"type":"user","timestamp":"2026-02-11T09:15:30Z","message":{"content":"   \n  "}}`)
	res, err := Line(line)
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if len(res.Events) != 0 {
		t.Errorf("blank prompt produced %d events", len(res.Events))
	}
}

func TestLine_ToolResultTurnIsNotAPrompt(t *testing.T) {
	line := []byte(`{"type":"user","timestamp":"2026-02-11T09:16:00Z","message":{"content":[{"type":"tool_result","tool_use_id":"t1"}]}}`)
	res, err := Line(line)
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if len(res.Events) != 0 {
		t.Errorf("tool_result turn produced %d events", len(res.Events))
	}
}

func TestLine_ToolTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		tool   string
		input  string
		action core.Action
	}{
		{"write", "Write", `{"file_path":"/Users/dev/acme/src/api.py"}`, core.ActionCreatedFile},
		{"edit", "Edit", `{"file_path":"/Users/dev/acme/main.go"}`, core.ActionModifiedFile},
		{"bash", "Bash", `{"command":"ls -la"}`, core.ActionCommand},
		{"git", "Bash", `{"command":"git commit -m 'wip'"}`, core.ActionGitOperation},
		{"task", "Task", `{"subagent_type":"explorer","prompt":"map the repo"}`, core.ActionDelegated},
		{"plan", "TaskCreate", `{"subject":"wire auth"}`, core.ActionTaskPlanned},
		{"done", "TaskUpdate", `{"taskId":"3","status":"completed"}`, core.ActionTaskCompleted},
		{"read", "Read", `{"file_path":"go.mod"}`, core.ActionResearch},
		{"grep", "Grep", `{"pattern":"TODO"}`, core.ActionResearch},
		{"web", "WebSearch", `{"query":"go jsonl parsing"}`, core.ActionWebResearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Line(assistantLine(tt.tool, tt.input))
			if err != nil {
				t.Fatalf("Line() error: %v", err)
			}
			if len(res.Events) != 1 {
				t.Fatalf("events = %d, want 1", len(res.Events))
			}
			if res.Events[0].Action != tt.action {
				t.Errorf("action = %s, want %s", res.Events[0].Action, tt.action)
			}
		})
	}
}

func TestLine_TaskUpdateNotCompletedSkipped(t *testing.T) {
	res, err := Line(assistantLine("TaskUpdate", `{"taskId":"3","status":"in_progress"}`))
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if len(res.Events) != 0 {
		t.Errorf("in_progress update produced %d events", len(res.Events))
	}
}

func TestLine_TodoWriteExpands(t *testing.T) {
	input := `{"todos":[{"content":"write parser","status":"pending"},{"content":"add tests","status":"completed"}]}`
	res, err := Line(assistantLine("TodoWrite", input))
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if len(res.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(res.Events))
	}
	if res.Events[0].Action != core.ActionTaskPlanned || res.Events[1].Action != core.ActionTaskCompleted {
		t.Errorf("todo actions = %s, %s", res.Events[0].Action, res.Events[1].Action)
	}
}

func TestLine_UsageSample(t *testing.T) {
	line := []byte(`{"type":"assistant","timestamp":"2026-02-11T14:30:00Z","cwd":"/Users/dev/acme","message":{"model":"claude-opus-4-5","content":[],"usage":{"input_tokens":100,"output_tokens":50,"cache_read_input_tokens":9000,"cache_creation_input_tokens":200}}}`)
	res, err := Line(line)
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if res.Usage == nil {
		t.Fatal("usage sample missing")
	}
	if res.Usage.Model != "claude-opus-4-5" || res.Usage.Project != "acme" {
		t.Errorf("sample = %+v", res.Usage)
	}
	if res.Usage.Usage.CacheReadTokens != 9000 || res.Usage.Usage.CacheWriteTokens != 200 {
		t.Errorf("cache tokens = %+v", res.Usage.Usage)
	}
}

func TestLine_MalformedJSON(t *testing.T) {
	if _, err := Line([]byte(`{"type":"assistant",`)); err == nil {
		t.Error("malformed JSON should return an error")
	}
}

func TestLine_MalformedUsage(t *testing.T) {
	line := []byte(`{"type":"assistant","timestamp":"2026-02-11T14:30:00Z","message":{"model":"opus","usage":{"input_tokens":"lots"}}}`)
	if _, err := Line(line); err == nil {
		t.Error("malformed usage sub-object should return an error")
	}
}

func TestLine_UnknownTypeIgnored(t *testing.T) {
	line := []byte(`{"type":"summary","timestamp":"2026-02-11T14:30:00Z","summary":"compacted"}`)
	res, err := Line(line)
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if len(res.Events) != 0 || res.Usage != nil {
		t.Error("summary records should classify to nothing")
	}
}

func TestCommandKind(t *testing.T) {
	tests := []struct {
		command string
		want    core.CommandKind
		git     bool
	}{
		{"go test ./...", core.CommandTest, false},
		{"npm run build", core.CommandBuild, false},
		{"pip install requests", core.CommandDependency, false},
		{"git commit -m 'fix'", core.CommandGit, true},
		{"git checkout -b feature", core.CommandGit, true},
		{"docker compose up", core.CommandInfra, false},
		{"ls -la", core.CommandOther, false},
	}
	for _, tt := range tests {
		kind, git := CommandKind(tt.command)
		if kind != tt.want || git != tt.git {
			t.Errorf("CommandKind(%q) = %s/%v, want %s/%v", tt.command, kind, git, tt.want, tt.git)
		}
	}
}

func TestFileCategory(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/api_test.go", "test"},
		{"README.md", "docs"},
		{"config/settings.yaml", "config"},
		{"styles/main.css", "style"},
		{"src/Button.tsx", "component"},
		{"src/routes/login.go", "route"},
		{"db/schema.sql", "database"},
		{"src/main.go", "code"},
	}
	for _, tt := range tests {
		if got := FileCategory(tt.path); got != tt.want {
			t.Errorf("FileCategory(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}
