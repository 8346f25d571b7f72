// Package classify turns raw source-stream lines into normalized events in
// the closed activity taxonomy, plus priced token-usage samples. It never
// lets untyped record shapes leak past this boundary: a line either parses
// into the taxonomy or is reported as a parse error.
package classify

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/s3nik/ccjournal/internal/core"
)

const (
	maxPromptLen  = 500
	maxCommandLen = 200
	maxTaskLen    = 200
)

type rawRecord struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	SessionID string      `json:"sessionId"`
	CWD       string      `json:"cwd"`
	Message   *rawMessage `json:"message,omitempty"`
}

type rawMessage struct {
	Model   string          `json:"model"`
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
	Usage   *rawUsage       `json:"usage,omitempty"`
}

type rawUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
}

type contentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type toolInput struct {
	FilePath     string    `json:"file_path"`
	Command      string    `json:"command"`
	Description  string    `json:"description"`
	Prompt       string    `json:"prompt"`
	SubagentType string    `json:"subagent_type"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	TaskID       string    `json:"taskId"`
	Pattern      string    `json:"pattern"`
	URL          string    `json:"url"`
	Query        string    `json:"query"`
	Todos        []rawTodo `json:"todos"`
}

type rawTodo struct {
	Content string `json:"content"`
	Status  string `json:"status"`
}

// UsageSample is one assistant record's token usage, ready for pricing.
type UsageSample struct {
	Date    string
	Model   string
	Project string
	Usage   core.TokenUsage
}

// Result is the classified outcome of one raw line.
type Result struct {
	Events []core.Event
	Usage  *UsageSample
}

// Line classifies one raw JSON line from the source stream. Lines that are
// not valid JSON, or whose token-usage sub-object is malformed, return an
// error; callers count these as soft parse errors and continue the batch.
func Line(line []byte) (Result, error) {
	var rec rawRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return Result{}, fmt.Errorf("classify: decode record: %w", err)
	}
	return classifyRecord(rec)
}

func classifyRecord(rec rawRecord) (Result, error) {
	ts, ok := parseTimestamp(rec.Timestamp)
	if !ok {
		// Records without a usable timestamp cannot be keyed to a date.
		return Result{}, nil
	}

	base := core.Event{
		Date:    ts.Format(core.DateLayout),
		TS:      ts.Format("15:04:05"),
		Project: core.ProjectName(rec.CWD),
		CWD:     rec.CWD,
	}

	switch rec.Type {
	case "user":
		return classifyUser(rec, base), nil
	case "assistant":
		return classifyAssistant(rec, base)
	default:
		return Result{}, nil
	}
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000Z", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func classifyUser(rec rawRecord, base core.Event) Result {
	if rec.Message == nil {
		return Result{}
	}
	// User-authored prompts carry plain string content; tool-result turns
	// carry a block array and are not prompts.
	var text string
	if err := json.Unmarshal(rec.Message.Content, &text); err != nil {
		return Result{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}
	}
	ev := base
	ev.Action = core.ActionUserPrompt
	ev.Prompt = truncate(text, maxPromptLen)
	return Result{Events: []core.Event{ev}}
}

func classifyAssistant(rec rawRecord, base core.Event) (Result, error) {
	if rec.Message == nil {
		return Result{}, nil
	}

	var res Result
	if u := rec.Message.Usage; u != nil {
		res.Usage = &UsageSample{
			Date:    base.Date,
			Model:   rec.Message.Model,
			Project: base.Project,
			Usage: core.TokenUsage{
				InputTokens:      u.InputTokens,
				OutputTokens:     u.OutputTokens,
				CacheReadTokens:  u.CacheReadInputTokens,
				CacheWriteTokens: u.CacheCreationInputTokens,
			},
		}
	}

	if len(rec.Message.Content) == 0 {
		return res, nil
	}
	var blocks []contentBlock
	if err := json.Unmarshal(rec.Message.Content, &blocks); err != nil {
		// Plain-text assistant content is legal and yields no events.
		var text string
		if json.Unmarshal(rec.Message.Content, &text) == nil {
			return res, nil
		}
		return Result{}, fmt.Errorf("classify: decode assistant content: %w", err)
	}

	for _, block := range blocks {
		if block.Type != "tool_use" {
			continue
		}
		var input toolInput
		if len(block.Input) > 0 {
			if err := json.Unmarshal(block.Input, &input); err != nil {
				return Result{}, fmt.Errorf("classify: decode %s input: %w", block.Name, err)
			}
		}
		res.Events = append(res.Events, classifyTool(block.Name, input, base)...)
	}
	return res, nil
}

// classifyTool maps one tool invocation to zero or one event, except for
// todo-list writes which expand to one event per task.
func classifyTool(tool string, input toolInput, base core.Event) []core.Event {
	ev := base
	switch tool {
	case "Write":
		if input.FilePath == "" {
			return nil
		}
		ev.Action = core.ActionCreatedFile
		ev.File = filepath.Base(input.FilePath)
		ev.Path = input.FilePath
		ev.Category = FileCategory(input.FilePath)

	case "Edit":
		if input.FilePath == "" {
			return nil
		}
		ev.Action = core.ActionModifiedFile
		ev.File = filepath.Base(input.FilePath)
		ev.Path = input.FilePath
		ev.Category = FileCategory(input.FilePath)

	case "Bash":
		if input.Command == "" {
			return nil
		}
		kind, isGit := CommandKind(input.Command)
		if isGit {
			ev.Action = core.ActionGitOperation
		} else {
			ev.Action = core.ActionCommand
		}
		ev.Command = truncate(input.Command, maxCommandLen)
		ev.CommandKind = kind
		ev.Description = input.Description

	case "Task":
		ev.Action = core.ActionDelegated
		ev.Agent = input.SubagentType
		ev.Task = truncate(input.Prompt, maxTaskLen)

	case "TaskCreate":
		ev.Action = core.ActionTaskPlanned
		ev.Task = truncate(input.Subject, maxTaskLen)

	case "TaskUpdate":
		if input.Status != "completed" {
			return nil
		}
		ev.Action = core.ActionTaskCompleted
		ev.TaskID = input.TaskID

	case "TodoWrite":
		return classifyTodos(input.Todos, base)

	case "Read", "Glob", "Grep":
		ev.Action = core.ActionResearch
		ev.Tool = tool
		ev.Target = firstNonEmpty(input.FilePath, input.Pattern)

	case "WebFetch", "WebSearch":
		ev.Action = core.ActionWebResearch
		ev.Tool = tool
		ev.Target = firstNonEmpty(input.URL, input.Query, truncate(input.Prompt, maxTaskLen))

	default:
		return nil
	}
	return []core.Event{ev}
}

func classifyTodos(todos []rawTodo, base core.Event) []core.Event {
	var events []core.Event
	for _, todo := range todos {
		if strings.TrimSpace(todo.Content) == "" {
			continue
		}
		ev := base
		ev.Task = truncate(todo.Content, maxTaskLen)
		if todo.Status == "completed" {
			ev.Action = core.ActionTaskCompleted
		} else {
			ev.Action = core.ActionTaskPlanned
		}
		events = append(events, ev)
	}
	return events
}

// CommandKind buckets a shell command by intent. The second return reports
// whether the command is a git operation rather than a plain command.
func CommandKind(command string) (core.CommandKind, bool) {
	lower := strings.ToLower(command)
	switch {
	case containsAny(lower, "git commit", "git push", "git checkout", "git branch", "git merge", "git rebase"):
		return core.CommandGit, true
	case containsAny(lower, "test", "jest", "pytest", "vitest", "spec"):
		return core.CommandTest, false
	case containsAny(lower, "build", "compile", "webpack", "vite", "tsc"):
		return core.CommandBuild, false
	case containsAny(lower, "npm install", "yarn add", "pip install", "cargo add", "go get"):
		return core.CommandDependency, false
	case containsAny(lower, "docker", "kubectl", "terraform"):
		return core.CommandInfra, false
	default:
		return core.CommandOther, false
	}
}

// FileCategory buckets a file path by extension and well-known path
// fragments, most specific first.
func FileCategory(path string) string {
	fp := strings.ToLower(path)
	switch {
	case containsAny(fp, "test", "spec", "__test__"):
		return "test"
	case containsAny(fp, ".md", "readme", "docs/"):
		return "docs"
	case containsAny(fp, ".json", ".yaml", ".yml", ".toml", "config"):
		return "config"
	case containsAny(fp, ".css", ".scss", ".less", "style"):
		return "style"
	case containsAny(fp, ".svelte", ".vue", ".jsx", ".tsx", "component"):
		return "component"
	case containsAny(fp, "route", "page", "endpoint", "api/"):
		return "route"
	case containsAny(fp, "schema", "model", "db/", "database"):
		return "database"
	default:
		return "code"
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

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
