package core

import "time"

// Action is the closed taxonomy every raw source record is classified into.
type Action string

const (
	ActionUserPrompt    Action = "user_prompt"
	ActionCreatedFile   Action = "created_file"
	ActionModifiedFile  Action = "modified_file"
	ActionCommand       Action = "command"
	ActionGitOperation  Action = "git_operation"
	ActionTaskPlanned   Action = "task_planned"
	ActionTaskCompleted Action = "task_completed"
	ActionResearch      Action = "research"
	ActionWebResearch   Action = "web_research"
	ActionDelegated     Action = "delegated"
)

// CommandKind sub-categorizes ActionCommand by command text.
type CommandKind string

const (
	CommandTest       CommandKind = "test"
	CommandBuild      CommandKind = "build"
	CommandDependency CommandKind = "dependency"
	CommandGit        CommandKind = "git"
	CommandInfra      CommandKind = "infra"
	CommandOther      CommandKind = "other"
)

// SourceBackfill marks events synthesized from the coarse history index.
// Events from the live per-tool-call stream leave Source empty.
const SourceBackfill = "backfill"

// Event is one normalized activity event as stored in a daily log.
type Event struct {
	Date    string `json:"date"`
	TS      string `json:"ts"` // HH:MM:SS, local to the record
	Project string `json:"project"`
	CWD     string `json:"cwd,omitempty"`
	Source  string `json:"source,omitempty"`
	Action  Action `json:"action"`

	Prompt      string      `json:"prompt,omitempty"`
	File        string      `json:"file,omitempty"`
	Path        string      `json:"path,omitempty"`
	Category    string      `json:"category,omitempty"`
	Command     string      `json:"command,omitempty"`
	CommandKind CommandKind `json:"command_kind,omitempty"`
	Description string      `json:"description,omitempty"`
	Tool        string      `json:"tool,omitempty"`
	Target      string      `json:"target,omitempty"`
	Agent       string      `json:"agent,omitempty"`
	Task        string      `json:"task,omitempty"`
	TaskID      string      `json:"task_id,omitempty"`
}

// Time parses the event's clock time on its date. Events with an
// unparseable TS sort to midnight.
func (e Event) Time() time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", e.Date+" "+e.TS)
	if err != nil {
		t, _ = time.Parse("2006-01-02", e.Date)
	}
	return t
}

// Provenance describes which pass produced a daily log.
type Provenance string

const (
	ProvenanceNone       Provenance = ""
	ProvenanceDetailed   Provenance = "detailed"
	ProvenanceBackfilled Provenance = "backfilled"
)

// TokenUsage holds per-kind token counts from one or more assistant records.
type TokenUsage struct {
	InputTokens      int64 `json:"input_tokens"`
	OutputTokens     int64 `json:"output_tokens"`
	CacheReadTokens  int64 `json:"cache_read_tokens"`
	CacheWriteTokens int64 `json:"cache_write_tokens"`
}

func (u TokenUsage) Add(o TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:      u.InputTokens + o.InputTokens,
		OutputTokens:     u.OutputTokens + o.OutputTokens,
		CacheReadTokens:  u.CacheReadTokens + o.CacheReadTokens,
		CacheWriteTokens: u.CacheWriteTokens + o.CacheWriteTokens,
	}
}

func (u TokenUsage) Total() int64 {
	return u.InputTokens + u.OutputTokens + u.CacheReadTokens + u.CacheWriteTokens
}

// UsageTotals is one facet cell of the stats aggregate.
type UsageTotals struct {
	TokenUsage
	Requests            int64   `json:"requests"`
	CostUSD             float64 `json:"cost_usd"`
	CostWithoutCacheUSD float64 `json:"cost_without_cache_usd"`
	CacheSavingsUSD     float64 `json:"cache_savings_usd"`
}

// AddSample folds one priced usage sample into the cell.
func (t *UsageTotals) AddSample(u TokenUsage, cost, costWithoutCache float64) {
	t.TokenUsage = t.TokenUsage.Add(u)
	t.Requests++
	t.CostUSD += cost
	t.CostWithoutCacheUSD += costWithoutCache
	t.CacheSavingsUSD = t.CostWithoutCacheUSD - t.CostUSD
}

// Merge folds another cell into this one.
func (t *UsageTotals) Merge(o UsageTotals) {
	t.TokenUsage = t.TokenUsage.Add(o.TokenUsage)
	t.Requests += o.Requests
	t.CostUSD += o.CostUSD
	t.CostWithoutCacheUSD += o.CostWithoutCacheUSD
	t.CacheSavingsUSD = t.CostWithoutCacheUSD - t.CostUSD
}

// StatsVersion is bumped when the aggregate schema changes; a mismatch on
// load triggers a full resync instead of a failed invocation.
const StatsVersion = 1

// Stats is the durable usage/cost aggregate. All three facets are updated
// together per reconciliation batch.
type Stats struct {
	Version   int                     `json:"version"`
	ByDate    map[string]*UsageTotals `json:"by_date"`
	ByModel   map[string]*UsageTotals `json:"by_model"`
	ByProject map[string]*UsageTotals `json:"by_project"`
}

func NewStats() *Stats {
	return &Stats{
		Version:   StatsVersion,
		ByDate:    make(map[string]*UsageTotals),
		ByModel:   make(map[string]*UsageTotals),
		ByProject: make(map[string]*UsageTotals),
	}
}

func facetCell(m map[string]*UsageTotals, key string) *UsageTotals {
	cell, ok := m[key]
	if !ok {
		cell = &UsageTotals{}
		m[key] = cell
	}
	return cell
}

// Record updates all three facets together for one priced sample.
func (s *Stats) Record(date, model, project string, u TokenUsage, cost, costWithoutCache float64) {
	facetCell(s.ByDate, date).AddSample(u, cost, costWithoutCache)
	facetCell(s.ByModel, model).AddSample(u, cost, costWithoutCache)
	facetCell(s.ByProject, project).AddSample(u, cost, costWithoutCache)
}

// Session is a derived, time-bounded cluster of one project's events on one
// date. Built fresh per query, never persisted.
type Session struct {
	Project string
	Date    string
	Start   time.Time
	End     time.Time
	Events  []Event

	FilesCreated     []string
	FilesModified    []string
	TasksPlanned     int
	TasksCompleted   int
	CommandKinds     map[CommandKind]int
	Delegations      int
	ResearchCount    int
	WebResearchCount int
	Prompts          []Prompt
}

func (s *Session) Duration() time.Duration {
	if s.End.Before(s.Start) {
		return 0
	}
	return s.End.Sub(s.Start)
}

// Prompt is one user-authored request plus the events causally following it
// until the next prompt boundary.
type Prompt struct {
	Text    string
	Project string
	Time    time.Time
	Events  []Event
}

// Principle is a derived narrative artifact mapping detected work patterns
// to a named engineering principle.
type Principle struct {
	Name      string
	Example   string
	Extension string
}
