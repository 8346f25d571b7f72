package analytics

import (
	"testing"
	"time"

	"github.com/s3nik/ccjournal/internal/core"
)

func sessionWithFiles(project string, created ...string) core.Session {
	return core.Session{
		Project:      project,
		Date:         "2026-02-11",
		FilesCreated: created,
		CommandKinds: map[core.CommandKind]int{},
	}
}

func TestBucketFor(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"src/api.py", BucketAPI},
		{"internal/server/handler.go", BucketAPI},
		{"src/api_test.go", BucketTests},
		{"spec/user_spec.rb", BucketTests},
		{"web/Button.tsx", BucketFrontend},
		{"styles/main.css", BucketFrontend},
		{"db/schema.sql", BucketDatabase},
		{"migrations/001_init.sql", BucketDatabase},
		{"scripts/deploy.sh", BucketScripts},
		{"README.md", BucketDocs},
		{"config/app.yaml", BucketConfig},
		{"src/capital.py", BucketCode}, // "api" inside a word must not match
		{"pkg/parser.go", BucketCode},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			if got := bucketFor(tc.path); got != tc.want {
				t.Errorf("bucketFor(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestDeliverables_DedupFilterAndOrdering(t *testing.T) {
	s1 := sessionWithFiles("acme", "src/api.py", "README.md", "/tmp/scratch.py")
	s2 := core.Session{
		Project:       "acme",
		Date:          "2026-02-11",
		FilesModified: []string{"src/api.py", "docs/design.md"},
		CommandKinds:  map[core.CommandKind]int{},
	}

	groups := Deliverables([]core.Session{s1, s2})
	if len(groups) != 2 {
		t.Fatalf("groups = %+v, want 2 buckets", groups)
	}
	// Specific bucket first, generic docs after, even though docs has more paths.
	if groups[0].Bucket != BucketAPI {
		t.Errorf("first bucket = %q, want %q", groups[0].Bucket, BucketAPI)
	}
	if len(groups[0].Paths) != 1 {
		t.Errorf("api paths = %v, want deduplicated single entry", groups[0].Paths)
	}
	if groups[1].Bucket != BucketDocs || len(groups[1].Paths) != 2 {
		t.Errorf("docs bucket = %+v", groups[1])
	}
}

func TestDetectTDD_RequiresInterleaving(t *testing.T) {
	testCmd := core.Event{Action: core.ActionCommand, CommandKind: core.CommandTest}
	edit := core.Event{Action: core.ActionModifiedFile, Path: "a.go"}

	interleaved := core.Session{Events: []core.Event{edit, testCmd, edit, testCmd}}
	if !detectTDD(interleaved) {
		t.Error("interleaved edits and test runs should fire TDD")
	}

	// All edits first, one test run at the end: co-occurrence, not TDD.
	batched := core.Session{Events: []core.Event{edit, edit, edit, testCmd}}
	if detectTDD(batched) {
		t.Error("single trailing test run should not fire TDD")
	}
}

func TestDetectResearchHeavy(t *testing.T) {
	s := core.Session{
		Events:        make([]core.Event, 10),
		ResearchCount: 3,
	}
	if !detectResearchHeavy(s) {
		t.Error("3 of 10 research events should fire")
	}
	s.ResearchCount = 1
	if detectResearchHeavy(s) {
		t.Error("1 of 10 should not fire")
	}
	tiny := core.Session{Events: make([]core.Event, 3), ResearchCount: 3}
	if detectResearchHeavy(tiny) {
		t.Error("sessions under 5 events should not fire")
	}
}

func TestDetectSpecDriven(t *testing.T) {
	docsOnly := core.Session{FilesCreated: []string{"docs/plan.md", "NOTES.md"}}
	if !detectSpecDriven(docsOnly) {
		t.Error("markdown-only touches should fire")
	}
	mixed := core.Session{FilesCreated: []string{"docs/plan.md", "main.go"}}
	if detectSpecDriven(mixed) {
		t.Error("code touches should suppress spec-driven")
	}
	testDoc := core.Session{FilesCreated: []string{"test-plan.md"}}
	if detectSpecDriven(testDoc) {
		t.Error("test documents are excluded")
	}
	if detectSpecDriven(core.Session{}) {
		t.Error("no touches should not fire")
	}
}

func TestDetectSafetyFirst(t *testing.T) {
	safe := core.Session{Events: []core.Event{
		{Action: core.ActionModifiedFile, Path: ".claude/hooks/pre-commit.sh"},
		{Action: core.ActionCommand, Command: "golangci-lint run"},
	}}
	if !detectSafetyFirst(safe) {
		t.Error("all-safety session should fire")
	}
	mixed := core.Session{Events: []core.Event{
		{Action: core.ActionModifiedFile, Path: ".claude/hooks/pre-commit.sh"},
		{Action: core.ActionModifiedFile, Path: "main.go"},
	}}
	if detectSafetyFirst(mixed) {
		t.Error("feature work should suppress safety-first")
	}
}

func TestScorePrompt_Weights(t *testing.T) {
	p := core.Prompt{Events: []core.Event{
		{Action: core.ActionCreatedFile},
		{Action: core.ActionModifiedFile},
		{Action: core.ActionTaskCompleted},
		{Action: core.ActionCommand},
		{Action: core.ActionDelegated},
	}}
	sp := ScorePrompt(p)
	want := 3*2 + 5*1 + 1*1 + 4*1
	if sp.Score != want {
		t.Errorf("score = %d, want %d", sp.Score, want)
	}
}

func TestLeaderboard_TopFiveTiesAndSlumps(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2026, 2, 11, h, 0, 0, 0, time.UTC) }
	workEvents := []core.Event{{Action: core.ActionCreatedFile}}

	var prompts []core.Prompt
	for h := 9; h < 16; h++ {
		prompts = append(prompts, core.Prompt{Text: "do work", Time: at(h), Events: workEvents})
	}
	prompts = append(prompts, core.Prompt{Text: "what does this do?", Time: at(16)})

	top, slumps := Leaderboard(prompts)
	if len(top) != 5 {
		t.Fatalf("leaderboard = %d entries, want 5", len(top))
	}
	// Equal scores rank the earlier prompt first.
	for i, sp := range top {
		if want := at(9 + i); !sp.Time.Equal(want) {
			t.Errorf("top[%d].Time = %v, want %v", i, sp.Time, want)
		}
	}
	if len(slumps) != 1 {
		t.Fatalf("slumps = %d, want 1", len(slumps))
	}
	if kind := ClassifySlump(slumps[0].Text); kind != SlumpExploration {
		t.Errorf("slump kind = %q, want exploration", kind)
	}
}

func TestClassifySlump(t *testing.T) {
	cases := map[string]SlumpKind{
		"how does the sync work?": SlumpExploration,
		"install the linter":      SlumpSetup,
		"hmm":                     SlumpOther,
	}
	for text, want := range cases {
		if got := ClassifySlump(text); got != want {
			t.Errorf("ClassifySlump(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestWorkCategory(t *testing.T) {
	cases := map[string]string{
		"fix the login bug":            WorkDebugging,
		"add a settings page":          WorkBuilding,
		"refactor the parser":          WorkRefactoring,
		"write tests for the store":    WorkTesting,
		"explain the offset handling":  WorkLearning,
		"release version 2.1":          WorkDeploying,
		"/clear":                       WorkSlash,
		"ok":                           WorkSlash,
		"wire the renderer to cobra?!": WorkCoding,
	}
	for text, want := range cases {
		if got := WorkCategory(text); got != want {
			t.Errorf("WorkCategory(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestComputeVibe(t *testing.T) {
	start := time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)
	long := core.Session{
		Project: "acme", Start: start, End: start.Add(5 * time.Hour),
		FilesCreated: []string{"a.go"}, CommandKinds: map[core.CommandKind]int{},
	}
	short := core.Session{
		Project: "widgets", Start: start, End: start.Add(30 * time.Minute),
		CommandKinds: map[core.CommandKind]int{},
	}

	v := ComputeVibe([]core.Session{long, short}, []Patterns{{TDD: true}, {}})
	if v.Energy != EnergyDeep {
		t.Errorf("energy = %q, want %q", v.Energy, EnergyDeep)
	}
	if v.Focus != FocusBalanced {
		t.Errorf("focus = %q, want %q", v.Focus, FocusBalanced)
	}
	if v.Highlight != "acme" {
		t.Errorf("highlight = %q, want acme", v.Highlight)
	}
	if len(v.Methods) != 1 || v.Methods[0] != "test-driven" {
		t.Errorf("methods = %v", v.Methods)
	}

	if got := ComputeVibe(nil, nil); got.Energy != "" {
		t.Errorf("empty day vibe = %+v", got)
	}
}

func TestRankProjects_OrderAndSplit(t *testing.T) {
	big := core.Session{
		Project:        "acme",
		FilesCreated:   []string{"a.go", "b.go"},
		TasksCompleted: 2,
		CommandKinds:   map[core.CommandKind]int{core.CommandTest: 3},
	}
	small := core.Session{
		Project:      "widgets",
		CommandKinds: map[core.CommandKind]int{core.CommandOther: 1},
	}

	ranks := RankProjects([]core.Session{small, big})
	if ranks[0].Project != "acme" || ranks[1].Project != "widgets" {
		t.Fatalf("rank order = %+v", ranks)
	}
	if want := 3*2 + 4*2 + 1*3; ranks[0].Score != want {
		t.Errorf("acme score = %d, want %d", ranks[0].Score, want)
	}

	detailed, collapsed := SplitRanks(ranks, 1)
	if len(detailed) != 1 || len(collapsed) != 1 {
		t.Errorf("split = %d detailed / %d collapsed, want 1/1", len(detailed), len(collapsed))
	}
}

func TestExtractPrinciples_EvidenceOrderAndCap(t *testing.T) {
	research := core.Session{Project: "acme", ResearchCount: 9, Events: make([]core.Event, 20)}
	delegating := core.Session{Project: "widgets", Delegations: 3}
	sessions := []core.Session{research, delegating}
	patterns := []Patterns{{ResearchHeavy: true}, {ParallelWork: true}}

	principles := ExtractPrinciples(sessions, patterns)
	if len(principles) != 2 {
		t.Fatalf("principles = %+v, want 2", principles)
	}
	// Research evidence (9) outweighs delegation evidence (3).
	if principles[0].Name != "Research-First Development" {
		t.Errorf("first principle = %q", principles[0].Name)
	}
	if principles[1].Name != "Parallel Agent Delegation" {
		t.Errorf("second principle = %q", principles[1].Name)
	}
}

func TestAnalyze_EmptyDay(t *testing.T) {
	report := Analyze("2026-02-11", nil)
	if !report.Empty() {
		t.Error("no sessions should report an empty day")
	}
	if report.Date != "2026-02-11" {
		t.Errorf("date = %q", report.Date)
	}
}

func TestAnalyze_ScenarioApiLayer(t *testing.T) {
	s := core.Session{
		Project:        "acme",
		Date:           "2026-02-11",
		FilesCreated:   []string{"src/api.py"},
		TasksCompleted: 1,
		CommandKinds:   map[core.CommandKind]int{},
		Prompts:        []core.Prompt{{Text: "build the api", Events: []core.Event{{Action: core.ActionCreatedFile}}}},
	}
	report := Analyze("2026-02-11", []core.Session{s})
	if len(report.Deliverables) == 0 || report.Deliverables[0].Bucket != BucketAPI {
		t.Fatalf("deliverables = %+v, want src/api.py in the API layer bucket", report.Deliverables)
	}
	if len(report.TopPrompts) != 1 {
		t.Errorf("top prompts = %d, want 1", len(report.TopPrompts))
	}
}
