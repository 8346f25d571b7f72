package sync

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/store"
)

// historyEntry is one coarse session record from the assistant's prompt
// history file. Timestamps are unix milliseconds.
type historyEntry struct {
	Timestamp int64  `json:"timestamp"`
	Project   string `json:"project"`
	Display   string `json:"display"`
}

const maxBackfillPromptLen = 200

// BackfillReport summarizes one backfill merge pass.
type BackfillReport struct {
	Entries int
	Created []string
	Updated []string
	Skipped []string
}

// Backfill reconstructs daily logs for dates that predate detailed tracking,
// from the coarse session history at historyPath. Dates already holding
// detailed events are never touched; dates holding only earlier backfill
// output are rewritten wholesale, so rerunning is idempotent.
func Backfill(historyPath string, st *store.Store) (*BackfillReport, error) {
	f, err := os.Open(historyPath)
	if err != nil {
		return nil, fmt.Errorf("sync: open history file: %w", err)
	}
	defer f.Close()

	byDate := make(map[string][]core.Event)
	report := &BackfillReport{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry historyEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			log.Printf("[backfill] skip malformed entry: %v", err)
			continue
		}
		if entry.Timestamp == 0 {
			continue
		}
		ts := time.UnixMilli(entry.Timestamp)
		date := ts.Format(core.DateLayout)
		byDate[date] = append(byDate[date], core.Event{
			Date:        date,
			TS:          ts.Format("15:04:05"),
			Source:      core.SourceBackfill,
			Action:      core.ActionUserPrompt,
			Project:     core.ProjectName(entry.Project),
			CWD:         entry.Project,
			Prompt:      truncatePrompt(entry.Display),
			Description: "Session activity",
		})
		report.Entries++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sync: read history file: %w", err)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		prov, err := st.DayProvenance(date)
		if err != nil {
			return nil, err
		}
		switch prov {
		case core.ProvenanceDetailed:
			report.Skipped = append(report.Skipped, date)
			continue
		case core.ProvenanceBackfilled:
			report.Updated = append(report.Updated, date)
		default:
			report.Created = append(report.Created, date)
		}

		events := byDate[date]
		sort.SliceStable(events, func(i, j int) bool { return events[i].TS < events[j].TS })
		if err := st.ReplaceDay(date, events); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func truncatePrompt(s string) string {
	if len(s) <= maxBackfillPromptLen {
		return s
	}
	return s[:maxBackfillPromptLen]
}
