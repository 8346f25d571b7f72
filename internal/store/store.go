// Package store owns the durable state layout: one append-only JSON-lines
// log per calendar date, a stats aggregate file, and a sync-state file
// mapping source files to consumed byte offsets.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/s3nik/ccjournal/internal/core"
)

// ErrStateCorrupt reports an unreadable or schema-mismatched durable file.
// Callers recover by falling back to a full resync, never by failing the
// invocation.
var ErrStateCorrupt = errors.New("store: state corrupt")

const maxLineBytes = 10 * 1024 * 1024

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir resolves the state directory under XDG_STATE_HOME, falling
// back to ~/.local/state/ccjournal.
func DefaultDir() (string, error) {
	if base := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); base != "" {
		return filepath.Join(base, "ccjournal"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("store: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "ccjournal"), nil
}

func (s *Store) Dir() string          { return s.dir }
func (s *Store) LogsDir() string      { return filepath.Join(s.dir, "logs") }
func (s *Store) SummariesDir() string { return filepath.Join(s.dir, "summaries") }
func (s *Store) statsPath() string    { return filepath.Join(s.dir, "stats.json") }
func (s *Store) statePath() string    { return filepath.Join(s.dir, ".sync-state.json") }

func (s *Store) dayPath(date string) string {
	return filepath.Join(s.LogsDir(), date+".jsonl")
}

// SyncState maps source-file identity to the last consumed byte offset.
type SyncState struct {
	Files map[string]int64 `json:"files"`
}

func NewSyncState() *SyncState {
	return &SyncState{Files: make(map[string]int64)}
}

func (s *Store) LoadSyncState() (*SyncState, error) {
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewSyncState(), nil
		}
		return nil, fmt.Errorf("%w: reading sync state: %v", ErrStateCorrupt, err)
	}
	var state SyncState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: parsing sync state: %v", ErrStateCorrupt, err)
	}
	if state.Files == nil {
		state.Files = make(map[string]int64)
	}
	return &state, nil
}

func (s *Store) SaveSyncState(state *SyncState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal sync state: %w", err)
	}
	return s.atomicWrite(s.statePath(), append(data, '\n'))
}

// AppendEvents appends normalized events to the date's log.
func (s *Store) AppendEvents(date string, events []core.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.LogsDir(), 0o755); err != nil {
		return fmt.Errorf("store: create logs dir: %w", err)
	}
	f, err := os.OpenFile(s.dayPath(date), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("store: open day log %s: %w", date, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, ev := range events {
		line, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("store: marshal event: %w", err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("store: append day log %s: %w", date, err)
	}
	return nil
}

// ReplaceDay rewrites a date's log wholesale. Used by the backfill pass,
// which has no durable per-event identity to merge by.
func (s *Store) ReplaceDay(date string, events []core.Event) error {
	if err := os.MkdirAll(s.LogsDir(), 0o755); err != nil {
		return fmt.Errorf("store: create logs dir: %w", err)
	}
	var b strings.Builder
	for _, ev := range events {
		line, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("store: marshal event: %w", err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return s.atomicWrite(s.dayPath(date), []byte(b.String()))
}

// LoadDay reads a date's events. A missing log is an empty day, not an
// error; malformed lines are skipped.
func (s *Store) LoadDay(date string) ([]core.Event, error) {
	f, err := os.Open(s.dayPath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: open day log %s: %w", date, err)
	}
	defer f.Close()

	var events []core.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev core.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("store: scan day log %s: %w", date, err)
	}
	return events, nil
}

// DayProvenance reports whether a date holds detailed events, backfilled
// events, or nothing.
func (s *Store) DayProvenance(date string) (core.Provenance, error) {
	events, err := s.LoadDay(date)
	if err != nil {
		return core.ProvenanceNone, err
	}
	if len(events) == 0 {
		return core.ProvenanceNone, nil
	}
	// A single detailed event upgrades the whole day: backfill must never
	// clobber a date holding any live-tracked data.
	for _, ev := range events {
		if ev.Source != core.SourceBackfill {
			return core.ProvenanceDetailed, nil
		}
	}
	return core.ProvenanceBackfilled, nil
}

// ListDates returns every date with a log file, ascending.
func (s *Store) ListDates() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.LogsDir(), "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("store: glob day logs: %w", err)
	}
	dates := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".jsonl")
		if _, err := core.ParseDate(name); err == nil {
			dates = append(dates, name)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (s *Store) LoadStats() (*core.Stats, error) {
	data, err := os.ReadFile(s.statsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return core.NewStats(), nil
		}
		return nil, fmt.Errorf("%w: reading stats: %v", ErrStateCorrupt, err)
	}
	var stats core.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("%w: parsing stats: %v", ErrStateCorrupt, err)
	}
	if stats.Version != core.StatsVersion {
		return nil, fmt.Errorf("%w: stats version %d, want %d", ErrStateCorrupt, stats.Version, core.StatsVersion)
	}
	if stats.ByDate == nil {
		stats.ByDate = make(map[string]*core.UsageTotals)
	}
	if stats.ByModel == nil {
		stats.ByModel = make(map[string]*core.UsageTotals)
	}
	if stats.ByProject == nil {
		stats.ByProject = make(map[string]*core.UsageTotals)
	}
	return &stats, nil
}

func (s *Store) SaveStats(stats *core.Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal stats: %w", err)
	}
	return s.atomicWrite(s.statsPath(), append(data, '\n'))
}

// Reset drops all derived durable state: day logs, stats, sync offsets.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.LogsDir()); err != nil {
		return fmt.Errorf("store: reset logs: %w", err)
	}
	for _, path := range []string{s.statsPath(), s.statePath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: reset %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func (s *Store) atomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: create dir for %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("store: rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
