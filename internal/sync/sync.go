// Package sync reconciles the assistant's native conversation logs into the
// durable activity store. It tracks a byte offset per source file so repeated
// runs only pay for new data, and it folds priced token usage into the stats
// aggregate in the same pass.
package sync

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/s3nik/ccjournal/internal/classify"
	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/pricing"
	"github.com/s3nik/ccjournal/internal/store"
)

// ErrNoSource means the assistant's projects directory does not exist. This
// is the one failure callers treat as a hard configuration error rather than
// an empty sync.
var ErrNoSource = errors.New("sync: source projects directory not found")

// Reconciler drives one incremental pass over the native logs.
type Reconciler struct {
	projectsDir string
	store       *store.Store
}

// New returns a Reconciler reading from claudeDir/projects and writing into st.
func New(claudeDir string, st *store.Store) *Reconciler {
	return &Reconciler{
		projectsDir: filepath.Join(claudeDir, "projects"),
		store:       st,
	}
}

// Report summarizes one reconciliation pass.
type Report struct {
	FilesScanned int
	FilesRead    int
	Events       int
	UsageSamples int
	ParseErrors  int
	ByDate       map[string]int
	Vanished     []string
}

// Dates returns the touched dates in ascending order.
func (r *Report) Dates() []string {
	dates := make([]string, 0, len(r.ByDate))
	for d := range r.ByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Run performs one incremental sync. Running it twice in a row is a no-op the
// second time: offsets only advance past complete lines, so a line is
// classified exactly once no matter how often or where reads are split.
func (r *Reconciler) Run() (*Report, error) {
	if _, err := os.Stat(r.projectsDir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoSource, r.projectsDir)
		}
		return nil, fmt.Errorf("sync: stat projects dir: %w", err)
	}

	state, err := r.store.LoadSyncState()
	if err == nil {
		var stats *core.Stats
		if stats, err = r.store.LoadStats(); err == nil {
			return r.run(state, stats)
		}
	}
	if !errors.Is(err, store.ErrStateCorrupt) {
		return nil, err
	}
	// Corrupt durable state falls back to a full resync instead of
	// failing the invocation.
	log.Printf("[sync] %v, falling back to full resync", err)
	return r.Reset()
}

func (r *Reconciler) run(state *store.SyncState, stats *core.Stats) (*Report, error) {
	sources, err := r.findSources()
	if err != nil {
		return nil, err
	}

	report := &Report{FilesScanned: len(sources), ByDate: make(map[string]int)}
	byDate := make(map[string][]core.Event)
	seen := make(map[string]bool, len(sources))

	for _, src := range sources {
		seen[src] = true
		offset := state.Files[src]

		events, samples, parseErrors, newOffset, err := readFrom(src, offset)
		if err != nil {
			// The file disappeared or turned unreadable mid-pass. Leave
			// its offset alone so a later run can pick it back up.
			log.Printf("[sync] skip %s: %v", src, err)
			report.Vanished = append(report.Vanished, src)
			continue
		}

		if newOffset != offset {
			report.FilesRead++
		}
		report.ParseErrors += parseErrors
		state.Files[src] = newOffset

		for _, ev := range events {
			byDate[ev.Date] = append(byDate[ev.Date], ev)
		}
		for _, sample := range samples {
			cost := pricing.Cost(sample.Model, sample.Usage)
			without := pricing.CostWithoutCache(sample.Model, sample.Usage)
			stats.Record(sample.Date, sample.Model, sample.Project, sample.Usage, cost, without)
			report.UsageSamples++
		}
	}

	// Sources that vanished between runs keep their offsets; they may be on
	// an unmounted volume rather than gone for good.
	for src := range state.Files {
		if !seen[src] {
			report.Vanished = append(report.Vanished, src)
		}
	}
	sort.Strings(report.Vanished)

	for date, events := range byDate {
		if err := r.store.AppendEvents(date, events); err != nil {
			return nil, err
		}
		report.Events += len(events)
		report.ByDate[date] += len(events)
	}

	if err := r.store.SaveStats(stats); err != nil {
		return nil, err
	}
	if err := r.store.SaveSyncState(state); err != nil {
		return nil, err
	}
	return report, nil
}

// Reset clears all durable state and replays every source from byte zero.
func (r *Reconciler) Reset() (*Report, error) {
	if err := r.store.Reset(); err != nil {
		return nil, err
	}
	return r.Run()
}

func (r *Reconciler) findSources() ([]string, error) {
	var sources []string
	err := filepath.WalkDir(r.projectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			log.Printf("[sync] walk %s: %v", path, err)
			return fs.SkipDir
		}
		if !d.IsDir() && filepath.Ext(path) == ".jsonl" {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sync: walk projects dir: %w", err)
	}
	sort.Strings(sources)
	return sources, nil
}

// maxLineBytes matches the store's limit; assistant turns with large pasted
// content routinely exceed bufio's default.
const maxLineBytes = 10 * 1024 * 1024

// readFrom classifies every complete line of path past offset. The returned
// offset stops at the end of the last newline-terminated line, so a line
// still being written is left for the next pass.
func readFrom(path string, offset int64) ([]core.Event, []classify.UsageSample, int, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, offset, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, 0, offset, err
	}
	if info.Size() < offset {
		// Truncated or rewritten source. Replay it from the start; the
		// per-date logs may hold duplicates until the next --reset, which
		// beats silently losing the rewritten tail.
		log.Printf("[sync] %s shrank below recorded offset, rereading", path)
		offset = 0
	}
	if info.Size() == offset {
		return nil, nil, 0, offset, nil
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, nil, 0, offset, err
	}

	var (
		events      []core.Event
		samples     []classify.UsageSample
		parseErrors int
	)

	reader := bufio.NewReaderSize(f, 64*1024)
	pos := offset
	for {
		line, err := readLine(reader)
		if err == io.EOF {
			// Partial trailing line: do not advance past it.
			break
		}
		if err != nil {
			return nil, nil, 0, offset, err
		}
		pos += int64(len(line))

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		result, cerr := classify.Line(trimmed)
		if cerr != nil {
			parseErrors++
			continue
		}
		events = append(events, result.Events...)
		if result.Usage != nil {
			samples = append(samples, *result.Usage)
		}
	}

	return events, samples, parseErrors, pos, nil
}

// readLine reads one newline-terminated line including its terminator. It
// returns io.EOF for a trailing fragment with no newline, discarding it.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err == nil {
		return line, nil
	}
	if err == io.EOF {
		return nil, io.EOF
	}
	return nil, err
}
