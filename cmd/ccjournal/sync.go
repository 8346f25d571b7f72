package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/sync"
)

func (a *app) newSyncCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull new activity from the assistant's native logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.runSync(reset)
			if err != nil {
				return err
			}
			printSyncReport(cmd, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "discard all state and resync from scratch")
	return cmd
}

// runSync is shared with the query commands, which sync before reading.
func (a *app) runSync(reset bool) (*sync.Report, error) {
	rec := sync.New(a.cfg.ClaudeDir, a.store)
	if reset {
		return rec.Reset()
	}
	return rec.Run()
}

func printSyncReport(cmd *cobra.Command, report *sync.Report) {
	if report.Events == 0 {
		cmd.Println("Already up to date.")
	} else {
		cmd.Printf("Synced %d events across %d dates.\n", report.Events, len(report.ByDate))
		for _, date := range report.Dates() {
			cmd.Printf("  %s: %d events\n", date, report.ByDate[date])
		}
	}
	if report.ParseErrors > 0 {
		cmd.Printf("Skipped %d malformed lines.\n", report.ParseErrors)
	}
	if len(report.Vanished) > 0 {
		cmd.Printf("%d sources unavailable this pass; their offsets are kept.\n", len(report.Vanished))
	}
}

// syncBeforeQuery refreshes state before a query command reads it. A source
// tree that is entirely absent is a configuration error and fails the
// invocation; anything less keeps the query going on whatever is on disk.
func (a *app) syncBeforeQuery() error {
	_, err := a.runSync(false)
	if err == nil {
		return nil
	}
	if errors.Is(err, sync.ErrNoSource) {
		return err
	}
	fmt.Fprintf(os.Stderr, "warning: sync skipped: %v\n", err)
	return nil
}
