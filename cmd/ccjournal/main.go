package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/config"
	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/store"
	"github.com/s3nik/ccjournal/internal/version"
)

// app carries the resolved configuration and store into every command.
type app struct {
	cfg   config.Config
	store *store.Store
}

func (a *app) now() time.Time { return time.Now() }

func (a *app) today() string { return core.FormatDate(a.now()) }

func main() {
	if os.Getenv("CCJOURNAL_DEBUG") == "" {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	a := &app{cfg: cfg}

	var (
		verbose   bool
		claudeDir string
		dataDir   string
	)

	root := &cobra.Command{
		Use:     "ccjournal",
		Short:   "ccjournal turns Claude Code activity logs into a daily engineering journal.",
		Version: version.String(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				log.SetOutput(os.Stderr)
			}
			if claudeDir != "" {
				a.cfg.ClaudeDir = claudeDir
			}
			if dataDir != "" {
				a.cfg.DataDir = dataDir
			}
			if a.cfg.DataDir == "" {
				def, err := store.DefaultDir()
				if err != nil {
					return err
				}
				a.cfg.DataDir = def
			}
			a.store = store.New(a.cfg.DataDir)
			return nil
		},
		// Bare invocation is today's summary.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSummary(cmd, summaryOptions{date: a.today()})
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress detail to stderr")
	root.PersistentFlags().StringVar(&claudeDir, "claude-dir", "", "override the Claude home directory")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the journal state directory")

	root.AddCommand(
		a.newSyncCommand(),
		a.newSummaryCommand(),
		a.newRangeCommand(),
		a.newStatsCommand(),
		a.newPromptsCommand(),
		a.newHistoryCommand(),
		a.newBackfillCommand(),
		a.newInstallHookCommand(),
		a.newBrowseCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
