package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/s3nik/ccjournal/internal/analytics"
	"github.com/s3nik/ccjournal/internal/core"
	"github.com/s3nik/ccjournal/internal/render"
	"github.com/s3nik/ccjournal/internal/session"
)

func (a *app) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse tracked days interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.syncBeforeQuery(); err != nil {
				return err
			}
			entries, err := a.historyEntries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("Nothing tracked yet. Run sync first.")
				return nil
			}

			m := browseModel{app: a, entries: entries, cursor: len(entries) - 1}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type browseModel struct {
	app     *app
	entries []render.HistoryEntry
	cursor  int
	detail  string // non-empty while showing one day
	err     error
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.detail != "" {
			m.detail = ""
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.detail == "" && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.detail == "" && m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		if m.detail == "" {
			m.detail, m.err = m.renderDay(m.entries[m.cursor].Date)
		}
	}
	return m, nil
}

func (m browseModel) renderDay(date string) (string, error) {
	events, err := m.app.store.LoadDay(date)
	if err != nil {
		return "", err
	}
	sessions := session.Reconstruct(date, events, m.app.cfg.IdleThreshold())
	report := analytics.Analyze(date, sessions)

	var totals *core.UsageTotals
	if stats, err := m.app.store.LoadStats(); err == nil {
		totals = stats.ByDate[date]
	}
	return render.DaySummary(report, totals, m.app.cfg.TopProjects, false), nil
}

var (
	browseTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBA6F7"))
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAB387"))
	browseDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#585B70"))
)

func (m browseModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n\npress q to quit", m.err)
	}
	if m.detail != "" {
		return m.detail + "\n" + browseDimStyle.Render("esc back · q quit")
	}

	var b strings.Builder
	b.WriteString(browseTitleStyle.Render("ccjournal · tracked days") + "\n\n")
	for i, e := range m.entries {
		line := fmt.Sprintf("%s  %4d events", e.Date, e.Events)
		if e.Provenance == core.ProvenanceBackfilled {
			line += "  (backfilled)"
		}
		if i == m.cursor {
			b.WriteString(browseCursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + browseDimStyle.Render("↑/↓ move · enter open · q quit"))
	return b.String()
}
