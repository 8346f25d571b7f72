package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/s3nik/ccjournal/internal/core"
)

// StatsView renders the durable usage aggregate: totals first, then the
// by-model and by-project breakdowns sorted by cost.
func StatsView(stats *core.Stats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ Usage & cost") + "\n\n")

	var totals core.UsageTotals
	for _, cell := range stats.ByDate {
		totals.Merge(*cell)
	}
	if totals.Requests == 0 {
		b.WriteString(dimStyle.Render("No usage recorded yet. Run sync first."))
		return cardStyle.Render(b.String())
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s tokens over %s requests\n",
		labelStyle.Render("spent"), money(totals.CostUSD),
		labelStyle.Render("cache saved"), money(totals.CacheSavingsUSD),
		labelStyle.Render("volume"), countStyle.Render(tokens(totals.Total())),
		countStyle.Render(fmt.Sprintf("%d", totals.Requests))))
	b.WriteString("\n")

	b.WriteString(facetTable("By model", stats.ByModel))
	b.WriteString("\n")
	b.WriteString(facetTable("By project", stats.ByProject))

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func facetTable(header string, facet map[string]*core.UsageTotals) string {
	keys := make([]string, 0, len(facet))
	for k := range facet {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if facet[keys[i]].CostUSD != facet[keys[j]].CostUSD {
			return facet[keys[i]].CostUSD > facet[keys[j]].CostUSD
		}
		return keys[i] < keys[j]
	})

	var b strings.Builder
	b.WriteString(sectionStyle.Render(header) + "\n")
	for _, key := range keys {
		cell := facet[key]
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			money(cell.CostUSD),
			valueStyle.Render(key),
			dimStyle.Render(fmt.Sprintf("%s in / %s out / %s cached",
				tokens(cell.InputTokens), tokens(cell.OutputTokens), tokens(cell.CacheReadTokens)))))
	}
	return b.String()
}
