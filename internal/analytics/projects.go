package analytics

import (
	"sort"

	"github.com/samber/lo"

	"github.com/s3nik/ccjournal/internal/core"
)

// Substance-score weights. Completed tasks count for more than raw file
// churn; commands are a weak signal on their own.
const (
	substanceFiles    = 3
	substanceTasks    = 4
	substanceCommands = 1
)

// DefaultTopProjects is how many projects get full narrative detail before
// the rest collapse into one summary line.
const DefaultTopProjects = 4

// ProjectRank is one project's merged totals for a day or range.
type ProjectRank struct {
	Project        string
	Score          int
	FilesTouched   int
	TasksCompleted int
	Commands       int
	Delegations    int
	Prompts        int
	Sessions       int
}

// SubstanceScore weighs a session's concrete output.
func SubstanceScore(s core.Session) int {
	files := len(s.FilesCreated) + len(s.FilesModified)
	commands := lo.Sum(lo.Values(s.CommandKinds))
	return substanceFiles*files + substanceTasks*s.TasksCompleted + substanceCommands*commands
}

// RankProjects merges sessions per project and orders them by substance.
// Ties order alphabetically so output is stable.
func RankProjects(sessions []core.Session) []ProjectRank {
	byProject := make(map[string]*ProjectRank)
	for _, s := range sessions {
		rank, ok := byProject[s.Project]
		if !ok {
			rank = &ProjectRank{Project: s.Project}
			byProject[s.Project] = rank
		}
		rank.Score += SubstanceScore(s)
		rank.FilesTouched += len(s.FilesCreated) + len(s.FilesModified)
		rank.TasksCompleted += s.TasksCompleted
		rank.Commands += lo.Sum(lo.Values(s.CommandKinds))
		rank.Delegations += s.Delegations
		rank.Prompts += len(s.Prompts)
		rank.Sessions++
	}

	ranks := lo.Map(lo.Values(byProject), func(r *ProjectRank, _ int) ProjectRank { return *r })
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Score != ranks[j].Score {
			return ranks[i].Score > ranks[j].Score
		}
		return ranks[i].Project < ranks[j].Project
	})
	return ranks
}

// SplitRanks separates the top n projects for detailed rendering from the
// collapsed remainder. The cap is presentation policy only; callers still
// hold the full ranking.
func SplitRanks(ranks []ProjectRank, n int) (detailed, collapsed []ProjectRank) {
	if n <= 0 {
		n = DefaultTopProjects
	}
	if len(ranks) <= n {
		return ranks, nil
	}
	return ranks[:n], ranks[n:]
}
