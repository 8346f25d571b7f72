// Package session rebuilds time-bounded work sessions from one day's
// normalized events. Sessions are derived per query and never persisted.
package session

import (
	"sort"
	"time"

	"github.com/s3nik/ccjournal/internal/core"
)

// Reconstruct groups one date's events by project into ordered sessions.
// Events are stable-sorted by timestamp, so two events with the same stamp
// keep their stored order. idleThreshold > 0 splits a project's run of
// events wherever the gap between neighbors exceeds it; zero keeps the whole
// day as one session per project.
func Reconstruct(date string, events []core.Event, idleThreshold time.Duration) []core.Session {
	byProject := make(map[string][]core.Event)
	for _, ev := range events {
		if ev.Date != date {
			continue
		}
		project := ev.Project
		if project == "" {
			project = "unknown"
		}
		byProject[project] = append(byProject[project], ev)
	}

	var sessions []core.Session
	for project, projectEvents := range byProject {
		sort.SliceStable(projectEvents, func(i, j int) bool {
			return projectEvents[i].TS < projectEvents[j].TS
		})
		for _, chunk := range splitIdle(projectEvents, idleThreshold) {
			sessions = append(sessions, build(project, date, chunk))
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Start.Equal(sessions[j].Start) {
			return sessions[i].Start.Before(sessions[j].Start)
		}
		return sessions[i].Project < sessions[j].Project
	})
	return sessions
}

// splitIdle cuts a sorted event run wherever the gap between consecutive
// events exceeds threshold.
func splitIdle(events []core.Event, threshold time.Duration) [][]core.Event {
	if threshold <= 0 || len(events) < 2 {
		return [][]core.Event{events}
	}
	var (
		chunks [][]core.Event
		start  int
	)
	prev := events[0].Time()
	for i := 1; i < len(events); i++ {
		cur := events[i].Time()
		if cur.Sub(prev) > threshold {
			chunks = append(chunks, events[start:i])
			start = i
		}
		prev = cur
	}
	return append(chunks, events[start:])
}

func build(project, date string, events []core.Event) core.Session {
	s := core.Session{
		Project:      project,
		Date:         date,
		Events:       events,
		CommandKinds: make(map[core.CommandKind]int),
	}

	s.Start = events[0].Time()
	s.End = events[len(events)-1].Time()

	current := -1
	for _, ev := range events {
		switch ev.Action {
		case core.ActionUserPrompt:
			s.Prompts = append(s.Prompts, core.Prompt{
				Text:    ev.Prompt,
				Project: project,
				Time:    ev.Time(),
			})
			current = len(s.Prompts) - 1
			continue
		case core.ActionCreatedFile:
			s.FilesCreated = append(s.FilesCreated, ev.Path)
		case core.ActionModifiedFile:
			s.FilesModified = append(s.FilesModified, ev.Path)
		case core.ActionCommand:
			kind := ev.CommandKind
			if kind == "" {
				kind = core.CommandOther
			}
			s.CommandKinds[kind]++
		case core.ActionGitOperation:
			s.CommandKinds[core.CommandGit]++
		case core.ActionTaskPlanned:
			s.TasksPlanned++
		case core.ActionTaskCompleted:
			s.TasksCompleted++
		case core.ActionResearch:
			s.ResearchCount++
		case core.ActionWebResearch:
			s.WebResearchCount++
		case core.ActionDelegated:
			s.Delegations++
		}
		// Everything after a prompt and before the next one is attributed
		// to that prompt.
		if current >= 0 {
			s.Prompts[current].Events = append(s.Prompts[current].Events, ev)
		}
	}
	return s
}
