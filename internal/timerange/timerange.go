// Package timerange resolves relative and absolute date-range expressions
// into inclusive [start, end] windows against a single "now" reference.
package timerange

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/s3nik/ccjournal/internal/core"
)

// RangeError rejects an expression that cannot resolve or whose end precedes
// its start. It is surfaced to the caller, never coerced to an empty window.
type RangeError struct {
	Expr   string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("timerange: %q: %s", e.Expr, e.Reason)
}

// Range is an inclusive calendar window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Dates lists every date in the window, ascending.
func (r Range) Dates() []string {
	return core.DatesBetween(r.Start, r.End)
}

// Contains reports whether date falls inside the window.
func (r Range) Contains(date string) bool {
	d, err := core.ParseDate(date)
	if err != nil {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r Range) String() string {
	return core.FormatDate(r.Start) + ".." + core.FormatDate(r.End)
}

// Resolve turns one expression into an absolute window against now. It
// accepts "today", "yesterday", "Nd" (trailing N days including today),
// "this-month", "last-month", a single date, or "start..end". The same now
// is used for every relative form, so a call spanning midnight cannot mix
// reference days.
func Resolve(expr string, now time.Time) (Range, error) {
	expr = strings.TrimSpace(expr)
	today := midnight(now)

	switch strings.ToLower(expr) {
	case "":
		return Range{}, &RangeError{Expr: expr, Reason: "empty expression"}
	case "today":
		return Range{Start: today, End: today}, nil
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return Range{Start: y, End: y}, nil
	case "this-month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return Range{Start: start, End: today}, nil
	case "last-month":
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		start := firstOfThis.AddDate(0, -1, 0)
		return Range{Start: start, End: firstOfThis.AddDate(0, 0, -1)}, nil
	}

	if days, ok := parseDaySpan(expr); ok {
		if days < 1 {
			return Range{}, &RangeError{Expr: expr, Reason: "day span must be at least 1"}
		}
		return Range{Start: today.AddDate(0, 0, -(days - 1)), End: today}, nil
	}

	if start, end, ok := strings.Cut(expr, ".."); ok {
		return resolveAbsolute(expr, start, end)
	}

	d, err := core.ParseDate(expr)
	if err != nil {
		return Range{}, &RangeError{Expr: expr, Reason: "not a recognized range expression"}
	}
	return Range{Start: d, End: d}, nil
}

// parseDaySpan matches "7d" style trailing-window expressions.
func parseDaySpan(expr string) (int, bool) {
	trimmed, found := strings.CutSuffix(strings.ToLower(expr), "d")
	if !found || trimmed == "" {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return n, true
}

func resolveAbsolute(expr, startStr, endStr string) (Range, error) {
	start, err := core.ParseDate(strings.TrimSpace(startStr))
	if err != nil {
		return Range{}, &RangeError{Expr: expr, Reason: "bad start date"}
	}
	end, err := core.ParseDate(strings.TrimSpace(endStr))
	if err != nil {
		return Range{}, &RangeError{Expr: expr, Reason: "bad end date"}
	}
	if end.Before(start) {
		return Range{}, &RangeError{Expr: expr, Reason: "end date precedes start date"}
	}
	return Range{Start: start, End: end}, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
