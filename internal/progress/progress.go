// Package progress derives study and application metrics from persisted
// records. Every function is pure: inputs are snapshots plus an explicit
// "today", so results are deterministic under test.
package progress

import (
	"sort"
	"time"

	"github.com/mwaldman/huntboard/internal/model"
)

// TotalMinutes sums the logged duration across all entries.
func TotalMinutes(entries []model.StudyLogEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Duration
	}
	return total
}

// DailyAverage is total minutes divided by the number of distinct study
// dates. Zero when there are no entries.
func DailyAverage(entries []model.StudyLogEntry) float64 {
	days := len(distinctDates(entries))
	if days == 0 {
		return 0
	}
	return float64(TotalMinutes(entries)) / float64(days)
}

// CurrentStreak is the number of consecutive calendar days with logged study
// ending at or immediately before today. A user who studied yesterday but
// not yet today still has a live streak; a gap of more than one day resets
// the streak to zero.
func CurrentStreak(entries []model.StudyLogEntry, today time.Time) int {
	dates := distinctDates(entries)
	if len(dates) == 0 {
		return 0
	}

	day := startOfDay(today)
	latest := dates[len(dates)-1]
	if latest.Before(day.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	for i := len(dates) - 1; i > 0; i-- {
		if dates[i].AddDate(0, 0, -1).Equal(dates[i-1]) {
			streak++
		} else {
			break
		}
	}
	return streak
}

// LongestStreak is the longest run of consecutive study dates anywhere in
// the history, not just the trailing one.
func LongestStreak(entries []model.StudyLogEntry) int {
	dates := distinctDates(entries)
	if len(dates) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// WeeklyConsistency is the percentage of days in the trailing window (default
// 28 days, inclusive of today) with at least one study entry.
func WeeklyConsistency(entries []model.StudyLogEntry, windowDays int, today time.Time) float64 {
	if windowDays <= 0 {
		windowDays = 28
	}

	day := startOfDay(today)
	windowStart := day.AddDate(0, 0, -(windowDays - 1))

	studied := 0
	for _, d := range distinctDates(entries) {
		if !d.Before(windowStart) && !d.After(day) {
			studied++
		}
	}
	return float64(studied) / float64(windowDays) * 100
}

// ProgressAgainstTarget is totalMinutes / targetMinutes clamped to [0, 1].
func ProgressAgainstTarget(totalMinutes, targetMinutes int) float64 {
	if targetMinutes <= 0 {
		return 0
	}
	frac := float64(totalMinutes) / float64(targetMinutes)
	if frac > 1 {
		return 1
	}
	return frac
}

// DailyTargetMinutes spreads the remaining study time evenly over the days
// left until the test date. The day count is clamped to at least one so a
// passed or same-day test date cannot divide by zero.
func DailyTargetMinutes(totalTargetHours, studiedMinutes int, testDate, today time.Time) int {
	remaining := totalTargetHours*60 - studiedMinutes
	if remaining <= 0 {
		return 0
	}

	days := int(startOfDay(testDate).Sub(startOfDay(today)).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return remaining / days
}

// Options configures Stats. A non-zero DailyTargetOverride takes precedence
// over the test-date calculation.
type Options struct {
	WindowDays          int
	TotalTargetHours    int
	DailyTargetOverride int
	TestDate            time.Time
	HasTestDate         bool
}

// Stats bundles the study metrics for one snapshot of the log.
func Stats(entries []model.StudyLogEntry, today time.Time, opts Options) model.StudyStats {
	total := TotalMinutes(entries)

	dailyTarget := opts.DailyTargetOverride
	if dailyTarget == 0 && opts.HasTestDate {
		dailyTarget = DailyTargetMinutes(opts.TotalTargetHours, total, opts.TestDate, today)
	}

	return model.StudyStats{
		TotalMinutes:      total,
		StudyDays:         len(distinctDates(entries)),
		DailyAverage:      DailyAverage(entries),
		CurrentStreak:     CurrentStreak(entries, today),
		LongestStreak:     LongestStreak(entries),
		WeeklyConsistency: WeeklyConsistency(entries, opts.WindowDays, today),
		TargetProgress:    ProgressAgainstTarget(total, opts.TotalTargetHours*60),
		DailyTarget:       dailyTarget,
	}
}

func distinctDates(entries []model.StudyLogEntry) []time.Time {
	seen := make(map[time.Time]struct{}, len(entries))
	for _, e := range entries {
		seen[startOfDay(e.Date)] = struct{}{}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
