package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mwaldman/huntboard/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func entriesOn(dates ...string) []model.StudyLogEntry {
	var entries []model.StudyLogEntry
	for i, d := range dates {
		entries = append(entries, model.StudyLogEntry{
			ID:       int64(i + 1),
			Date:     day(d),
			Duration: 60,
		})
	}
	return entries
}

func TestTotalMinutes(t *testing.T) {
	assert.Equal(t, 0, TotalMinutes(nil))

	entries := []model.StudyLogEntry{
		{Date: day("2026-03-01"), Duration: 30},
		{Date: day("2026-03-02"), Duration: 45},
		{Date: day("2026-03-03"), Duration: 0},
	}
	assert.Equal(t, 75, TotalMinutes(entries))
}

func TestDailyAverage(t *testing.T) {
	assert.Equal(t, 0.0, DailyAverage(nil))

	entries := []model.StudyLogEntry{
		{Date: day("2026-03-01"), Duration: 30},
		{Date: day("2026-03-02"), Duration: 60},
	}
	assert.InDelta(t, 45.0, DailyAverage(entries), 1e-9)
}

func TestCurrentStreak(t *testing.T) {
	today := day("2026-03-10")

	tests := []struct {
		name     string
		dates    []string
		expected int
	}{
		{name: "empty log", dates: nil, expected: 0},
		{
			name:     "three consecutive days ending today",
			dates:    []string{"2026-03-08", "2026-03-09", "2026-03-10"},
			expected: 3,
		},
		{
			name:     "gap before today keeps only the trailing day",
			dates:    []string{"2026-03-08", "2026-03-10"},
			expected: 1,
		},
		{
			name:     "studied yesterday but not yet today keeps the streak alive",
			dates:    []string{"2026-03-07", "2026-03-08", "2026-03-09"},
			expected: 3,
		},
		{
			name:     "last study two days ago breaks the streak",
			dates:    []string{"2026-03-06", "2026-03-07", "2026-03-08"},
			expected: 0,
		},
		{
			name:     "single entry today",
			dates:    []string{"2026-03-10"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurrentStreak(entriesOn(tt.dates...), today))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name     string
		dates    []string
		expected int
	}{
		{name: "empty log", dates: nil, expected: 0},
		{
			name: "two separate three-day runs count as three, not six",
			dates: []string{
				"2026-02-01", "2026-02-02", "2026-02-03",
				"2026-02-10", "2026-02-11", "2026-02-12",
			},
			expected: 3,
		},
		{
			name:     "longest run is in the middle of the history",
			dates:    []string{"2026-02-01", "2026-02-05", "2026-02-06", "2026-02-07", "2026-02-08", "2026-02-20"},
			expected: 4,
		},
		{name: "single day", dates: []string{"2026-02-01"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LongestStreak(entriesOn(tt.dates...)))
		})
	}
}

func TestWeeklyConsistency(t *testing.T) {
	today := day("2026-03-28")

	// Study on 14 of the trailing 28 days.
	var dates []string
	for i := 0; i < 14; i++ {
		dates = append(dates, day("2026-03-01").AddDate(0, 0, i*2).Format("2006-01-02"))
	}
	assert.InDelta(t, 50.0, WeeklyConsistency(entriesOn(dates...), 28, today), 1e-9)

	// Entries outside the window do not count.
	old := entriesOn("2025-01-01", "2025-01-02")
	assert.Equal(t, 0.0, WeeklyConsistency(old, 28, today))

	// Every day studied is 100%.
	var full []string
	for i := 0; i < 28; i++ {
		full = append(full, day("2026-03-01").AddDate(0, 0, i).Format("2006-01-02"))
	}
	assert.InDelta(t, 100.0, WeeklyConsistency(entriesOn(full...), 28, today), 1e-9)
}

func TestProgressAgainstTarget(t *testing.T) {
	assert.Equal(t, 0.0, ProgressAgainstTarget(100, 0))
	assert.InDelta(t, 0.5, ProgressAgainstTarget(9000, 18000), 1e-9)
	assert.Equal(t, 1.0, ProgressAgainstTarget(20000, 18000))
	assert.Equal(t, 0.0, ProgressAgainstTarget(0, 18000))
}

func TestDailyTargetMinutes(t *testing.T) {
	today := day("2026-03-01")

	// 300h target, nothing studied, 100 days out: 180 minutes a day.
	assert.Equal(t, 180, DailyTargetMinutes(300, 0, today.AddDate(0, 0, 100), today))

	// Halfway through with 50 days left: still 180 a day.
	assert.Equal(t, 180, DailyTargetMinutes(300, 9000, today.AddDate(0, 0, 50), today))

	// Test date today or already passed clamps to a single day.
	assert.Equal(t, 600, DailyTargetMinutes(10, 0, today, today))
	assert.Equal(t, 600, DailyTargetMinutes(10, 0, today.AddDate(0, 0, -30), today))

	// Target already met.
	assert.Equal(t, 0, DailyTargetMinutes(10, 600, today.AddDate(0, 0, 10), today))
}

func TestStats(t *testing.T) {
	today := day("2026-03-10")
	entries := []model.StudyLogEntry{
		{Date: day("2026-03-08"), Duration: 60},
		{Date: day("2026-03-09"), Duration: 90},
		{Date: day("2026-03-10"), Duration: 30},
	}

	stats := Stats(entries, today, Options{
		WindowDays:       28,
		TotalTargetHours: 300,
		TestDate:         day("2026-06-18"),
		HasTestDate:      true,
	})

	assert.Equal(t, 180, stats.TotalMinutes)
	assert.Equal(t, 3, stats.StudyDays)
	assert.InDelta(t, 60.0, stats.DailyAverage, 1e-9)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
	assert.InDelta(t, 3.0/28.0*100, stats.WeeklyConsistency, 1e-9)
	assert.InDelta(t, 0.01, stats.TargetProgress, 1e-9)
	assert.Equal(t, (300*60-180)/100, stats.DailyTarget)
}

func TestStatsManualOverrideWins(t *testing.T) {
	stats := Stats(nil, day("2026-03-10"), Options{
		TotalTargetHours:    300,
		DailyTargetOverride: 70,
		TestDate:            day("2026-06-18"),
		HasTestDate:         true,
	})
	assert.Equal(t, 70, stats.DailyTarget)
}
