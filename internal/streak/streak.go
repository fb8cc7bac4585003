// Package streak computes consecutive-day activity runs.
package streak

import (
	"sort"
	"time"

	"github.com/verte-zerg/codestreak/internal/model"
)

// Days reduces dates to distinct calendar days in ascending order.
func Days(dates []time.Time) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		key := model.DayKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, model.Day(d))
	}
	sort.Slice(days, func(i, j int) bool {
		return model.DayKey(days[i]) < model.DayKey(days[j])
	})
	return days
}

// Calculate returns current and longest streaks. The current streak counts
// only when its last day on or before today is today or yesterday.
func Calculate(dates []time.Time, today time.Time) model.StreakStats {
	days := Days(dates)
	if len(days) == 0 {
		return model.StreakStats{}
	}
	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if model.DaysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return model.StreakStats{CurrentStreak: current(days, today), LongestStreak: longest}
}

// current walks back from the newest day not after today. Days past today
// are ignored.
func current(days []time.Time, today time.Time) int {
	last := len(days) - 1
	for last >= 0 && model.DaysBetween(days[last], today) < 0 {
		last--
	}
	if last < 0 {
		return 0
	}
	if gap := model.DaysBetween(days[last], today); gap > 1 {
		return 0
	}
	run := 1
	for i := last; i > 0 && model.DaysBetween(days[i-1], days[i]) == 1; i-- {
		run++
	}
	return run
}

// Current returns the streak ending today or yesterday, or 0.
func Current(dates []time.Time, today time.Time) int {
	return Calculate(dates, today).CurrentStreak
}

// Longest returns the longest run anywhere in the history.
func Longest(dates []time.Time) int {
	return Calculate(dates, time.Time{}).LongestStreak
}

// FromEvents computes streaks over event solve dates.
func FromEvents(events []model.Event, today time.Time) model.StreakStats {
	dates := make([]time.Time, len(events))
	for i, ev := range events {
		dates[i] = ev.SolvedDate
	}
	return Calculate(dates, today)
}
