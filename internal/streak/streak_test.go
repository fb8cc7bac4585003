package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/codestreak/internal/model"
)

var today = time.Date(2026, time.October, 16, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return today.AddDate(0, 0, -n)
}

func TestCalculatePastRunIsNotCurrent(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 3, 9, 0, 0, 0, time.UTC),
	}
	got := Calculate(dates, today)
	require.Equal(t, model.StreakStats{CurrentStreak: 0, LongestStreak: 3}, got)
}

func TestCalculateRunEndingToday(t *testing.T) {
	got := Calculate([]time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}, today)
	require.Equal(t, 3, got.CurrentStreak)
	require.Equal(t, 3, got.LongestStreak)
}

func TestCalculateRunEndingYesterday(t *testing.T) {
	got := Calculate([]time.Time{daysAgo(1), daysAgo(2)}, today)
	require.Equal(t, 2, got.CurrentStreak)

	got = Calculate([]time.Time{daysAgo(2), daysAgo(3)}, today)
	require.Equal(t, 0, got.CurrentStreak)
	require.Equal(t, 2, got.LongestStreak)
}

func TestCalculateSingleDay(t *testing.T) {
	got := Calculate([]time.Time{today}, today)
	require.Equal(t, model.StreakStats{CurrentStreak: 1, LongestStreak: 1}, got)

	got = Calculate([]time.Time{daysAgo(10)}, today)
	require.Equal(t, model.StreakStats{CurrentStreak: 0, LongestStreak: 1}, got)
}

func TestCalculateEmpty(t *testing.T) {
	require.Equal(t, model.StreakStats{}, Calculate(nil, today))
	require.Equal(t, 0, Longest(nil))
	require.Equal(t, 0, Current(nil, today))
}

func TestCalculateOrderIndependent(t *testing.T) {
	ordered := []time.Time{daysAgo(9), daysAgo(8), daysAgo(4), daysAgo(3), daysAgo(2), daysAgo(1)}
	shuffled := []time.Time{daysAgo(2), daysAgo(9), daysAgo(1), daysAgo(4), daysAgo(8), daysAgo(3)}
	first := Calculate(ordered, today)
	second := Calculate(shuffled, today)
	require.Equal(t, first, second)
	require.Equal(t, model.StreakStats{CurrentStreak: 4, LongestStreak: 4}, first)
}

func TestCalculateCollapsesDuplicateDays(t *testing.T) {
	morning := time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.October, 15, 22, 0, 0, 0, time.UTC)
	got := Calculate([]time.Time{morning, evening, today}, today)
	require.Equal(t, model.StreakStats{CurrentStreak: 2, LongestStreak: 2}, got)
}

func TestLongestPicksMaximumRun(t *testing.T) {
	dates := []time.Time{daysAgo(30), daysAgo(29), daysAgo(28), daysAgo(27), daysAgo(5), daysAgo(0)}
	require.Equal(t, 4, Longest(dates))
	require.Equal(t, 1, Current(dates, today))
}

func TestCalculateAcrossMonthBoundary(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	require.Equal(t, 3, Longest(dates))
}

func TestFromEvents(t *testing.T) {
	events := []model.Event{
		{ID: "a", SolvedDate: daysAgo(0)},
		{ID: "b", SolvedDate: daysAgo(1)},
		{ID: "c", SolvedDate: daysAgo(1)},
	}
	got := FromEvents(events, today)
	require.Equal(t, model.StreakStats{CurrentStreak: 2, LongestStreak: 2}, got)
}

func TestDaysSortedAndDistinct(t *testing.T) {
	days := Days([]time.Time{daysAgo(0), daysAgo(2), daysAgo(0), daysAgo(1)})
	require.Len(t, days, 3)
	require.Equal(t, model.DayKey(daysAgo(2)), model.DayKey(days[0]))
	require.Equal(t, model.DayKey(daysAgo(0)), model.DayKey(days[2]))
}

func TestCalculateIgnoresDaysAfterToday(t *testing.T) {
	dates := []time.Time{daysAgo(2), daysAgo(1), daysAgo(0), daysAgo(-1), daysAgo(-2)}
	got := Calculate(dates, today)
	require.Equal(t, model.StreakStats{CurrentStreak: 3, LongestStreak: 5}, got)

	got = Calculate([]time.Time{daysAgo(1), daysAgo(-3)}, today)
	require.Equal(t, 1, got.CurrentStreak)

	got = Calculate([]time.Time{daysAgo(-1), daysAgo(-2)}, today)
	require.Equal(t, model.StreakStats{CurrentStreak: 0, LongestStreak: 2}, got)
}
