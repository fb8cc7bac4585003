// Package stats contains activity statistics and text rendering.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/codestreak/internal/generator"
	"github.com/verte-zerg/codestreak/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates an event list for display.
type Summary struct {
	Total          int
	Breakdown      model.Targets
	Accepted       int
	AcceptanceRate float64
	AvgTimeSpent   float64
	AvgAttempts    float64
	ActiveDays     int
	Languages      []LanguageCount
}

// LanguageCount is the number of events solved in one language.
type LanguageCount struct {
	Language string
	Count    int
}

// Summarize computes totals, rates and averages over events.
func Summarize(events []model.Event) Summary {
	s := Summary{Total: len(events), Breakdown: generator.Breakdown(events)}
	if len(events) == 0 {
		return s
	}
	var timeSum, attemptSum int
	langs := map[string]int{}
	days := map[string]struct{}{}
	for _, ev := range events {
		if ev.IsAccepted {
			s.Accepted++
		}
		timeSum += ev.TimeSpent
		attemptSum += ev.AttemptCount
		langs[ev.Language]++
		days[model.DayKey(ev.SolvedDate)] = struct{}{}
	}
	count := float64(len(events))
	s.AcceptanceRate = float64(s.Accepted) / count
	s.AvgTimeSpent = float64(timeSum) / count
	s.AvgAttempts = float64(attemptSum) / count
	s.ActiveDays = len(days)
	s.Languages = make([]LanguageCount, 0, len(langs))
	for lang, n := range langs {
		s.Languages = append(s.Languages, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(s.Languages, func(i, j int) bool {
		if s.Languages[i].Count == s.Languages[j].Count {
			return s.Languages[i].Language < s.Languages[j].Language
		}
		return s.Languages[i].Count > s.Languages[j].Count
	})
	return s
}

// DailyCounts returns the number of events per active day in ascending order.
func DailyCounts(events []model.Event) []model.DayCount {
	byKey := map[string]*model.DayCount{}
	for _, ev := range events {
		key := model.DayKey(ev.SolvedDate)
		dc, ok := byKey[key]
		if !ok {
			dc = &model.DayCount{Day: model.Day(ev.SolvedDate)}
			byKey[key] = dc
		}
		dc.Count++
	}
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]model.DayCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byKey[key])
	}
	return out
}

// WeeklyCounts buckets events into consecutive 7-day windows starting at start.
// Events outside [start, end] are ignored.
func WeeklyCounts(events []model.Event, start, end time.Time) []float64 {
	span := model.DaysBetween(start, end)
	if span < 0 {
		return nil
	}
	out := make([]float64, span/7+1)
	for _, ev := range events {
		offset := model.DaysBetween(start, ev.SolvedDate)
		if offset < 0 || offset > span {
			continue
		}
		out[offset/7]++
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the headline numbers for a report.
func RenderSummary(w io.Writer, s Summary, streaks model.StreakStats) error {
	if s.Total == 0 {
		_, err := fmt.Fprintln(w, "No activity found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Solved: %d (easy %d / medium %d / hard %d)", s.Total, s.Breakdown.Easy, s.Breakdown.Medium, s.Breakdown.Hard),
		fmt.Sprintf("Active days: %d", s.ActiveDays),
		fmt.Sprintf("Current streak: %s", pluralDays(streaks.CurrentStreak)),
		fmt.Sprintf("Longest streak: %s", pluralDays(streaks.LongestStreak)),
		fmt.Sprintf("Acceptance: %.1f%%", s.AcceptanceRate*100),
		fmt.Sprintf("Avg time: %.1f min", s.AvgTimeSpent),
		fmt.Sprintf("Avg attempts: %.2f", s.AvgAttempts),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLanguageTable prints per-language counts.
func RenderLanguageTable(w io.Writer, s Summary) error {
	if len(s.Languages) == 0 {
		_, err := fmt.Fprintln(w, "No language stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Languages"); err != nil {
		return err
	}
	headers := []string{"Language", "Solved", "Share"}
	rows := make([][]string, 0, len(s.Languages))
	for _, lc := range s.Languages {
		rows = append(rows, []string{
			lc.Language,
			fmt.Sprintf("%d", lc.Count),
			fmt.Sprintf("%.1f%%", float64(lc.Count)/float64(s.Total)*100),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints a weekly sparkline with a moving average.
func RenderTrend(w io.Writer, weekly []float64, window int) error {
	if len(weekly) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Weekly  %s\n", Sparkline(weekly)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg(%d)  %s\n\n", window, Sparkline(MovingAverage(weekly, window))); err != nil {
		return err
	}
	return nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
