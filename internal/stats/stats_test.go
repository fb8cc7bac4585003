package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/codestreak/internal/generator"
	"github.com/verte-zerg/codestreak/internal/model"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func sampleEvents() []model.Event {
	return []model.Event{
		{ID: "1", Difficulty: model.Easy, SolvedDate: day(time.March, 2), Language: "Go", TimeSpent: 10, IsAccepted: true, AttemptCount: 1, Tags: []string{"array"}},
		{ID: "2", Difficulty: model.Medium, SolvedDate: day(time.March, 2), Language: "Go", TimeSpent: 30, IsAccepted: false, AttemptCount: 3, Tags: []string{"graph", "array"}},
		{ID: "3", Difficulty: model.Hard, SolvedDate: day(time.March, 10), Language: "Rust", TimeSpent: 50, IsAccepted: true, AttemptCount: 1, Tags: []string{"graph"}},
		{ID: "4", Difficulty: model.Easy, SolvedDate: day(time.March, 1), Language: "Python", TimeSpent: 10, IsAccepted: false, AttemptCount: 2, Tags: []string{"graph"}},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleEvents())
	if s.Total != 4 || s.Breakdown != (model.Targets{Easy: 2, Medium: 1, Hard: 1}) {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.Accepted != 2 || s.AcceptanceRate != 0.5 {
		t.Fatalf("unexpected acceptance: %d %.2f", s.Accepted, s.AcceptanceRate)
	}
	if s.AvgTimeSpent != 25 || s.AvgAttempts != 1.75 {
		t.Fatalf("unexpected averages: %.2f %.2f", s.AvgTimeSpent, s.AvgAttempts)
	}
	if s.ActiveDays != 3 {
		t.Fatalf("expected 3 active days, got %d", s.ActiveDays)
	}
	if len(s.Languages) != 3 || s.Languages[0] != (LanguageCount{Language: "Go", Count: 2}) || s.Languages[1].Language != "Python" {
		t.Fatalf("unexpected languages: %+v", s.Languages)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.AcceptanceRate != 0 || s.Languages != nil {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestDailyCounts(t *testing.T) {
	counts := DailyCounts(sampleEvents())
	if len(counts) != 3 {
		t.Fatalf("expected 3 days, got %d", len(counts))
	}
	if model.DayKey(counts[0].Day) != "2026-03-01" || counts[1].Count != 2 || counts[2].Count != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestWeeklyCounts(t *testing.T) {
	weekly := WeeklyCounts(sampleEvents(), day(time.March, 1), day(time.March, 20))
	if len(weekly) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(weekly))
	}
	if weekly[0] != 3 || weekly[1] != 1 || weekly[2] != 0 {
		t.Fatalf("unexpected weekly counts: %v", weekly)
	}
	if got := WeeklyCounts(sampleEvents(), day(time.March, 5), day(time.March, 1)); got != nil {
		t.Fatalf("expected nil for inverted range, got %v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %.1f, got %.1f", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); len(got) != 3 {
		t.Fatalf("expected flat sparkline of 3 chars, got %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummary(&buf, Summarize(sampleEvents()), model.StreakStats{CurrentStreak: 1, LongestStreak: 2})
	if err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Solved: 4 (easy 2 / medium 1 / hard 1)", "Current streak: 1 day", "Longest streak: 2 days", "Acceptance: 50.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, Summary{}, model.StreakStats{}); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No activity found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestRenderLanguageTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLanguageTable(&buf, Summarize(sampleEvents())); err != nil {
		t.Fatalf("RenderLanguageTable failed: %v", err)
	}
	if !strings.Contains(buf.String(), "50.0%") {
		t.Fatalf("expected Go share in table:\n%s", buf.String())
	}
}

func TestSummarizeBreakdownMatchesGenerator(t *testing.T) {
	events := []model.Event{
		{Difficulty: model.Easy},
		{Difficulty: model.Hard},
		{Difficulty: model.Difficulty("unknown")},
	}
	s := Summarize(events)
	if s.Breakdown != generator.Breakdown(events) {
		t.Fatalf("expected breakdown %+v, got %+v", generator.Breakdown(events), s.Breakdown)
	}
	if s.Total != 3 || s.Breakdown.Total() != 2 {
		t.Fatalf("expected unknown tier to count toward total only, got %+v", s)
	}
}
