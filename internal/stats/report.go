package stats

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/codestreak/internal/model"
	"github.com/verte-zerg/codestreak/internal/store"
	"github.com/verte-zerg/codestreak/internal/streak"
)

const (
	defaultWeakTags    = 5
	defaultTopTags     = 5
	defaultTrendWindow = 4
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Events   []model.Event
	Summary  Summary
	Streaks  model.StreakStats
	Heatmap  Heatmap
	Weekly   []float64
	WeakTags []TagAggregate
	Start    time.Time
	End      time.Time
}

// BuildReport loads events and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, today time.Time) (Report, error) {
	events, err := st.ListEvents(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return NewReport(events, RangeStart(events, cfg.Since, today), today, today), nil
}

// NewReport computes a report over events for the range [start, end].
// Streaks are measured against today, which may lie outside the range.
func NewReport(events []model.Event, start, end, today time.Time) Report {
	return Report{
		Events:   events,
		Summary:  Summarize(events),
		Streaks:  streak.FromEvents(events, today),
		Heatmap:  BuildHeatmap(events, start, end),
		Weekly:   WeeklyCounts(events, start, end),
		WeakTags: WeakTags(events, defaultWeakTags),
		Start:    model.Day(start),
		End:      model.Day(end),
	}
}

// RangeStart picks the first day to display: since when set, otherwise
// January 1 of today's year or the earliest event if that comes first.
func RangeStart(events []model.Event, since *time.Time, today time.Time) time.Time {
	if since != nil {
		return model.Day(*since)
	}
	start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	for _, ev := range events {
		if model.DaysBetween(ev.SolvedDate, start) > 0 {
			start = model.Day(ev.SolvedDate)
		}
	}
	return start
}

// RenderReport prints the plain-text report: summary, heatmap, weekly trend,
// languages and tags.
func RenderReport(w io.Writer, report Report, width int, useColor bool) error {
	if err := RenderSummary(w, report.Summary, report.Streaks); err != nil {
		return err
	}
	if report.Summary.Total == 0 {
		return nil
	}
	if err := RenderHeatmap(w, report.Heatmap.TrimToWidth(width), useColor); err != nil {
		return err
	}
	if err := RenderTrend(w, report.Weekly, defaultTrendWindow); err != nil {
		return err
	}
	if err := RenderLanguageTable(w, report.Summary); err != nil {
		return err
	}
	if top := TopTags(report.Events, defaultTopTags); len(top) > 0 {
		if _, err := fmt.Fprintf(w, "Top tags: %s\n", strings.Join(top, ", ")); err != nil {
			return err
		}
	}
	if len(report.WeakTags) > 0 {
		parts := make([]string, 0, len(report.WeakTags))
		for _, agg := range report.WeakTags {
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", agg.Tag, agg.Acceptance()*100))
		}
		if _, err := fmt.Fprintf(w, "Weakest tags: %s\n", strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	return nil
}
