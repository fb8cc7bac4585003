package generator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/codestreak/internal/model"
)

var testProblems = []model.Problem{
	{Title: "Two Sum", URL: "https://leetcode.com/problems/two-sum/", Tags: []string{"array", "hash-table"}, Difficulty: model.Easy, EstimatedTime: 15},
	{Title: "LRU Cache", URL: "https://leetcode.com/problems/lru-cache/", Tags: []string{"design"}, Difficulty: model.Medium, EstimatedTime: 40},
	{Title: "Median of Two Sorted Arrays", URL: "https://leetcode.com/problems/median-of-two-sorted-arrays/", Tags: []string{"binary-search"}, Difficulty: model.Hard, EstimatedTime: 60},
}

var testLanguages = []string{"Go", "Python", "TypeScript"}

func baseRequest() Request {
	return Request{
		Platform:    "leetcode",
		TargetTotal: 100,
		Start:       time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2026, time.March, 31, 18, 45, 0, 0, time.UTC),
		Problems:    testProblems,
		Languages:   testLanguages,
		WeekdayProb: DefaultWeekdayProb,
		WeekendProb: DefaultWeekendProb,
		DoubleProb:  DefaultDoubleProb,
		AcceptProb:  DefaultAcceptProb,
		Jitter:      DefaultJitter,
	}
}

func TestGenerateBoundedAndInRange(t *testing.T) {
	req := baseRequest()
	days := model.DaysBetween(req.Start, req.End) + 1
	for seed := int64(1); seed <= 20; seed++ {
		events, err := NewSeeded(seed).Generate(req)
		require.NoError(t, err)
		require.LessOrEqual(t, len(events), req.TargetTotal)
		require.LessOrEqual(t, len(events), days*2)
		for _, ev := range events {
			require.False(t, ev.SolvedDate.Before(model.Day(req.Start)), "event %s before start", ev.ID)
			require.False(t, ev.SolvedDate.After(model.Day(req.End)), "event %s after end", ev.ID)
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	req := baseRequest()
	first, err := NewSeeded(42).Generate(req)
	require.NoError(t, err)
	second, err := NewSeeded(42).Generate(req)
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := NewSeeded(43).Generate(req)
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestGenerateUniqueIDs(t *testing.T) {
	events, err := NewSeeded(7).Generate(baseRequest())
	require.NoError(t, err)
	seen := map[string]struct{}{}
	for _, ev := range events {
		_, dup := seen[ev.ID]
		require.False(t, dup, "duplicate id %s", ev.ID)
		seen[ev.ID] = struct{}{}
	}
}

func TestGenerateOneEventPerActiveDay(t *testing.T) {
	req := baseRequest()
	req.TargetTotal = 1000
	req.WeekdayProb = 1
	req.WeekendProb = 1
	req.DoubleProb = 0
	events, err := NewSeeded(1).Generate(req)
	require.NoError(t, err)
	require.Len(t, events, model.DaysBetween(req.Start, req.End)+1)
	for i, ev := range events {
		require.Equal(t, model.DayKey(req.Start.AddDate(0, 0, i)), model.DayKey(ev.SolvedDate))
	}
}

func TestGenerateWeekdaysOnly(t *testing.T) {
	req := baseRequest()
	req.TargetTotal = 1000
	req.WeekdayProb = 1
	req.WeekendProb = 0
	events, err := NewSeeded(3).Generate(req)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	for _, ev := range events {
		require.False(t, model.IsWeekend(ev.SolvedDate), "weekend event on %s", model.DayKey(ev.SolvedDate))
	}
}

func TestGenerateStopsAtTarget(t *testing.T) {
	req := baseRequest()
	req.TargetTotal = 5
	req.WeekdayProb = 1
	req.WeekendProb = 1
	req.DoubleProb = 1
	events, err := NewSeeded(9).Generate(req)
	require.NoError(t, err)
	require.Len(t, events, 5)
	// Two per day, the last day only gets the remaining budget.
	require.Equal(t, model.DayKey(req.Start.AddDate(0, 0, 2)), model.DayKey(events[4].SolvedDate))
	require.Equal(t, model.DayKey(events[0].SolvedDate), model.DayKey(events[1].SolvedDate))
}

func TestGenerateUnderGenerationIsNotAnError(t *testing.T) {
	req := baseRequest()
	req.End = req.Start.AddDate(0, 0, 2)
	req.TargetTotal = 50
	events, err := NewSeeded(5).Generate(req)
	require.NoError(t, err)
	require.LessOrEqual(t, len(events), 6)
}

func TestGenerateZeroTarget(t *testing.T) {
	req := baseRequest()
	req.TargetTotal = 0
	events, err := NewSeeded(5).Generate(req)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestGenerateEventFields(t *testing.T) {
	req := baseRequest()
	events, err := NewSeeded(11).Generate(req)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	estimates := map[string]int{}
	for _, p := range testProblems {
		estimates[p.Title] = p.EstimatedTime
	}
	for _, ev := range events {
		est, ok := estimates[ev.ProblemTitle]
		require.True(t, ok, "unknown problem %q", ev.ProblemTitle)
		require.Contains(t, testLanguages, ev.Language)
		require.Equal(t, "leetcode", ev.Platform)
		require.GreaterOrEqual(t, ev.TimeSpent, est-req.Jitter)
		require.LessOrEqual(t, ev.TimeSpent, est+req.Jitter)
		if ev.IsAccepted {
			require.Equal(t, 1, ev.AttemptCount)
		} else {
			require.GreaterOrEqual(t, ev.AttemptCount, 2)
			require.LessOrEqual(t, ev.AttemptCount, 4)
		}
	}
}

func TestGenerateCopiesTags(t *testing.T) {
	req := baseRequest()
	req.Problems = []model.Problem{{Title: "Two Sum", Tags: []string{"array"}, Difficulty: model.Easy, EstimatedTime: 10}}
	events, err := NewSeeded(2).Generate(req)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	events[0].Tags[0] = "mutated"
	require.Equal(t, "array", req.Problems[0].Tags[0])
}

func TestApplyJitterClampsToOneMinute(t *testing.T) {
	g := NewSeeded(1)
	for i := 0; i < 200; i++ {
		require.GreaterOrEqual(t, applyJitter(g.rnd, 2, 10), 1)
	}
	require.Equal(t, 25, applyJitter(g.rnd, 25, 0))
}

func TestGeneratePreconditions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"empty problems", func(r *Request) { r.Problems = nil }, ErrEmptyProblems},
		{"empty languages", func(r *Request) { r.Languages = nil }, ErrEmptyLanguages},
		{"negative target", func(r *Request) { r.TargetTotal = -1 }, ErrNegativeTarget},
		{"inverted range", func(r *Request) { r.End = r.Start.AddDate(0, 0, -1) }, ErrInvalidRange},
		{"weekday prob", func(r *Request) { r.WeekdayProb = 1.5 }, ErrInvalidProbability},
		{"accept prob", func(r *Request) { r.AcceptProb = -0.1 }, ErrInvalidProbability},
		{"bad difficulty", func(r *Request) {
			r.Problems = []model.Problem{{Title: "x", Difficulty: "impossible", EstimatedTime: 5}}
		}, ErrInvalidProblem},
		{"bad estimate", func(r *Request) {
			r.Problems = []model.Problem{{Title: "x", Difficulty: model.Easy}}
		}, ErrInvalidProblem},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)
			events, err := NewSeeded(1).Generate(req)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
			require.Nil(t, events)
		})
	}
}

func TestGenerateSingleDayRange(t *testing.T) {
	req := baseRequest()
	req.End = req.Start.Add(3 * time.Hour)
	req.WeekdayProb = 1
	req.WeekendProb = 1
	req.DoubleProb = 0
	events, err := NewSeeded(1).Generate(req)
	require.NoError(t, err)
	require.Len(t, events, 1)
}
