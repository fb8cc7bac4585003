// Package generator synthesizes coding activity.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/codestreak/internal/model"
)

// Default generation parameters.
const (
	DefaultWeekdayProb = 0.7
	DefaultWeekendProb = 0.4
	DefaultDoubleProb  = 0.3
	DefaultAcceptProb  = 0.7
	DefaultJitter      = 10

	minTimeSpent  = 1
	minRetryCount = 2
	maxRetryCount = 4
	eventsPerDay  = 2
)

// Precondition errors returned by Generate.
var (
	ErrEmptyProblems      = errors.New("problem catalog is empty")
	ErrEmptyLanguages     = errors.New("language catalog is empty")
	ErrNegativeTarget     = errors.New("target total must be >= 0")
	ErrInvalidRange       = errors.New("end date is before start date")
	ErrInvalidProbability = errors.New("probability must be between 0 and 1")
	ErrInvalidProblem     = errors.New("invalid catalog problem")
)

// Request describes a generation run.
type Request struct {
	Platform    string
	TargetTotal int
	Start       time.Time
	End         time.Time
	Problems    []model.Problem
	Languages   []string
	WeekdayProb float64
	WeekendProb float64
	DoubleProb  float64
	AcceptProb  float64
	Jitter      int
}

// Validate checks request preconditions.
func (r Request) Validate() error {
	if len(r.Problems) == 0 {
		return ErrEmptyProblems
	}
	if len(r.Languages) == 0 {
		return ErrEmptyLanguages
	}
	if r.TargetTotal < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeTarget, r.TargetTotal)
	}
	if model.Day(r.End).Before(model.Day(r.Start)) {
		return fmt.Errorf("%w: %s < %s", ErrInvalidRange, model.DayKey(r.End), model.DayKey(r.Start))
	}
	probs := []struct {
		name string
		v    float64
	}{
		{"weekday", r.WeekdayProb},
		{"weekend", r.WeekendProb},
		{"double", r.DoubleProb},
		{"accept", r.AcceptProb},
	}
	for _, p := range probs {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidProbability, p.name, p.v)
		}
	}
	if r.Jitter < 0 {
		return fmt.Errorf("jitter must be >= 0: got %d", r.Jitter)
	}
	for i, p := range r.Problems {
		if !p.Difficulty.Valid() {
			return fmt.Errorf("%w: #%d %q has difficulty %q", ErrInvalidProblem, i, p.Title, p.Difficulty)
		}
		if p.EstimatedTime <= 0 {
			return fmt.Errorf("%w: #%d %q has estimate %d", ErrInvalidProblem, i, p.Title, p.EstimatedTime)
		}
	}
	return nil
}

// Generator produces randomized activity. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate walks the request range day by day and emits events until the
// range ends or the target total is reached. Falling short of the target is
// not an error.
func (g *Generator) Generate(req Request) ([]model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := model.Day(req.Start)
	end := model.Day(req.End)

	capacity := req.TargetTotal
	if maxEvents := (model.DaysBetween(start, end) + 1) * eventsPerDay; maxEvents < capacity {
		capacity = maxEvents
	}
	events := make([]model.Event, 0, capacity)
	for day := start; !day.After(end) && len(events) < req.TargetTotal; day = day.AddDate(0, 0, 1) {
		prob := req.WeekdayProb
		if model.IsWeekend(day) {
			prob = req.WeekendProb
		}
		if g.rnd.Float64() >= prob {
			continue
		}
		count := 1
		if g.rnd.Float64() < req.DoubleProb {
			count = eventsPerDay
		}
		for i := 0; i < count && len(events) < req.TargetTotal; i++ {
			ev, err := g.newEvent(req, day)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

func (g *Generator) newEvent(req Request, day time.Time) (model.Event, error) {
	problem := req.Problems[g.rnd.Intn(len(req.Problems))]
	language := req.Languages[g.rnd.Intn(len(req.Languages))]
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to generate event id: %w", err)
	}
	accepted := g.rnd.Float64() < req.AcceptProb
	attempts := 1
	if !accepted {
		attempts = minRetryCount + g.rnd.Intn(maxRetryCount-minRetryCount+1)
	}
	return model.Event{
		ID:           id.String(),
		Platform:     req.Platform,
		ProblemTitle: problem.Title,
		ProblemURL:   problem.URL,
		Tags:         append([]string(nil), problem.Tags...),
		Difficulty:   problem.Difficulty,
		SolvedDate:   day,
		Language:     language,
		TimeSpent:    applyJitter(g.rnd, problem.EstimatedTime, req.Jitter),
		IsAccepted:   accepted,
		AttemptCount: attempts,
	}, nil
}

// applyJitter offsets base by a uniform value in [-jitter, jitter] and clamps
// the result to at least one minute.
func applyJitter(rnd *rand.Rand, base, jitter int) int {
	spent := base
	if jitter > 0 {
		spent += rnd.Intn(2*jitter+1) - jitter
	}
	if spent < minTimeSpent {
		return minTimeSpent
	}
	return spent
}
