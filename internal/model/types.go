// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is a problem difficulty tier.
type Difficulty string

// Difficulty tiers.
const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the tiers in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	default:
		return false
	}
}

// ParseDifficulty parses a tier name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Problem is a catalog entry events are drawn from.
type Problem struct {
	Title         string     `toml:"title" json:"title" validate:"required"`
	URL           string     `toml:"url" json:"url" validate:"omitempty,url"`
	Tags          []string   `toml:"tags" json:"tags" validate:"dive,required"`
	Difficulty    Difficulty `toml:"difficulty" json:"difficulty" validate:"difficulty"`
	EstimatedTime int        `toml:"estimated-time" json:"estimatedTime" validate:"gt=0"`
}

// Event is a single synthesized "problem solved" record.
type Event struct {
	ID           string     `json:"id"`
	Platform     string     `json:"platform"`
	ProblemTitle string     `json:"problemTitle"`
	ProblemURL   string     `json:"problemUrl"`
	Tags         []string   `json:"tags"`
	Difficulty   Difficulty `json:"difficulty"`
	SolvedDate   time.Time  `json:"solvedDate"`
	Language     string     `json:"language"`
	TimeSpent    int        `json:"timeSpent"`
	IsAccepted   bool       `json:"isAccepted"`
	AttemptCount int        `json:"attemptCount"`
}

// Targets holds per-tier event counts.
type Targets struct {
	Easy   int
	Medium int
	Hard   int
}

// Total returns the sum of all tiers.
func (t Targets) Total() int {
	return t.Easy + t.Medium + t.Hard
}

// Get returns the count for a tier.
func (t Targets) Get(d Difficulty) int {
	switch d {
	case Easy:
		return t.Easy
	case Medium:
		return t.Medium
	case Hard:
		return t.Hard
	default:
		return 0
	}
}

// StreakStats captures streak lengths in days.
type StreakStats struct {
	CurrentStreak int
	LongestStreak int
}

// Config defines generation settings.
type Config struct {
	Platform    string
	Total       int
	Targets     Targets
	WeekdayProb float64
	WeekendProb float64
	DoubleProb  float64
	AcceptProb  float64
	Jitter      int
	Seed        int64
}

// StatsConfig defines filters for stats output.
type StatsConfig struct {
	Platform string
	Since    *time.Time
}

// Run describes one saved generation.
type Run struct {
	ID          int64
	Platform    string
	GeneratedAt time.Time
	Seed        int64
	TargetTotal int
	Targets     Targets
	EventCount  int
}

// DayCount is the number of events on one calendar day.
type DayCount struct {
	Day   time.Time
	Count int
}
