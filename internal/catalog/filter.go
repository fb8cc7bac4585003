package catalog

import (
	"strings"

	"github.com/verte-zerg/codestreak/internal/model"
)

// FilterFunc returns true when a problem should be kept.
type FilterFunc func(model.Problem) bool

// ByDifficulty keeps problems of the given tiers.
func ByDifficulty(tiers ...model.Difficulty) FilterFunc {
	set := make(map[model.Difficulty]struct{}, len(tiers))
	for _, d := range tiers {
		set[d] = struct{}{}
	}
	return func(p model.Problem) bool {
		_, ok := set[p.Difficulty]
		return ok
	}
}

// ByTag keeps problems carrying tag, compared case-insensitively.
func ByTag(tag string) FilterFunc {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return func(p model.Problem) bool {
		for _, t := range p.Tags {
			if strings.ToLower(t) == tag {
				return true
			}
		}
		return false
	}
}

// Filter returns the problems accepted by every filter.
func Filter(problems []model.Problem, filters ...FilterFunc) []model.Problem {
	out := make([]model.Problem, 0, len(problems))
	for _, p := range problems {
		keep := true
		for _, f := range filters {
			if !f(p) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}
