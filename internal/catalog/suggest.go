package catalog

import (
	"sort"
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/verte-zerg/codestreak/internal/model"
)

// Tags returns the distinct lower-cased tags of problems, sorted.
func Tags(problems []model.Problem) []string {
	seen := map[string]struct{}{}
	for _, p := range problems {
		for _, t := range p.Tags {
			seen[strings.ToLower(t)] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// SuggestTag returns the catalog tag closest to tag, or "" when the catalog
// has no tags.
func SuggestTag(problems []model.Problem, tag string) string {
	tags := Tags(problems)
	if len(tags) == 0 {
		return ""
	}
	cm := closestmatch.New(tags, []int{2})
	return cm.Closest(strings.ToLower(strings.TrimSpace(tag)))
}
