package stats

import (
	"sort"

	"github.com/verte-zerg/codestreak/internal/model"
)

// TopTags returns the n most frequent tags across events.
func TopTags(events []model.Event, n int) []string {
	if n <= 0 || len(events) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, ev := range events {
		for _, tag := range ev.Tags {
			counts[tag]++
		}
	}
	type item struct {
		tag   string
		total int
	}
	items := make([]item, 0, len(counts))
	for tag, total := range counts {
		items = append(items, item{tag: tag, total: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].tag < items[j].tag
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].tag)
	}
	return out
}
