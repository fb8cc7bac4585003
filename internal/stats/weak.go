package stats

import (
	"sort"

	"github.com/verte-zerg/codestreak/internal/model"
)

// TagAggregate summarizes acceptance for one tag.
type TagAggregate struct {
	Tag      string
	Attempts int
	Accepted int
}

// Acceptance returns the accepted share, or 1 with no attempts.
func (t TagAggregate) Acceptance() float64 {
	if t.Attempts == 0 {
		return 1.0
	}
	return float64(t.Accepted) / float64(t.Attempts)
}

// WeakTags returns the top lowest-acceptance tags.
func WeakTags(events []model.Event, top int) []TagAggregate {
	byTag := map[string]*TagAggregate{}
	for _, ev := range events {
		for _, tag := range ev.Tags {
			agg, ok := byTag[tag]
			if !ok {
				agg = &TagAggregate{Tag: tag}
				byTag[tag] = agg
			}
			agg.Attempts += ev.AttemptCount
			if ev.IsAccepted {
				agg.Accepted++
			}
		}
	}
	candidates := make([]TagAggregate, 0, len(byTag))
	for _, agg := range byTag {
		candidates = append(candidates, *agg)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := candidates[i].Acceptance()
		aj := candidates[j].Acceptance()
		if ai == aj {
			return candidates[i].Tag < candidates[j].Tag
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}
