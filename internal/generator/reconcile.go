package generator

import "github.com/verte-zerg/codestreak/internal/model"

// Breakdown counts events per difficulty tier.
func Breakdown(events []model.Event) model.Targets {
	var t model.Targets
	for _, ev := range events {
		switch ev.Difficulty {
		case model.Easy:
			t.Easy++
		case model.Medium:
			t.Medium++
		case model.Hard:
			t.Hard++
		}
	}
	return t
}

// Reconcile relabels medium or hard events as easy until the easy count
// reaches targets.Easy. Only a tier whose count exceeds its own target is
// drained, medium first. Medium and hard counts are never raised and easy is
// never lowered. It returns the number of relabeled events.
func (g *Generator) Reconcile(events []model.Event, targets model.Targets) int {
	counts := Breakdown(events)
	relabeled := 0
	for counts.Easy < targets.Easy {
		var from model.Difficulty
		switch {
		case counts.Medium > targets.Medium:
			from = model.Medium
		case counts.Hard > targets.Hard:
			from = model.Hard
		default:
			return relabeled
		}
		idx, ok := g.pickIndex(events, from)
		if !ok {
			return relabeled
		}
		events[idx].Difficulty = model.Easy
		counts.Easy++
		if from == model.Medium {
			counts.Medium--
		} else {
			counts.Hard--
		}
		relabeled++
	}
	return relabeled
}

func (g *Generator) pickIndex(events []model.Event, d model.Difficulty) (int, bool) {
	pool := make([]int, 0, len(events))
	for i, ev := range events {
		if ev.Difficulty == d {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		return 0, false
	}
	return pool[g.rnd.Intn(len(pool))], true
}
