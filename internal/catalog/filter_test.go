package catalog

import (
	"testing"

	"github.com/verte-zerg/codestreak/internal/model"
)

func TestFilterByDifficulty(t *testing.T) {
	hard := Filter(DefaultProblems, ByDifficulty(model.Hard))
	if len(hard) == 0 {
		t.Fatalf("expected hard problems in default catalog")
	}
	for _, p := range hard {
		if p.Difficulty != model.Hard {
			t.Fatalf("expected only hard problems, got %q (%s)", p.Title, p.Difficulty)
		}
	}
}

func TestFilterCombinesFilters(t *testing.T) {
	got := Filter(DefaultProblems, ByDifficulty(model.Easy, model.Medium), ByTag("Linked-List"))
	if len(got) != 3 {
		t.Fatalf("expected 3 problems, got %d: %+v", len(got), got)
	}
	for _, p := range got {
		if p.Difficulty == model.Hard {
			t.Fatalf("unexpected hard problem %q", p.Title)
		}
	}
}

func TestFilterNoFilters(t *testing.T) {
	if got := Filter(DefaultProblems); len(got) != len(DefaultProblems) {
		t.Fatalf("expected all %d problems, got %d", len(DefaultProblems), len(got))
	}
}

func TestTagsDistinctSorted(t *testing.T) {
	problems := []model.Problem{
		{Title: "a", Tags: []string{"Graph", "bfs"}},
		{Title: "b", Tags: []string{"graph", "array"}},
	}
	tags := Tags(problems)
	want := []string{"array", "bfs", "graph"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestSuggestTag(t *testing.T) {
	if got := SuggestTag(DefaultProblems, "dynamic-programing"); got != "dynamic-programming" {
		t.Fatalf("expected dynamic-programming suggestion, got %q", got)
	}
	if got := SuggestTag(nil, "graph"); got != "" {
		t.Fatalf("expected no suggestion for empty catalog, got %q", got)
	}
}
