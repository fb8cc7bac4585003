// Package catalog provides the problem and language catalogs events are drawn from.
package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/codestreak/internal/model"
)

const leetcodeBase = "https://leetcode.com/problems/"

// DefaultProblems is the built-in problem catalog.
var DefaultProblems = []model.Problem{
	{Title: "Two Sum", URL: leetcodeBase + "two-sum/", Tags: []string{"array", "hash-table"}, Difficulty: model.Easy, EstimatedTime: 15},
	{Title: "Valid Parentheses", URL: leetcodeBase + "valid-parentheses/", Tags: []string{"string", "stack"}, Difficulty: model.Easy, EstimatedTime: 15},
	{Title: "Merge Two Sorted Lists", URL: leetcodeBase + "merge-two-sorted-lists/", Tags: []string{"linked-list", "recursion"}, Difficulty: model.Easy, EstimatedTime: 20},
	{Title: "Best Time to Buy and Sell Stock", URL: leetcodeBase + "best-time-to-buy-and-sell-stock/", Tags: []string{"array", "dynamic-programming"}, Difficulty: model.Easy, EstimatedTime: 20},
	{Title: "Climbing Stairs", URL: leetcodeBase + "climbing-stairs/", Tags: []string{"dynamic-programming", "math"}, Difficulty: model.Easy, EstimatedTime: 15},
	{Title: "Longest Substring Without Repeating Characters", URL: leetcodeBase + "longest-substring-without-repeating-characters/", Tags: []string{"string", "sliding-window"}, Difficulty: model.Medium, EstimatedTime: 35},
	{Title: "Add Two Numbers", URL: leetcodeBase + "add-two-numbers/", Tags: []string{"linked-list", "math"}, Difficulty: model.Medium, EstimatedTime: 30},
	{Title: "Container With Most Water", URL: leetcodeBase + "container-with-most-water/", Tags: []string{"array", "two-pointers"}, Difficulty: model.Medium, EstimatedTime: 30},
	{Title: "Number of Islands", URL: leetcodeBase + "number-of-islands/", Tags: []string{"graph", "dfs", "bfs"}, Difficulty: model.Medium, EstimatedTime: 35},
	{Title: "LRU Cache", URL: leetcodeBase + "lru-cache/", Tags: []string{"design", "hash-table", "linked-list"}, Difficulty: model.Medium, EstimatedTime: 45},
	{Title: "Coin Change", URL: leetcodeBase + "coin-change/", Tags: []string{"dynamic-programming"}, Difficulty: model.Medium, EstimatedTime: 40},
	{Title: "Median of Two Sorted Arrays", URL: leetcodeBase + "median-of-two-sorted-arrays/", Tags: []string{"array", "binary-search"}, Difficulty: model.Hard, EstimatedTime: 60},
	{Title: "Trapping Rain Water", URL: leetcodeBase + "trapping-rain-water/", Tags: []string{"array", "two-pointers", "stack"}, Difficulty: model.Hard, EstimatedTime: 50},
	{Title: "Merge k Sorted Lists", URL: leetcodeBase + "merge-k-sorted-lists/", Tags: []string{"linked-list", "heap"}, Difficulty: model.Hard, EstimatedTime: 50},
	{Title: "Word Ladder", URL: leetcodeBase + "word-ladder/", Tags: []string{"graph", "bfs", "string"}, Difficulty: model.Hard, EstimatedTime: 60},
}

var (
	validate *validator.Validate
	once     sync.Once
)

func problemValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		if err := validate.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			return model.Difficulty(fl.Field().String()).Valid()
		}); err != nil {
			panic(err)
		}
	})
	return validate
}

// File is the TOML layout of a problem catalog file.
type File struct {
	Problems []model.Problem `toml:"problem"`
}

// LoadProblems reads a TOML problem catalog from path.
func LoadProblems(path string) ([]model.Problem, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat catalog: %w", err)
	}
	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(file.Problems) == 0 {
		return nil, fmt.Errorf("catalog %s has no problems", path)
	}
	v := problemValidator()
	for i := range file.Problems {
		p := &file.Problems[i]
		p.Title = strings.TrimSpace(p.Title)
		p.Difficulty = model.Difficulty(strings.ToLower(strings.TrimSpace(string(p.Difficulty))))
		if err := v.Struct(p); err != nil {
			return nil, fmt.Errorf("catalog problem #%d %q: %w", i+1, p.Title, err)
		}
	}
	return file.Problems, nil
}

// Resolve returns the problems and languages to use, loading files when a
// path is set and falling back to the built-in lists otherwise.
func Resolve(problemsPath, languagesPath string) ([]model.Problem, []string, error) {
	problems := DefaultProblems
	if problemsPath != "" {
		loaded, err := LoadProblems(problemsPath)
		if err != nil {
			return nil, nil, err
		}
		problems = loaded
	}
	langs := DefaultLanguages
	if languagesPath != "" {
		loaded, err := LoadLanguages(languagesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load languages: %w", err)
		}
		langs = loaded
	}
	return problems, langs, nil
}
