package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultLanguages is the built-in language list.
var DefaultLanguages = []string{"Go", "Python", "TypeScript", "Java", "C++", "Rust"}

// LoadLanguages reads one language per line from the provided file path.
// Blank lines and lines starting with '#' are skipped.
func LoadLanguages(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only language list.
			_ = cerr
		}
	}()

	var langs []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		langs = append(langs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("language list is empty")
	}
	return langs, nil
}
