package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadNamesFile reads one login per line. Blank lines and # comments are
// skipped.
func ReadNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading names file: %w", err)
	}
	return names, nil
}

// NormalizeLogins trims whitespace and a leading @, and drops repeats
// case-insensitively keeping the first spelling.
func NormalizeLogins(logins []string) []string {
	seen := make(map[string]bool, len(logins))
	out := make([]string, 0, len(logins))
	for _, l := range logins {
		l = strings.TrimPrefix(strings.TrimSpace(l), "@")
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
