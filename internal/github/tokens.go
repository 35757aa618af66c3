package github

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func readLines(path, kind string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", kind, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s file: %w", kind, err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%s file is empty: %s", kind, path)
	}

	return lines, nil
}

func ReadTokenFile(path string) ([]string, error) {
	return readLines(path, "token")
}

// ReadProxyFile defaults scheme-less entries to http.
func ReadProxyFile(path string) ([]string, error) {
	proxies, err := readLines(path, "proxy")
	if err != nil {
		return nil, err
	}
	for i, p := range proxies {
		if !strings.Contains(p, "://") {
			proxies[i] = "http://" + p
		}
	}
	return proxies, nil
}
