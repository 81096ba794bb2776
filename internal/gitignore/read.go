package gitignore

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single pattern line.
const maxLineSize = 1024 * 1024

// ReadPatterns reads an ignore file body and returns its pattern lines.
// Blank lines and comments are dropped, unescaped trailing whitespace is
// trimmed and everything else is returned as written.
func ReadPatterns(r io.Reader) ([]string, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	patterns := make([]string, 0, len(lines))
	for _, line := range lines {
		line = trimTrailingSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || line[0] == '#' {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// readLines splits r into raw lines without interpreting them.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patterns: %w", err)
	}
	return lines, nil
}
