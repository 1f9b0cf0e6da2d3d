// Package steplist loads custom daily-routine steps from files.
package steplist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MinSteps is the smallest usable routine.
const MinSteps = 4

// MaxStepWidth bounds the display width of a single step.
const MaxStepWidth = 32

// LoadSteps reads one step per line, in chronological order, from path.
// Blank lines and lines starting with # are skipped.
func LoadSteps(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only step list.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	steps := Filter(lines)
	if len(steps) < MinSteps {
		return nil, fmt.Errorf("step list needs at least %d distinct steps, found %d", MinSteps, len(steps))
	}
	return steps, nil
}

// Filter drops duplicates and steps wider than MaxStepWidth, keeping order.
func Filter(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if runewidth.StringWidth(line) > MaxStepWidth {
			continue
		}
		key := strings.ToLower(line)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
	}
	return out
}
