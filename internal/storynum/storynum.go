// Package storynum implements the human-readable story number scheme.
//
// Numbers look like "T&D-1001": the project prefix, a dash, and a
// zero-padded sequence that starts at 1001 within each project.
package storynum

import (
	"fmt"
	"strconv"
	"strings"
)

// Seed is the value the per-project sequence starts from; the first
// allocated number is Seed+1.
const Seed = 1000

// Format renders a story number from a project prefix and a sequence
// value.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// Parse extracts the numeric suffix of a story number. The prefix may
// itself contain dashes, so only the part after the last dash is
// treated as the sequence value.
func Parse(number string) (int, error) {
	i := strings.LastIndex(number, "-")
	if i < 0 || i == len(number)-1 {
		return 0, fmt.Errorf("malformed story number %q", number)
	}
	n, err := strconv.Atoi(number[i+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed story number %q: %w", number, err)
	}
	return n, nil
}

// MaxSequence scans existing story numbers and returns the highest
// sequence value found, or Seed when none parse. Malformed numbers
// are skipped rather than failing the scan.
func MaxSequence(existing []string) int {
	max := Seed
	for _, number := range existing {
		n, err := Parse(number)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// Next computes the next story number for a project from the current
// set of its story numbers.
func Next(prefix string, existing []string) string {
	return Format(prefix, MaxSequence(existing)+1)
}
