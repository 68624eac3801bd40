package risk

import (
	"strings"

	"github.com/stoik/emailrisk/internal/domain"
)

const minWalkLength = 4

// keyboardWalkDetector implements the keyboard-walk detector:
// a contiguous horizontal, vertical, or diagonal run of >= 4 keys on any
// configured layout. Layouts are injected rather than hard-coded so the
// detector stays a pure function of (local part, layouts).
type keyboardWalkDetector struct {
	layouts map[string][]string
}

func (keyboardWalkDetector) Name() string { return "keyboard_walk" }

func (d keyboardWalkDetector) Run(ne domain.NormalisedEmail) DetectorResult {
	lower := strings.ToLower(ne.Local)

	for layoutName, rows := range d.layouts {
		if hit, walkType, length := longestWalk(lower, rows); hit {
			confidence := 0.4 + 0.1*float64(length-minWalkLength)
			if confidence > 0.95 {
				confidence = 0.95
			}
			result := domain.KeyboardWalkResult{
				Hit:        true,
				Type:       walkType,
				Length:     length,
				Layout:     layoutName,
				Confidence: confidence,
			}
			return DetectorResult{Hit: true, Confidence: confidence, Raw: result}
		}
	}

	return DetectorResult{Hit: false, Confidence: 0, Raw: domain.KeyboardWalkResult{}}
}

func (keyboardWalkDetector) Risk(result DetectorResult) float64 {
	return result.Confidence
}

// longestWalk finds the longest contiguous horizontal, vertical or diagonal
// substring of s present in rows, returning true and its type/length if it
// reaches at least minWalkLength.
func longestWalk(s string, rows []string) (bool, string, int) {
	best := 0
	bestType := ""

	if n := longestHorizontalRun(s, rows); n > best {
		best, bestType = n, "horizontal"
	}
	if n := longestVerticalRun(s, rows); n > best {
		best, bestType = n, "vertical"
	}
	if n := longestDiagonalRun(s, rows); n > best {
		best, bestType = n, "diagonal"
	}

	return best >= minWalkLength, bestType, best
}

func longestHorizontalRun(s string, rows []string) int {
	best := 0
	for _, row := range rows {
		best = max(best, longestSubstringRun(s, row))
		best = max(best, longestSubstringRun(s, reverse(row)))
	}
	return best
}

func longestVerticalRun(s string, rows []string) int {
	cols := buildColumns(rows)
	best := 0
	for _, col := range cols {
		best = max(best, longestSubstringRun(s, col))
		best = max(best, longestSubstringRun(s, reverse(col)))
	}
	return best
}

func longestDiagonalRun(s string, rows []string) int {
	best := 0
	for _, diag := range buildDiagonals(rows) {
		best = max(best, longestSubstringRun(s, diag))
		best = max(best, longestSubstringRun(s, reverse(diag)))
	}
	return best
}

// longestSubstringRun returns the length of the longest substring of s that
// also appears as a contiguous substring of layout, restricted to runs of
// at least 2 (a single shared character is not a walk).
func longestSubstringRun(s, layout string) int {
	best := 0
	for i := 0; i < len(s); i++ {
		for j := i + 2; j <= len(s); j++ {
			if strings.Contains(layout, s[i:j]) && j-i > best {
				best = j - i
			}
		}
	}
	return best
}

func buildColumns(rows []string) []string {
	maxLen := 0
	for _, r := range rows {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}
	cols := make([]string, maxLen)
	for _, r := range rows {
		for i, c := range r {
			cols[i] += string(c)
		}
	}
	return cols
}

func buildDiagonals(rows []string) []string {
	var diagonals []string
	maxLen := 0
	for _, r := range rows {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}
	for offset := -len(rows); offset < maxLen; offset++ {
		var d strings.Builder
		for r, row := range rows {
			c := r + offset
			if c >= 0 && c < len(row) {
				d.WriteByte(row[c])
			}
		}
		if d.Len() > 0 {
			diagonals = append(diagonals, d.String())
		}
	}
	return diagonals
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
