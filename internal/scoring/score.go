// Package scoring derives the investment score and risk category of a profile.
package scoring

import (
	"strconv"
	"strings"
)

// ScoreMarker introduces the embedded score inside why_invest text.
const ScoreMarker = "Investment score:"

// DefaultScore is returned whenever no score can be read.
const DefaultScore = 50

// ExtractScore reads "Investment score: <int>/..." out of free text.
//
// The integer between the marker and the next "/" is returned as written,
// without clamping. A missing marker, a missing "/" or a non-integer segment
// yields DefaultScore; this function never fails.
func ExtractScore(whyInvest string) int {
	_, rest, found := strings.Cut(whyInvest, ScoreMarker)
	if !found {
		return DefaultScore
	}
	// A repeated marker ends the segment, as a split on the marker would.
	if idx := strings.Index(rest, ScoreMarker); idx >= 0 {
		rest = rest[:idx]
	}
	digits, _, found := strings.Cut(rest, "/")
	if !found {
		return DefaultScore
	}
	score, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return DefaultScore
	}
	return score
}
