package relevance

import "strings"

const (
	// relevantFloor is the score floor when the message references known data.
	relevantFloor = 0.7
	// baseFloor is the score floor for messages referencing nothing.
	baseFloor = 0.4
	// baseCeiling caps scores for messages with no relevant data.
	baseCeiling = 0.7
	// lengthWeight is the share of the score driven by message length.
	lengthWeight = 0.3
	// lengthSaturation is the word count at which length stops helping.
	lengthSaturation = 10
)

// EstimateConfidence combines relevance and message length into a score in
// [0, 1]. Scores are monotonically non-decreasing in word count up to the
// saturation point, and a non-empty relevance set always scores at least as
// high as an empty one for the same message.
func EstimateConfidence(message string, set Set) float64 {
	lengthScore := float64(wordCount(message)) / lengthSaturation
	if lengthScore > 1 {
		lengthScore = 1
	}

	if !set.Empty() {
		score := relevantFloor + lengthScore*lengthWeight
		if score > 1 {
			score = 1
		}
		return score
	}

	score := baseFloor + lengthScore*lengthWeight
	if score > baseCeiling {
		score = baseCeiling
	}
	return score
}

// wordCount counts whitespace-separated words. Empty or blank input counts
// zero words (a naive split would report one).
func wordCount(message string) int {
	return len(strings.Fields(message))
}
