// Package voice holds the speaker-fingerprinting heuristic used when
// tagging transcribed segments.
//
// The fingerprint is a toy checksum, not a biometric identity: two
// utterances of similar length and confidence frequently collide. It exists
// so the transcription caller can group segments cheaply, nothing more. If
// real speaker identification ever becomes a requirement this must be
// replaced with an actual acoustic feature pipeline.
package voice

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Fingerprint is a pseudo speaker identity derived from a transcribed
// utterance and its recognition confidence.
type Fingerprint struct {
	SpeakerID       string  `json:"speaker_id"`
	PatternHash     int64   `json:"pattern_hash"`
	ConfidenceScore float64 `json:"confidence_score"`
	Timestamp       int64   `json:"timestamp"`
}

// musicMarkers are vocalization patterns that signal singing or humming
// rather than speech.
var musicMarkers = []string{
	"la la", "lala", "na na", "nana", "hmm hmm", "mmh mmh", "oh oh", "tralala",
}

// EstimateFingerprint derives a speaker pseudo-identity from text and the
// recognizer's confidence. Deterministic for identical inputs; never fails.
func EstimateFingerprint(text string, confidence float64) Fingerprint {
	var hash int64
	for _, r := range text {
		hash += int64(r)
	}

	score := math.Mod(float64(hash)*confidence, 1000)
	if score < 0 {
		score += 1000
	}

	return Fingerprint{
		SpeakerID:       fmt.Sprintf("speaker_%d", int(math.Floor(score))),
		PatternHash:     hash,
		ConfidenceScore: confidence,
		Timestamp:       time.Now().Unix(),
	}
}

// DetectMusic reports whether the transcribed text looks like singing or
// humming rather than speech.
func DetectMusic(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range musicMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
