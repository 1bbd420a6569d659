package voice

import (
	"fmt"
	"testing"
)

func TestEstimateFingerprint_Deterministic(t *testing.T) {
	a := EstimateFingerprint("abc", 1.0)
	b := EstimateFingerprint("abc", 1.0)

	if a.SpeakerID != b.SpeakerID {
		t.Errorf("same input, different speakers: %q vs %q", a.SpeakerID, b.SpeakerID)
	}
	if a.PatternHash != b.PatternHash {
		t.Errorf("same input, different hashes: %d vs %d", a.PatternHash, b.PatternHash)
	}
}

func TestEstimateFingerprint_Values(t *testing.T) {
	tests := []struct {
		text       string
		confidence float64
		hash       int64
		speakerID  string
	}{
		// 'a'+'b'+'c' = 294
		{"abc", 1.0, 294, "speaker_294"},
		{"abc", 0.5, 294, "speaker_147"},
		// 'é' is a single rune worth 233
		{"é", 1.0, 233, "speaker_233"},
		{"", 1.0, 0, "speaker_0"},
	}

	for _, tt := range tests {
		fp := EstimateFingerprint(tt.text, tt.confidence)
		if fp.PatternHash != tt.hash {
			t.Errorf("EstimateFingerprint(%q).PatternHash = %d, want %d", tt.text, fp.PatternHash, tt.hash)
		}
		if fp.SpeakerID != tt.speakerID {
			t.Errorf("EstimateFingerprint(%q, %v).SpeakerID = %q, want %q", tt.text, tt.confidence, fp.SpeakerID, tt.speakerID)
		}
		if fp.ConfidenceScore != tt.confidence {
			t.Errorf("ConfidenceScore = %v, want %v", fp.ConfidenceScore, tt.confidence)
		}
	}
}

func TestEstimateFingerprint_ScoreWrapsAtThousand(t *testing.T) {
	// A long utterance pushes the raw score past 1000; the id must wrap.
	fp := EstimateFingerprint("une phrase suffisamment longue pour dépasser mille", 1.0)
	if fp.SpeakerID == "" {
		t.Fatal("empty speaker id")
	}
	var n int
	if _, err := fmt.Sscanf(fp.SpeakerID, "speaker_%d", &n); err != nil {
		t.Fatalf("unparsable speaker id %q: %v", fp.SpeakerID, err)
	}
	if n < 0 || n >= 1000 {
		t.Errorf("speaker number %d outside [0,1000)", n)
	}
}

func TestDetectMusic(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"la la la quelle belle journée", true},
		{"Tralala tralala", true},
		{"hmm hmm hmm", true},
		{"NA NA NA", true},
		{"peux-tu créer un dossier", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := DetectMusic(tt.text); got != tt.expected {
			t.Errorf("DetectMusic(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}
