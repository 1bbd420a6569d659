package relevance

import (
	"strings"
	"testing"

	"github.com/majordome-ai/majordome/internal/entity"
)

func emptySet() Set {
	return Set{Folders: []entity.Folder{}, Files: []entity.File{}, Events: []entity.Event{}}
}

func relevantSet() Set {
	s := emptySet()
	s.Folders = append(s.Folders, entity.Folder{ID: "f1", Name: "Factures"})
	return s
}

func TestEstimateConfidence_Bounds(t *testing.T) {
	messages := []string{
		"",
		"a",
		"deux mots",
		"un message de longueur moyenne pour le test",
		strings.Repeat("mot ", 50),
	}

	for _, msg := range messages {
		for _, set := range []Set{emptySet(), relevantSet()} {
			score := EstimateConfidence(msg, set)
			if score < 0 || score > 1 {
				t.Errorf("EstimateConfidence(%q) = %f, out of [0,1]", msg, score)
			}
		}
	}
}

func TestEstimateConfidence_RelevanceRaisesScore(t *testing.T) {
	messages := []string{"", "court", "un message un peu plus long que les autres ici"}

	for _, msg := range messages {
		with := EstimateConfidence(msg, relevantSet())
		without := EstimateConfidence(msg, emptySet())
		if with < without {
			t.Errorf("message %q: with relevance %f < without %f", msg, with, without)
		}
	}
}

func TestEstimateConfidence_MonotonicInLength(t *testing.T) {
	prev := -1.0
	for words := 0; words <= 15; words++ {
		msg := strings.TrimSpace(strings.Repeat("mot ", words))
		score := EstimateConfidence(msg, emptySet())
		if score < prev {
			t.Errorf("%d words: score %f dropped below %f", words, score, prev)
		}
		prev = score
	}
}

func TestEstimateConfidence_Values(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		set      Set
		expected float64
	}{
		{"empty message, no relevance", "", emptySet(), 0.4},
		{"empty message, with relevance", "", relevantSet(), 0.7},
		{"five words, no relevance", "un deux trois quatre cinq", emptySet(), 0.55},
		{"five words, with relevance", "un deux trois quatre cinq", relevantSet(), 0.85},
		{"ten words caps length score", strings.TrimSpace(strings.Repeat("mot ", 10)), relevantSet(), 1.0},
		{"long message without relevance stays capped", strings.TrimSpace(strings.Repeat("mot ", 30)), emptySet(), 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateConfidence(tt.message, tt.set)
			if diff := got - tt.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("EstimateConfidence = %f, want %f", got, tt.expected)
			}
		})
	}
}
