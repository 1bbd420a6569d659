package assist

import (
	"context"
	"testing"
	"time"

	"github.com/majordome-ai/majordome/internal/entity"
	"github.com/majordome-ai/majordome/internal/intent"
)

func testSnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		Folders: []entity.Folder{{ID: "f1", Name: "Projets"}},
		Files:   []entity.File{{ID: "d1", Name: "notes.txt", Content: "notes de réunion"}},
		Events:  []entity.Event{{ID: "e1", Title: "Réunion budget"}},
	}
}

func TestAnalyze_Pipeline(t *testing.T) {
	e := NewEngine()
	a := e.Analyze(context.Background(), "crée un dossier projets", testSnapshot())

	if a.Intent != intent.IntentCreate {
		t.Errorf("intent = %q, want create", a.Intent)
	}
	if len(a.Relevance.Folders) != 1 || a.Relevance.Folders[0].ID != "f1" {
		t.Errorf("folders = %+v, want [f1]", a.Relevance.Folders)
	}
	if a.Confidence <= 0.7 {
		t.Errorf("confidence = %v, want relevance floor exceeded", a.Confidence)
	}
	if len(a.Actions) != 2 {
		t.Errorf("actions = %+v, want create_folder and create_file", a.Actions)
	}
	if a.Message != "crée un dossier projets" {
		t.Errorf("message = %q", a.Message)
	}
}

func TestAnalyze_UnknownIntent(t *testing.T) {
	e := NewEngine()
	a := e.Analyze(context.Background(), "bonjour", testSnapshot())

	if a.Intent != intent.IntentUnknown {
		t.Errorf("intent = %q, want unknown", a.Intent)
	}
	if len(a.Actions) != 0 {
		t.Errorf("actions = %+v, want none", a.Actions)
	}
}

func TestAnalyze_CustomRules(t *testing.T) {
	rules := []intent.Rule{{Intent: intent.IntentDelete, Keywords: []string{"purge"}}}
	e := NewEngine(WithIntentRules(rules))

	if a := e.Analyze(context.Background(), "purge les archives", nil); a.Intent != intent.IntentDelete {
		t.Errorf("intent = %q, want delete", a.Intent)
	}
	// The default table no longer applies.
	if a := e.Analyze(context.Background(), "supprime le fichier", nil); a.Intent != intent.IntentUnknown {
		t.Errorf("intent = %q, want unknown under custom rules", a.Intent)
	}
}

func TestAnalyze_CacheHitIgnoresNewSnapshot(t *testing.T) {
	e := NewEngine(WithCache(time.Minute))

	first := e.Analyze(context.Background(), "Affiche le dossier Projets", testSnapshot())
	if len(first.Relevance.Folders) != 1 {
		t.Fatalf("folders = %+v", first.Relevance.Folders)
	}

	// Same normalized key, empty snapshot: the cached analysis wins.
	second := e.Analyze(context.Background(), "  affiche le dossier projets  ", &entity.Snapshot{})
	if len(second.Relevance.Folders) != 1 {
		t.Errorf("cache miss: folders = %+v", second.Relevance.Folders)
	}
}

func TestAnalyze_NoCacheRecomputes(t *testing.T) {
	e := NewEngine()

	first := e.Analyze(context.Background(), "affiche le dossier projets", testSnapshot())
	if len(first.Relevance.Folders) != 1 {
		t.Fatalf("folders = %+v", first.Relevance.Folders)
	}
	second := e.Analyze(context.Background(), "affiche le dossier projets", &entity.Snapshot{})
	if len(second.Relevance.Folders) != 0 {
		t.Errorf("stale result without cache: %+v", second.Relevance.Folders)
	}
}
