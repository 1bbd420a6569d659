package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		message  string
		expected Intent
	}{
		// Single-bucket hits
		{"Crée un dossier pour mes factures", IntentCreate},
		{"affiche mes rendez-vous de demain", IntentRead},
		{"modifie le nom du fichier", IntentUpdate},
		{"supprime cette note", IntentDelete},
		{"range mes documents", IntentOrganize},
		{"fais-moi un rapport de la semaine", IntentAnalyze},

		// Case-insensitivity
		{"AFFICHE LE DOSSIER", IntentRead},

		// Keyword inside a longer sentence
		{"est-ce que tu peux ajouter ça quelque part", IntentCreate},

		// No keyword
		{"bonjour", IntentUnknown},
		{"", IntentUnknown},
		{"quel temps fait-il", IntentUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.message); got != tt.expected {
			t.Errorf("Classify(%q) = %q, want %q", tt.message, got, tt.expected)
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// A message hitting two buckets reports the earlier-declared one.
	tests := []struct {
		message  string
		expected Intent
	}{
		{"j'ai créé le fichier, affiche-le maintenant", IntentCreate},
		{"affiche la liste puis supprime le doublon", IntentRead},
		{"organise et analyse mes dossiers", IntentOrganize},
	}

	for _, tt := range tests {
		if got := Classify(tt.message); got != tt.expected {
			t.Errorf("Classify(%q) = %q, want %q", tt.message, got, tt.expected)
		}
	}
}

func TestClassifyWith_CustomRules(t *testing.T) {
	rules := []Rule{
		{IntentAnalyze, []string{"bilan"}},
		{IntentCreate, []string{"bilan annuel"}}, // never reachable: earlier rule matches first
	}

	if got := ClassifyWith("prépare le bilan annuel", rules); got != IntentAnalyze {
		t.Errorf("ClassifyWith custom = %q, want %q", got, IntentAnalyze)
	}
	if got := ClassifyWith("bonjour", rules); got != IntentUnknown {
		t.Errorf("ClassifyWith no-match = %q, want %q", got, IntentUnknown)
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in     string
		want   Intent
		wantOK bool
	}{
		{"create", IntentCreate, true},
		{" READ ", IntentRead, true},
		{"unknown", IntentUnknown, true},
		{"weird", IntentUnknown, false},
		{"", IntentUnknown, false},
	}

	for _, tt := range tests {
		got, ok := ParseIntent(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseIntent(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
