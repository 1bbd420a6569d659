package archive

import (
	"strings"
	"testing"
	"time"

	"github.com/majordome-ai/majordome/internal/entity"
)

func TestFileName(t *testing.T) {
	at := time.Date(2026, 1, 7, 23, 59, 0, 0, time.UTC)
	if got := FileName(at); got != "Conversation_2026-01-07.txt" {
		t.Errorf("FileName = %q", got)
	}
}

func TestFormatTranscript(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	conv := entity.Conversation{
		Title: "Point budget",
		Messages: []entity.Message{
			{Role: "user", Content: "où en est le budget ?", Timestamp: time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)},
			{Role: "assistant", Content: "le budget est à jour"},
		},
	}

	got := FormatTranscript(conv, at)

	wantParts := []string{
		"# Point budget\n",
		"Archivée le 14/03/2026 15:09\n",
		"**Utilisateur** (14:30) :\noù en est le budget ?\n",
		"**Assistant** (15:09) :\nle budget est à jour\n",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("transcript missing %q\n---\n%s", part, got)
		}
	}

	if n := strings.Count(got, "---"); n != 3 {
		t.Errorf("separator count = %d, want 3 (header + one per message)", n)
	}
	if strings.Index(got, "Utilisateur") > strings.Index(got, "Assistant") {
		t.Error("message order not preserved")
	}
}

func TestFormatTranscript_DefaultTitle(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	got := FormatTranscript(entity.Conversation{}, at)
	if !strings.HasPrefix(got, "# Conversation\n") {
		t.Errorf("default title missing:\n%s", got)
	}
}
