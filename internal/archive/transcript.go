package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/majordome-ai/majordome/internal/entity"
)

// Role labels in the rendered transcript. Downstream readers of archived
// conversations parse this layout, so labels and separators are fixed.
const (
	labelUser      = "Utilisateur"
	labelAssistant = "Assistant"

	rule = "---"
)

// dateLayout renders the archive header timestamp (day/month, product
// locale). messageLayout renders per-message times.
const (
	dateLayout    = "02/01/2006 15:04"
	messageLayout = "15:04"
)

// FileName returns the archive file name for a given day:
// Conversation_<ISO-date>.txt.
func FileName(at time.Time) string {
	return fmt.Sprintf("Conversation_%s.txt", at.Format("2006-01-02"))
}

// FormatTranscript renders a conversation as the plain-text archive
// document: a title line, an archival date line, then one block per message
// with a role label and timestamp, separated by horizontal rules.
func FormatTranscript(conv entity.Conversation, at time.Time) string {
	var sb strings.Builder

	title := conv.Title
	if title == "" {
		title = "Conversation"
	}
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString("Archivée le " + at.Format(dateLayout) + "\n\n")
	sb.WriteString(rule + "\n")

	for _, m := range conv.Messages {
		label := labelAssistant
		if strings.EqualFold(m.Role, "user") {
			label = labelUser
		}
		ts := m.Timestamp
		if ts.IsZero() {
			ts = at
		}
		sb.WriteString(fmt.Sprintf("\n**%s** (%s) :\n%s\n\n%s\n", label, ts.Format(messageLayout), m.Content, rule))
	}

	return sb.String()
}
