// Package theme derives topical tags from conversation text using a fixed
// ordered keyword table. Unlike intent classification, every category is
// evaluated and all matching themes are kept, in table order. A
// conversation always yields at least one theme: "general" is the fallback.
package theme

import (
	"strings"

	"github.com/majordome-ai/majordome/internal/entity"
)

// FallbackTheme tags conversations that match no category.
const FallbackTheme = "general"

// Rule binds a theme tag to its trigger keywords.
type Rule struct {
	Theme    string
	Keywords []string
}

// DefaultRules is the built-in theme table. Order determines the order of
// extracted themes; each theme is tested exactly once, so deduplication is
// implicit.
var DefaultRules = []Rule{
	{"projet", []string{"projet", "développement", "code", "application", "deadline"}},
	{"travail", []string{"travail", "réunion", "bureau", "client", "collègue"}},
	{"personnel", []string{"famille", "maison", "santé", "ami", "week-end"}},
	{"finance", []string{"budget", "argent", "facture", "dépense", "banque"}},
	{"voyage", []string{"voyage", "vacances", "vol", "hôtel", "valise"}},
	{"idées", []string{"idée", "brainstorm", "inspiration", "concept"}},
}

// Extract returns the themes of a conversation, in table order. The
// result is never empty.
func Extract(messages []entity.Message) []string {
	return ExtractWith(messages, DefaultRules)
}

// ExtractWith runs extraction against a caller-supplied rule table.
func ExtractWith(messages []entity.Message, rules []Rule) []string {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(m.Content)
		sb.WriteString(" ")
	}
	text := strings.ToLower(sb.String())

	var themes []string
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				themes = append(themes, rule.Theme)
				break
			}
		}
	}
	if len(themes) == 0 {
		return []string{FallbackTheme}
	}
	return themes
}
