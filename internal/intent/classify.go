// Package intent maps free-form assistant messages to a closed set of
// action intents using fixed keyword rules, and turns intents into
// suggested actions.
//
// Classification is deliberately first-match-wins over an ordered rule
// table: when a message contains keywords from two buckets, the
// earlier-declared bucket reports. There is no scoring, no tokenization,
// and no fuzzy matching.
package intent

import "strings"

// Intent is the coarse action category inferred from a message.
type Intent string

const (
	IntentCreate   Intent = "create"
	IntentRead     Intent = "read"
	IntentUpdate   Intent = "update"
	IntentDelete   Intent = "delete"
	IntentOrganize Intent = "organize"
	IntentAnalyze  Intent = "analyze"
	IntentUnknown  Intent = "unknown"
)

// Rule binds an intent to its trigger keywords. Rules are evaluated in
// slice order; the first rule with any case-insensitive substring hit wins.
type Rule struct {
	Intent   Intent
	Keywords []string
}

// DefaultRules is the built-in intent table. Declaration order is part of
// the contract: "create" outranks "read", which outranks everything after
// it. Keywords are French (the assistant's product language) with common
// accent-less variants.
var DefaultRules = []Rule{
	{IntentCreate, []string{"créé", "crée", "creer", "nouveau", "nouvelle", "ajoute"}},
	{IntentRead, []string{"affiche", "montre", "liste", "voir", "consulte", "ouvre"}},
	{IntentUpdate, []string{"modifie", "change", "mets à jour", "renomme", "déplace"}},
	{IntentDelete, []string{"supprime", "efface", "retire", "enlève"}},
	{IntentOrganize, []string{"organise", "range", "classe", "trie"}},
	{IntentAnalyze, []string{"analyse", "rapport", "résume", "statistique"}},
}

// Classify returns the intent of a message, or IntentUnknown when no
// keyword matches. It is total: every input yields exactly one intent.
func Classify(message string) Intent {
	return ClassifyWith(message, DefaultRules)
}

// ClassifyWith runs classification against a caller-supplied rule table,
// preserving the same first-match-wins policy.
func ClassifyWith(message string, rules []Rule) Intent {
	lower := strings.ToLower(message)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return rule.Intent
			}
		}
	}
	return IntentUnknown
}

// ParseIntent validates an intent string from an external caller.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentCreate:
		return IntentCreate, true
	case IntentRead:
		return IntentRead, true
	case IntentUpdate:
		return IntentUpdate, true
	case IntentDelete:
		return IntentDelete, true
	case IntentOrganize:
		return IntentOrganize, true
	case IntentAnalyze:
		return IntentAnalyze, true
	case IntentUnknown:
		return IntentUnknown, true
	}
	return IntentUnknown, false
}
