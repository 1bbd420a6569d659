package intent

// Priority ranks an action suggestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionSuggestion is one proposed follow-up for an intent.
type ActionSuggestion struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// actionTable maps each intent to its fixed, ordered suggestions. This is a
// closed static table: extend it by adding rows, never by branching logic
// and never by evaluating caller-supplied code.
var actionTable = map[Intent][]ActionSuggestion{
	IntentCreate: {
		{Type: "create_folder", Description: "Créer un nouveau dossier", Priority: PriorityHigh},
		{Type: "create_file", Description: "Créer un nouveau fichier", Priority: PriorityHigh},
	},
	IntentOrganize: {
		{Type: "reorganize", Description: "Réorganiser les dossiers existants", Priority: PriorityMedium},
	},
	IntentAnalyze: {
		{Type: "generate_report", Description: "Générer un rapport d'activité", Priority: PriorityHigh},
	},
}

// SuggestActions returns the suggestions for an intent, in table order.
// Intents with no row (read, update, delete, unknown) return an empty slice.
func SuggestActions(in Intent) []ActionSuggestion {
	row, ok := actionTable[in]
	if !ok {
		return []ActionSuggestion{}
	}
	// Copy so callers can't mutate the table.
	out := make([]ActionSuggestion, len(row))
	copy(out, row)
	return out
}
