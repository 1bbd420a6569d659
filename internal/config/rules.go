package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/majordome-ai/majordome/internal/intent"
	"github.com/majordome-ai/majordome/internal/theme"
)

// RuleTables holds caller-supplied keyword tables. Yaml sequences keep
// their order, so first-match-wins semantics survive the round trip — this
// is why rules are lists of (tag, keywords) pairs and never maps.
type RuleTables struct {
	Intents []intent.Rule
	Themes  []theme.Rule
}

type rulesFile struct {
	Intents []struct {
		Intent   string   `yaml:"intent"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"intents"`
	Themes []struct {
		Theme    string   `yaml:"theme"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"themes"`
}

// LoadRules reads a keyword-table file. An empty path returns the built-in
// tables. A file may override just one of the two tables; the other keeps
// its default.
func LoadRules(path string) (RuleTables, error) {
	out := RuleTables{
		Intents: intent.DefaultRules,
		Themes:  theme.DefaultRules,
	}
	if path == "" {
		return out, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("reading rules %s: %w", path, err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return out, fmt.Errorf("parsing rules %s: %w", path, err)
	}

	if len(f.Intents) > 0 {
		rules := make([]intent.Rule, 0, len(f.Intents))
		for _, r := range f.Intents {
			in, ok := intent.ParseIntent(r.Intent)
			if !ok || in == intent.IntentUnknown {
				return out, fmt.Errorf("rules %s: invalid intent %q", path, r.Intent)
			}
			if len(r.Keywords) == 0 {
				return out, fmt.Errorf("rules %s: intent %q has no keywords", path, r.Intent)
			}
			rules = append(rules, intent.Rule{Intent: in, Keywords: r.Keywords})
		}
		out.Intents = rules
	}

	if len(f.Themes) > 0 {
		rules := make([]theme.Rule, 0, len(f.Themes))
		for _, r := range f.Themes {
			if r.Theme == "" || len(r.Keywords) == 0 {
				return out, fmt.Errorf("rules %s: themes need a tag and keywords", path)
			}
			rules = append(rules, theme.Rule{Theme: r.Theme, Keywords: r.Keywords})
		}
		out.Themes = rules
	}

	return out, nil
}
