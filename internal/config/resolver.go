// Package config resolves majordome settings from, in increasing
// precedence: built-in defaults, the yaml config file, environment
// variables, and CLI flags. Every resolved value remembers where it came
// from so `majordome config` can explain itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

// StoreSQLite and StoreTrello are the supported entity-store backends.
const (
	StoreSQLite = "sqlite"
	StoreTrello = "trello"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath  string
	CLIDBPath   string
	CLIStore    string
	CLIWatchDir string
	CLIRules    string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath    ResolvedValue `json:"db_path"`
	Store     ResolvedValue `json:"store"`
	WatchDir  ResolvedValue `json:"watch_dir"`
	SweepCron ResolvedValue `json:"sweep_cron"`
	RulesPath ResolvedValue `json:"rules_path"`
	CacheTTL  ResolvedValue `json:"cache_ttl"`

	TrelloAPIKey  ResolvedValue `json:"trello_api_key"`
	TrelloToken   ResolvedValue `json:"trello_token"`
	TrelloBoardID ResolvedValue `json:"trello_board_id"`
}

type fileConfig struct {
	DBPath    string `yaml:"db_path"`
	Store     string `yaml:"store"`
	WatchDir  string `yaml:"watch_dir"`
	SweepCron string `yaml:"sweep_cron"`
	RulesPath string `yaml:"rules_path"`
	CacheTTL  string `yaml:"cache_ttl"`
	Trello    struct {
		APIKey  string `yaml:"api_key"`
		Token   string `yaml:"token"`
		BoardID string `yaml:"board_id"`
	} `yaml:"trello"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".majordome", "config.yaml")
}

// LoadDotenv loads a .env file from the working directory when present.
// Missing files are fine; malformed ones are reported.
func LoadDotenv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}
	out.Store = ResolvedValue{Value: StoreSQLite, Source: SourceDefault, From: "built-in default"}
	out.SweepCron = ResolvedValue{Value: "@every 10m", Source: SourceDefault, From: "built-in default"}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.Store, cfg.Store, SourceConfig, path)
		apply(&out.WatchDir, cfg.WatchDir, SourceConfig, path)
		apply(&out.SweepCron, cfg.SweepCron, SourceConfig, path)
		apply(&out.RulesPath, cfg.RulesPath, SourceConfig, path)
		apply(&out.CacheTTL, cfg.CacheTTL, SourceConfig, path)
		apply(&out.TrelloAPIKey, cfg.Trello.APIKey, SourceConfig, path)
		apply(&out.TrelloToken, cfg.Trello.Token, SourceConfig, path)
		apply(&out.TrelloBoardID, cfg.Trello.BoardID, SourceConfig, path)
	}

	applyEnv(&out.DBPath, "MAJORDOME_DB")
	applyEnv(&out.Store, "MAJORDOME_STORE")
	applyEnv(&out.WatchDir, "MAJORDOME_WATCH_DIR")
	applyEnv(&out.SweepCron, "MAJORDOME_SWEEP_CRON")
	applyEnv(&out.RulesPath, "MAJORDOME_RULES")
	applyEnv(&out.CacheTTL, "MAJORDOME_CACHE_TTL")
	applyEnv(&out.TrelloAPIKey, "TRELLO_API_KEY")
	applyEnv(&out.TrelloToken, "TRELLO_TOKEN")
	applyEnv(&out.TrelloBoardID, "TRELLO_BOARD_ID")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.Store, opts.CLIStore, SourceCLI, "--store")
	apply(&out.WatchDir, opts.CLIWatchDir, SourceCLI, "--dir")
	apply(&out.RulesPath, opts.CLIRules, SourceCLI, "--rules")

	switch out.Store.Value {
	case StoreSQLite, StoreTrello:
	default:
		return out, fmt.Errorf("unknown store backend %q (want %s or %s)",
			out.Store.Value, StoreSQLite, StoreTrello)
	}

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}
	if out.WatchDir.Value != "" {
		out.WatchDir.Value = expandUserPath(out.WatchDir.Value)
	}

	return out, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
