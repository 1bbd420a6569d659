// Command majordome is the CLI for the majordome heuristic context and
// intent engine: analyze messages, extract themes, archive conversations,
// fingerprint utterances, run the drop-directory daemon, or serve the
// engine over MCP.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/majordome-ai/majordome/internal/archive"
	"github.com/majordome-ai/majordome/internal/assist"
	"github.com/majordome-ai/majordome/internal/config"
	"github.com/majordome-ai/majordome/internal/entity"
)

const version = "0.1.0"

var (
	flagConfig  string
	flagDB      string
	flagStore   string
	flagRules   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:     "majordome",
	Short:   "Heuristic context and intent engine for a personal assistant",
	Version: version,
	Long: `Majordome maps assistant messages to intents, matches them against your
folders, files, and events, scores confidence, suggests actions, and
archives finished conversations as themed transcript documents.`,
}

func main() {
	if err := config.LoadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.majordome/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "sqlite database path (default ~/.majordome/majordome.db)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "entity store backend: sqlite or trello")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "keyword-table yaml file overriding the built-in intent/theme rules")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(fingerprintCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// resolve merges file, env, and CLI configuration.
func resolve() (config.ResolvedConfig, error) {
	return config.ResolveConfig(config.ResolveOptions{
		ConfigPath:  flagConfig,
		CLIDBPath:   flagDB,
		CLIStore:    flagStore,
		CLIWatchDir: watchDir,
		CLIRules:    flagRules,
	})
}

// openStore builds the configured entity-store backend.
func openStore(cfg config.ResolvedConfig) (entity.Store, error) {
	switch cfg.Store.Value {
	case config.StoreTrello:
		return entity.NewTrelloStore(entity.TrelloConfig{
			APIKey:  cfg.TrelloAPIKey.Value,
			Token:   cfg.TrelloToken.Value,
			BoardID: cfg.TrelloBoardID.Value,
		})
	default:
		return entity.NewSQLiteStore(entity.SQLiteConfig{DBPath: cfg.DBPath.Value})
	}
}

// newLogger builds the process logger.
func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	c := zap.NewProductionConfig()
	c.DisableStacktrace = true
	return c.Build()
}

// newEngine builds an analysis engine from the resolved config.
func newEngine(cfg config.ResolvedConfig, log *zap.Logger) (*assist.Engine, config.RuleTables, error) {
	tables, err := config.LoadRules(cfg.RulesPath.Value)
	if err != nil {
		return nil, tables, err
	}

	opts := []assist.Option{
		assist.WithIntentRules(tables.Intents),
		assist.WithLogger(log),
	}
	if cfg.CacheTTL.Value != "" {
		ttl, err := time.ParseDuration(cfg.CacheTTL.Value)
		if err != nil {
			return nil, tables, fmt.Errorf("invalid cache_ttl %q: %w", cfg.CacheTTL.Value, err)
		}
		opts = append(opts, assist.WithCache(ttl))
	}
	return assist.NewEngine(opts...), tables, nil
}

// newArchiver builds an archiver over the store with the configured rules.
func newArchiver(store entity.Store, tables config.RuleTables, log *zap.Logger) *archive.Archiver {
	return archive.New(store,
		archive.WithThemeRules(tables.Themes),
		archive.WithLogger(log))
}
