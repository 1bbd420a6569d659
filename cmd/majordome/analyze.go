package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <message>",
	Short: "Classify a message and match it against your data",
	Long: `Analyze runs the full pipeline on one message: intent classification,
relevance matching against the entity store, confidence estimation, and
action suggestions.

Examples:
  majordome analyze "crée un dossier pour le projet"
  majordome analyze "affiche mes rendez-vous"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")

		cfg, err := resolve()
		if err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		engine, _, err := newEngine(cfg, log)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		snap, err := store.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading snapshot: %w", err)
		}

		analysis := engine.Analyze(cmd.Context(), message, snap)

		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}
