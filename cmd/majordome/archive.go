package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/majordome-ai/majordome/internal/watch"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <conversation.json>",
	Short: "Archive one finalized conversation into the entity store",
	Long: `Archive reads a conversation JSON document, extracts its themes,
resolves or creates the matching "Conversations - <theme>" folder, and
stores the formatted transcript as a file entity.

Conversation format:
  {"title": "...", "messages": [{"role": "user", "content": "..."}]}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve()
		if err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		_, tables, err := newEngine(cfg, log)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		conv, err := watch.ReadConversation(args[0])
		if err != nil {
			return err
		}

		snap, err := store.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading snapshot: %w", err)
		}

		archiver := newArchiver(store, tables, log)
		result := archiver.Archive(cmd.Context(), *conv, snap)

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

		if !result.Success {
			return fmt.Errorf("archival failed: %s", result.Err)
		}
		return nil
	},
}
