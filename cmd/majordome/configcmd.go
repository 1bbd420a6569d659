package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration and where each value came from",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve()
		if err != nil {
			return err
		}

		// Never print credentials.
		cfg.TrelloAPIKey.Value = redact(cfg.TrelloAPIKey.Value)
		cfg.TrelloToken.Value = redact(cfg.TrelloToken.Value)

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func redact(s string) string {
	if len(s) > 8 {
		return s[:4] + "..." + s[len(s)-4:]
	}
	if s != "" {
		return "***"
	}
	return ""
}
