package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/majordome-ai/majordome/internal/config"
	"github.com/majordome-ai/majordome/internal/entity"
	"github.com/majordome-ai/majordome/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes <text>",
	Short: "Extract topical themes from conversation text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		cfg, err := resolve()
		if err != nil {
			return err
		}
		tables, err := config.LoadRules(cfg.RulesPath.Value)
		if err != nil {
			return err
		}

		themes := theme.ExtractWith([]entity.Message{{Content: text}}, tables.Themes)
		fmt.Println(strings.Join(themes, ", "))
		return nil
	},
}
