package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/majordome-ai/majordome/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the engine over the Model Context Protocol (stdio)",
	Long: `Mcp exposes majordome_analyze, majordome_themes, majordome_archive, and
majordome_fingerprint as MCP tools on stdio, for use from assistant front
ends.`,
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

		engine, tables, err := newEngine(cfg, log)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		srv := mcp.NewServer(mcp.ServerConfig{
			Store:      store,
			Engine:     engine,
			Archiver:   newArchiver(store, tables, log),
			ThemeRules: tables.Themes,
			Version:    version,
		})

		log.Info("mcp server listening on stdio")
		return server.ServeStdio(srv)
	},
}
