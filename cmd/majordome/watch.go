package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/majordome-ai/majordome/internal/watch"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the archive intake daemon on a drop directory",
	Long: `Watch archives every conversation JSON dropped into a directory.
New files are picked up immediately via fsnotify; a periodic sweep
(sweep_cron, default every 10 minutes) catches anything missed. Processed
files move to <dir>/archived/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve()
		if err != nil {
			return err
		}
		if cfg.WatchDir.Value == "" {
			return fmt.Errorf("no watch directory configured (--dir, MAJORDOME_WATCH_DIR, or watch_dir in config)")
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

		daemon, err := watch.NewDaemon(watch.Config{
			Dir:       cfg.WatchDir.Value,
			Store:     store,
			Archiver:  newArchiver(store, tables, log),
			SweepCron: cfg.SweepCron.Value,
			Logger:    log,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := daemon.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "drop directory to watch")
}
