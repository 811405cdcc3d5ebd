package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keshon/hashwatch/internal/monitor"
	"github.com/keshon/hashwatch/internal/notify"
)

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Monitor tracked files until interrupted (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.once, "once", false, "run a single pass and exit")
	return cmd
}

func runMonitor(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	out := cmd.OutOrStdout()

	st, storage, err := loadStore(cmd, cfg)
	if err != nil || st == nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	notifier, err := notify.New(cfg.Notifier, notify.Options{
		Stdin:       os.Stdin,
		Stdout:      out,
		OnInterrupt: cancel,
	})
	if err != nil {
		return err
	}

	mon, err := monitor.New(cfg, monitor.Deps{
		Store:    st,
		Storage:  storage,
		Digester: newEngine(cfg),
		Notifier: notifier,
	}, monitor.WithOutput(out), monitor.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Debug("monitor starting", "store", cfg.StorePath, "paths", st.Len(),
		"interval", cfg.Interval, "cooldown", cfg.Cooldown, "notifier", cfg.Notifier, "hash", cfg.Hash)

	if opts.once {
		stats, err := mon.RunOnce(ctx)
		if err != nil {
			return err
		}
		logger.Debug("pass complete", "checked", stats.Checked, "missing", stats.Missing, "committed", stats.Committed)
		return nil
	}

	if err := mon.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Monitoring stopped.")
	return nil
}
