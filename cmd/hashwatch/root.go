package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/keshon/hashwatch/internal/config"
	"github.com/keshon/hashwatch/internal/fingerprint"
	"github.com/keshon/hashwatch/internal/fs"
	"github.com/keshon/hashwatch/internal/history"
)

type options struct {
	configPath string
	storePath  string
	interval   time.Duration
	cooldown   time.Duration
	notifier   string
	logLevel   string
	hash       string
	once       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "hashwatch",
		Short: "Periodic file integrity monitor",
		Long: `hashwatch re-hashes every file recorded in its history database at a
fixed interval and raises an alert when a file's content changes.

A change is re-checked after a cooldown before the new hash is recorded,
so files caught in the middle of a write do not leave a trace.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, opts)
		},
	}

	def := config.Default()
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVarP(&opts.storePath, "store", "s", def.StorePath, "path to the history database")
	pf.DurationVar(&opts.interval, "interval", def.Interval, "pause between passes")
	pf.DurationVar(&opts.cooldown, "cooldown", def.Cooldown, "pause before re-checking a changed file")
	pf.StringVar(&opts.notifier, "notifier", def.Notifier, "alert style: auto, dialog, terminal or console")
	pf.StringVar(&opts.logLevel, "log-level", def.LogLevel, "diagnostic log level: debug, info, warn or error")
	pf.StringVar(&opts.hash, "hash", def.Hash, "digest algorithm: md5 or xxh3")
	root.Flags().BoolVar(&opts.once, "once", false, "run a single pass and exit")

	root.AddCommand(newRunCmd(opts), newStatusCmd(opts), newHistoryCmd(opts))
	return root
}

// resolve layers explicitly set flags over the config file over defaults.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(fs.NewOSFS(), o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.StorePath = o.storePath
	}
	if flags.Changed("interval") {
		cfg.Interval = o.interval
	}
	if flags.Changed("cooldown") {
		cfg.Cooldown = o.cooldown
	}
	if flags.Changed("notifier") {
		cfg.Notifier = o.notifier
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("hash") {
		cfg.Hash = o.hash
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newEngine(cfg config.Config) *fingerprint.Engine {
	return fingerprint.NewEngine(fs.NewOSFS(),
		fingerprint.WithChunkSize(cfg.ChunkSize),
		fingerprint.WithAlgorithm(fingerprint.Algorithm(cfg.Hash)),
	)
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	lvl, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// loadStore returns the store, or nil after telling the user there is
// nothing to look at.
func loadStore(cmd *cobra.Command, cfg config.Config) (*history.Store, *history.Storage, error) {
	storage := history.NewStorage(fs.NewOSFS(), cfg.StorePath)
	st, err := storage.Load()
	if err != nil {
		return nil, nil, err
	}
	if st.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files to monitor.")
		return nil, storage, nil
	}
	return st, storage, nil
}
