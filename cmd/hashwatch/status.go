package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/keshon/hashwatch/internal/progress"
	"github.com/keshon/hashwatch/internal/report"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare tracked files with their last recorded hash without alerting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			st, _, err := loadStore(cmd, cfg)
			if err != nil || st == nil {
				return err
			}

			var digester report.Digester = newEngine(cfg)
			var bar *progress.Tracker
			if f, ok := cmd.ErrOrStderr().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				bar = progress.New(f, st.Len(), "Hashing tracked files")
				digester = countingDigester{Digester: digester, bar: bar}
			}

			rows, err := report.Status(st, digester)
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			return report.WriteStatus(cmd.OutOrStdout(), rows)
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history <path>",
		Short: "List every recorded hash of one tracked file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			st, _, err := loadStore(cmd, cfg)
			if err != nil || st == nil {
				return err
			}

			h, ok := st.History(args[0])
			if !ok {
				return fmt.Errorf("%q is not tracked", args[0])
			}
			return report.WriteHistory(cmd.OutOrStdout(), args[0], h)
		},
	}
}

type countingDigester struct {
	report.Digester
	bar *progress.Tracker
}

func (c countingDigester) Digest(path string) (string, error) {
	defer c.bar.Increment()
	return c.Digester.Digest(path)
}
