package main

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats CODE",
		Short: "Show click statistics for a short code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}

			stats, err := opts.client(logger).Stats(cmd.Context(), args[0])
			if err != nil {
				return describeError(err)
			}

			printStats(cmd, stats)

			return nil
		},
	}
}
