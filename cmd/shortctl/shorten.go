package main

import (
	"github.com/spf13/cobra"
)

func newShortenCmd(opts *rootOptions) *cobra.Command {
	var (
		slug         string
		expiresHours int
		copyToClip   bool
		showStats    bool
	)

	cmd := &cobra.Command{
		Use:   "shorten URL",
		Short: "Create a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.controller()
			if err != nil {
				return err
			}

			result, err := ctrl.Submit(cmd.Context(), args[0], slug, expiresHours)
			if err != nil {
				return describeError(err)
			}

			printResult(cmd, result)

			if copyToClip {
				if err := ctrl.CopyShortURL(); err != nil {
					cmd.PrintErrln("Copy failed:", err)
				} else {
					cmd.Println("Copied to clipboard!")
				}
			}

			if showStats {
				stats, err := ctrl.ViewStats(cmd.Context())
				if err != nil {
					return describeError(err)
				}

				cmd.Println()
				printStats(cmd, stats)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "custom slug for the short link")
	cmd.Flags().IntVar(&expiresHours, "expires-hours", 0, "expire the link after this many hours")
	cmd.Flags().BoolVar(&copyToClip, "copy", false, "copy the short URL to the clipboard")
	cmd.Flags().BoolVar(&showStats, "stats", false, "fetch statistics for the new link")

	return cmd
}
