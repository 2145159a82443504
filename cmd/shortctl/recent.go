package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRecentCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently created links with live click counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.controller()
			if err != nil {
				return err
			}

			views, err := ctrl.RefreshRecent(cmd.Context())
			if err != nil {
				return err
			}

			if len(views) == 0 {
				cmd.Println("No links yet. Create one with 'shortctl shorten'.")

				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tCLICKS\tSTATUS\tCREATED\tORIGINAL URL")

			for _, view := range views {
				status := "active"
				if !view.IsActive {
					status = "inactive"
				}

				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
					view.Entry.ShortCode,
					view.Clicks,
					status,
					view.Entry.CreatedAt.Format("2006-01-02 15:04"),
					view.Entry.OriginalURL,
				)
			}

			return w.Flush()
		},
	}
}
