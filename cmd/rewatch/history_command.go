package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded watch events",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			events, err := rt.records.RecentWatches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No watch events recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.WatchedOn,
					event.SeriesName,
					fmt.Sprintf("s%02de%02d", event.Season, event.Episode),
					event.Method,
					strconv.FormatFloat(event.Confidence, 'f', 2, 64),
					event.Source,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Watched", "Series", "Episode", "Method", "Confidence", "Source"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events to show")
	return cmd
}
