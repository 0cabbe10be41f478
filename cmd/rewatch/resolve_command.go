package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rewatch/internal/resolve"
)

// newResolveCommand resolves a single raw series name without recording a
// watch, useful for seeding aliases or checking how a platform label lands.
func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <raw series name>",
		Short: "Resolve a raw series name to its canonical identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			resolution, err := rt.resolver.Resolve(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, resolve.ErrSkipped):
				fmt.Fprintln(out, "Skipped.")
				return nil
			case errors.Is(err, resolve.ErrCancelled):
				fmt.Fprintln(out, "Cancelled.")
				return nil
			case err != nil:
				return err
			}

			series := resolution.Series
			label := "known"
			if resolution.IsNew {
				label = "new"
			}
			if series.CatalogID > 0 {
				fmt.Fprintf(out, "%s (catalog id %d, %s)\n", series.Name, series.CatalogID, label)
			} else {
				fmt.Fprintf(out, "%s (local only, %s)\n", series.Name, label)
			}
			return nil
		},
	}
}
