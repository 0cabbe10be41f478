package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newMemoryCommand exposes the corrective operations on decision memory:
// listing and removing aliases, series skips, and manual episode mappings.
func newMemoryCommand(ctx *commandContext) *cobra.Command {
	memoryCmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect and correct remembered resolution decisions",
	}
	memoryCmd.AddCommand(newMemoryAliasesCommand(ctx))
	memoryCmd.AddCommand(newMemorySkipsCommand(ctx))
	memoryCmd.AddCommand(newMemoryMappingsCommand(ctx))
	memoryCmd.AddCommand(newMemoryForgetCommand(ctx))
	return memoryCmd
}

func newMemoryAliasesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "List learned series aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			entries := rt.memory.Aliases()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No aliases recorded.")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.RawName,
					entry.Alias.CanonicalName,
					strconv.FormatInt(entry.Alias.CanonicalID, 10),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Raw Name", "Canonical Name", "Catalog ID"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newMemorySkipsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "skips",
		Short: "List series marked never-resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			entries := rt.memory.SkippedSeries()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No skipped series.")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.RawName,
					entry.Entry.Reason,
					entry.Entry.SkippedAt.Format("2006-01-02"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Raw Name", "Reason", "Skipped"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newMemoryMappingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mappings <series name>",
		Short: "List manual episode mappings for a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			entries := rt.memory.ManualEpisodes(args[0])
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No manual mappings for %q.\n", args[0])
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.RawKey,
					fmt.Sprintf("s%02de%02d", entry.Mapping.Season, entry.Mapping.Episode),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Raw Episode Key", "Mapped To"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

// newMemoryForgetCommand removes one remembered decision so the next import
// asks again.
func newMemoryForgetCommand(ctx *commandContext) *cobra.Command {
	var series string

	cmd := &cobra.Command{
		Use:   "forget <raw name or raw episode key>",
		Short: "Remove a remembered alias, skip, or manual mapping",
		Long: "Removes a remembered decision. Without --series the argument is " +
			"treated as a raw series name and its alias or skip entry is removed. " +
			"With --series it is treated as a raw episode key and the manual " +
			"mapping for that series is removed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			out := cmd.OutOrStdout()
			if series != "" {
				if err := rt.memory.RemoveManualEpisode(series, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed manual mapping %q for %q.\n", args[0], series)
				return nil
			}

			if err := rt.memory.RemoveAlias(args[0]); err == nil {
				fmt.Fprintf(out, "Removed alias for %q.\n", args[0])
				return nil
			}
			if err := rt.memory.RemoveSkipped(args[0]); err != nil {
				return fmt.Errorf("no alias or skip entry for %q", args[0])
			}
			fmt.Fprintf(out, "Removed skip entry for %q.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&series, "series", "", "Treat the argument as a raw episode key of this series")
	return cmd
}
