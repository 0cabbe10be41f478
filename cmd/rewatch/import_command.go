package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rewatch/internal/importer"
	"rewatch/internal/ingest"
	"rewatch/internal/resolve"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import watch history from a source",
	}
	importCmd.AddCommand(newImportCSVCommand(ctx))
	importCmd.AddCommand(newImportJellyfinCommand(ctx))
	return importCmd
}

func newImportCSVCommand(ctx *commandContext) *cobra.Command {
	var sourceName string

	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import a viewing-activity CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open export: %w", err)
			}
			defer file.Close()

			source := sourceName
			if source == "" {
				source = rt.cfg.Import.DefaultSource
			}
			items, err := ingest.ReadCSV(file, ingest.CSVOptions{
				DateFormats: rt.cfg.Import.CSVDateFormats,
				Source:      source,
			})
			if err != nil {
				return err
			}
			return runImport(cmd, rt, items)
		},
	}

	cmd.Flags().StringVar(&sourceName, "source", "", "Source label for imported events (default from config)")
	return cmd
}

func newImportJellyfinCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "jellyfin",
		Short: "Import played episodes from the configured Jellyfin server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, closeAll, err := ctx.openRuntime()
			if err != nil {
				return err
			}
			defer closeAll()

			if !rt.cfg.Jellyfin.Enabled {
				return errors.New("jellyfin is not enabled in the configuration")
			}
			client, err := ingest.NewJellyfinClient(rt.cfg.Jellyfin.URL, rt.cfg.Jellyfin.APIKey, rt.cfg.Jellyfin.UserID)
			if err != nil {
				return err
			}
			items, err := client.PlayedEpisodes(cmd.Context())
			if err != nil {
				return err
			}
			return runImport(cmd, rt, items)
		},
	}
}

func runImport(cmd *cobra.Command, rt *runtime, items []ingest.Item) error {
	summary, err := rt.importer.Run(cmd.Context(), items)
	out := cmd.OutOrStdout()
	if errors.Is(err, resolve.ErrCancelled) {
		fmt.Fprintln(out, "Import cancelled.")
		err = nil
	} else if err != nil {
		return err
	}
	printSummary(out, summary)
	return nil
}

func printSummary(out io.Writer, summary importer.Summary) {
	fmt.Fprintf(out, "%d items: %d recorded, %d duplicates, %d skipped, %d errors\n",
		summary.Total, summary.Recorded, summary.Duplicates, summary.Skipped, summary.Errors)
}
