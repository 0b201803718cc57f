package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"reidset/internal/catalog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded annotation build runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.Paths.CatalogPath)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No build runs recorded.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.Kind,
					run.CreatedAt.Local().Format(time.DateTime),
					strconv.Itoa(run.TrainRows),
					strconv.Itoa(run.QueryRows),
					strconv.Itoa(run.GalleryRows),
					strconv.Itoa(run.Identities),
					run.OutputPath,
				})
			}

			headers := []string{"Run", "Kind", "Created", "Train", "Query", "Gallery", "IDs", "Output"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 4, 5, 6, 7))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
