package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"reidset/internal/annostore"
	"reidset/internal/config"
	"reidset/internal/dataset"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <annotation-file>",
		Short: "Summarize a persisted annotation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			store, err := annostore.Load(path)
			if err != nil {
				return err
			}

			p := message.NewPrinter(language.English)
			counts := store.Counts()

			rows := make([][]string, 0, 3)
			identities := make(map[dataset.Role]map[string]struct{})
			for _, rec := range store.Rows() {
				if identities[rec.Role] == nil {
					identities[rec.Role] = make(map[string]struct{})
				}
				identities[rec.Role][rec.IdentityID] = struct{}{}
			}
			for _, role := range dataset.Roles() {
				if counts[role] == 0 {
					continue
				}
				rows = append(rows, []string{
					string(role),
					p.Sprintf("%d", counts[role]),
					p.Sprintf("%d", len(identities[role])),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Partition", "Rows", "Identities"}, rows, 2, 3))

			if classes := store.Classes(); len(classes) > 0 {
				p.Fprintf(out, "Train classes: %d (0..%s)\n", len(classes), strconv.Itoa(classes[len(classes)-1]))
			}
			return nil
		},
	}
}
