package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent stage runs from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := ctx.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(out, "Run ledger is disabled (set [ledger] enabled = true)")
				return nil
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			human := shouldColorize(out)
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				started := run.StartedAt.Format("2006-01-02 15:04:05")
				if human {
					started = humanize.Time(run.StartedAt)
				}
				source := run.Source
				if source == "" {
					source = "-"
				}
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					shortRunID(run.RunID),
					run.Stage,
					source,
					string(run.Status),
					formatRows(run.Rows(), human),
					started,
					run.ErrorKind,
				})
			}
			writeTable(out,
				[]string{"ID", "Run", "Stage", "Source", "Status", "Rows", "Started", "Error"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
