package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"discshelf/internal/journal"
)

func newJournalCommand(ctx *commandContext) *cobra.Command {
	var (
		limit int
		loads bool
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent edits or workbook loads",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			if j == nil {
				return errors.New("journal is disabled (journal.enabled = false)")
			}
			defer j.Close()

			if loads {
				entries, err := j.RecentLoads(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return printLoads(cmd, ctx.jsonOutput(), entries)
			}
			entries, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printMutations(cmd, ctx.jsonOutput(), entries)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().BoolVar(&loads, "loads", false, "Show workbook loads instead of edits")
	return cmd
}

func printMutations(cmd *cobra.Command, jsonOut bool, entries []journal.Mutation) error {
	if jsonOut {
		if entries == nil {
			entries = []journal.Mutation{}
		}
		return writeJSON(cmd, entries)
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No edits journaled")
		return nil
	}
	rows := make([][]string, len(entries))
	for i, m := range entries {
		rows[i] = []string{
			m.Time.Local().Format(time.DateTime),
			string(m.Op),
			string(m.Category),
			m.Serial,
			m.Title,
			yesNo(m.Saved),
		}
	}
	fmt.Fprintln(out, renderTable([]string{"Time", "Op", "Category", "Serial", "Title", "Saved"}, rows, nil))
	return nil
}

func printLoads(cmd *cobra.Command, jsonOut bool, entries []journal.Load) error {
	if jsonOut {
		if entries == nil {
			entries = []journal.Load{}
		}
		return writeJSON(cmd, entries)
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No loads journaled")
		return nil
	}
	rows := make([][]string, len(entries))
	for i, l := range entries {
		rows[i] = []string{
			l.Time.Local().Format(time.DateTime),
			l.Path,
			l.Format,
			strconv.Itoa(l.Records),
			strconv.Itoa(l.Dropped),
		}
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Time", "Workbook", "Format", "Records", "Dropped"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
	return nil
}
