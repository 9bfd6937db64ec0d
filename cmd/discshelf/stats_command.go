package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and how each sheet was read",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			stats := s.lib.Stats()
			report := s.lib.Report()
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"workbook":   s.path,
					"format":     s.lib.Format().String(),
					"categories": stats,
					"unclaimed":  report.Unclaimed,
				})
			}

			rows := make([][]string, 0, len(stats))
			total := 0
			for _, st := range stats {
				total += st.Records
				dups := ""
				if st.Duplicates > 0 {
					dups = strconv.Itoa(st.Duplicates)
				}
				rows = append(rows, []string{
					st.Label,
					strconv.Itoa(st.Records),
					st.Sheet,
					st.Resolution,
					st.Layout,
					strconv.Itoa(st.Dropped),
					strconv.Itoa(st.Headers),
					dups,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workbook: %s (%s)\n", s.path, s.lib.Format())
			fmt.Fprintln(out, renderTable(
				[]string{"Category", "Records", "Sheet", "Found by", "Layout", "Dropped", "Headers", "Duplicates"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d records\n", total)
			if len(report.Unclaimed) > 0 {
				fmt.Fprintf(out, "Sheets not read: %v\n", report.Unclaimed)
			}
			return nil
		},
	}
}
