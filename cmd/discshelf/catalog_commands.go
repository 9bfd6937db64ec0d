package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"discshelf/internal/catalog"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "categories",
		Short:       "List catalogue categories and their columns",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			type categoryJSON struct {
				ID     catalog.CategoryID `json:"id"`
				Label  string             `json:"label"`
				Sheet  string             `json:"sheet"`
				Fields []string           `json:"fields"`
				Labels []string           `json:"labels"`
			}
			categories := catalog.Categories()
			if ctx.jsonOutput() {
				out := make([]categoryJSON, len(categories))
				for i, c := range categories {
					out[i] = categoryJSON{ID: c.ID, Label: c.Label, Sheet: c.SheetName, Fields: c.FieldKeys(), Labels: c.Labels()}
				}
				return writeJSON(cmd, out)
			}
			rows := make([][]string, len(categories))
			for i, c := range categories {
				fields := make([]string, len(c.Fields))
				for j, f := range c.Fields {
					fields[j] = fmt.Sprintf("%s (%s)", f.Label, f.Key)
				}
				rows[i] = []string{string(c.ID), c.Label, c.SheetName, strings.Join(fields, ", ")}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Label", "Sheet", "Columns"}, rows, nil))
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <category>",
		Short: "List the records of one category in catalogue order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := categoryArg(args[0])
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.lib.List(c.ID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, recordsJSON(c.ID, records))
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No %s records\n", c.Label)
				return nil
			}
			fmt.Fprintln(out, renderTable(recordHeaders(c), recordRows(c, records), nil))
			fmt.Fprintf(out, "%d records\n", len(records))
			return nil
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles, serials and remarks",
		Long: "Search matches the query as a case-insensitive substring of any field. " +
			"For hard-disk movies a query like 硬盘一.12 also matches disk, serial and title joined by dots.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := catalog.Categories()
			if strings.TrimSpace(categoryFlag) != "" {
				c, err := categoryArg(categoryFlag)
				if err != nil {
					return err
				}
				categories = []catalog.Category{c}
			}

			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			var (
				hits []recordJSON
				rows [][]string
			)
			for _, c := range categories {
				found, err := s.lib.Search(c.ID, args[0])
				if err != nil {
					return err
				}
				hits = append(hits, recordsJSON(c.ID, found)...)
				for _, r := range found {
					rows = append(rows, []string{c.Label, r.Disk(), r.Serial(), r.Title(), r.Get(catalog.FieldRemark)})
				}
			}

			if ctx.jsonOutput() {
				if hits == nil {
					hits = []recordJSON{}
				}
				return writeJSON(cmd, hits)
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No records match %q\n", args[0])
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Category", "Disk", "Serial", "Title", "Remark"}, rows, nil))
			fmt.Fprintf(out, "%d matches\n", len(rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&categoryFlag, "category", "t", "", "Limit the search to one category")
	return cmd
}
