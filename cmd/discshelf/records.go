package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"discshelf/internal/catalog"
	"discshelf/internal/library"
	"discshelf/internal/textutil"
)

// parseAssignments turns "key=value" pairs into field values. The key may be
// the field key, its canonical label, or any alias.
func parseAssignments(c catalog.Category, pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("field %q: expected key=value", pair)
		}
		key, err := resolveField(c, name)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

func resolveField(c catalog.Category, name string) (string, error) {
	want := textutil.NormalizeHeader(name)
	for _, f := range c.Fields {
		if textutil.NormalizeHeader(f.Key) == want || textutil.NormalizeHeader(f.Label) == want {
			return f.Key, nil
		}
	}
	for _, f := range c.Fields {
		for _, alias := range f.Aliases {
			if textutil.NormalizeHeader(alias) == want {
				return f.Key, nil
			}
		}
	}
	return "", fmt.Errorf("category %s has no field %q (fields: %s)", c.ID, name, strings.Join(c.FieldKeys(), ", "))
}

func recordHeaders(c catalog.Category) []string {
	return c.Labels()
}

func recordRows(c catalog.Category, records []catalog.Record) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = c.Row(r)
	}
	return rows
}

func categoryArg(value string) (catalog.Category, error) {
	return catalog.ResolveCategory(value)
}

type selectorFlags struct {
	id     string
	serial string
	disk   string
	title  string
}

func (s *selectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.id, "id", "", "Record id from list --json")
	cmd.Flags().StringVar(&s.serial, "serial", "", "Match by serial")
	cmd.Flags().StringVar(&s.disk, "disk", "", "Match by disk (hard-disk category)")
	cmd.Flags().StringVar(&s.title, "match-title", "", "Match by exact title")
}

func (s *selectorFlags) selector() library.Selector {
	return library.Selector{ID: s.id, Serial: s.serial, Disk: s.disk, Title: s.title}
}

func printRecord(cmd *cobra.Command, jsonOut bool, verb string, c catalog.Category, rec catalog.Record) error {
	if jsonOut {
		return writeJSON(cmd, recordJSON{ID: rec.ID, Category: c.ID, Values: rec.Values})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s record\n", verb, c.Label)
	fmt.Fprintln(out, renderTable(recordHeaders(c), recordRows(c, []catalog.Record{rec}), nil))
	return nil
}
