package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"discshelf/internal/catalog"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type recordJSON struct {
	ID       string             `json:"id"`
	Category catalog.CategoryID `json:"category"`
	Values   map[string]string  `json:"values"`
}

func recordsJSON(id catalog.CategoryID, records []catalog.Record) []recordJSON {
	out := make([]recordJSON, len(records))
	for i, r := range records {
		out[i] = recordJSON{ID: r.ID, Category: id, Values: r.Values}
	}
	return out
}
