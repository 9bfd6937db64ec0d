package catalogio

import (
	"discshelf/internal/catalog"
	"discshelf/internal/textutil"
)

// blockCandidates walks every non-blank row in steps of len(c.Fields)
// columns. Each non-blank step is one candidate in field order.
func blockCandidates(c catalog.Category, rows [][]string) []candidate {
	stride := len(c.Fields)
	var out []candidate
	for _, row := range rows {
		if textutil.IsBlank(row) {
			continue
		}
		for start := 0; start < len(row); start += stride {
			group := row[start:min(start+stride, len(row))]
			if textutil.IsBlank(group) {
				continue
			}
			values := make(map[string]string, stride)
			for i, f := range c.Fields {
				if i < len(group) {
					values[f.Key] = group[i]
				}
			}
			out = append(out, candidate{values: values, cells: group})
		}
	}
	return out
}
