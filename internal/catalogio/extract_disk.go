package catalogio

import (
	"discshelf/internal/catalog"
	"discshelf/internal/textutil"
)

// diskGroupFields is the column order of one record group under a disk
// heading. The disk itself comes from the heading row.
var diskGroupFields = []string{
	catalog.FieldSerial,
	catalog.FieldTitle,
	catalog.FieldSubtitle,
	catalog.FieldGenre,
	catalog.FieldRemark,
}

// diskCandidates extracts disk-grouped hard-disk rows. It returns the
// candidates and the number of sub-header rows skipped.
func diskCandidates(rows [][]string) ([]candidate, int) {
	width := len(diskGroupFields)
	var (
		out     []candidate
		headers int
		disk    string
	)
	for _, row := range rows {
		if textutil.IsBlank(row) {
			continue
		}
		if name, ok := diskHeading(row); ok {
			disk = name
			continue
		}
		if isDiskSubHeader(row) {
			headers++
			continue
		}
		for start := 0; start < len(row); start += width {
			group := row[start:min(start+width, len(row))]
			if textutil.IsBlank(group) {
				continue
			}
			values := map[string]string{catalog.FieldDisk: disk}
			for i, key := range diskGroupFields {
				if i < len(group) {
					values[key] = group[i]
				}
			}
			out = append(out, candidate{values: values, cells: group})
		}
	}
	return out, headers
}
