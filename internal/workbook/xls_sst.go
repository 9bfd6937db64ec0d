package workbook

import (
	"encoding/binary"
	"errors"
	"unicode/utf16"
)

const (
	recLabelSSTSize = 10

	flagExtended = 0x04
	flagRichText = 0x08
)

var errShortRecord = errors.New("truncated biff record")

// sharedStrings is the shared string table of a BIFF8 workbook stream plus,
// per sheet in BOUNDSHEET order, the cells that point into it.
//
// extrame/xls assigns text to the wrong index once a string runs from one
// CONTINUE record into the next, which Excel writes for any large table.
// The cells listed here are re-read from the table directly.
type sharedStrings struct {
	table []string
	cells [][]sstCell
}

type sstCell struct {
	row   int
	col   int
	index uint32
}

// scanSharedStrings returns nil for streams that are not BIFF8 or whose
// records cannot be walked; callers then keep the parser's own text.
func scanSharedStrings(stream []byte) *sharedStrings {
	id, data, pos, err := nextRecord(stream, 0)
	if err != nil || id != recBOF || len(data) < 2 || binary.LittleEndian.Uint16(data) != biffVersion {
		return nil
	}

	var (
		offsets []int
		parts   [][]byte
	)
	for {
		id, data, pos, err = nextRecord(stream, pos)
		if err != nil {
			return nil
		}
		switch id {
		case recBoundSheet:
			if len(data) < 4 {
				return nil
			}
			offsets = append(offsets, int(binary.LittleEndian.Uint32(data)))
		case recSST:
			parts = [][]byte{data}
			for {
				next, more, after, err := nextRecord(stream, pos)
				if err != nil || next != recContinue {
					break
				}
				parts = append(parts, more)
				pos = after
			}
		}
		if id == recEOF {
			break
		}
	}
	if parts == nil {
		return nil
	}

	shared := &sharedStrings{table: readStringTable(parts), cells: make([][]sstCell, len(offsets))}
	for i, offset := range offsets {
		shared.cells[i] = scanLabelSST(stream, offset)
	}
	return shared
}

// apply overwrites the shared-string cells of sheet index in rows.
func (s *sharedStrings) apply(index int, rows [][]string) [][]string {
	if s == nil || index >= len(s.cells) {
		return rows
	}
	for _, c := range s.cells[index] {
		if int(c.index) >= len(s.table) || c.row >= maxXLSRows || c.col >= maxXLSColumns {
			continue
		}
		for len(rows) <= c.row {
			rows = append(rows, nil)
		}
		if len(rows[c.row]) <= c.col {
			grown := make([]string, c.col+1)
			copy(grown, rows[c.row])
			rows[c.row] = grown
		}
		rows[c.row][c.col] = s.table[c.index]
	}
	for r := range rows {
		rows[r] = trimRow(rows[r])
	}
	return trimRows(rows)
}

func scanLabelSST(stream []byte, offset int) []sstCell {
	var cells []sstCell
	pos := offset
	for {
		id, data, next, err := nextRecord(stream, pos)
		if err != nil || id == recEOF {
			return cells
		}
		if id == recLabelSST && len(data) >= recLabelSSTSize {
			cells = append(cells, sstCell{
				row:   int(binary.LittleEndian.Uint16(data[0:])),
				col:   int(binary.LittleEndian.Uint16(data[2:])),
				index: binary.LittleEndian.Uint32(data[6:]),
			})
		}
		pos = next
	}
}

func nextRecord(stream []byte, pos int) (uint16, []byte, int, error) {
	if pos < 0 || pos+4 > len(stream) {
		return 0, nil, pos, errShortRecord
	}
	id := binary.LittleEndian.Uint16(stream[pos:])
	size := int(binary.LittleEndian.Uint16(stream[pos+2:]))
	end := pos + 4 + size
	if end > len(stream) {
		return 0, nil, pos, errShortRecord
	}
	return id, stream[pos+4 : end], end, nil
}

// readStringTable decodes as many strings as the SST and its CONTINUE
// records hold, stopping at the first truncated one.
func readStringTable(parts [][]byte) []string {
	r := &continuedReader{parts: parts}
	head, err := r.bytes(8)
	if err != nil {
		return nil
	}
	count := int(binary.LittleEndian.Uint32(head[4:]))
	table := make([]string, 0, min(count, 1<<16))
	for len(table) < count {
		s, err := r.unicodeString()
		if err != nil {
			break
		}
		table = append(table, s)
	}
	return table
}

// continuedReader reads a payload split across an SST record and its
// CONTINUE records.
type continuedReader struct {
	parts [][]byte
	part  int
	pos   int
}

func (r *continuedReader) remaining() int {
	if r.part >= len(r.parts) {
		return 0
	}
	return len(r.parts[r.part]) - r.pos
}

func (r *continuedReader) advance() bool {
	if r.part+1 >= len(r.parts) {
		return false
	}
	r.part++
	r.pos = 0
	return true
}

// bytes reads n raw bytes, crossing record boundaries as needed.
func (r *continuedReader) bytes(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		if r.remaining() == 0 && !r.advance() {
			return nil, errShortRecord
		}
		k := min(n-len(out), r.remaining())
		out = append(out, r.parts[r.part][r.pos:r.pos+k]...)
		r.pos += k
	}
	return out, nil
}

// unicodeString reads one XLUnicodeRichExtendedString and drops its
// formatting runs and phonetic data.
func (r *continuedReader) unicodeString() (string, error) {
	head, err := r.bytes(sstStringHeader)
	if err != nil {
		return "", err
	}
	cch := int(binary.LittleEndian.Uint16(head))
	flags := head[2]
	var runs, ext int
	if flags&flagRichText != 0 {
		b, err := r.bytes(2)
		if err != nil {
			return "", err
		}
		runs = int(binary.LittleEndian.Uint16(b))
	}
	if flags&flagExtended != 0 {
		b, err := r.bytes(4)
		if err != nil {
			return "", err
		}
		ext = int(binary.LittleEndian.Uint32(b))
	}
	units, err := r.chars(cch, flags&flagHighByte != 0)
	if err != nil {
		return "", err
	}
	if _, err := r.bytes(4*runs + ext); err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

// chars reads n characters. Each record the text continues into starts
// with an option flags byte that may switch between 8-bit and 16-bit
// characters.
func (r *continuedReader) chars(n int, high bool) ([]uint16, error) {
	units := make([]uint16, 0, n)
	for len(units) < n {
		if r.remaining() == 0 {
			if !r.advance() || r.remaining() == 0 {
				return nil, errShortRecord
			}
			high = r.parts[r.part][0]&flagHighByte != 0
			r.pos++
			continue
		}
		part := r.parts[r.part]
		if !high {
			units = append(units, uint16(part[r.pos]))
			r.pos++
			continue
		}
		if r.remaining() < 2 {
			return nil, errShortRecord
		}
		units = append(units, binary.LittleEndian.Uint16(part[r.pos:]))
		r.pos += 2
	}
	return units, nil
}
