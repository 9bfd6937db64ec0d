package workbook

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
)

// BIFF8 record identifiers.
const (
	recBOF        = 0x0809
	recEOF        = 0x000A
	recCodepage   = 0x0042
	recWindow1    = 0x003D
	recFont       = 0x0031
	recXF         = 0x00E0
	recStyle      = 0x0293
	recBoundSheet = 0x0085
	recSST        = 0x00FC
	recContinue   = 0x003C
	recExtSST     = 0x00FF
	recDimensions = 0x0200
	recRow        = 0x0208
	recLabel      = 0x0204
	recLabelSST   = 0x00FD
	recWindow2    = 0x023E
)

const (
	biffStreamName     = "Workbook"
	biffVersion        = 0x0600
	substreamGlobals   = 0x0005
	substreamWorksheet = 0x0010
	codepageUTF16      = 1200

	maxRecordData    = 8224
	maxXLSRows       = 65536
	maxXLSColumns    = 256
	maxSheetNameLen  = 31
	maxLabelUnits    = 255
	rowBlockSize     = 32
	styleXFCount     = 15
	cellXF           = styleXFCount
	extSSTBucketSize = 8
	maxExtSSTBuckets = 1024

	// sstStringHeader is cch plus the option flags byte. It never straddles
	// records, and neither does the first character after it.
	sstStringHeader = 3
	flagHighByte    = 0x01
)

// MaxCellUnits is the longest cell text, in UTF-16 code units, a workbook
// cell holds in either format.
const MaxCellUnits = 32767

// ErrCellTooLong reports text longer than MaxCellUnits.
var ErrCellTooLong = errors.New("cell text too long for a workbook cell")

// le accumulates little-endian record payloads.
type le []byte

func (b le) u8(v byte) le    { return append(b, v) }
func (b le) u16(v uint16) le { return binary.LittleEndian.AppendUint16(b, v) }
func (b le) u32(v uint32) le { return binary.LittleEndian.AppendUint32(b, v) }
func (b le) raw(p []byte) le { return append(b, p...) }

func (b le) utf16(s []uint16) le {
	for _, u := range s {
		b = b.u16(u)
	}
	return b
}

type biffStream struct {
	buf []byte
}

func (w *biffStream) record(id uint16, payload []byte) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, id)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(len(payload)))
	w.buf = append(w.buf, payload...)
}

func (w *biffStream) size() int { return len(w.buf) }

// stringTable collects cell text too long for a LABEL record.
type stringTable struct {
	strings [][]uint16
	index   map[string]uint32
	refs    uint32
}

func newStringTable() *stringTable {
	return &stringTable{index: make(map[string]uint32)}
}

func (t *stringTable) add(text string, units []uint16) uint32 {
	t.refs++
	if i, ok := t.index[text]; ok {
		return i
	}
	i := uint32(len(t.strings))
	t.strings = append(t.strings, units)
	t.index[text] = i
	return i
}

// sstPos locates the header of one string: the record it starts in and its
// offset inside that record's payload.
type sstPos struct {
	record int
	offset int
}

// records lays the table out as an SST payload followed by CONTINUE
// payloads, none larger than maxRecordData. Character data that runs past
// a record resumes in the next one behind a fresh option flags byte.
func (t *stringTable) records() ([][]byte, []sstPos) {
	var recs [][]byte
	cur := le{}.u32(t.refs).u32(uint32(len(t.strings)))
	flush := func() {
		recs = append(recs, cur)
		cur = le{}
	}

	starts := make([]sstPos, len(t.strings))
	for i, units := range t.strings {
		if maxRecordData-len(cur) < sstStringHeader+2 {
			flush()
		}
		starts[i] = sstPos{record: len(recs), offset: len(cur)}
		cur = cur.u16(uint16(len(units))).u8(flagHighByte)
		rest := units
		for {
			n := min(len(rest), (maxRecordData-len(cur))/2)
			cur = cur.utf16(rest[:n])
			rest = rest[n:]
			if len(rest) == 0 {
				break
			}
			flush()
			cur = cur.u8(flagHighByte)
		}
	}
	flush()
	return recs, starts
}

// extSSTBucket is the number of strings per EXTSST entry, grown so the
// index stays within one record.
func extSSTBucket(count int) int {
	return max(extSSTBucketSize, (count+maxExtSSTBuckets-1)/maxExtSSTBuckets)
}

func encodeXLS(wb *Workbook) ([]byte, error) {
	sst := newStringTable()
	sheets := make([][]byte, len(wb.Sheets))
	for i, sheet := range wb.Sheets {
		if err := checkSheetName(sheet.Name); err != nil {
			return nil, err
		}
		stream, err := worksheetStream(sheet, i == 0, sst)
		if err != nil {
			return nil, err
		}
		sheets[i] = stream
	}

	offsets := make([]uint32, len(sheets))
	globals := globalsStream(wb.Sheets, offsets, sst)
	pos := len(globals)
	for i, s := range sheets {
		offsets[i] = uint32(pos)
		pos += len(s)
	}
	globals = globalsStream(wb.Sheets, offsets, sst)

	stream := make([]byte, 0, pos)
	stream = append(stream, globals...)
	for _, s := range sheets {
		stream = append(stream, s...)
	}
	return writeCompoundFile(biffStreamName, stream)
}

func checkSheetName(name string) error {
	n := len(utf16.Encode([]rune(name)))
	if n == 0 || n > maxSheetNameLen {
		return fmt.Errorf("sheet name %q must be 1-%d characters", name, maxSheetNameLen)
	}
	return nil
}

func bofPayload(substream uint16) []byte {
	return le{}.u16(biffVersion).u16(substream).u16(0x0DBB).u16(0x07CC).u32(0).u32(0x00000006)
}

func globalsStream(sheets []Sheet, offsets []uint32, sst *stringTable) []byte {
	w := &biffStream{}
	w.record(recBOF, bofPayload(substreamGlobals))
	w.record(recCodepage, le{}.u16(codepageUTF16))
	w.record(recWindow1, le{}.u16(0).u16(0).u16(0x3A5C).u16(0x23BE).u16(0x0038).u16(0).u16(0).u16(1).u16(0x0258))

	// Index 4 is skipped by readers; four entries cover every reference.
	for i := 0; i < 4; i++ {
		w.record(recFont, fontPayload("Arial"))
	}
	for i := 0; i < styleXFCount; i++ {
		attr := byte(0xF4)
		if i == 0 {
			attr = 0
		}
		w.record(recXF, xfPayload(0xFFF5, attr))
	}
	w.record(recXF, xfPayload(0x0001, 0))
	w.record(recStyle, le{}.u16(0x8000).u8(0).u8(0xFF))

	for i, sheet := range sheets {
		name := utf16.Encode([]rune(sheet.Name))
		w.record(recBoundSheet, le{}.u32(offsets[i]).u8(0).u8(0).u8(byte(len(name))).u8(1).utf16(name))
	}

	if len(sst.strings) > 0 {
		recs, starts := sst.records()
		recStart := make([]int, len(recs))
		pos := w.size()
		for k, rec := range recs {
			recStart[k] = pos
			pos += 4 + len(rec)
		}
		bucket := extSSTBucket(len(sst.strings))
		ext := le{}.u16(uint16(bucket))
		for i := 0; i < len(sst.strings); i += bucket {
			at := starts[i]
			ext = ext.u32(uint32(recStart[at.record] + 4 + at.offset)).u16(uint16(4 + at.offset)).u16(0)
		}
		w.record(recSST, recs[0])
		for _, rec := range recs[1:] {
			w.record(recContinue, rec)
		}
		w.record(recExtSST, ext)
	}

	w.record(recEOF, nil)
	return w.buf
}

func fontPayload(name string) []byte {
	return le{}.
		u16(200).    // height in twips
		u16(0).      // attributes
		u16(0x7FFF). // automatic color
		u16(400).    // normal weight
		u16(0).      // escapement
		u8(0).u8(0).u8(0).u8(0).
		u8(byte(len(name))).u8(0).raw([]byte(name))
}

func xfPayload(typeProt uint16, usedAttr byte) []byte {
	return le{}.u16(0).u16(0).u16(typeProt).u8(0x20).u8(0).u8(0).u8(usedAttr).u32(0).u32(0).u16(0x20C0)
}

func worksheetStream(sheet Sheet, selected bool, sst *stringTable) ([]byte, error) {
	rows := trimRows(sheet.Rows)
	if len(rows) > maxXLSRows {
		return nil, fmt.Errorf("sheet %q has %d rows; xls allows %d", sheet.Name, len(rows), maxXLSRows)
	}
	widths := make([]int, len(rows))
	maxWidth := 0
	for r, row := range rows {
		widths[r] = len(trimRow(row))
		if widths[r] > maxXLSColumns {
			return nil, fmt.Errorf("sheet %q row %d has %d columns; xls allows %d", sheet.Name, r+1, widths[r], maxXLSColumns)
		}
		maxWidth = max(maxWidth, widths[r])
	}

	w := &biffStream{}
	w.record(recBOF, bofPayload(substreamWorksheet))
	w.record(recDimensions, le{}.u32(0).u32(uint32(len(rows))).u16(0).u16(uint16(maxWidth)).u16(0))

	for start := 0; start < len(rows); start += rowBlockSize {
		end := min(start+rowBlockSize, len(rows))
		for r := start; r < end; r++ {
			if widths[r] == 0 {
				continue
			}
			w.record(recRow, le{}.u16(uint16(r)).u16(0).u16(uint16(widths[r])).u16(0x00FF).u16(0).u16(0).u32(0x000F0100))
		}
		for r := start; r < end; r++ {
			for c, text := range rows[r][:widths[r]] {
				if text == "" {
					continue
				}
				if err := writeCell(w, r, c, text, sst); err != nil {
					return nil, fmt.Errorf("sheet %q row %d: %w", sheet.Name, r+1, err)
				}
			}
		}
	}

	grbit := uint16(0x00B6)
	if selected {
		grbit |= 0x0600
	}
	w.record(recWindow2, le{}.u16(grbit).u16(0).u16(0).u16(0x0040).u16(0).u16(0).u16(0).u32(0))
	w.record(recEOF, nil)
	return w.buf, nil
}

func writeCell(w *biffStream, row, col int, text string, sst *stringTable) error {
	units := utf16.Encode([]rune(text))
	if len(units) > MaxCellUnits {
		return fmt.Errorf("%w: column %d has %d UTF-16 units, limit %d", ErrCellTooLong, col+1, len(units), MaxCellUnits)
	}
	if len(units) <= maxLabelUnits {
		w.record(recLabel, le{}.u16(uint16(row)).u16(uint16(col)).u16(cellXF).u16(uint16(len(units))).u8(flagHighByte).utf16(units))
		return nil
	}
	idx := sst.add(text, units)
	w.record(recLabelSST, le{}.u16(uint16(row)).u16(uint16(col)).u16(cellXF).u32(idx))
	return nil
}
