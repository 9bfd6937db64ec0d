package workbook

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Compound file constants for a version 3 container with 512-byte sectors.
const (
	cfbSectorSize    = 512
	cfbMiniCutoff    = 4096
	cfbHeaderDIFAT   = 109
	cfbDirEntrySize  = 128
	cfbEntriesPerFAT = cfbSectorSize / 4

	secFree       uint32 = 0xFFFFFFFF
	secEndOfChain uint32 = 0xFFFFFFFE
	secFAT        uint32 = 0xFFFFFFFD
	noStream      uint32 = 0xFFFFFFFF

	entryStream = 2
	entryRoot   = 5
	colorBlack  = 1
)

// writeCompoundFile wraps a single stream in a compound file container.
//
// Sector layout: the stream, one directory sector, then the FAT. The stream
// is padded to the mini-stream cutoff so it always lives in regular sectors
// and no mini FAT is needed.
func writeCompoundFile(name string, stream []byte) ([]byte, error) {
	size := max(len(stream), cfbMiniCutoff)
	streamSectors := (size + cfbSectorSize - 1) / cfbSectorSize
	fatSectors := 1
	for fatSectors*cfbEntriesPerFAT < streamSectors+1+fatSectors {
		fatSectors++
	}
	if fatSectors > cfbHeaderDIFAT {
		return nil, fmt.Errorf("workbook stream of %d bytes exceeds container limit", len(stream))
	}

	dirSector := streamSectors
	firstFAT := dirSector + 1
	total := firstFAT + fatSectors
	out := make([]byte, cfbSectorSize*(total+1))

	writeCFBHeader(out[:cfbSectorSize], fatSectors, dirSector, firstFAT)
	copy(out[sectorOffset(0):], stream)

	dir := out[sectorOffset(dirSector) : sectorOffset(dirSector)+cfbSectorSize]
	writeDirEntry(dir[0:], "Root Entry", entryRoot, 1, secEndOfChain, 0)
	writeDirEntry(dir[cfbDirEntrySize:], name, entryStream, noStream, 0, uint32(size))
	for i := 2; i < cfbSectorSize/cfbDirEntrySize; i++ {
		writeEmptyDirEntry(dir[i*cfbDirEntrySize:])
	}

	fat := make([]uint32, fatSectors*cfbEntriesPerFAT)
	for i := range fat {
		fat[i] = secFree
	}
	for i := 0; i < streamSectors-1; i++ {
		fat[i] = uint32(i + 1)
	}
	fat[streamSectors-1] = secEndOfChain
	fat[dirSector] = secEndOfChain
	for i := 0; i < fatSectors; i++ {
		fat[firstFAT+i] = secFAT
	}
	fatBytes := out[sectorOffset(firstFAT):]
	for i, v := range fat {
		binary.LittleEndian.PutUint32(fatBytes[i*4:], v)
	}
	return out, nil
}

func sectorOffset(sector int) int {
	return cfbSectorSize * (sector + 1)
}

func writeCFBHeader(h []byte, fatSectors, dirSector, firstFAT int) {
	copy(h[0:8], compoundFileMagic)
	binary.LittleEndian.PutUint16(h[24:], 0x003E) // minor version
	binary.LittleEndian.PutUint16(h[26:], 0x0003) // major version
	binary.LittleEndian.PutUint16(h[28:], 0xFFFE) // byte order
	binary.LittleEndian.PutUint16(h[30:], 9)      // sector shift
	binary.LittleEndian.PutUint16(h[32:], 6)      // mini sector shift
	binary.LittleEndian.PutUint32(h[44:], uint32(fatSectors))
	binary.LittleEndian.PutUint32(h[48:], uint32(dirSector))
	binary.LittleEndian.PutUint32(h[56:], cfbMiniCutoff)
	binary.LittleEndian.PutUint32(h[60:], secEndOfChain) // mini FAT start
	binary.LittleEndian.PutUint32(h[68:], secEndOfChain) // DIFAT start
	for i := 0; i < cfbHeaderDIFAT; i++ {
		v := secFree
		if i < fatSectors {
			v = uint32(firstFAT + i)
		}
		binary.LittleEndian.PutUint32(h[76+i*4:], v)
	}
}

func writeDirEntry(e []byte, name string, kind byte, child, start, size uint32) {
	units := utf16.Encode([]rune(name))
	for i, u := range units {
		binary.LittleEndian.PutUint16(e[i*2:], u)
	}
	binary.LittleEndian.PutUint16(e[64:], uint16((len(units)+1)*2))
	e[66] = kind
	e[67] = colorBlack
	binary.LittleEndian.PutUint32(e[68:], noStream)
	binary.LittleEndian.PutUint32(e[72:], noStream)
	binary.LittleEndian.PutUint32(e[76:], child)
	binary.LittleEndian.PutUint32(e[116:], start)
	binary.LittleEndian.PutUint32(e[120:], size)
}

func writeEmptyDirEntry(e []byte) {
	binary.LittleEndian.PutUint32(e[68:], noStream)
	binary.LittleEndian.PutUint32(e[72:], noStream)
	binary.LittleEndian.PutUint32(e[76:], noStream)
}
