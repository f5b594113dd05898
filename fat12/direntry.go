package fat12

import (
	"encoding/binary"
	"strings"
	"time"
)

const (
	dirRecordSize  = 32
	attrDirectory  = 0x10
	attrVolumeID   = 0x08
)

// writeVolumeLabelRecord writes the root directory's volume-label entry,
// the way the original tool reserves the root's first slot for it.
func writeVolumeLabelRecord(dst []byte, label string) {
	writeShortNameRaw(dst[0:11], label, "")
	dst[11] = attrVolumeID
}

// writeDotRecord writes a subdirectory's "." entry, pointing at its own
// first cluster.
func writeDotRecord(dst []byte, cluster int) {
	writeShortNameRaw(dst[0:11], ".", "")
	dst[11] = attrDirectory
	binary.LittleEndian.PutUint16(dst[26:28], uint16(cluster))
}

// writeDotDotRecord writes a subdirectory's ".." entry, pointing at its
// parent's first cluster (0 if the parent is the root).
func writeDotDotRecord(dst []byte, parentCluster int) {
	writeShortNameRaw(dst[0:11], "..", "")
	dst[11] = attrDirectory
	binary.LittleEndian.PutUint16(dst[26:28], uint16(parentCluster))
}

// writeDirRecord writes one 32-byte directory record for a file or
// subdirectory entry: short name, attribute byte, modification
// timestamp, first cluster and file size.
func writeDirRecord(dst []byte, name string, attr byte, firstCluster int, size uint32, modTime time.Time) {
	stem, ext := splitShortName(name)
	stem = stem[:shortNameStemLen(stem)]
	writeShortNameRaw(dst[0:11], stem, ext)
	dst[11] = attr
	binary.LittleEndian.PutUint16(dst[22:24], EncodeTime(modTime))
	binary.LittleEndian.PutUint16(dst[24:26], EncodeDate(modTime))
	binary.LittleEndian.PutUint16(dst[26:28], uint16(firstCluster))
	binary.LittleEndian.PutUint32(dst[28:32], size)
}

// splitShortName splits a display name at its last '.' into stem and
// extension, mirroring the original tool's LFN_Create.
func splitShortName(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// shortNameStemLen returns how many leading bytes of stem belong in the
// 8-byte short-name field: at most 8, but cut short the instant an
// embedded '.' or NUL turns up, the way the original tool's LFNStrCpy
// stops copying mid-field on a dot from a multi-dot filename (stem is
// already split at the *last* dot, so "archive.tar" still carries one).
func shortNameStemLen(stem string) int {
	n := min(len(stem), 8)
	for i := 0; i < n; i++ {
		if stem[i] == '.' || stem[i] == 0 {
			return i
		}
	}
	return n
}

// writeShortNameRaw uppercases and copies up to 8 stem characters and 3
// extension characters into an 11-byte 8.3 directory-entry name field,
// padding with spaces. Names that don't fit are silently truncated; no
// collision detection or disambiguation suffix is attempted.
func writeShortNameRaw(dst []byte, stem, ext string) {
	for i := range dst {
		dst[i] = ' '
	}
	stem = strings.ToUpper(stem)
	ext = strings.ToUpper(ext)
	copy(dst[0:8], stem[:min(len(stem), 8)])
	copy(dst[8:11], ext[:min(len(ext), 3)])
}
