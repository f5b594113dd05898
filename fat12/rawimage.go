// Package fat12 builds a FAT12 floppy-disk image in memory: the boot
// sector, both FAT copies, the root directory, and the data area holding
// file and subdirectory clusters.
package fat12

import "encoding/binary"

// Geometry and layout constants for the Atari ST 720K/740K/800K disk
// formats this package targets. The reserved region (boot sector + two
// FAT copies + root directory) is fixed regardless of track geometry.
const (
	SectorSize      = 512
	ClusterSectors  = 2
	ClusterSize     = SectorSize * ClusterSectors
	BootSectors     = 1
	FATSectorsEach  = 5
	NumFATs         = 2
	RootDirSectors  = 7
	MaxRootEntries  = (RootDirSectors * SectorSize) / dirRecordSize
	reservedSectors = BootSectors + FATSectorsEach*NumFATs + RootDirSectors
	dataAreaOffset  = reservedSectors * SectorSize
)

// RawImage is the raw byte image of the disk: sector-addressable storage
// with no knowledge of what's written into it beyond the boot sector.
type RawImage struct {
	Sides           int
	SectorsPerTrack int
	Cylinders       int

	buf []byte
}

// NewRawImage allocates a disk image for the given geometry, fills every
// byte with 0xE5 (matching the original tool's unformatted-disk filler),
// and writes the boot sector.
func NewRawImage(sides, sectorsPerTrack, cylinders int) *RawImage {
	img := &RawImage{
		Sides:           sides,
		SectorsPerTrack: sectorsPerTrack,
		Cylinders:       cylinders,
		buf:             make([]byte, sides*sectorsPerTrack*cylinders*SectorSize),
	}
	for i := range img.buf {
		img.buf[i] = 0xE5
	}
	img.writeBootSector()
	return img
}

func (img *RawImage) writeBootSector() {
	img.WriteU16LE(0x00, 0x00E9)
	img.WriteU16LE(0x0B, SectorSize)
	img.WriteU8(0x0D, ClusterSectors)
	img.WriteU16LE(0x0E, BootSectors)
	img.WriteU8(0x10, NumFATs)
	img.WriteU16LE(0x11, MaxRootEntries)
	img.WriteU16LE(0x13, uint16(img.TotalSectors()))
	img.WriteU8(0x15, 0xF7)
	img.WriteU16LE(0x16, FATSectorsEach)
	img.WriteU16LE(0x18, uint16(img.SectorsPerTrack))
	img.WriteU16LE(0x1A, uint16(img.Sides))
	img.WriteU16LE(0x1C, 0)
	for i := 0x1E; i < 0x1E+30; i++ {
		img.buf[i] = 0x4E
	}
}

// WriteU8 writes a single byte at the given absolute offset.
func (img *RawImage) WriteU8(offset int, v byte) {
	img.buf[offset] = v
}

// WriteU16LE writes a little-endian 16-bit value at the given absolute offset.
func (img *RawImage) WriteU16LE(offset int, v uint16) {
	binary.LittleEndian.PutUint16(img.buf[offset:offset+2], v)
}

// RootDirectoryBytes returns a mutable view over the whole root directory
// region (all 7 sectors), regardless of how many entries are actually used.
func (img *RawImage) RootDirectoryBytes() []byte {
	offset := (BootSectors + FATSectorsEach*NumFATs) * SectorSize
	return img.buf[offset : offset+RootDirSectors*SectorSize]
}

// FATRegion returns a mutable view over one of the two FAT copies (index 0 or 1).
func (img *RawImage) FATRegion(copyIndex int) []byte {
	offset := (BootSectors + copyIndex*FATSectorsEach) * SectorSize
	return img.buf[offset : offset+FATSectorsEach*SectorSize]
}

// ClusterRegion returns a mutable view spanning count contiguous clusters
// starting at cluster. Clusters below 2 are reserved; passing one panics,
// since it always indicates a bookkeeping error in the caller.
func (img *RawImage) ClusterRegion(cluster, count int) []byte {
	if cluster < 2 {
		panic("fat12: cluster index below 2 is reserved")
	}
	offset := dataAreaOffset + (cluster-2)*ClusterSize
	return img.buf[offset : offset+count*ClusterSize]
}

// TotalSectors returns the geometry's total sector count.
func (img *RawImage) TotalSectors() int {
	return img.Sides * img.SectorsPerTrack * img.Cylinders
}

// DataSectors returns the sector count left for the data area once the
// boot sector, both FATs and the root directory are accounted for.
func (img *RawImage) DataSectors() int {
	return img.TotalSectors() - reservedSectors
}

// Bytes returns the whole disk image.
func (img *RawImage) Bytes() []byte {
	return img.buf
}
