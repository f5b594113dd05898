package fat12

import (
	"errors"

	"github.com/arnaud-carre/dir2msa/checkpoint"
	"github.com/arnaud-carre/dir2msa/sourcetree"
)

// ErrRootOverflow is returned when a source tree's root has more entries
// than the root directory region can hold (after reserving one slot for
// the volume label).
var ErrRootOverflow = errors.New("root directory entry count exceeds capacity")

// ErrSpaceExhausted is returned when no more data clusters are free to
// satisfy a file or subdirectory's cluster chain.
var ErrSpaceExhausted = errors.New("cluster allocation would exceed free space")

// Builder lays a source tree out into a RawImage's root directory, FAT
// tables and data area. A Builder is good for exactly one Fill call.
type Builder struct {
	Image       *RawImage
	VolumeLabel string

	maxFATEntry  int
	nextCluster  int
	freeClusters int
	fat          []int32
}

// NewBuilder prepares a Builder over image. volumeLabel becomes the
// root directory's volume-label entry.
func NewBuilder(image *RawImage, volumeLabel string) *Builder {
	maxFATEntry := image.DataSectors() / ClusterSectors
	return &Builder{
		Image:        image,
		VolumeLabel:  volumeLabel,
		maxFATEntry:  maxFATEntry,
		nextCluster:  2,
		freeClusters: maxFATEntry,
		// Cluster numbers in use range from 2 up to maxFATEntry+1
		// (maxFATEntry total clusters, handed out starting at 2), so the
		// table needs a slot for every number through maxFATEntry+1.
		fat: make([]int32, maxFATEntry+2),
	}
}

// FreeClusters returns the number of data clusters not yet allocated.
func (b *Builder) FreeClusters() int {
	return b.freeClusters
}

// Fill lays root out as the image's root directory, recursing into every
// subdirectory, and flushes both FAT copies once every cluster chain has
// been allocated. It returns ErrRootOverflow if root has too many direct
// entries, or ErrSpaceExhausted if the tree doesn't fit in the image's
// data area.
func (b *Builder) Fill(root *sourcetree.Directory) error {
	if root.Len()+1 > MaxRootEntries {
		return checkpoint.From(ErrRootOverflow)
	}
	if err := b.buildDirectory(b.Image.RootDirectoryBytes(), root, 0, 0); err != nil {
		return err
	}
	b.flushFATs()
	return nil
}

// buildDirectory writes one directory's records into slot (the region
// reserved for it: the whole root directory, or a subdirectory's cluster
// chain), recursing into every subdirectory entry it allocates space for.
// thisCluster is 0 for the root; parentCluster feeds the ".." entry.
func (b *Builder) buildDirectory(slot []byte, dir *sourcetree.Directory, thisCluster, parentCluster int) error {
	for i := range slot {
		slot[i] = 0
	}

	var offset int
	if thisCluster == 0 {
		writeVolumeLabelRecord(slot[0:dirRecordSize], b.VolumeLabel)
		offset = dirRecordSize
	} else {
		writeDotRecord(slot[0:dirRecordSize], thisCluster)
		writeDotDotRecord(slot[dirRecordSize:2*dirRecordSize], parentCluster)
		offset = 2 * dirRecordSize
	}

	for _, entry := range dir.Entries() {
		record := slot[offset : offset+dirRecordSize]
		offset += dirRecordSize

		if entry.IsDir() {
			if err := b.writeSubdirectory(record, entry, thisCluster); err != nil {
				return err
			}
			continue
		}
		if err := b.writeFile(record, entry); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writeSubdirectory(record []byte, entry *sourcetree.Entry, parentCluster int) error {
	sub := entry.Dir
	required := clustersFor((sub.Len() + 2) * dirRecordSize)
	if required > b.freeClusters {
		return checkpoint.From(ErrSpaceExhausted)
	}

	start := b.reserveChain(required)
	writeDirRecord(record, entry.Name, attrDirectory, start, 0, entry.ModTime)

	region := b.Image.ClusterRegion(start, required)
	return b.buildDirectory(region, sub, start, parentCluster)
}

func (b *Builder) writeFile(record []byte, entry *sourcetree.Entry) error {
	file := entry.File
	required := clustersFor(int(file.Size))
	if required == 0 {
		writeDirRecord(record, entry.Name, 0, 0, 0, entry.ModTime)
		return nil
	}
	if required > b.freeClusters {
		return checkpoint.From(ErrSpaceExhausted)
	}

	start := b.reserveChain(required)
	copy(b.Image.ClusterRegion(start, required), file.Bytes)
	writeDirRecord(record, entry.Name, 0, start, uint32(file.Size), entry.ModTime)
	return nil
}

func clustersFor(byteLen int) int {
	return (byteLen + ClusterSize - 1) / ClusterSize
}

// reserveChain allocates n contiguous clusters, chains them in the FAT
// table and returns the chain's first cluster number.
func (b *Builder) reserveChain(n int) int {
	start := b.nextCluster
	for i := 0; i < n-1; i++ {
		b.fat[start+i] = int32(start + i + 1)
	}
	b.fat[start+n-1] = -1

	b.nextCluster += n
	b.freeClusters -= n
	return start
}

// flushFATs packs the FAT entry table into both 12-bit-per-entry FAT
// copies, byte for byte as the original tool's FAT_Flush: the reserved
// media descriptor in the first three bytes, then each pair of cluster
// entries squeezed into three bytes.
func (b *Builder) flushFATs() {
	packed := make([]byte, FATSectorsEach*SectorSize)
	packed[0] = 0xF7
	packed[1] = 0xFF
	packed[2] = 0xFF

	// Cluster numbers run from 2 through maxFATEntry+1 inclusive
	// (maxFATEntry clusters total); the highest one needs its terminator
	// written out too.
	highestCluster := b.maxFATEntry + 1

	p := 3
	for i := 2; i <= highestCluster; i += 2 {
		a := uint32(b.fat[i]) & 0xFFF
		var next uint32
		if i+1 <= highestCluster {
			next = uint32(b.fat[i+1]) & 0xFFF
		}
		packed[p] = byte(a)
		packed[p+1] = byte(a>>8) | byte((next&0xF)<<4)
		packed[p+2] = byte(next >> 4)
		p += 3
	}

	copy(b.Image.FATRegion(0), packed)
	copy(b.Image.FATRegion(1), packed)
}
