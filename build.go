// Package dir2msa orchestrates the pipeline that turns a source tree
// (a host directory or the flat contents of a ZIP archive) into an
// Atari ST MSA floppy-disk image: build the tree, lay it out as a FAT12
// image, retry once with a larger geometry if it doesn't fit, then
// encode the result as MSA.
package dir2msa

import (
	"bytes"
	"errors"
	"io"

	"github.com/spf13/afero"

	"github.com/arnaud-carre/dir2msa/checkpoint"
	"github.com/arnaud-carre/dir2msa/fat12"
	"github.com/arnaud-carre/dir2msa/msa"
	"github.com/arnaud-carre/dir2msa/sourcetree"
)

// Default geometry: a 2-sided, 10-sectors-per-track Atari ST floppy with
// 81 tracks, one beyond the usual 80. The geometry retry in BuildImage
// changes only the sectors per track.
const (
	DefaultSides           = 2
	DefaultSectorsPerTrack = 10
	DefaultCylinders       = 81
	DefaultVolumeLabel     = "LEONARD"

	maxGeometryAttempts = 2
)

// BuildFromHostDirectory walks path on fs and builds an MSA image from it.
func BuildFromHostDirectory(fs afero.Fs, path string) ([]byte, error) {
	root, err := sourcetree.FromHostDirectory(fs, path)
	if err != nil {
		return nil, err
	}
	return BuildImage(root)
}

// BuildFromZip builds an MSA image from a ZIP archive's flat member list.
func BuildFromZip(r io.ReaderAt, size int64) ([]byte, error) {
	root, err := sourcetree.FromZip(r, size)
	if err != nil {
		return nil, err
	}
	return BuildImage(root)
}

// BuildImage lays root out as a FAT12 image and encodes it as MSA. If the
// tree doesn't fit the default geometry, it retries exactly once with one
// more sector per track, the way the original tool's main() does.
func BuildImage(root *sourcetree.Directory) ([]byte, error) {
	sectorsPerTrack := DefaultSectorsPerTrack

	var lastErr error
	for attempt := 0; attempt < maxGeometryAttempts; attempt++ {
		image := fat12.NewRawImage(DefaultSides, sectorsPerTrack, DefaultCylinders)
		builder := fat12.NewBuilder(image, DefaultVolumeLabel)

		err := builder.Fill(root)
		if err == nil {
			var buf bytes.Buffer
			if err := msa.Encode(&buf, image.Bytes(), DefaultSides, sectorsPerTrack, DefaultCylinders); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}

		lastErr = err
		if !errors.Is(err, fat12.ErrSpaceExhausted) {
			return nil, err
		}
		sectorsPerTrack++
	}

	return nil, checkpoint.Wrap(lastErr, fat12.ErrSpaceExhausted)
}
