package sourcetree

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/arnaud-carre/dir2msa/checkpoint"
)

// ErrHostRead is returned when a host file's contents can't be read after
// its directory entry was already listed.
var ErrHostRead = errors.New("could not read host file")

// FromHostDirectory walks root on fs and builds a Directory tree from it.
// Entries whose name starts with "." are skipped, the POSIX approximation
// of the original tool's hidden/system attribute check.
func FromHostDirectory(fs afero.Fs, root string) (*Directory, error) {
	dir := NewDirectory()
	if err := scanHostDirectory(fs, root, dir); err != nil {
		return nil, err
	}
	return dir, nil
}

func scanHostDirectory(fs afero.Fs, path string, dir *Directory) error {
	infos, err := afero.ReadDir(fs, path)
	if err != nil {
		return checkpoint.From(err)
	}

	for _, info := range infos {
		if strings.HasPrefix(info.Name(), ".") {
			continue
		}

		full := filepath.Join(path, info.Name())
		if info.IsDir() {
			sub := NewDirectory()
			dir.Add(&Entry{Name: info.Name(), ModTime: info.ModTime(), Dir: sub})
			if err := scanHostDirectory(fs, full, sub); err != nil {
				return err
			}
			continue
		}

		data, err := afero.ReadFile(fs, full)
		if err != nil {
			return checkpoint.Wrap(err, ErrHostRead)
		}
		dir.Add(&Entry{
			Name:    info.Name(),
			ModTime: info.ModTime(),
			File:    &FileData{Bytes: data, Size: int64(len(data))},
		})
	}
	return nil
}
