package sourcetree

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/arnaud-carre/dir2msa/checkpoint"
)

// ErrZipPathResolve is returned when a ZIP member names a parent
// directory that was never announced by an earlier directory-only entry.
var ErrZipPathResolve = errors.New("zip entry's parent directory was never announced")

// zipReader is the narrow, stdio-shaped interface this package needs from
// a ZIP archive: name the current member, read it, and advance. It exists
// so tree-building logic can be tested against a fake without touching
// archive/zip at all.
type zipReader interface {
	// name returns the current member's path, or ("", false) past the end.
	name() (string, bool)
	// openMember returns a reader over the current member's uncompressed bytes.
	openMember() (io.Reader, error)
	// next advances to the next member. Returns false once exhausted.
	next() bool
}

// FromZip builds a Directory tree from the flat member list of a ZIP
// archive, using archive/zip as the concrete reader.
func FromZip(r io.ReaderAt, size int64) (*Directory, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, checkpoint.From(err)
	}
	return buildFromZipReader(newArchiveZipReader(zr))
}

func buildFromZipReader(z zipReader) (*Directory, error) {
	root := NewDirectory()

	for {
		name, ok := z.name()
		if !ok {
			break
		}

		if name != "" {
			if err := addZipMember(root, z, name); err != nil {
				return nil, err
			}
		}

		if !z.next() {
			break
		}
	}

	return root, nil
}

func addZipMember(root *Directory, z zipReader, name string) error {
	if strings.HasSuffix(name, "/") {
		_, err := ensureDirPath(root, strings.TrimSuffix(name, "/"))
		return err
	}

	dirPath, fileName := splitZipPath(name)
	parent, err := resolveDirPath(root, dirPath)
	if err != nil {
		return err
	}

	r, err := z.openMember()
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return checkpoint.From(err)
	}

	parent.Add(&Entry{Name: fileName, File: &FileData{Bytes: data, Size: int64(len(data))}})
	return nil
}

// ensureDirPath walks path component by component, creating any missing
// subdirectory along the way, and returns the directory path resolves to.
func ensureDirPath(root *Directory, path string) (*Directory, error) {
	cur := root
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		sub := cur.findSubdir(part)
		if sub == nil {
			sub = NewDirectory()
			cur.Add(&Entry{Name: part, Dir: sub})
		}
		cur = sub
	}
	return cur, nil
}

// resolveDirPath walks path component by component like ensureDirPath,
// but fails with ErrZipPathResolve instead of creating missing components.
func resolveDirPath(root *Directory, path string) (*Directory, error) {
	cur := root
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		sub := cur.findSubdir(part)
		if sub == nil {
			return nil, checkpoint.From(ErrZipPathResolve)
		}
		cur = sub
	}
	return cur, nil
}

// splitZipPath splits a flat ZIP member path into its directory path and
// final file name component.
func splitZipPath(p string) (dir, file string) {
	idx := strings.LastIndex(p, "/")
	if idx == -1 {
		return "", p
	}
	return p[:idx], p[idx+1:]
}

// archiveZipReader adapts *zip.Reader's member slice to the zipReader interface.
type archiveZipReader struct {
	files []*zip.File
	idx   int
}

func newArchiveZipReader(r *zip.Reader) *archiveZipReader {
	return &archiveZipReader{files: r.File}
}

func (a *archiveZipReader) name() (string, bool) {
	if a.idx >= len(a.files) {
		return "", false
	}
	return a.files[a.idx].Name, true
}

func (a *archiveZipReader) openMember() (io.Reader, error) {
	rc, err := a.files[a.idx].Open()
	if err != nil {
		return nil, checkpoint.From(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, checkpoint.From(err)
	}
	return bytes.NewReader(data), nil
}

func (a *archiveZipReader) next() bool {
	a.idx++
	return a.idx < len(a.files)
}
