package dir2msa

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/arnaud-carre/dir2msa/fat12"
	"github.com/arnaud-carre/dir2msa/sourcetree"
)

func TestBuildImageEmptyTree(t *testing.T) {
	root := sourcetree.NewDirectory()
	data, err := BuildImage(root)
	if err != nil {
		t.Fatalf("BuildImage() = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("BuildImage() returned no data")
	}
	// 10-byte header + 2-byte length prefix per track, at minimum.
	minSize := 10 + 2*DefaultSides*DefaultCylinders
	if len(data) < minSize {
		t.Fatalf("image size = %d, want at least %d", len(data), minSize)
	}
}

func TestBuildFromHostDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/src", 0755); err != nil {
		t.Fatalf("MkdirAll() = %v", err)
	}
	if err := afero.WriteFile(fs, "/src/hello.txt", []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	data, err := BuildFromHostDirectory(fs, "/src")
	if err != nil {
		t.Fatalf("BuildFromHostDirectory() = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("BuildFromHostDirectory() returned no data")
	}
}

func TestBuildImageRetriesGeometryOnSpaceExhausted(t *testing.T) {
	defaultImage := fat12.NewRawImage(DefaultSides, DefaultSectorsPerTrack, DefaultCylinders)
	freeAtDefault := fat12.NewBuilder(defaultImage, DefaultVolumeLabel).FreeClusters()

	// One cluster more than the default geometry can hold, but well within
	// what DefaultSectorsPerTrack+1 provides: BuildImage should fail to fit
	// at the default geometry and transparently retry at the larger one.
	root := sourcetree.NewDirectory()
	huge := make([]byte, (freeAtDefault+1)*fat12.ClusterSize)
	root.Add(&sourcetree.Entry{Name: "big.dat", File: &sourcetree.FileData{Bytes: huge, Size: int64(len(huge))}})

	data, err := BuildImage(root)
	if err != nil {
		t.Fatalf("BuildImage() = %v, want nil (geometry retry should succeed)", err)
	}
	if len(data) == 0 {
		t.Fatal("BuildImage() returned no data")
	}
}
