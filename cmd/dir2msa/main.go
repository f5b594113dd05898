// Command dir2msa builds an Atari ST MSA floppy-disk image from a host
// directory tree or a ZIP archive's contents.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/arnaud-carre/dir2msa"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stdout, "Usage: dir2msa <directory-or-zip>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		color.New(color.FgRed).Fprintln(os.Stdout, "ERROR: "+err.Error())
		os.Exit(1)
	}
}

func run(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%q is not a valid path", path)
	}

	var (
		imageName string
		data      []byte
	)

	if info.IsDir() {
		imageName = path + ".msa"
		data, err = dir2msa.BuildFromHostDirectory(afero.NewOsFs(), path)
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		var stat os.FileInfo
		stat, err = f.Stat()
		if err != nil {
			return err
		}

		ext := filepath.Ext(path)
		imageName = strings.TrimSuffix(path, ext) + ".msa"
		data, err = dir2msa.BuildFromZip(f, stat.Size())
	}

	if err != nil {
		return err
	}

	return os.WriteFile(imageName, data, 0644)
}
