// Package templates embeds the project template set: the files rendered or
// copied into every generated site.
package templates

import (
	"embed"
	"io/fs"

	"github.com/spf13/afero"
)

//go:embed all:files
var files embed.FS

// FS returns the template set as a read-only filesystem rooted at the
// template directory, so "Gemfile" and "conditional/template-h5bp/humans.txt"
// are valid paths.
func FS() afero.Fs {
	sub, err := fs.Sub(files, "files")
	if err != nil {
		panic(err)
	}
	return afero.FromIOFS{FS: sub}
}

// Paths lists every file in the template set in lexical order.
func Paths() ([]string, error) {
	var paths []string
	err := fs.WalkDir(files, "files", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path[len("files/"):])
		}
		return nil
	})
	return paths, err
}
