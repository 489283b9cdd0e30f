package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/archetype-labs/archgen/internal/conflict"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// Status describes what an operation did to its destination.
type Status string

const (
	StatusCreate    Status = "create"
	StatusIdentical Status = "identical"
	StatusSkip      Status = "skip"
	StatusForce     Status = "force"
	StatusExists    Status = "exists"
)

var statusColors = map[Status]*color.Color{
	StatusCreate:    color.New(color.FgGreen),
	StatusIdentical: color.New(color.FgCyan),
	StatusSkip:      color.New(color.FgYellow),
	StatusForce:     color.New(color.FgYellow, color.Bold),
}

var noteColor = color.New(color.FgMagenta)

// Sink is the destination filesystem for a generation run.
type Sink struct {
	fs       afero.Fs
	resolver conflict.Resolver
	out      io.Writer
}

// Option configures a Sink.
type Option func(*Sink)

// WithResolver sets the conflict hook. The default overwrites.
func WithResolver(r conflict.Resolver) Option {
	return func(s *Sink) { s.resolver = r }
}

// WithOutput sets where per-file status lines are printed. The default
// discards them.
func WithOutput(w io.Writer) Option {
	return func(s *Sink) { s.out = w }
}

// New returns a Sink writing to fsys. Paths given to its methods are
// relative to the root of fsys.
func New(fsys afero.Fs, opts ...Option) *Sink {
	s := &Sink{
		fs:       fsys,
		resolver: conflict.Fixed(conflict.Overwrite),
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FS returns the destination filesystem.
func (s *Sink) FS() afero.Fs { return s.fs }

// MakeDir creates path and any missing parents. An existing directory is
// not an error.
func (s *Sink) MakeDir(path string) (Status, error) {
	path, err := cleanDest(path)
	if err != nil {
		return "", err
	}

	info, err := s.fs.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("creating directory %s: a file with that name exists", path)
		}
		return StatusExists, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	if err := s.fs.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", path, err)
	}
	s.report(StatusCreate, path+"/")
	return StatusCreate, nil
}

// Write stores content at dst.
func (s *Sink) Write(ctx context.Context, dst string, content []byte) (Status, error) {
	return s.put(ctx, dst, content, 0644)
}

// Copy copies srcPath from src to dst without transformation.
func (s *Sink) Copy(ctx context.Context, src afero.Fs, srcPath, dst string) (Status, error) {
	data, mode, err := readSource(src, srcPath)
	if err != nil {
		return "", err
	}
	return s.put(ctx, dst, data, mode)
}

// Render executes srcPath from src as a template with vars and writes the
// result to dst.
func (s *Sink) Render(ctx context.Context, src afero.Fs, srcPath, dst string, vars map[string]any) (Status, error) {
	data, mode, err := readSource(src, srcPath)
	if err != nil {
		return "", err
	}
	out, err := Render(srcPath, data, vars)
	if err != nil {
		return "", err
	}
	return s.put(ctx, dst, out, mode)
}

// CopyDir copies every regular file under srcDir in src to the matching
// path under dst. Each file goes through the conflict hook on its own.
func (s *Sink) CopyDir(ctx context.Context, src afero.Fs, srcDir, dst string) (int, error) {
	srcDir = filepath.Clean(srcDir)
	info, err := src.Stat(srcDir)
	if err != nil {
		return 0, fmt.Errorf("reading source directory %s: %w", srcDir, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("source %s is not a directory", srcDir)
	}

	written := 0
	err = afero.Walk(src, srcDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			_, err := s.MakeDir(target)
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		status, err := s.Copy(ctx, src, path, target)
		if err != nil {
			return err
		}
		if status == StatusCreate || status == StatusForce {
			written++
		}
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("copying directory %s to %s: %w", srcDir, dst, err)
	}
	return written, nil
}

// Remove deletes path and everything below it. A missing path is not an error.
func (s *Sink) Remove(path string) error {
	path, err := cleanDest(path)
	if err != nil {
		return err
	}
	if err := s.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (s *Sink) put(ctx context.Context, dst string, data []byte, mode os.FileMode) (Status, error) {
	dst, err := cleanDest(dst)
	if err != nil {
		return "", err
	}

	status := StatusCreate
	info, err := s.fs.Stat(dst)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", fmt.Errorf("writing %s: destination is a directory", dst)
		}
		existing, err := afero.ReadFile(s.fs, dst)
		if err != nil {
			return "", fmt.Errorf("reading existing %s: %w", dst, err)
		}
		if bytes.Equal(existing, data) {
			s.report(StatusIdentical, dst)
			return StatusIdentical, nil
		}

		action, err := s.resolver.Resolve(ctx, dst, existing, data)
		if err != nil {
			var ce *conflict.Error
			if !errors.As(err, &ce) {
				err = &conflict.Error{Path: dst, Err: err}
			}
			return "", err
		}
		if action == conflict.Skip {
			s.report(StatusSkip, dst)
			return StatusSkip, nil
		}
		status = StatusForce
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", fmt.Errorf("checking %s: %w", dst, err)
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, dst, data, mode); err != nil {
		return "", fmt.Errorf("writing %s: %w", dst, err)
	}

	log.Debug("wrote file", "path", dst, "bytes", len(data), "status", status)
	s.report(status, dst)
	return status, nil
}

// Note prints a status line for work that is not a file write, such as a
// fetch or an installer run.
func (s *Sink) Note(label, msg string) {
	fmt.Fprintf(s.out, "%s %s\n", noteColor.Sprintf("%9s", label), msg)
}

func (s *Sink) report(status Status, path string) {
	label := fmt.Sprintf("%9s", status)
	if c, ok := statusColors[status]; ok {
		label = c.Sprint(label)
	}
	fmt.Fprintf(s.out, "%s %s\n", label, filepath.ToSlash(path))
}

// cleanDest rejects absolute paths and paths escaping the project root.
func cleanDest(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if !filepath.IsLocal(cleaned) {
		return "", fmt.Errorf("destination %q is outside the project", path)
	}
	return cleaned, nil
}

// readSource reads a source file and picks the mode for its copy: 0755 for
// executables, 0644 for everything else.
func readSource(src afero.Fs, path string) ([]byte, os.FileMode, error) {
	data, err := afero.ReadFile(src, path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading source %s: %w", path, err)
	}
	mode := os.FileMode(0644)
	if info, err := src.Stat(path); err == nil && info.Mode().Perm()&0111 != 0 {
		mode = 0755
	}
	return data, mode, nil
}
