package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/archetype-labs/archgen/internal/sink"
	"github.com/spf13/afero"
)

// ErrNotFound is returned by providers that know a ref does not exist.
var ErrNotFound = errors.New("revision not found")

// Provider fetches a repository revision.
type Provider interface {
	Fetch(ctx context.Context, ref Ref) (*Handle, error)
}

// FetchError reports a failed fetch. URL is empty for providers that do not
// download.
type FetchError struct {
	Ref Ref
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("fetching %s from %s: %v", e.Ref, e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Handle is a fetched revision. Paths passed to its methods are relative to
// the repository root.
type Handle struct {
	Ref    Ref
	FS     afero.Fs
	Cached bool
}

// NewHandle wraps fsys as a read-only handle for ref.
func NewHandle(ref Ref, fsys afero.Fs) *Handle {
	return &Handle{Ref: ref, FS: afero.NewReadOnlyFs(fsys)}
}

// Copy copies one file from the repository into the project.
func (h *Handle) Copy(ctx context.Context, s *sink.Sink, src, dst string) (sink.Status, error) {
	status, err := s.Copy(ctx, h.FS, src, dst)
	if err != nil {
		return "", fmt.Errorf("%s: %w", h.Ref, err)
	}
	return status, nil
}

// Directory copies a directory tree from the repository into the project.
func (h *Handle) Directory(ctx context.Context, s *sink.Sink, src, dst string) (int, error) {
	n, err := s.CopyDir(ctx, h.FS, src, dst)
	if err != nil {
		return n, fmt.Errorf("%s: %w", h.Ref, err)
	}
	return n, nil
}

// RenderTemplate renders one repository file with vars into the project.
func (h *Handle) RenderTemplate(ctx context.Context, s *sink.Sink, src, dst string, vars map[string]any) (sink.Status, error) {
	status, err := s.Render(ctx, h.FS, src, dst, vars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", h.Ref, err)
	}
	return status, nil
}

// Static serves refs from in-memory trees. Unknown refs fail with
// ErrNotFound.
type Static map[Ref]afero.Fs

// Fetch implements Provider.
func (s Static) Fetch(ctx context.Context, ref Ref) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fsys, ok := s[ref]
	if !ok {
		return nil, &FetchError{Ref: ref, Err: ErrNotFound}
	}
	return NewHandle(ref, fsys), nil
}
