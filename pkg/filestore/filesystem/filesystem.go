// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leseb/filechooser/pkg/filestore"
	"github.com/leseb/filechooser/pkg/provider"
)

func init() {
	filestore.Providers.Register("filesystem", func(_ context.Context, params provider.Params) (filestore.FileStore, error) {
		return New(params.Get("base_dir", filepath.Join(os.TempDir(), "filechooser")))
	})
}

// compile-time check
var _ filestore.FileStore = (*Store)(nil)

// Store implements filestore.FileStore as a flat, private directory.
//
// Layout:
//
//	<baseDir>/<stem>_<unix>.<ext>
type Store struct {
	baseDir string
	now     func() time.Time
}

// New creates a filesystem-backed Store, creating baseDir (mode 0700) if it
// does not exist.
func New(baseDir string) (*Store, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base dir %s: %w", baseDir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, fmt.Errorf("create base dir %s: %w", abs, err)
	}
	return &Store{baseDir: abs, now: time.Now}, nil
}

// Root returns the absolute store directory.
func (s *Store) Root() string {
	return s.baseDir
}

// Move relocates srcPath to <baseDir>/<name>.
//
// Without KeepSource a regular file is hard-linked into place and the
// original unlinked, falling back to an exclusive-create copy across
// devices. Anything else, a symlink in particular, is copied from what it
// resolves to, since link(2) would store the link itself. With KeepSource
// the content is always copied so the stored file never shares an inode
// with the external original.
func (s *Store) Move(ctx context.Context, srcPath, name string, opts filestore.MoveOptions) (_ *filestore.File, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dst, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Lstat(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", srcPath, err)
	}

	linked := false
	if !opts.KeepSource && info.Mode().IsRegular() {
		err := os.Link(srcPath, dst)
		switch {
		case err == nil:
			linked = true
		case errors.Is(err, fs.ErrExist):
			return nil, fmt.Errorf("%s: %w", name, filestore.ErrFileExists)
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("open source %s: %w", srcPath, err)
		}
		// Any other link failure (cross-device, unsupported) falls through to copy.
	}

	if !linked {
		if err := copyExclusive(ctx, srcPath, dst); err != nil {
			return nil, err
		}
	}
	defer func() {
		if err != nil && !errors.Is(err, filestore.ErrSourceRetained) {
			os.Remove(dst)
		}
	}()

	// Stored files age from import time, not from the original's mtime.
	now := s.now()
	_ = os.Chtimes(dst, now, now)

	file, err := s.stat(name, dst)
	if err != nil {
		return nil, err
	}

	if !opts.KeepSource {
		if err := os.Remove(srcPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return file, fmt.Errorf("discard %s: %w: %w", srcPath, filestore.ErrSourceRetained, err)
		}
	}
	return file, nil
}

// Stat returns metadata for a stored file.
func (s *Store) Stat(_ context.Context, name string) (*filestore.File, error) {
	p, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	return s.stat(name, p)
}

// List returns stored files sorted by name.
func (s *Store) List(ctx context.Context) ([]*filestore.File, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read base dir: %w", err)
	}

	files := make([]*filestore.File, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		f, err := s.stat(entry.Name(), filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue // removed underneath us
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Remove deletes a stored file.
func (s *Store) Remove(_ context.Context, name string) error {
	p, err := s.pathFor(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file %s: %w", name, filestore.ErrFileNotFound)
		}
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Purge removes files older than olderThan.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int, error) {
	files, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-olderThan)
	removed := 0
	for _, f := range files {
		if !f.ModTime.Before(cutoff) {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("purge %s: %w", f.Name, err)
		}
		removed++
	}
	return removed, nil
}

// Close is a no-op for the filesystem store.
func (s *Store) Close(_ context.Context) error {
	return nil
}

// pathFor maps a flat file name to its path, rejecting anything that
// would escape the store.
func (s *Store) pathFor(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.baseDir, name), nil
}

func (s *Store) stat(name, p string) (*filestore.File, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %s: %w", name, filestore.ErrFileNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	return &filestore.File{
		Name:    name,
		Path:    p,
		Bytes:   info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// copyExclusive copies src to a newly created dst. dst is removed again if
// anything goes wrong after it was created.
func copyExclusive(ctx context.Context, src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", filepath.Base(dst), filestore.ErrFileExists)
		}
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, &ctxReader{ctx: ctx, r: in}); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", dst, err)
	}
	return nil
}

// ctxReader stops a long copy once ctx is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
