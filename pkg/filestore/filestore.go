// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"context"
	"errors"
	"time"

	"github.com/leseb/filechooser/pkg/provider"
)

var (
	// ErrFileNotFound is returned when a file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileExists is returned when a destination name is already taken.
	ErrFileExists = errors.New("file already exists")
	// ErrSourceRetained is returned together with the stored file when Move
	// copied the content but could not discard the original.
	ErrSourceRetained = errors.New("source retained")
)

// Providers is the registry of owned storage backends.
// Import implementation packages with blank imports to register them:
//
//	import _ "github.com/leseb/filechooser/pkg/filestore/filesystem"
var Providers = provider.NewRegistry[FileStore]("file_store")

// File describes one file held in owned storage.
type File struct {
	Name    string
	Path    string // Absolute path inside the store root
	Bytes   int64
	ModTime time.Time
}

// MoveOptions tunes Move.
type MoveOptions struct {
	// KeepSource leaves the original in place instead of discarding it.
	KeepSource bool
}

// FileStore is application-private storage that imported files are
// relocated into. Contents are volatile: the OS (or Purge) may remove them.
type FileStore interface {
	// Root is the directory every stored file lives under.
	Root() string
	// Move relocates srcPath into the store under name. It never
	// overwrites: a taken name yields ErrFileExists.
	Move(ctx context.Context, srcPath, name string, opts MoveOptions) (*File, error)
	Stat(ctx context.Context, name string) (*File, error)
	List(ctx context.Context) ([]*File, error)
	Remove(ctx context.Context, name string) error
	// Purge removes files last modified more than olderThan ago and
	// returns how many were removed.
	Purge(ctx context.Context, olderThan time.Duration) (int, error)
	Close(ctx context.Context) error
}
