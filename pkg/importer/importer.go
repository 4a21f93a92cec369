// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package importer copies externally owned files into owned storage.
//
// Each import holds a Grant on the external file while it is relocated,
// gives the copy a unique name and detects its media type. Failures never
// abort a batch: Import always returns a descriptor, and the error travels
// next to it.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/leseb/filechooser/pkg/core/schema"
	"github.com/leseb/filechooser/pkg/filestore"
	"github.com/leseb/filechooser/pkg/observability/logging"
	"github.com/leseb/filechooser/pkg/uttype"
)

// Import failure stages
const (
	OpCoordinate = "coordinate"
	OpRelocate   = "relocate"
)

// ImportError reports why one resource could not be imported.
type ImportError struct {
	Op   string // OpCoordinate or OpRelocate
	Path string // Original location
	Err  error
}

func (e *ImportError) Error() string {
	if e.Op == OpCoordinate {
		return fmt.Sprintf("Failed to access file %s: %v", filepath.Base(e.Path), e.Err)
	}
	return fmt.Sprintf("Failed to move file %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Options configures an Importer.
type Options struct {
	Store       filestore.FileStore
	Types       *uttype.Registry // builtin registry when nil
	Coordinator Coordinator      // FileCoordinator with defaults when nil
	KeepSource  bool             // copy instead of move
	Logger      *slog.Logger
	Now         func() time.Time
}

// Importer relocates external resources into a FileStore.
type Importer struct {
	store       filestore.FileStore
	types       *uttype.Registry
	coordinator Coordinator
	keepSource  bool
	logger      *slog.Logger
	now         func() time.Time
}

// New creates an Importer. opts.Store is required.
func New(opts Options) *Importer {
	im := &Importer{
		store:       opts.Store,
		types:       opts.Types,
		coordinator: opts.Coordinator,
		keepSource:  opts.KeepSource,
		logger:      logging.OrDefault(opts.Logger),
		now:         opts.Now,
	}
	if im.types == nil {
		im.types = uttype.Builtin()
	}
	if im.coordinator == nil {
		im.coordinator = &FileCoordinator{}
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

// Import relocates res into owned storage.
//
// The returned descriptor is always usable for reporting. When err is
// non-nil it describes the file at its original location.
func (im *Importer) Import(ctx context.Context, res schema.Resource) (schema.FileDescriptor, error) {
	logger := im.logger.With("path", res.Path)

	grant, err := im.coordinator.Acquire(ctx, res.Path)
	if err != nil {
		logger.Warn("File access not granted", "error", err)
		return im.describe(res.Name(), res.URI()), &ImportError{Op: OpCoordinate, Path: res.Path, Err: err}
	}
	defer func() {
		if rerr := grant.Release(); rerr != nil {
			logger.Warn("Failed to release file grant", "error", rerr)
		}
	}()

	file, err := im.relocate(ctx, grant.Path(), logger)
	if err != nil {
		logger.Warn("File relocation failed", "error", err)
		return im.describe(res.Name(), res.URI()), &ImportError{Op: OpRelocate, Path: res.Path, Err: err}
	}

	desc := im.describe(file.Name, schema.FileURI(file.Path))
	logger.Debug("File imported", "name", desc.Name, "media_type", desc.MediaType, "bytes", file.Bytes)
	return desc, nil
}

// relocate moves src into the store under the first free unique name.
func (im *Importer) relocate(ctx context.Context, src string, logger *slog.Logger) (*filestore.File, error) {
	original := filepath.Base(src)
	at := im.now()
	opts := filestore.MoveOptions{KeepSource: im.keepSource}

	for attempt := 0; attempt <= maxNameAttempts; attempt++ {
		name := UniqueName(original, at, attempt)
		if attempt == maxNameAttempts {
			name = randomName(original, at)
		}

		file, err := im.store.Move(ctx, src, name, opts)
		switch {
		case err == nil:
			return file, nil
		case errors.Is(err, filestore.ErrFileExists):
			logger.Debug("Stored name taken, retrying", "name", name)
			continue
		case errors.Is(err, filestore.ErrSourceRetained) && file != nil:
			logger.Warn("Imported copy kept but original not discarded", "error", err)
			return file, nil
		default:
			return nil, err
		}
	}
	return nil, fmt.Errorf("no free name for %s: %w", original, filestore.ErrFileExists)
}

func (im *Importer) describe(name, uri string) schema.FileDescriptor {
	return schema.FileDescriptor{
		MediaType: DetectMediaType(im.types, name),
		Name:      name,
		URI:       uri,
	}
}
