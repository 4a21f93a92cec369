// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrLockTimeout is returned when an exclusive lock could not be taken in time.
var ErrLockTimeout = errors.New("timed out waiting for file lock")

const (
	defaultLockTimeout  = 5 * time.Second
	defaultPollInterval = 25 * time.Millisecond
)

// Grant is scoped access to an external file. Release must be called on
// every path; calling it more than once is harmless.
type Grant interface {
	Path() string
	Release() error
}

// Coordinator hands out grants on external files.
type Coordinator interface {
	Acquire(ctx context.Context, path string) (Grant, error)
}

// FileCoordinator grants access by holding an exclusive advisory lock on
// the file for the duration of the grant. Writers that honor the same
// lock are kept out while the file is copied.
type FileCoordinator struct {
	LockTimeout  time.Duration
	PollInterval time.Duration
}

// Acquire opens path and waits for an exclusive lock on it.
func (c *FileCoordinator) Acquire(ctx context.Context, path string) (Grant, error) {
	timeout := c.LockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	interval := c.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		locked, err := tryLock(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("lock %s: %w", path, err)
		}
		if locked {
			return &fileGrant{path: path, f: f}, nil
		}
		select {
		case <-ctx.Done():
			f.Close()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("lock %s: %w", path, ErrLockTimeout)
			}
			return nil, fmt.Errorf("lock %s: %w", path, ctx.Err())
		case <-ticker.C:
		}
	}
}

type fileGrant struct {
	path string
	f    *os.File

	once sync.Once
	err  error
}

func (g *fileGrant) Path() string { return g.path }

func (g *fileGrant) Release() error {
	g.once.Do(func() {
		uerr := unlock(g.f)
		cerr := g.f.Close()
		g.err = errors.Join(uerr, cerr)
	})
	return g.err
}
