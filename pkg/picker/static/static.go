// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package static is a non-interactive picker that "picks" a preset list of
// paths. It backs scripted use and tests.
package static

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/leseb/filechooser/pkg/picker"
	"github.com/leseb/filechooser/pkg/provider"
)

func init() {
	picker.Providers.Register("static", func(_ context.Context, params provider.Params) (picker.Session, error) {
		return New(SplitPaths(params.Get("paths", ""))...), nil
	})
}

// Session picks its preset paths.
type Session struct {
	paths []string
}

// New creates a session that selects paths in order.
func New(paths ...string) *Session {
	return &Session{paths: append([]string(nil), paths...)}
}

// Present applies the request to the preset paths. Paths the filter
// rejects are skipped, only the first survivor is kept in single mode, and
// nothing left means the user cancelled.
func (s *Session) Present(ctx context.Context, req picker.Request) (picker.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return picker.Cancelled(), nil
	}
	var picked []string
	for _, p := range s.paths {
		if !req.Accepts(filepath.Base(p)) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return picker.Outcome{}, err
		}
		picked = append(picked, abs)
		if !req.AllowMultiple {
			break
		}
	}
	return picker.Picked(picked...), nil
}

// SplitPaths splits an OS path list, dropping empty elements.
func SplitPaths(list string) []string {
	var out []string
	for _, p := range filepath.SplitList(list) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
