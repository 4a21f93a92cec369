// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package picker defines the surface a user picks files on.
package picker

import (
	"context"

	"github.com/leseb/filechooser/pkg/core/schema"
	"github.com/leseb/filechooser/pkg/provider"
	"github.com/leseb/filechooser/pkg/typefilter"
)

// Providers is the registry of picker surfaces.
// Import implementation packages with blank imports to register them:
//
//	import _ "github.com/leseb/filechooser/pkg/picker/terminal"
var Providers = provider.NewRegistry[Session]("picker")

// Request configures one presentation.
type Request struct {
	Filter        *typefilter.Matcher // nil accepts every file
	AllowMultiple bool
}

// Accepts reports whether a file named name may be picked.
func (r Request) Accepts(name string) bool {
	return r.Filter == nil || r.Filter.MatchName(name)
}

// Outcome is what the user did. Resources is ordered as picked and never
// longer than one unless the request allowed multiple selection.
type Outcome struct {
	Cancelled bool
	Resources []schema.Resource
}

// Cancelled is the outcome of a dismissed picker.
func Cancelled() Outcome {
	return Outcome{Cancelled: true}
}

// Picked builds an outcome from selected paths. An empty selection counts
// as a cancellation.
func Picked(paths ...string) Outcome {
	if len(paths) == 0 {
		return Cancelled()
	}
	out := Outcome{Resources: make([]schema.Resource, 0, len(paths))}
	for _, p := range paths {
		out.Resources = append(out.Resources, schema.Resource{Path: p})
	}
	return out
}

// Session presents a picker and blocks until the user is done. An error
// means the surface itself failed; callers treat it like a cancellation.
type Session interface {
	Present(ctx context.Context, req Request) (Outcome, error)
}
