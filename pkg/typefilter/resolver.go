// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package typefilter turns accepted MIME patterns into the type identifiers
// a picker filters on.
package typefilter

import (
	"strings"

	"github.com/leseb/filechooser/pkg/uttype"
)

// categories maps the recognized wildcard patterns to their category type.
var categories = map[string]string{
	"audio/*": uttype.Audio,
	"font/*":  uttype.Font,
	"image/*": uttype.Image,
	"text/*":  uttype.Text,
	"video/*": uttype.Video,
}

// Filters is an ordered set of type identifiers. Duplicates are kept.
type Filters []string

// Resolver maps MIME patterns to filter identifiers.
type Resolver struct {
	types *uttype.Registry
}

// NewResolver creates a resolver backed by types. A nil registry uses the
// builtin one.
func NewResolver(types *uttype.Registry) *Resolver {
	if types == nil {
		types = uttype.Builtin()
	}
	return &Resolver{types: types}
}

// Resolve maps each pattern to exactly one identifier, preserving order.
// It never fails: anything it cannot place becomes public.data.
func (r *Resolver) Resolve(patterns []string) Filters {
	out := make(Filters, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, r.resolveOne(p))
	}
	return out
}

func (r *Resolver) resolveOne(pattern string) string {
	if id, ok := categories[pattern]; ok {
		return id
	}
	if !strings.Contains(pattern, "*") {
		if id := r.types.IdentifierForMIME(pattern); !uttype.IsDynamic(id) {
			return id
		}
	}
	return uttype.Data
}

// Matcher reports whether files of a given type pass a filter set.
type Matcher struct {
	types   *uttype.Registry
	filters Filters
}

// Matcher binds filters to the resolver's registry.
func (r *Resolver) Matcher(filters Filters) *Matcher {
	return &Matcher{types: r.types, filters: filters}
}

// MatchIdentifier reports whether id conforms to any filter.
func (m *Matcher) MatchIdentifier(id string) bool {
	for _, f := range m.filters {
		if m.types.ConformsTo(id, f) {
			return true
		}
	}
	return false
}

// MatchName classifies a file by its extension and matches it.
func (m *Matcher) MatchName(name string) bool {
	return m.MatchIdentifier(m.types.IdentifierForExtension(extension(name)))
}

// Filters returns the bound filter set.
func (m *Matcher) Filters() Filters {
	return m.filters
}

func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}
