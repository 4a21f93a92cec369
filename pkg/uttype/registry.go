// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package uttype is a uniform type identifier registry: it maps MIME types
// and filename extensions to reverse-DNS type identifiers ("public.jpeg")
// and knows which types conform to which ("public.jpeg" is a "public.image"
// is a "public.data").
//
// Lookups never fail. When no declaration matches a tag the registry
// synthesizes a dynamic identifier prefixed with "dyn." so that callers can
// tell a real match from a placeholder with IsDynamic.
package uttype

import (
	"encoding/base32"
	"strings"
	"sync"
)

// Well-known identifiers.
const (
	Item        = "public.item"
	Content     = "public.content"
	Data        = "public.data"
	Text        = "public.text"
	PlainText   = "public.plain-text"
	Image       = "public.image"
	Audio       = "public.audio"
	Audiovisual = "public.audiovisual-content"
	Movie       = "public.movie"
	Video       = "public.video"
	Font        = "public.font"
	Archive     = "public.archive"
)

// OctetStream is the media type reported when nothing better is known.
const OctetStream = "application/octet-stream"

const dynamicPrefix = "dyn."

// Tag classes used when synthesizing dynamic identifiers.
const (
	tagMIME      = "mime"
	tagExtension = "ext"
)

var dynEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Type declares one identifier. The first MIME type and extension are the
// preferred tags.
type Type struct {
	Identifier string
	MIMETypes  []string
	Extensions []string
	ConformsTo []string
}

// Registry holds type declarations. The zero value is not usable; call
// New or Builtin.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*Type
	byMIME map[string]string
	byExt  map[string]string
}

// New returns a registry holding only decls.
func New(decls ...Type) *Registry {
	r := &Registry{
		byID:   make(map[string]*Type),
		byMIME: make(map[string]string),
		byExt:  make(map[string]string),
	}
	for _, d := range decls {
		r.Declare(d)
	}
	return r
}

// Builtin returns a registry preloaded with the common system types.
func Builtin() *Registry {
	return New(builtinTypes...)
}

// Declare adds or replaces a type. Tags already claimed by another type are
// reassigned to this one, so later declarations win.
func (r *Registry) Declare(t Type) {
	t.Identifier = strings.ToLower(strings.TrimSpace(t.Identifier))
	if t.Identifier == "" {
		return
	}
	decl := &Type{
		Identifier: t.Identifier,
		MIMETypes:  normalize(t.MIMETypes, ""),
		Extensions: normalize(t.Extensions, "."),
		ConformsTo: normalize(t.ConformsTo, ""),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[decl.Identifier] = decl
	for _, m := range decl.MIMETypes {
		r.byMIME[m] = decl.Identifier
	}
	for _, e := range decl.Extensions {
		r.byExt[e] = decl.Identifier
	}
}

// Lookup returns the declaration for id.
func (r *Registry) Lookup(id string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[strings.ToLower(id)]
	if !ok {
		return Type{}, false
	}
	return *t, true
}

// IdentifierForMIME returns the identifier declared for a MIME type, or a
// dynamic placeholder. Parameters such as "; charset=utf-8" are ignored.
func (r *Registry) IdentifierForMIME(mimeType string) string {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	r.mu.RLock()
	id, ok := r.byMIME[m]
	r.mu.RUnlock()
	if ok {
		return id
	}
	return synthesize(tagMIME, m)
}

// IdentifierForExtension returns the identifier declared for a filename
// extension (with or without the leading dot), or a dynamic placeholder.
func (r *Registry) IdentifierForExtension(ext string) string {
	e := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	r.mu.RLock()
	id, ok := r.byExt[e]
	r.mu.RUnlock()
	if ok {
		return id
	}
	return synthesize(tagExtension, e)
}

// PreferredMIMEType returns the preferred MIME tag of id. Dynamic and
// abstract types have none.
func (r *Registry) PreferredMIMEType(id string) (string, bool) {
	if IsDynamic(id) {
		return "", false
	}
	t, ok := r.Lookup(id)
	if !ok || len(t.MIMETypes) == 0 {
		return "", false
	}
	return t.MIMETypes[0], true
}

// ConformsTo reports whether id is parent or descends from it. Dynamic
// types conform only to public.data and public.item.
func (r *Registry) ConformsTo(id, parent string) bool {
	id, parent = strings.ToLower(id), strings.ToLower(parent)
	if id == parent {
		return true
	}
	if IsDynamic(id) {
		return parent == Data || parent == Item
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t, ok := r.byID[cur]
		if !ok {
			continue
		}
		for _, p := range t.ConformsTo {
			if p == parent {
				return true
			}
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// IsDynamic reports whether id is a synthesized placeholder.
func IsDynamic(id string) bool {
	return strings.HasPrefix(id, dynamicPrefix)
}

func synthesize(class, value string) string {
	return dynamicPrefix + "a" + dynEncoding.EncodeToString([]byte(class+"="+value))
}

func normalize(in []string, trimPrefix string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if trimPrefix != "" {
			s = strings.TrimPrefix(s, trimPrefix)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
