// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package provider is a named-factory registry shared by the pluggable
// parts of the chooser: owned storage backends and picker surfaces.
//
// Backends register themselves from init() and are selected by name from
// configuration, the same way database/sql drivers are:
//
//	import _ "github.com/leseb/filechooser/pkg/picker/terminal"
//
//	session, err := picker.Providers.New(ctx, "terminal", params)
package provider

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Params carries backend settings as flat string pairs, usually copied out
// of a config section.
type Params map[string]string

// Get returns the value for key, or def when the key is absent or empty.
func (p Params) Get(key, def string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return def
}

// Bool parses key as a boolean. Unparseable or missing values yield def.
func (p Params) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Int parses key as an integer. Unparseable or missing values yield def.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Factory builds one backend instance of type T.
type Factory[T any] func(ctx context.Context, params Params) (T, error)

// Registry maps backend names to factories for one subsystem.
type Registry[T any] struct {
	subsystem string

	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// NewRegistry returns an empty registry. subsystem only shows up in
// error and panic messages ("file_store", "picker").
func NewRegistry[T any](subsystem string) *Registry[T] {
	return &Registry[T]{
		subsystem: subsystem,
		factories: make(map[string]Factory[T]),
	}
}

// Register binds name to f. Registering the same name twice panics so
// that conflicting init() registrations surface at startup.
func (r *Registry[T]) Register(name string, f Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[name]; dup {
		panic(fmt.Sprintf("provider: %s backend %q registered twice", r.subsystem, name))
	}
	r.factories[name] = f
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// New instantiates the backend registered under name.
func (r *Registry[T]) New(ctx context.Context, name string, params Params) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s backend %q (available: %v)", r.subsystem, name, r.Available())
	}
	if params == nil {
		params = Params{}
	}
	return f(ctx, params)
}

// Available lists registered names in sorted order.
func (r *Registry[T]) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
