// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package typefilter

import (
	"reflect"
	"testing"

	"github.com/leseb/filechooser/pkg/uttype"
)

func TestResolve_Categories(t *testing.T) {
	r := NewResolver(nil)

	want := map[string]string{
		"audio/*": uttype.Audio,
		"font/*":  uttype.Font,
		"image/*": uttype.Image,
		"text/*":  uttype.Text,
		"video/*": uttype.Video,
	}
	for pattern, id := range want {
		got := r.Resolve([]string{pattern})
		if len(got) != 1 || got[0] != id {
			t.Errorf("Resolve(%q) = %v, want [%s]", pattern, got, id)
		}
	}

	forward := r.Resolve([]string{"audio/*", "font/*", "image/*", "text/*", "video/*"})
	backward := r.Resolve([]string{"video/*", "text/*", "image/*", "font/*", "audio/*"})
	for i := range forward {
		if forward[i] != backward[len(backward)-1-i] {
			t.Errorf("category mapping depends on order: %v vs %v", forward, backward)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(uttype.Builtin())

	tests := []struct {
		name     string
		patterns []string
		want     Filters
	}{
		{"concrete types", []string{"application/pdf", "text/plain"}, Filters{"com.adobe.pdf", uttype.PlainText}},
		{"unknown concrete falls back", []string{"weird/unknown-type"}, Filters{uttype.Data}},
		{"unrecognized wildcard falls back", []string{"application/*"}, Filters{uttype.Data}},
		{"nonsense falls back", []string{"not a mime type"}, Filters{uttype.Data}},
		{"empty pattern falls back", []string{""}, Filters{uttype.Data}},
		{"duplicates kept", []string{"image/*", "image/*"}, Filters{uttype.Image, uttype.Image}},
		{"mixed keeps order", []string{"text/plain", "image/*", "x/y"}, Filters{uttype.PlainText, uttype.Image, uttype.Data}},
		{"no patterns", nil, Filters{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.patterns)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%v) = %v, want %v", tt.patterns, got, tt.want)
			}
			for _, id := range got {
				if uttype.IsDynamic(id) {
					t.Errorf("resolver leaked dynamic identifier %q", id)
				}
			}
		})
	}
}

func TestResolve_CustomDeclaration(t *testing.T) {
	types := uttype.Builtin()
	types.Declare(uttype.Type{Identifier: "com.example.notebook", MIMETypes: []string{"application/x-notebook"}})

	got := NewResolver(types).Resolve([]string{"application/x-notebook"})
	if got[0] != "com.example.notebook" {
		t.Errorf("Resolve = %v, want declared identifier", got)
	}
}

func TestMatcher(t *testing.T) {
	r := NewResolver(nil)

	images := r.Matcher(r.Resolve([]string{"image/*"}))
	for name, want := range map[string]bool{
		"photo.jpg":   true,
		"PHOTO.PNG":   true,
		"notes.txt":   false,
		"archive.zip": false,
		"noext":       false,
		".hidden":     false,
	} {
		if got := images.MatchName(name); got != want {
			t.Errorf("image filter MatchName(%q) = %v, want %v", name, got, want)
		}
	}

	docs := r.Matcher(r.Resolve([]string{"application/pdf", "text/plain"}))
	if !docs.MatchName("a.pdf") || !docs.MatchName("b.txt") || docs.MatchName("c.png") {
		t.Error("pdf/text filter matched the wrong files")
	}

	anything := r.Matcher(r.Resolve([]string{"weird/unknown-type"}))
	for _, name := range []string{"a.pdf", "b.bin", "noext", "photo.jpg"} {
		if !anything.MatchName(name) {
			t.Errorf("fallback filter should accept %q", name)
		}
	}
}
