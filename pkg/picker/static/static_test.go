// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package static

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leseb/filechooser/pkg/picker"
	"github.com/leseb/filechooser/pkg/provider"
	"github.com/leseb/filechooser/pkg/typefilter"
)

func paths(o picker.Outcome) []string {
	var out []string
	for _, r := range o.Resources {
		out = append(out, filepath.Base(r.Path))
	}
	return out
}

func TestPresent(t *testing.T) {
	r := typefilter.NewResolver(nil)
	images := r.Matcher(r.Resolve([]string{"image/*"}))
	files := []string{"/ext/a.png", "/ext/b.txt", "/ext/c.jpg"}

	tests := []struct {
		name      string
		req       picker.Request
		want      []string
		cancelled bool
	}{
		{"single keeps first", picker.Request{}, []string{"a.png"}, false},
		{"multiple keeps order", picker.Request{AllowMultiple: true}, []string{"a.png", "b.txt", "c.jpg"}, false},
		{"filter drops mismatches", picker.Request{Filter: images, AllowMultiple: true}, []string{"a.png", "c.jpg"}, false},
		{"nothing matches", picker.Request{Filter: r.Matcher(r.Resolve([]string{"font/*"}))}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(files...).Present(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Present: %v", err)
			}
			if out.Cancelled != tt.cancelled {
				t.Errorf("Cancelled = %v, want %v", out.Cancelled, tt.cancelled)
			}
			if strings.Join(paths(out), ",") != strings.Join(tt.want, ",") {
				t.Errorf("picked %v, want %v", paths(out), tt.want)
			}
		})
	}
}

func TestPresent_EmptyIsCancel(t *testing.T) {
	out, err := New().Present(context.Background(), picker.Request{AllowMultiple: true})
	if err != nil || !out.Cancelled || len(out.Resources) != 0 {
		t.Errorf("empty selection = %+v, %v; want cancelled", out, err)
	}
}

func TestRegisteredProvider(t *testing.T) {
	list := strings.Join([]string{"/ext/a.png", "", "/ext/b.png"}, string(os.PathListSeparator))
	s, err := picker.Providers.New(context.Background(), "static", provider.Params{"paths": list})
	if err != nil {
		t.Fatalf("Providers.New: %v", err)
	}
	out, _ := s.Present(context.Background(), picker.Request{AllowMultiple: true})
	if got := paths(out); len(got) != 2 {
		t.Errorf("picked %v, want two paths", got)
	}
}
