// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package filestoretest provides a shared conformance test suite for
// filestore.FileStore implementations. Each backend should call
// RunConformanceTests from its own _test.go file.
package filestoretest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leseb/filechooser/pkg/filestore"
)

// WriteSource creates an external file outside the store and returns its path.
func WriteSource(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write source %s: %v", p, err)
	}
	return p
}

// RunConformanceTests exercises a FileStore implementation against the shared
// contract. The newStore function is called once per sub-test to provide an
// isolated store instance.
func RunConformanceTests(t *testing.T, newStore func(t *testing.T) filestore.FileStore) {
	t.Helper()

	t.Run("MoveDiscardsSource", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		src := WriteSource(t, "photo.jpg", "jpeg bytes")
		f, err := store.Move(ctx, src, "photo_1700000000.jpg", filestore.MoveOptions{})
		if err != nil {
			t.Fatalf("Move: %v", err)
		}

		if f.Name != "photo_1700000000.jpg" || f.Bytes != int64(len("jpeg bytes")) {
			t.Errorf("Move returned unexpected metadata: %+v", f)
		}
		if !strings.HasPrefix(f.Path, store.Root()) {
			t.Errorf("stored path %q is outside root %q", f.Path, store.Root())
		}
		data, err := os.ReadFile(f.Path)
		if err != nil || string(data) != "jpeg bytes" {
			t.Errorf("stored content = %q, %v", data, err)
		}
		if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("source should be discarded, stat err = %v", err)
		}
	})

	t.Run("CopyKeepsSource", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		src := WriteSource(t, "a.pdf", "%PDF-1.7")
		f, err := store.Move(ctx, src, "a_1700000000.pdf", filestore.MoveOptions{KeepSource: true})
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if _, err := os.Stat(src); err != nil {
			t.Errorf("source should be kept: %v", err)
		}

		// The stored copy must not follow later writes to the original.
		if err := os.WriteFile(src, []byte("changed"), 0o644); err != nil {
			t.Fatalf("rewrite source: %v", err)
		}
		data, _ := os.ReadFile(f.Path)
		if string(data) != "%PDF-1.7" {
			t.Errorf("stored copy changed with the original: %q", data)
		}
	})

	t.Run("NoOverwrite", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		first := WriteSource(t, "one.txt", "one")
		if _, err := store.Move(ctx, first, "same.txt", filestore.MoveOptions{}); err != nil {
			t.Fatalf("first Move: %v", err)
		}

		for _, keep := range []bool{false, true} {
			second := WriteSource(t, "two.txt", "two")
			_, err := store.Move(ctx, second, "same.txt", filestore.MoveOptions{KeepSource: keep})
			if !errors.Is(err, filestore.ErrFileExists) {
				t.Errorf("KeepSource=%v: expected ErrFileExists, got %v", keep, err)
			}
			if _, err := os.Stat(second); err != nil {
				t.Errorf("KeepSource=%v: failed move must not discard the source: %v", keep, err)
			}
		}

		f, err := store.Stat(ctx, "same.txt")
		if err != nil {
			t.Fatalf("Stat: %v", err)
		}
		data, _ := os.ReadFile(f.Path)
		if string(data) != "one" {
			t.Errorf("existing file was overwritten: %q", data)
		}
	})

	t.Run("MissingSource", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())

		missing := filepath.Join(t.TempDir(), "gone.txt")
		if _, err := store.Move(context.Background(), missing, "gone_1.txt", filestore.MoveOptions{}); err == nil {
			t.Fatal("expected error for vanished source")
		}
		if _, err := store.Stat(context.Background(), "gone_1.txt"); !errors.Is(err, filestore.ErrFileNotFound) {
			t.Errorf("failed move left a file behind: %v", err)
		}
	})

	t.Run("MoveSymlinkStoresCopy", func(t *testing.T) {
		for _, relative := range []bool{false, true} {
			store := newStore(t)
			ctx := context.Background()

			target := WriteSource(t, "real.txt", "original")
			dir := filepath.Dir(target)
			linkTarget := target
			if relative {
				linkTarget = "real.txt"
			}
			link := filepath.Join(dir, "link.txt")
			if err := os.Symlink(linkTarget, link); err != nil {
				t.Skipf("symlinks unsupported: %v", err)
			}

			f, err := store.Move(ctx, link, "link_1700000000.txt", filestore.MoveOptions{})
			if err != nil {
				t.Fatalf("relative=%v: Move: %v", relative, err)
			}
			info, err := os.Lstat(f.Path)
			if err != nil || !info.Mode().IsRegular() {
				t.Fatalf("relative=%v: stored entry is not a regular file: %v, %v", relative, info, err)
			}
			if _, err := os.Lstat(link); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("relative=%v: picked link should be discarded, lstat err = %v", relative, err)
			}
			if err := os.WriteFile(target, []byte("MUTATED"), 0o644); err != nil {
				t.Fatalf("rewrite target: %v", err)
			}
			data, _ := os.ReadFile(f.Path)
			if string(data) != "original" {
				t.Errorf("relative=%v: stored copy followed the link target: %q", relative, data)
			}
			store.Close(ctx)
		}
	})

	t.Run("DanglingSymlinkLeavesNoEntry", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		link := filepath.Join(t.TempDir(), "dangling.txt")
		if err := os.Symlink("missing.txt", link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
		if _, err := store.Move(ctx, link, "dangling_1700000000.txt", filestore.MoveOptions{}); err == nil {
			t.Fatal("expected error for dangling link")
		}
		files, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(files) != 0 {
			t.Errorf("failed move left entries behind: %v", names(files))
		}
		if entries, _ := os.ReadDir(store.Root()); len(entries) != 0 {
			t.Errorf("store root not empty after failed move: %d entries", len(entries))
		}
	})

	t.Run("InvalidName", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())

		src := WriteSource(t, "x.txt", "x")
		for _, name := range []string{"", ".", "..", "../escape.txt", "a/b.txt"} {
			if _, err := store.Move(context.Background(), src, name, filestore.MoveOptions{}); err == nil {
				t.Errorf("Move accepted invalid name %q", name)
			}
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		if _, err := store.Stat(ctx, "nothing.txt"); !errors.Is(err, filestore.ErrFileNotFound) {
			t.Errorf("Stat expected ErrFileNotFound, got: %v", err)
		}
		if err := store.Remove(ctx, "nothing.txt"); !errors.Is(err, filestore.ErrFileNotFound) {
			t.Errorf("Remove expected ErrFileNotFound, got: %v", err)
		}
	})

	t.Run("ListAndRemove", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
			if _, err := store.Move(ctx, WriteSource(t, name, name), name, filestore.MoveOptions{}); err != nil {
				t.Fatalf("Move %s: %v", name, err)
			}
		}

		files, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(files) != 3 || files[0].Name != "a.txt" || files[2].Name != "c.txt" {
			t.Fatalf("List = %v, want a.txt b.txt c.txt", names(files))
		}

		if err := store.Remove(ctx, "b.txt"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		files, _ = store.List(ctx)
		if len(files) != 2 {
			t.Errorf("after Remove, List = %v", names(files))
		}
	})

	t.Run("Purge", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		old, err := store.Move(ctx, WriteSource(t, "old.txt", "old"), "old.txt", filestore.MoveOptions{})
		if err != nil {
			t.Fatalf("Move old: %v", err)
		}
		if _, err := store.Move(ctx, WriteSource(t, "new.txt", "new"), "new.txt", filestore.MoveOptions{}); err != nil {
			t.Fatalf("Move new: %v", err)
		}
		past := time.Now().Add(-48 * time.Hour)
		if err := os.Chtimes(old.Path, past, past); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}

		n, err := store.Purge(ctx, 24*time.Hour)
		if err != nil {
			t.Fatalf("Purge: %v", err)
		}
		if n != 1 {
			t.Errorf("Purge removed %d files, want 1", n)
		}
		files, _ := store.List(ctx)
		if len(files) != 1 || files[0].Name != "new.txt" {
			t.Errorf("after Purge, List = %v, want [new.txt]", names(files))
		}
	})
}

func names(files []*filestore.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
