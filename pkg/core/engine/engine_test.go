// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leseb/filechooser/pkg/callback"
	"github.com/leseb/filechooser/pkg/core/config"
	"github.com/leseb/filechooser/pkg/core/schema"
	"github.com/leseb/filechooser/pkg/filestore/filestoretest"
	"github.com/leseb/filechooser/pkg/filestore/filesystem"
	"github.com/leseb/filechooser/pkg/importer"
	"github.com/leseb/filechooser/pkg/observability/logging"
	"github.com/leseb/filechooser/pkg/picker"
	"github.com/leseb/filechooser/pkg/picker/static"
)

// --- Test helpers ---

type harness struct {
	store   *filesystem.Store
	chooser *Chooser
}

func newHarness(t *testing.T, session picker.Session, mutate func(*Options)) *harness {
	t.Helper()
	store, err := filesystem.New(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem.New: %v", err)
	}
	opts := Options{
		Picker: session,
		Importer: importer.New(importer.Options{
			Store:  store,
			Now:    func() time.Time { return time.Unix(1700000000, 0) },
			Logger: logging.Discard(),
		}),
		Logger: logging.Discard(),
	}
	if mutate != nil {
		mutate(&opts)
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{store: store, chooser: c}
}

func (h *harness) get(t *testing.T, accept string, multiple bool) callback.Response {
	t.Helper()
	p, err := h.chooser.GetFiles(context.Background(), schema.PickRequest{Accept: schema.SplitAccept(accept), AllowMultiple: multiple})
	if err != nil {
		t.Fatalf("GetFiles: %v", err)
	}
	return wait(t, p)
}

func wait(t *testing.T, p *callback.Pending) callback.Response {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := p.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	return r
}

func decode(t *testing.T, r callback.Response) []schema.FileDescriptor {
	t.Helper()
	if !r.OK() {
		t.Fatalf("expected success, got error %q", r.Message)
	}
	var files []schema.FileDescriptor
	if err := json.Unmarshal([]byte(r.Message), &files); err != nil {
		t.Fatalf("payload is not a descriptor array: %v\n%s", err, r.Message)
	}
	return files
}

func assertUnder(t *testing.T, root string, d schema.FileDescriptor) {
	t.Helper()
	if !strings.HasPrefix(d.URI, schema.FileURI(root)+"/") {
		t.Errorf("uri %q is not under the store root %q", d.URI, root)
	}
	if !strings.HasSuffix(d.URI, "/"+d.Name) {
		t.Errorf("uri %q does not end in name %q", d.URI, d.Name)
	}
}

// funcPicker adapts a function to picker.Session.
type funcPicker func(ctx context.Context, req picker.Request) (picker.Outcome, error)

func (f funcPicker) Present(ctx context.Context, req picker.Request) (picker.Outcome, error) {
	return f(ctx, req)
}

// --- Scenarios ---

func TestGetFiles_SingleImage(t *testing.T) {
	src := filestoretest.WriteSource(t, "photo.jpg", "jpeg")
	h := newHarness(t, static.New(src), nil)

	files := decode(t, h.get(t, "image/*", false))
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].MediaType != "image/jpeg" || files[0].Name != "photo_1700000000.jpg" {
		t.Errorf("descriptor = %+v", files[0])
	}
	assertUnder(t, h.store.Root(), files[0])
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("original should have been moved away")
	}
}

func TestGetFiles_MultipleKeepsOrder(t *testing.T) {
	pdf := filestoretest.WriteSource(t, "a.pdf", "%PDF")
	txt := filestoretest.WriteSource(t, "b.txt", "hello")
	h := newHarness(t, static.New(pdf, txt), nil)

	r := h.get(t, "application/pdf, text/plain", true)
	files := decode(t, r)
	if len(files) != 2 || files[0].Name != "a_1700000000.pdf" || files[1].Name != "b_1700000000.txt" {
		t.Fatalf("files = %+v", files)
	}
	if files[0].MediaType != "application/pdf" || files[1].MediaType != "text/plain" {
		t.Errorf("media types = %q, %q", files[0].MediaType, files[1].MediaType)
	}
	for _, f := range files {
		assertUnder(t, h.store.Root(), f)
	}
	if len(r.Files) != 2 || len(r.Failures) != 0 {
		t.Errorf("response carries %d files, %d failures", len(r.Files), len(r.Failures))
	}
}

func TestGetFiles_Cancelled(t *testing.T) {
	h := newHarness(t, static.New(), nil)

	r := h.get(t, "image/*", true)
	if r.OK() || r.Message != callback.MessageCancelled {
		t.Errorf("response = %+v, want %s", r, callback.MessageCancelled)
	}
}

func TestGetFiles_SerializationFailure(t *testing.T) {
	a := filestoretest.WriteSource(t, "a.png", "a")
	b := filestoretest.WriteSource(t, "b.png", "b")
	h := newHarness(t, static.New(a, b), func(o *Options) {
		o.Serializer = schema.SerializerFunc(func([]schema.FileDescriptor) (string, error) {
			return "", errors.New("encoder exploded")
		})
	})

	r := h.get(t, "image/*", true)
	if r.OK() || r.Message != callback.MessageSerializeFailed {
		t.Errorf("response = %+v, want %q", r, callback.MessageSerializeFailed)
	}
	stored, err := h.store.List(context.Background())
	if err != nil || len(stored) != 2 {
		t.Errorf("relocated files should stay on disk, got %d (%v)", len(stored), err)
	}
}

func TestGetFiles_UnknownTypeAcceptsAnything(t *testing.T) {
	bin := filestoretest.WriteSource(t, "blob.bin", "\x00\x01")
	var seen []string
	session := funcPicker(func(ctx context.Context, req picker.Request) (picker.Outcome, error) {
		seen = req.Filter.Filters()
		return static.New(bin).Present(ctx, req)
	})
	h := newHarness(t, session, nil)

	files := decode(t, h.get(t, "weird/unknown-type", false))
	if len(seen) != 1 || seen[0] != "public.data" {
		t.Errorf("filters = %v, want [public.data]", seen)
	}
	if len(files) != 1 || files[0].MediaType != "application/octet-stream" || files[0].Name != "blob_1700000000.bin" {
		t.Errorf("files = %+v", files)
	}
}

func TestGetFiles_ImportFailureExcluded(t *testing.T) {
	good := filestoretest.WriteSource(t, "good.txt", "ok")
	gone := filepath.Join(t.TempDir(), "gone.txt")
	h := newHarness(t, static.New(good, gone), nil)

	r := h.get(t, "text/plain", true)
	files := decode(t, r)
	if len(files) != 1 || files[0].Name != "good_1700000000.txt" {
		t.Errorf("files = %+v", files)
	}
	if len(r.Failures) != 1 {
		t.Fatalf("failures = %v, want one", r.Failures)
	}
	var ierr *importer.ImportError
	if !errors.As(r.Failures[0], &ierr) || ierr.Path != gone {
		t.Errorf("failure = %v", r.Failures[0])
	}
}

func TestGetFiles_AllImportsFail(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, static.New(filepath.Join(dir, "x.txt"), filepath.Join(dir, "y.txt")), nil)

	r := h.get(t, "text/plain", true)
	if r.OK() {
		t.Fatalf("expected error, got %q", r.Message)
	}
	if !strings.Contains(r.Message, "x.txt") || !strings.Contains(r.Message, "y.txt") {
		t.Errorf("message should name both files: %q", r.Message)
	}
}

func TestGetFiles_ImportFailureIncluded(t *testing.T) {
	good := filestoretest.WriteSource(t, "good.txt", "ok")
	gone := filepath.Join(t.TempDir(), "gone.txt")
	h := newHarness(t, static.New(gone, good), func(o *Options) {
		o.OnFailure = config.OnFailureInclude
	})

	r := h.get(t, "text/plain", true)
	if r.OK() {
		t.Fatalf("first failure should win delivery, got %q", r.Message)
	}
	if !strings.HasPrefix(r.Message, "Failed to access file gone.txt") {
		t.Errorf("message = %q", r.Message)
	}
	h.chooser.Wait()
	if stored, _ := h.store.List(context.Background()); len(stored) != 1 {
		t.Errorf("remaining files should still be imported, store has %d", len(stored))
	}
}

func TestGetFiles_SingleModeTrimsSelection(t *testing.T) {
	a := filestoretest.WriteSource(t, "a.txt", "a")
	b := filestoretest.WriteSource(t, "b.txt", "b")
	session := funcPicker(func(context.Context, picker.Request) (picker.Outcome, error) {
		return picker.Picked(a, b), nil
	})
	h := newHarness(t, session, nil)

	files := decode(t, h.get(t, "text/*", false))
	if len(files) != 1 || files[0].Name != "a_1700000000.txt" {
		t.Errorf("files = %+v", files)
	}
	if _, err := os.Stat(b); err != nil {
		t.Errorf("unrequested file should be untouched: %v", err)
	}
}

func TestGetFiles_PickerErrorIsCancel(t *testing.T) {
	session := funcPicker(func(context.Context, picker.Request) (picker.Outcome, error) {
		return picker.Outcome{}, errors.New("no terminal")
	})
	h := newHarness(t, session, nil)

	if r := h.get(t, "image/*", false); r.Message != callback.MessageCancelled {
		t.Errorf("response = %+v", r)
	}
}

// --- Request lifecycle ---

func TestGetFiles_InvalidRequest(t *testing.T) {
	h := newHarness(t, static.New(), nil)

	for _, req := range []schema.PickRequest{
		{},
		{Accept: []string{""}},
		{Accept: []string{"image/*\n"}},
	} {
		if _, err := h.chooser.GetFiles(context.Background(), req); !errors.Is(err, schema.ErrInvalidRequest) {
			t.Errorf("GetFiles(%+v) err = %v, want ErrInvalidRequest", req, err)
		}
	}
	if h.chooser.Busy() {
		t.Error("rejected requests must not occupy the slot")
	}
}

func TestGetFiles_BusyWhileInFlight(t *testing.T) {
	src := filestoretest.WriteSource(t, "a.png", "a")
	release := make(chan struct{})
	session := funcPicker(func(ctx context.Context, req picker.Request) (picker.Outcome, error) {
		<-release
		return static.New(src).Present(ctx, req)
	})
	h := newHarness(t, session, nil)
	req := schema.PickRequest{Accept: []string{"image/*"}}

	first, err := h.chooser.GetFiles(context.Background(), req)
	if err != nil {
		t.Fatalf("first GetFiles: %v", err)
	}
	if _, err := h.chooser.GetFiles(context.Background(), req); !errors.Is(err, ErrBusy) {
		t.Fatalf("second GetFiles err = %v, want ErrBusy", err)
	}

	close(release)
	if r := wait(t, first); !r.OK() {
		t.Fatalf("first request failed: %q", r.Message)
	}
	if h.chooser.Busy() {
		t.Error("slot should be free once the response is delivered")
	}

	next, err := h.chooser.GetFiles(context.Background(), req)
	if err != nil {
		t.Fatalf("GetFiles after completion: %v", err)
	}
	if r := wait(t, next); r.OK() {
		t.Errorf("source was already moved, second run should fail, got %q", r.Message)
	}
	if first.ID() == next.ID() {
		t.Error("requests must get distinct ids")
	}
}

func TestGetFiles_ContextCancelled(t *testing.T) {
	session := funcPicker(func(ctx context.Context, _ picker.Request) (picker.Outcome, error) {
		<-ctx.Done()
		return picker.Outcome{}, ctx.Err()
	})
	h := newHarness(t, session, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p, err := h.chooser.GetFiles(ctx, schema.PickRequest{Accept: []string{"image/*"}})
	if err != nil {
		t.Fatalf("GetFiles: %v", err)
	}
	cancel()
	if r := wait(t, p); r.Message != callback.MessageCancelled {
		t.Errorf("response = %+v", r)
	}
}

func TestGetFiles_CancelledBeforeImport(t *testing.T) {
	a := filestoretest.WriteSource(t, "a.txt", "a")
	ctx, cancel := context.WithCancel(context.Background())
	session := funcPicker(func(context.Context, picker.Request) (picker.Outcome, error) {
		cancel()
		return picker.Picked(a), nil
	})
	h := newHarness(t, session, nil)

	p, err := h.chooser.GetFiles(ctx, schema.PickRequest{Accept: []string{"text/plain"}})
	if err != nil {
		t.Fatalf("GetFiles: %v", err)
	}
	if r := wait(t, p); r.Message != callback.MessageCancelled {
		t.Errorf("response = %+v", r)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("missing picker should fail")
	}
	if _, err := New(Options{Picker: static.New()}); err == nil {
		t.Error("missing importer should fail")
	}
	_, err := New(Options{Picker: static.New(), Importer: importer.New(importer.Options{}), OnFailure: "ignore"})
	if err == nil {
		t.Error("unknown failure policy should fail")
	}
}
