// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/leseb/filechooser/pkg/callback"
	"github.com/leseb/filechooser/pkg/core/schema"
	"github.com/leseb/filechooser/pkg/observability/logging"
)

// stubChooser answers every request immediately with resp, or fails with err.
type stubChooser struct {
	mu   sync.Mutex
	reqs []schema.PickRequest
	resp callback.Response
	err  error
}

func (s *stubChooser) GetFiles(_ context.Context, req schema.PickRequest) (*callback.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.reqs = append(s.reqs, req)
	p := callback.NewPending("req")
	p.Deliver(s.resp)
	return p, nil
}

func serve(t *testing.T, c Chooser, input string) []schema.CommandResult {
	t.Helper()
	var out bytes.Buffer
	if err := NewDispatcher(c, logging.Discard()).Serve(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	var results []schema.CommandResult
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r schema.CommandResult
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("bad output line %q: %v", sc.Text(), err)
		}
		results = append(results, r)
	}
	return results
}

func TestServe_GetFiles(t *testing.T) {
	payload := `[{"mediaType":"image/png","name":"a_1.png","uri":"file:///tmp/a_1.png"}]`
	c := &stubChooser{resp: callback.Success(payload, nil, nil)}

	results := serve(t, c, `{"callbackId":"cb1","service":"Chooser","action":"getFiles","args":["image/*, text/plain",true]}`+"\n")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	want := schema.CommandResult{CallbackID: "cb1", Status: schema.StatusOK, Message: payload}
	if results[0] != want {
		t.Errorf("result = %+v, want %+v", results[0], want)
	}
	if len(c.reqs) != 1 || !c.reqs[0].AllowMultiple || strings.Join(c.reqs[0].Accept, "|") != "image/*|text/plain" {
		t.Errorf("request = %+v", c.reqs)
	}
}

func TestServe_Errors(t *testing.T) {
	tests := []struct {
		name    string
		chooser *stubChooser
		line    string
		want    string
	}{
		{"cancelled", &stubChooser{resp: callback.Failure(callback.MessageCancelled)},
			`{"callbackId":"x","action":"getFiles","args":["image/*"]}`, callback.MessageCancelled},
		{"unknown action", &stubChooser{},
			`{"callbackId":"x","action":"getFolders","args":["image/*"]}`, "invalid action"},
		{"unknown service", &stubChooser{},
			`{"callbackId":"x","service":"Camera","action":"getFiles","args":["image/*"]}`, `unknown service "Camera"`},
		{"accept not a string", &stubChooser{},
			`{"callbackId":"x","action":"getFiles","args":[42]}`, "invalid request: accept: must be a string"},
		{"allowMultiple not a bool", &stubChooser{},
			`{"callbackId":"x","action":"getFiles","args":["image/*","yes"]}`, "invalid request: allowMultiple: must be a boolean"},
		{"busy", &stubChooser{err: errors.New("a file request is already in progress")},
			`{"callbackId":"x","action":"getFiles","args":["image/*"]}`, "a file request is already in progress"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := serve(t, tt.chooser, tt.line+"\n")
			if len(results) != 1 {
				t.Fatalf("got %d results", len(results))
			}
			r := results[0]
			if r.CallbackID != "x" || r.Status != schema.StatusError || r.Message != tt.want {
				t.Errorf("result = %+v, want ERROR %q", r, tt.want)
			}
		})
	}
}

func TestServe_MalformedAndBlankLines(t *testing.T) {
	c := &stubChooser{resp: callback.Success("[]", nil, nil)}
	input := "\n{not json}\n" + `{"callbackId":"ok","action":"getFiles","args":["text/*",null]}` + "\n"

	results := serve(t, c, input)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Status != schema.StatusError || !strings.HasPrefix(results[0].Message, "malformed command") {
		t.Errorf("malformed line result = %+v", results[0])
	}
	if results[1].CallbackID != "ok" || results[1].Status != schema.StatusOK || results[1].Message != "[]" {
		t.Errorf("valid line result = %+v", results[1])
	}
	if c.reqs[0].AllowMultiple {
		t.Error("null allowMultiple should default to false")
	}
}
