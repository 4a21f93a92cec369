// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leseb/filechooser/pkg/core/schema"
)

func TestSlot_FirstDeliverWins(t *testing.T) {
	s := NewSlot()
	if _, ok := s.Response(); ok {
		t.Fatal("fresh slot should be empty")
	}

	if !s.Deliver(Failure("first")) {
		t.Fatal("first Deliver should succeed")
	}
	if s.Deliver(Success("[]", nil, nil)) {
		t.Error("second Deliver should be a no-op")
	}

	r, ok := s.Response()
	if !ok || r.Status != schema.StatusError || r.Message != "first" {
		t.Errorf("Response() = %+v, %v", r, ok)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done should be closed after delivery")
	}
}

func TestSlot_ConcurrentDeliver(t *testing.T) {
	s := NewSlot()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Deliver(Success("[]", nil, nil)) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := wins.Load(); got != 1 {
		t.Errorf("%d deliveries won, want exactly 1", got)
	}
}

func TestPending_Wait(t *testing.T) {
	p := NewPending("req-1")
	if p.ID() != "req-1" {
		t.Errorf("ID() = %q", p.ID())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait on empty handle: err = %v", err)
	}

	go p.Deliver(Success(`[{"mediaType":"text/plain"}]`, nil, nil))
	r, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !r.OK() || r.Message != `[{"mediaType":"text/plain"}]` {
		t.Errorf("Wait() = %+v", r)
	}
}
