// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package callback carries the one response a chooser request produces
// back to whoever issued it.
package callback

import (
	"context"
	"sync"

	"github.com/leseb/filechooser/pkg/core/schema"
)

// Messages delivered as errors
const (
	MessageCancelled       = "RESULT_CANCELED"
	MessageSerializeFailed = "Serializing result failed."
)

// Response is the outcome of one request.
type Response struct {
	Status   string // schema.StatusOK or schema.StatusError
	Message  string // JSON payload on success, error text otherwise
	Files    []schema.FileDescriptor
	Failures []error // Files that were dropped from a successful result
}

// Success builds an OK response.
func Success(payload string, files []schema.FileDescriptor, failures []error) Response {
	return Response{Status: schema.StatusOK, Message: payload, Files: files, Failures: failures}
}

// Failure builds an ERROR response.
func Failure(message string) Response {
	return Response{Status: schema.StatusError, Message: message}
}

// OK reports whether r is a success.
func (r Response) OK() bool {
	return r.Status == schema.StatusOK
}

// Slot holds at most one response. The first Deliver wins; later ones are
// dropped.
type Slot struct {
	mu        sync.Mutex
	delivered bool
	resp      Response
	done      chan struct{}
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{done: make(chan struct{})}
}

// Deliver stores r if nothing was delivered yet and reports whether it did.
func (s *Slot) Deliver(r Response) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delivered {
		return false
	}
	s.delivered = true
	s.resp = r
	close(s.done)
	return true
}

// Done is closed once a response has been delivered.
func (s *Slot) Done() <-chan struct{} {
	return s.done
}

// Response returns the delivered response, if any.
func (s *Slot) Response() (Response, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resp, s.delivered
}

// Pending is the handle for one in-flight request.
type Pending struct {
	*Slot
	id string
}

// NewPending creates a handle for request id.
func NewPending(id string) *Pending {
	return &Pending{Slot: NewSlot(), id: id}
}

// ID returns the request identifier.
func (p *Pending) ID() string {
	return p.id
}

// Wait blocks until a response is delivered or ctx ends.
func (p *Pending) Wait(ctx context.Context) (Response, error) {
	select {
	case <-p.Done():
		r, _ := p.Response()
		return r, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}
