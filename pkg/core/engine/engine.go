// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/leseb/filechooser/pkg/callback"
	"github.com/leseb/filechooser/pkg/core/config"
	"github.com/leseb/filechooser/pkg/core/schema"
	"github.com/leseb/filechooser/pkg/observability/logging"
	"github.com/leseb/filechooser/pkg/picker"
	"github.com/leseb/filechooser/pkg/typefilter"
)

// ErrBusy is returned when a request arrives while another is in flight.
var ErrBusy = errors.New("a file request is already in progress")

// Importer relocates one picked resource into owned storage.
// Implemented by importer.Importer.
type Importer interface {
	Import(ctx context.Context, res schema.Resource) (schema.FileDescriptor, error)
}

// Options wires a Chooser.
type Options struct {
	Picker     picker.Session       // required
	Importer   Importer             // required
	Resolver   *typefilter.Resolver // builtin types when nil
	Serializer schema.Serializer    // JSON when nil
	OnFailure  string               // config.OnFailureExclude (default) or config.OnFailureInclude
	Logger     *slog.Logger
}

// Chooser runs file requests: resolve the accepted types, present the
// picker, import what was picked and deliver one response.
type Chooser struct {
	picker     picker.Session
	importer   Importer
	resolver   *typefilter.Resolver
	serializer schema.Serializer
	onFailure  string
	logger     *slog.Logger

	mu     sync.Mutex
	active *callback.Pending
	wg     sync.WaitGroup
}

// New creates a Chooser.
func New(opts Options) (*Chooser, error) {
	if opts.Picker == nil {
		return nil, fmt.Errorf("picker is required")
	}
	if opts.Importer == nil {
		return nil, fmt.Errorf("importer is required")
	}
	c := &Chooser{
		picker:     opts.Picker,
		importer:   opts.Importer,
		resolver:   opts.Resolver,
		serializer: opts.Serializer,
		onFailure:  opts.OnFailure,
		logger:     logging.OrDefault(opts.Logger),
	}
	if c.resolver == nil {
		c.resolver = typefilter.NewResolver(nil)
	}
	if c.serializer == nil {
		c.serializer = schema.JSONSerializer{}
	}
	switch c.onFailure {
	case "":
		c.onFailure = config.OnFailureExclude
	case config.OnFailureExclude, config.OnFailureInclude:
	default:
		return nil, fmt.Errorf("unknown import failure policy %q", c.onFailure)
	}
	return c, nil
}

// GetFiles validates req and starts it. The returned handle receives
// exactly one response. Only one request may be in flight; a second one
// fails with ErrBusy until the first has delivered.
func (c *Chooser) GetFiles(ctx context.Context, req schema.PickRequest) (*callback.Pending, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	p := callback.NewPending(uuid.NewString())
	c.active = p
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer c.finish(p)
		c.run(ctx, p, req)
	}()
	return p, nil
}

// Busy reports whether a request is in flight.
func (c *Chooser) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// Wait blocks until every started request has finished.
func (c *Chooser) Wait() {
	c.wg.Wait()
}

// finish guarantees a response even if run bailed out early.
func (c *Chooser) finish(p *callback.Pending) {
	c.release(p)
	p.Deliver(callback.Failure(callback.MessageCancelled))
}

// release frees the in-flight slot. It runs before a response is handed
// over so that a caller reacting to the response can start a new request.
func (c *Chooser) release(p *callback.Pending) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == p {
		c.active = nil
	}
}

func (c *Chooser) run(ctx context.Context, p *callback.Pending, req schema.PickRequest) {
	logger := c.logger.With("request_id", p.ID())

	filters := c.resolver.Resolve(req.Accept)
	logger.Debug("Presenting picker",
		"accept", req.Accept,
		"filters", []string(filters),
		"allow_multiple", req.AllowMultiple)

	outcome, err := c.picker.Present(ctx, picker.Request{
		Filter:        c.resolver.Matcher(filters),
		AllowMultiple: req.AllowMultiple,
	})
	if err != nil {
		logger.Warn("Picker failed, treating as cancelled", "error", err)
		outcome = picker.Cancelled()
	}
	if outcome.Cancelled || ctx.Err() != nil {
		c.deliver(p, logger, callback.Failure(callback.MessageCancelled))
		return
	}

	resources := outcome.Resources
	if !req.AllowMultiple && len(resources) > 1 {
		resources = resources[:1]
	}

	files := make([]schema.FileDescriptor, 0, len(resources))
	var failures []error
	for _, res := range resources {
		desc, err := c.importer.Import(ctx, res)
		if err == nil {
			files = append(files, desc)
			continue
		}
		failures = append(failures, err)
		if c.onFailure == config.OnFailureInclude {
			c.deliver(p, logger, callback.Failure(err.Error()))
			files = append(files, desc)
		}
	}

	if ctx.Err() != nil {
		c.deliver(p, logger, callback.Failure(callback.MessageCancelled))
		return
	}
	if len(files) == 0 && len(failures) > 0 {
		c.deliver(p, logger, callback.Failure(joinMessages(failures)))
		return
	}

	payload, err := c.serializer.Serialize(files)
	if err != nil {
		logger.Error("Failed to serialize result", "error", err, "files", len(files))
		c.deliver(p, logger, callback.Failure(callback.MessageSerializeFailed))
		return
	}
	c.deliver(p, logger, callback.Success(payload, files, failures))
}

func (c *Chooser) deliver(p *callback.Pending, logger *slog.Logger, r callback.Response) {
	c.release(p)
	if !p.Deliver(r) {
		logger.Debug("Response already delivered, dropping", "status", r.Status, "message", r.Message)
		return
	}
	if r.OK() {
		logger.Info("File request completed", "files", len(r.Files), "failures", len(r.Failures))
		return
	}
	logger.Info("File request failed", "message", r.Message)
}

func joinMessages(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
