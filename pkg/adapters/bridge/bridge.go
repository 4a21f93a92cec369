// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge exposes the chooser to a host process as JSON lines on a
// byte stream: one command object per input line, one result object per
// output line.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/leseb/filechooser/pkg/callback"
	"github.com/leseb/filechooser/pkg/core/schema"
	"github.com/leseb/filechooser/pkg/observability/logging"
)

// Service and action names understood by the dispatcher
const (
	ServiceChooser  = "Chooser"
	ActionGetFiles  = "getFiles"
	maxCommandBytes = 1 << 20
)

// Chooser starts file requests.
// Implemented by engine.Chooser.
type Chooser interface {
	GetFiles(ctx context.Context, req schema.PickRequest) (*callback.Pending, error)
}

// Dispatcher reads commands and writes their results.
type Dispatcher struct {
	chooser Chooser
	logger  *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder
	wg  sync.WaitGroup
}

// NewDispatcher creates a dispatcher over chooser.
func NewDispatcher(chooser Chooser, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		chooser: chooser,
		logger:  logging.OrDefault(logger),
	}
}

// Serve processes commands from r until EOF, then waits for every
// accepted request to answer before returning. Results go to w.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	d.enc = json.NewEncoder(w)
	d.enc.SetEscapeHTML(false)
	defer d.wg.Wait()

	d.logger.Debug("Bridge started")
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxCommandBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var cmd schema.Command
		if err := json.Unmarshal(line, &cmd); err != nil {
			d.logger.Warn("Malformed command", "error", err)
			d.write(schema.CommandResult{Status: schema.StatusError, Message: "malformed command: " + err.Error()})
			continue
		}
		d.dispatch(ctx, cmd)
	}
	if err := scanner.Err(); err != nil {
		d.logger.Error("Failed to read commands", "error", err)
		return fmt.Errorf("read commands: %w", err)
	}
	d.logger.Debug("Command stream closed")
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd schema.Command) {
	logger := d.logger.With("callback_id", cmd.CallbackID, "action", cmd.Action)

	if cmd.Service != "" && cmd.Service != ServiceChooser {
		logger.Warn("Unknown service", "service", cmd.Service)
		d.fail(cmd, fmt.Sprintf("unknown service %q", cmd.Service))
		return
	}
	if cmd.Action != ActionGetFiles {
		logger.Warn("Unknown action")
		d.fail(cmd, "invalid action")
		return
	}

	req, err := schema.ParseArgs(cmd.Args)
	if err != nil {
		logger.Debug("Rejected arguments", "error", err)
		d.fail(cmd, err.Error())
		return
	}

	pending, err := d.chooser.GetFiles(ctx, req)
	if err != nil {
		logger.Debug("Request not started", "error", err)
		d.fail(cmd, err.Error())
		return
	}
	logger.Debug("Request started", "request_id", pending.ID())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		resp, err := pending.Wait(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				resp = callback.Failure(callback.MessageCancelled)
			} else {
				resp = callback.Failure(err.Error())
			}
		}
		d.write(schema.CommandResult{CallbackID: cmd.CallbackID, Status: resp.Status, Message: resp.Message})
	}()
}

func (d *Dispatcher) fail(cmd schema.Command, msg string) {
	d.write(schema.CommandResult{CallbackID: cmd.CallbackID, Status: schema.StatusError, Message: msg})
}

func (d *Dispatcher) write(res schema.CommandResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enc.Encode(res); err != nil {
		d.logger.Error("Failed to write result", "callback_id", res.CallbackID, "error", err)
	}
}
