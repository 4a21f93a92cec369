// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

// Package terminal is an interactive picker drawn in the terminal.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leseb/filechooser/pkg/picker"
	"github.com/leseb/filechooser/pkg/provider"
)

func init() {
	picker.Providers.Register("terminal", func(_ context.Context, params provider.Params) (picker.Session, error) {
		return New(Options{
			StartDir:   params.Get("start_dir", ""),
			ShowHidden: params.Bool("show_hidden", false),
			Height:     params.Int("height", 20),
			TTY:        params.Get("tty", ""),
		}), nil
	})
}

// Options configures the terminal picker.
type Options struct {
	StartDir   string // Working directory when empty
	ShowHidden bool
	Height     int // Maximum listing rows

	// TTY, when set, is a terminal device opened for each presentation and
	// used instead of Input/Output. Hosts whose stdio carries a protocol
	// point it at /dev/tty.
	TTY    string
	Input  io.Reader // Stdin when nil
	Output io.Writer // Stderr when nil, keeping stdout free for results
}

// Session presents the terminal picker.
type Session struct {
	opts Options
}

// New creates a terminal picker session.
func New(opts Options) *Session {
	return &Session{opts: opts}
}

// Present runs the picker until the user picks or cancels.
func (s *Session) Present(ctx context.Context, req picker.Request) (picker.Outcome, error) {
	dir := s.opts.StartDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return picker.Outcome{}, fmt.Errorf("resolve start directory: %w", err)
		}
		dir = wd
	}
	b, err := NewBrowser(dir, BrowserOptions{
		ShowHidden: s.opts.ShowHidden,
		Multiple:   req.AllowMultiple,
		Accepts:    req.Accepts,
	})
	if err != nil {
		return picker.Outcome{}, fmt.Errorf("open %s: %w", dir, err)
	}

	in, out := s.opts.Input, s.opts.Output
	if s.opts.TTY != "" {
		tty, err := os.OpenFile(s.opts.TTY, os.O_RDWR, 0)
		if err != nil {
			return picker.Outcome{}, fmt.Errorf("open terminal: %w", err)
		}
		defer tty.Close()
		in, out = tty, tty
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}

	p := tea.NewProgram(newModel(b, title(req), s.opts.Height),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if ctx.Err() != nil {
		return picker.Cancelled(), nil
	}
	if err != nil {
		return picker.Outcome{}, err
	}
	m, ok := final.(model)
	if !ok {
		return picker.Cancelled(), nil
	}
	return m.outcome, nil
}

func title(req picker.Request) string {
	t := "Select a file"
	if req.AllowMultiple {
		t = "Select files"
	}
	if req.Filter != nil {
		if f := req.Filter.Filters(); len(f) > 0 {
			t += " (" + strings.Join(f, ", ") + ")"
		}
	}
	return t
}
