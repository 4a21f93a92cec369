// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one row of a directory listing.
type Entry struct {
	Name       string
	Path       string
	Dir        bool
	Selectable bool // Files the filter accepts; directories are never selectable
}

// Action is what a key press did to the browser.
type Action int

const (
	ActionNone Action = iota
	ActionMoved
	ActionNavigated
	ActionToggled
	ActionDone
	ActionCancelled
)

// Result is returned by HandleKey. Paths is set for ActionDone.
type Result struct {
	Action Action
	Paths  []string
}

// BrowserOptions configures a Browser.
type BrowserOptions struct {
	ShowHidden bool
	Multiple   bool
	Accepts    func(name string) bool // nil accepts everything
}

// Browser is the directory-walking state behind the terminal picker. It
// knows nothing about rendering so it can be driven by tests directly.
type Browser struct {
	opts BrowserOptions

	dir      string
	entries  []Entry
	filtered []Entry
	query    string
	cursor   int
	selected []string
	err      error
}

// NewBrowser opens dir.
func NewBrowser(dir string, opts BrowserOptions) (*Browser, error) {
	if opts.Accepts == nil {
		opts.Accepts = func(string) bool { return true }
	}
	b := &Browser{opts: opts}
	if err := b.Open(dir); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Browser) Dir() string        { return b.dir }
func (b *Browser) Query() string      { return b.query }
func (b *Browser) Cursor() int        { return b.cursor }
func (b *Browser) Multiple() bool     { return b.opts.Multiple }
func (b *Browser) Err() error         { return b.err }
func (b *Browser) Entries() []Entry   { return append([]Entry(nil), b.filtered...) }
func (b *Browser) Selected() []string { return append([]string(nil), b.selected...) }

// IsSelected reports whether path is marked.
func (b *Browser) IsSelected(path string) bool {
	return indexOf(b.selected, path) >= 0
}

// Open lists dir and makes it current. The query and cursor reset; marks
// made in other directories are kept.
func (b *Browser) Open(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	des, err := os.ReadDir(abs)
	if err != nil {
		return err
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if !b.opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(abs, name)
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{
			Name:       name,
			Path:       path,
			Dir:        isDir,
			Selectable: !isDir && b.opts.Accepts(name),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	b.dir = abs
	b.entries = entries
	b.query = ""
	b.cursor = 0
	b.err = nil
	b.rebuildFiltered()
	return nil
}

// SetQuery narrows the listing to names containing q, case-insensitively.
func (b *Browser) SetQuery(q string) {
	if q == b.query {
		return
	}
	b.query = q
	b.rebuildFiltered()
}

// Current returns the entry under the cursor.
func (b *Browser) Current() (Entry, bool) {
	if len(b.filtered) == 0 {
		return Entry{}, false
	}
	return b.filtered[b.cursor], true
}

// HandleKey applies one key press. Keys it does not use return ActionNone
// so the caller can route them to the query input.
func (b *Browser) HandleKey(key string) Result {
	switch key {
	case "up", "ctrl+p":
		if b.cursor > 0 {
			b.cursor--
			return Result{Action: ActionMoved}
		}
	case "down", "ctrl+n":
		if b.cursor < len(b.filtered)-1 {
			b.cursor++
			return Result{Action: ActionMoved}
		}
	case "left":
		return b.navigate(filepath.Dir(b.dir))
	case "backspace":
		if b.query == "" {
			return b.navigate(filepath.Dir(b.dir))
		}
	case "right":
		if cur, ok := b.Current(); ok && cur.Dir {
			return b.navigate(cur.Path)
		}
	case "tab":
		return b.toggle()
	case "enter":
		return b.confirm()
	case "esc", "ctrl+c":
		return Result{Action: ActionCancelled}
	}
	return Result{Action: ActionNone}
}

func (b *Browser) navigate(dir string) Result {
	if dir == b.dir {
		return Result{Action: ActionNone}
	}
	if err := b.Open(dir); err != nil {
		b.err = err
		return Result{Action: ActionNone}
	}
	return Result{Action: ActionNavigated}
}

func (b *Browser) toggle() Result {
	cur, ok := b.Current()
	if !b.opts.Multiple || !ok || !cur.Selectable {
		return Result{Action: ActionNone}
	}
	if i := indexOf(b.selected, cur.Path); i >= 0 {
		b.selected = append(b.selected[:i], b.selected[i+1:]...)
	} else {
		b.selected = append(b.selected, cur.Path)
	}
	if b.cursor < len(b.filtered)-1 {
		b.cursor++
	}
	return Result{Action: ActionToggled}
}

func (b *Browser) confirm() Result {
	cur, ok := b.Current()
	if ok && cur.Dir {
		return b.navigate(cur.Path)
	}
	if b.opts.Multiple && len(b.selected) > 0 {
		return Result{Action: ActionDone, Paths: b.Selected()}
	}
	if ok && cur.Selectable {
		return Result{Action: ActionDone, Paths: []string{cur.Path}}
	}
	return Result{Action: ActionNone}
}

func (b *Browser) rebuildFiltered() {
	q := strings.ToLower(strings.TrimSpace(b.query))
	b.filtered = b.filtered[:0]
	for _, e := range b.entries {
		if q == "" || strings.Contains(strings.ToLower(e.Name), q) {
			b.filtered = append(b.filtered, e)
		}
	}
	if b.cursor >= len(b.filtered) {
		b.cursor = max(0, len(b.filtered)-1)
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
