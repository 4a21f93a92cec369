// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leseb/filechooser/pkg/picker"
)

const chromeLines = 6

type model struct {
	browser   *Browser
	input     textinput.Model
	title     string
	maxRows   int
	rows      int
	outcome   picker.Outcome
	submitted bool
}

func newModel(b *Browser, title string, rows int) model {
	inp := textinput.New()
	inp.Placeholder = "type to filter"
	inp.Prompt = "> "
	inp.Focus()
	if rows <= 0 {
		rows = 20
	}
	return model{
		browser: b,
		input:   inp,
		title:   title,
		maxRows: rows,
		rows:    rows,
		outcome: picker.Cancelled(),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rows = max(1, min(m.maxRows, msg.Height-chromeLines))
		return m, nil
	case tea.KeyMsg:
		res := m.browser.HandleKey(msg.String())
		switch res.Action {
		case ActionDone:
			m.outcome = picker.Picked(res.Paths...)
			m.submitted = true
			return m, tea.Quit
		case ActionCancelled:
			m.outcome = picker.Cancelled()
			m.submitted = true
			return m, tea.Quit
		case ActionNavigated:
			m.input.SetValue("")
			return m, nil
		case ActionMoved, ActionToggled:
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.browser.SetQuery(m.input.Value())
	return m, cmd
}

func (m model) View() string {
	if m.submitted {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n")
	sb.WriteString(pathStyle.Render(m.browser.Dir()))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	entries := m.browser.Entries()
	cursor := m.browser.Cursor()
	start := 0
	if cursor >= m.rows {
		start = cursor - m.rows + 1
	}
	end := min(len(entries), start+m.rows)
	if len(entries) == 0 {
		sb.WriteString(helpStyle.Render("  (empty)"))
		sb.WriteString("\n")
	}
	for i := start; i < end; i++ {
		sb.WriteString(m.renderEntry(entries[i], i == cursor))
		sb.WriteString("\n")
	}

	if err := m.browser.Err(); err != nil {
		sb.WriteString(errorStyle.Render(err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render(m.help()))
	return sb.String()
}

func (m model) renderEntry(e Entry, current bool) string {
	prefix := "  "
	if current {
		prefix = cursorStyle.Render("> ")
	}
	mark, pad := "", ""
	if m.browser.Multiple() {
		mark, pad = "[ ] ", "    "
		if m.browser.IsSelected(e.Path) {
			mark = markStyle.Render("[x] ")
		}
	}

	switch {
	case e.Dir:
		return prefix + pad + dirStyle.Render(e.Name+"/")
	case e.Selectable:
		return prefix + mark + fileStyle.Render(e.Name)
	default:
		return prefix + pad + disabledStyle.Render(e.Name)
	}
}

func (m model) help() string {
	if m.browser.Multiple() {
		n := len(m.browser.Selected())
		return fmt.Sprintf("↑/↓ move  → open  ← parent  tab mark  enter done (%d)  esc cancel", n)
	}
	return "↑/↓ move  → open  ← parent  enter pick  esc cancel"
}
