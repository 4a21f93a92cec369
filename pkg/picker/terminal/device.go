// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ControllingTTY is the process's controlling terminal on unix systems.
const ControllingTTY = "/dev/tty"

// ErrNoTerminal is returned when there is nothing to draw the picker on.
var ErrNoTerminal = errors.New("no terminal available for the picker; use -picker static")

// Device picks the terminal the picker should use. With stdioOK set and
// stdin and stderr both attached to a terminal it returns "", meaning the
// standard streams. Otherwise it falls back to the controlling terminal.
func Device(stdioOK bool) (string, error) {
	if stdioOK && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd())) {
		return "", nil
	}
	f, err := os.OpenFile(ControllingTTY, os.O_RDWR, 0)
	if err != nil {
		return "", ErrNoTerminal
	}
	f.Close()
	return ControllingTTY, nil
}
