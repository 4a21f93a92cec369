// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "encoding/json"

// Command statuses
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Command is one host invocation read by the command bridge
type Command struct {
	CallbackID string            `json:"callbackId"`
	Service    string            `json:"service,omitempty"` // "Chooser"; empty accepted
	Action     string            `json:"action"`            // "getFiles"
	Args       []json.RawMessage `json:"args"`              // [accept, allowMultiple?]
}

// CommandResult is the single reply to a Command
type CommandResult struct {
	CallbackID string `json:"callbackId"`
	Status     string `json:"status" enums:"OK,ERROR"`
	Message    string `json:"message"` // JSON payload on OK, error text on ERROR
}
