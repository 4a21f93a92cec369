// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidRequest is returned (wrapped) for malformed command input.
var ErrInvalidRequest = errors.New("invalid request")

// MaxPatternLength bounds a single accepted MIME pattern.
const MaxPatternLength = 255

var printable = regexp.MustCompile(`^[^\x00-\x1f\x7f]+$`)

// PickRequest is one validated getFiles invocation.
type PickRequest struct {
	Accept        []string // Accepted MIME patterns, in caller order
	AllowMultiple bool     // Defaults to false
}

// Validate checks the request shape. Pattern contents are not judged: an
// unknown or nonsensical pattern still resolves to the generic filter.
func (r PickRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Accept,
			validation.Required,
			validation.Each(
				validation.Required,
				validation.Length(1, MaxPatternLength),
				validation.Match(printable),
			),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// SplitAccept splits a comma-separated accept string, trimming whitespace
// and dropping empty entries.
func SplitAccept(accept string) []string {
	parts := strings.Split(accept, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseArgs builds a PickRequest from positional command arguments:
// args[0] is the accept string (required), args[1] the optional
// allowMultiple flag (false when missing or null).
func ParseArgs(args []json.RawMessage) (PickRequest, error) {
	if len(args) == 0 {
		return PickRequest{}, fmt.Errorf("%w: accept: cannot be blank", ErrInvalidRequest)
	}

	var accept string
	if err := json.Unmarshal(args[0], &accept); err != nil {
		return PickRequest{}, fmt.Errorf("%w: accept: must be a string", ErrInvalidRequest)
	}

	req := PickRequest{Accept: SplitAccept(accept)}

	if len(args) > 1 && !isNull(args[1]) {
		if err := json.Unmarshal(args[1], &req.AllowMultiple); err != nil {
			return PickRequest{}, fmt.Errorf("%w: allowMultiple: must be a boolean", ErrInvalidRequest)
		}
	}

	if err := req.Validate(); err != nil {
		return PickRequest{}, err
	}
	return req, nil
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
