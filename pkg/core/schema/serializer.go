// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
)

// Serializer turns the ordered descriptor list into the success payload.
type Serializer interface {
	Serialize(files []FileDescriptor) (string, error)
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc func(files []FileDescriptor) (string, error)

// Serialize implements Serializer.
func (f SerializerFunc) Serialize(files []FileDescriptor) (string, error) {
	return f(files)
}

// JSONSerializer encodes descriptors as a JSON array.
type JSONSerializer struct{}

// Serialize implements Serializer. An empty selection encodes as [].
func (JSONSerializer) Serialize(files []FileDescriptor) (string, error) {
	if files == nil {
		files = []FileDescriptor{}
	}
	data, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("marshal files: %w", err)
	}
	return string(data), nil
}
