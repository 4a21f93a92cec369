// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"net/url"
	"path/filepath"
)

// FileDescriptor describes one imported file as delivered to the caller
type FileDescriptor struct {
	MediaType string `json:"mediaType"` // Detected MIME type, never empty
	Name      string `json:"name"`      // Final file name, including the unique suffix
	URI       string `json:"uri"`       // file:// URI of the imported copy
}

// Resource is an externally owned file handed over by a picker. It is only
// borrowed: the importer reads it under an access grant and never keeps it.
type Resource struct {
	Path string // Absolute path to the external file
}

// Name returns the final path element of the resource.
func (r Resource) Name() string {
	return filepath.Base(r.Path)
}

// URI returns the resource location as a file:// URI.
func (r Resource) URI() string {
	return FileURI(r.Path)
}

// FileURI converts a filesystem path to a file:// URI.
func FileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
