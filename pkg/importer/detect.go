// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"github.com/leseb/filechooser/pkg/uttype"
)

// DetectMediaType maps a file name to a MIME type through its extension.
// Unknown extensions yield application/octet-stream.
func DetectMediaType(types *uttype.Registry, name string) string {
	_, ext := splitExt(name)
	if ext == "" {
		return uttype.OctetStream
	}
	if mt, ok := types.PreferredMIMEType(types.IdentifierForExtension(ext)); ok {
		return mt
	}
	return uttype.OctetStream
}
