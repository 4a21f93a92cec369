// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxNameAttempts is how many counter suffixes are tried before falling
// back to a random one.
const maxNameAttempts = 16

// UniqueName builds the stored name for original at time at:
// "{stem}_{unix}.{ext}". attempt > 0 appends "-{attempt}" to the timestamp
// to step around a name already taken in the same second.
func UniqueName(original string, at time.Time, attempt int) string {
	suffix := strconv.FormatInt(at.Unix(), 10)
	if attempt > 0 {
		suffix += "-" + strconv.Itoa(attempt)
	}
	return joinName(original, suffix)
}

// randomName is the last resort when every counter suffix is taken.
func randomName(original string, at time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return joinName(original, strconv.FormatInt(at.Unix(), 10)+"-"+id)
}

func joinName(original, suffix string) string {
	stem, ext := splitExt(original)
	if ext == "" {
		return stem + "_" + suffix
	}
	return stem + "_" + suffix + "." + ext
}

// splitExt splits off the last extension. Dotfiles and names ending in a
// dot have none.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i+1:]
}
