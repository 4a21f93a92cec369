// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package importer

import "os"

// Advisory locks are not available here; the open handle is the grant.
func tryLock(*os.File) (bool, error) { return true, nil }

func unlock(*os.File) error { return nil }
