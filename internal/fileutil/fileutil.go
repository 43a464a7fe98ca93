// Package fileutil holds the file modes used when jsonvalidator writes to
// the filesystem.
package fileutil

import "os"

// OwnerReadWrite is the mode for schema and instance documents, which may
// hold sensitive data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// DirReadableByAll is the mode for directories created to hold documents.
const DirReadableByAll os.FileMode = 0o755
