// Package filesystem provides filesystem implementations for releasedir.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero adapter used in tests.
package filesystem
