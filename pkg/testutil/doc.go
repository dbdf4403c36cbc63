// Package testutil provides common test helpers for releasedir tests.
//
// The helpers cover filesystem fixture setup (directories, files,
// symlinks), assertions about the resulting tree, and whole-tree
// snapshots used to verify that dry-run operations leave the
// filesystem untouched.
package testutil
