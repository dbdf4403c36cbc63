// Package releases manages a Capistrano-style release directory tree:
// a base path holding a subfolder of timestamped release directories
// plus a set of named symlinks ("current", "production", ...) pointing
// at individual releases.
//
// The layout produced is
//
//	<base>/<subfolder>/<prefix><timestamp>/   release directories
//	<base>/<name>                             named symlinks into the subfolder
//
// Three operations are provided, each a pure value-in/value-out
// function: Query reports the current state, Create ensures a release
// directory exists and optionally points a named symlink at it, and
// Clean prunes old releases while protecting any still referenced by a
// watched symlink. Every operation returns the same Result record,
// gathered from the live filesystem after the requested mutation so the
// report reflects post-operation reality.
//
// Timestamps are opaque tokens; the only contract is that they sort
// lexicographically in chronological order (e.g. 20240131093000).
// Release directory names are prefix+timestamp, so newest-first is a
// plain descending string sort.
//
// Symlink replacement is remove-then-create: there is a brief window
// during Create in which the named symlink is absent. The release
// directory underneath is never removed during a create, so the link
// never points at a missing path once the operation returns.
//
// All operations are synchronous and single-writer: the package takes
// no locks and assumes nothing else mutates the tree during a call.
package releases
