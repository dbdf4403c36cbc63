// Package display renders operation results for humans and machines.
// Terminal and plain-text formats share one report layout. JSON output
// is the bare result record with its stable wire field names (changed,
// releases, removed_releases, symlinked_folders, ...), so scripted
// consumers can parse it without caring which command produced it.
package display
