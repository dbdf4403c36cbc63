package releases

import (
	"github.com/mbernath/releasedir/pkg/logging"
	"github.com/mbernath/releasedir/pkg/types"
)

// QueryOptions configures a state query.
type QueryOptions struct {
	// BasePath is the root of the release tree. Required. A leading ~
	// is expanded to the caller's home directory.
	BasePath string

	// Prefix narrows enumeration to directories carrying it. Empty
	// means DefaultPrefix.
	Prefix string

	// Subfolder is the directory under BasePath holding the releases.
	// Empty means DefaultSubfolder.
	Subfolder string

	// SymlinkDirs names the symlinks under BasePath to resolve in the
	// report.
	SymlinkDirs []string

	// DryRun suppresses the implicit creation of the base structure.
	DryRun bool

	// FileSystem overrides the filesystem to operate on. Nil means the
	// host filesystem.
	FileSystem types.FS
}

// Query reports the current state of the release tree without touching
// any release or symlink. Outside dry-run it still ensures the base
// structure exists, so querying a fresh path brings up the layout.
func Query(opts QueryOptions) (*Result, error) {
	logger := logging.GetLogger("releases.query")
	logger.Debug().
		Str("basePath", opts.BasePath).
		Bool("dryRun", opts.DryRun).
		Msg("Querying release tree")

	t, err := newTree(opts.BasePath, opts.Prefix, opts.Subfolder, opts.FileSystem)
	if err != nil {
		return nil, err
	}

	layoutExists, err := t.ensureLayout(opts.DryRun)
	if err != nil {
		return nil, err
	}

	res := newResult()
	if err := t.gatherState(res, watchNames(opts.SymlinkDirs, ""), layoutExists); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("releases", len(res.Releases)).
		Msg("Query complete")
	return res, nil
}
