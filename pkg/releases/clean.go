package releases

import (
	"path/filepath"
	"sort"

	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/logging"
	"github.com/mbernath/releasedir/pkg/types"
)

// CleanOptions configures a prune of old releases.
type CleanOptions struct {
	// BasePath is the root of the release tree. Required.
	BasePath string

	// Prefix narrows the candidate set to directories carrying it.
	// Empty means DefaultPrefix.
	Prefix string

	// Subfolder is the directory under BasePath holding the releases.
	// Empty means DefaultSubfolder.
	Subfolder string

	// Keep is how many of the newest releases survive the prune. Zero
	// keeps none; the user-facing default of DefaultKeep is applied by
	// the config layer, not here.
	Keep int

	// KeepSymlinked additionally protects any release a watched
	// symlink points at, regardless of age.
	KeepSymlinked bool

	// SymlinkDirs names the symlinks under BasePath that protect their
	// targets when KeepSymlinked is set.
	SymlinkDirs []string

	// DryRun computes and reports the removal set without deleting
	// anything.
	DryRun bool

	// FileSystem overrides the filesystem to operate on. Nil means the
	// host filesystem.
	FileSystem types.FS
}

func (o CleanOptions) validate() error {
	if o.Keep < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "keep must be zero or positive, got %d", o.Keep)
	}
	return nil
}

// Clean removes release directories beyond the Keep newest, sparing any
// protected by a watched symlink. Removal proceeds newest-to-oldest
// among the doomed and aborts on the first failure; directories already
// removed stay removed.
func Clean(opts CleanOptions) (*Result, error) {
	logger := logging.GetLogger("releases.clean")
	logger.Debug().
		Str("basePath", opts.BasePath).
		Int("keep", opts.Keep).
		Bool("keepSymlinked", opts.KeepSymlinked).
		Bool("dryRun", opts.DryRun).
		Msg("Cleaning release tree")

	if err := opts.validate(); err != nil {
		return nil, err
	}
	t, err := newTree(opts.BasePath, opts.Prefix, opts.Subfolder, opts.FileSystem)
	if err != nil {
		return nil, err
	}
	watched := watchNames(opts.SymlinkDirs, "")

	layoutExists, err := t.ensureLayout(opts.DryRun)
	if err != nil {
		return nil, err
	}

	candidates, err := t.listReleases()
	if err != nil {
		return nil, err
	}

	if opts.KeepSymlinked {
		protected := make(map[string]bool, len(watched))
		for _, name := range watched {
			if target, ok := t.protectedBasename(name); ok {
				protected[target] = true
				logger.Debug().
					Str("symlink", name).
					Str("release", target).
					Msg("Release protected by symlink")
			}
		}
		kept := candidates[:0]
		for _, name := range candidates {
			if !protected[name] {
				kept = append(kept, name)
			}
		}
		candidates = kept
	}

	// Newest first; everything past the Keep mark goes.
	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))
	var doomed []string
	if opts.Keep < len(candidates) {
		doomed = candidates[opts.Keep:]
	}

	if !opts.DryRun {
		for _, name := range doomed {
			dir := filepath.Join(t.releasesPath, name)
			if err := t.fs.RemoveAll(dir); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirRemove, "error removing old release %s", dir).
					WithDetail("path", dir)
			}
			logger.Debug().Str("release", name).Msg("Removed old release")
		}
	}

	res := newResult()
	res.Changed = len(doomed) > 0
	res.RemovedReleases = append(res.RemovedReleases, doomed...)
	if err := t.gatherState(res, watched, layoutExists); err != nil {
		return nil, err
	}

	logger.Info().
		Int("removed", len(doomed)).
		Int("remaining", len(res.Releases)).
		Bool("dryRun", opts.DryRun).
		Msg("Clean complete")
	return res, nil
}
