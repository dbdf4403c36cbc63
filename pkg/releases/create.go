package releases

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/logging"
	"github.com/mbernath/releasedir/pkg/types"
)

// CreateOptions configures a create-and-link.
type CreateOptions struct {
	// BasePath is the root of the release tree. Required.
	BasePath string

	// Prefix is prepended to Timestamp to form the release directory
	// name. Empty means DefaultPrefix.
	Prefix string

	// Subfolder is the directory under BasePath holding the releases.
	// Empty means DefaultSubfolder.
	Subfolder string

	// Timestamp names the release being created. Required. Timestamps
	// must sort lexicographically in chronological order.
	Timestamp string

	// Symlink, when set, is the name of a symlink under BasePath to
	// point at the new release. An existing symlink of that name is
	// replaced; anything else at that path is a conflict.
	Symlink string

	// SymlinkDirs names additional symlinks under BasePath to resolve
	// in the report. Symlink is always included.
	SymlinkDirs []string

	// DryRun runs the conflict checks and reports what would happen
	// without creating or replacing anything.
	DryRun bool

	// FileSystem overrides the filesystem to operate on. Nil means the
	// host filesystem.
	FileSystem types.FS
}

func (o CreateOptions) validate() error {
	if o.Timestamp == "" {
		return errors.New(errors.ErrConfigInvalid, "timestamp is required to create a release")
	}
	return nil
}

// Create ensures the release directory for Timestamp exists and, when
// Symlink is set, points that symlink at it. Creating an already
// existing release is a no-op for the directory; the symlink is still
// repointed. The symlink swap is remove-then-create, so a reader can
// observe a brief window with no link, but never a link to a missing
// path.
func Create(opts CreateOptions) (*Result, error) {
	logger := logging.GetLogger("releases.create")
	logger.Debug().
		Str("basePath", opts.BasePath).
		Str("timestamp", opts.Timestamp).
		Str("symlink", opts.Symlink).
		Bool("dryRun", opts.DryRun).
		Msg("Creating release")

	if err := opts.validate(); err != nil {
		return nil, err
	}
	t, err := newTree(opts.BasePath, opts.Prefix, opts.Subfolder, opts.FileSystem)
	if err != nil {
		return nil, err
	}
	watched := watchNames(opts.SymlinkDirs, opts.Symlink)

	layoutExists, err := t.ensureLayout(opts.DryRun)
	if err != nil {
		return nil, err
	}

	releaseDir := filepath.Join(t.releasesPath, t.prefix+opts.Timestamp)

	// Conflict checks run in dry-run too.
	if info, err := t.fs.Stat(releaseDir); err == nil && !info.IsDir() {
		return nil, errors.Newf(errors.ErrConflict, "release path exists but is not a directory: %s", releaseDir).
			WithDetail("path", releaseDir)
	}

	if !opts.DryRun {
		if err := t.fs.MkdirAll(releaseDir, 0o755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "error creating release directory %s", releaseDir).
				WithDetail("path", releaseDir)
		}
	}

	if opts.Symlink != "" {
		if err := t.setSymlink(opts.Symlink, releaseDir, opts.DryRun, logger); err != nil {
			return nil, err
		}
	}

	res := newResult()
	res.Changed = true
	if err := t.gatherState(res, watched, layoutExists); err != nil {
		return nil, err
	}

	logger.Info().
		Str("release", t.prefix+opts.Timestamp).
		Str("symlink", opts.Symlink).
		Bool("dryRun", opts.DryRun).
		Msg("Release created")
	return res, nil
}

// setSymlink points base/name at target, replacing an existing symlink
// of that name. A non-symlink occupying the name is a conflict.
func (t *tree) setSymlink(name, target string, dryRun bool, logger zerolog.Logger) error {
	linkPath := filepath.Join(t.base, name)

	info, err := t.fs.Lstat(linkPath)
	exists := err == nil
	if exists && info.Mode()&os.ModeSymlink == 0 {
		return errors.Newf(errors.ErrConflict, "symlink path exists but is not a symlink: %s", linkPath).
			WithDetail("path", linkPath)
	}

	if dryRun {
		return nil
	}

	if exists {
		if err := t.fs.Remove(linkPath); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "error replacing symlink %s", linkPath).
				WithDetail("path", linkPath)
		}
		logger.Debug().Str("symlink", name).Msg("Replacing existing symlink")
	}
	if err := t.fs.Symlink(target, linkPath); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "error creating symlink %s", linkPath).
			WithDetail("path", linkPath).
			WithDetail("target", target)
	}
	return nil
}
