package releases

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/filesystem"
	"github.com/mbernath/releasedir/pkg/types"
)

// Defaults applied when an options field is left empty. Keep and
// KeepSymlinked are taken literally (zero keeps nothing, false protects
// nothing); their user-facing defaults live in the config layer.
const (
	DefaultPrefix    = "release-"
	DefaultSubfolder = "releases"
	DefaultKeep      = 5
)

// Result is the state report every operation returns. It is gathered
// from the filesystem after the operation's mutations, so it describes
// what is actually on disk, not what was requested. Field names follow
// the wire format consumed by deploy tooling.
type Result struct {
	// Changed reports whether the operation mutated (or, in dry-run,
	// would have mutated) the tree.
	Changed bool `json:"changed"`

	// RemovedReleases lists the release directory names deleted by a
	// clean, newest first. Empty for other operations.
	RemovedReleases []string `json:"removed_releases"`

	// AbsolutePath is the canonical base path.
	AbsolutePath string `json:"absolute_path"`

	// ReleasesPath is the directory holding the release directories.
	ReleasesPath string `json:"releases_path"`

	// SymlinkedFolders maps each watched symlink name to its resolved
	// target path, or to nil when the name is missing, not a symlink,
	// or points at something that no longer exists.
	SymlinkedFolders map[string]*string `json:"symlinked_folders"`

	// Releases lists the release directory names currently present,
	// oldest first.
	Releases []string `json:"releases"`
}

func newResult() *Result {
	return &Result{
		RemovedReleases:  []string{},
		SymlinkedFolders: map[string]*string{},
		Releases:         []string{},
	}
}

// tree is the resolved view of one release directory tree: canonical
// base path, releases path, and the filesystem to operate on.
type tree struct {
	fs           types.FS
	base         string
	releasesPath string
	prefix       string
}

func newTree(basePath, prefix, subfolder string, fsys types.FS) (*tree, error) {
	if basePath == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "base path is required")
	}
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if subfolder == "" {
		subfolder = DefaultSubfolder
	}

	base, err := expandUser(basePath)
	if err != nil {
		return nil, err
	}
	base, err = filepath.Abs(base)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "cannot resolve base path %s", basePath)
	}
	base = canonicalPath(base)

	return &tree{
		fs:           fsys,
		base:         base,
		releasesPath: filepath.Join(base, subfolder),
		prefix:       prefix,
	}, nil
}

// expandUser resolves a leading ~ to the current user's home directory.
func expandUser(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigInvalid, "cannot expand ~ in base path")
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// canonicalPath resolves symlinks in path when it exists on the host
// filesystem, and otherwise returns the cleaned path unchanged. Trees
// on an injected in-memory filesystem take the fallback branch.
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

// watchNames merges the watched symlink names with the symlink being
// set, dropping empties and duplicates while preserving order.
func watchNames(symlinkDirs []string, symlink string) []string {
	seen := make(map[string]bool, len(symlinkDirs)+1)
	names := make([]string, 0, len(symlinkDirs)+1)
	for _, name := range symlinkDirs {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if symlink != "" && !seen[symlink] {
		names = append(names, symlink)
	}
	return names
}

// ensureLayout creates the base and releases directories. In dry-run it
// creates nothing and reports whether the layout already exists, which
// downstream steps use to decide whether there is any state to gather.
func (t *tree) ensureLayout(dryRun bool) (bool, error) {
	if dryRun {
		return t.isDir(t.base) && t.isDir(t.releasesPath), nil
	}
	if err := t.fs.MkdirAll(t.base, 0o755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "error creating base directory %s", t.base).
			WithDetail("path", t.base)
	}
	if err := t.fs.MkdirAll(t.releasesPath, 0o755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "error creating releases directory %s", t.releasesPath).
			WithDetail("path", t.releasesPath)
	}
	return true, nil
}

func (t *tree) isDir(path string) bool {
	info, err := t.fs.Stat(path)
	return err == nil && info.IsDir()
}

// listReleases enumerates the release directory names: entries of the
// releases path whose name carries the prefix and which are real
// directories, not symlinks. A missing releases path yields an empty
// list, not an error.
func (t *tree) listReleases() ([]string, error) {
	entries, err := t.fs.ReadDir(t.releasesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "error reading releases directory %s", t.releasesPath).
			WithDetail("path", t.releasesPath)
	}

	var names []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), t.prefix) {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if !entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// joinTarget interprets raw symlink content relative to the base path.
// Absolute targets are taken as-is.
func (t *tree) joinTarget(target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(t.base, target)
}

// protectedBasename resolves the watched symlink name to the release
// directory it references. The boolean is false when the name is
// missing, not a symlink, or points outside the releases path; callers
// treat that as "protects nothing", never as an error.
func (t *tree) protectedBasename(name string) (string, bool) {
	target, err := t.fs.Readlink(filepath.Join(t.base, name))
	if err != nil {
		return "", false
	}
	resolved := t.joinTarget(target)
	if filepath.Dir(resolved) != t.releasesPath {
		return "", false
	}
	return filepath.Base(resolved), true
}

// resolveTarget resolves a watched symlink for reporting: the joined
// target path when the link exists and its target does too, or false
// for anything unresolvable.
func (t *tree) resolveTarget(name string) (string, bool) {
	target, err := t.fs.Readlink(filepath.Join(t.base, name))
	if err != nil {
		return "", false
	}
	resolved := t.joinTarget(target)
	if _, err := t.fs.Stat(resolved); err != nil {
		return "", false
	}
	return resolved, true
}

// gatherState fills the report fields of res from the live tree. When
// the layout does not exist (dry-run against an empty disk) the listing
// and symlink maps stay empty rather than erroring.
func (t *tree) gatherState(res *Result, watched []string, layoutExists bool) error {
	res.AbsolutePath = t.base
	res.ReleasesPath = t.releasesPath
	if !layoutExists {
		return nil
	}

	names, err := t.listReleases()
	if err != nil {
		return err
	}
	sort.Strings(names)
	res.Releases = append(res.Releases, names...)

	for _, name := range watched {
		if resolved, ok := t.resolveTarget(name); ok {
			res.SymlinkedFolders[name] = &resolved
		} else {
			res.SymlinkedFolders[name] = nil
		}
	}
	return nil
}
