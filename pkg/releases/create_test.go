// pkg/releases/create_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test release creation: directory setup, symlink switching, conflicts, dry-run

package releases_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/releases"
	"github.com/mbernath/releasedir/pkg/testutil"
)

func TestCreate_FreshRelease(t *testing.T) {
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	res, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240131093000",
		Symlink:   "current",
	})
	require.NoError(t, err)

	releaseDir := filepath.Join(base, "releases", "release-20240131093000")
	assert.True(t, testutil.DirExists(t, releaseDir))
	testutil.AssertSymlink(t, filepath.Join(base, "current"), releaseDir)

	assert.True(t, res.Changed)
	assert.Equal(t, []string{"release-20240131093000"}, res.Releases)
	current := res.SymlinkedFolders["current"]
	require.NotNil(t, current)
	assert.Equal(t, releaseDir, *current)
}

func TestCreate_ExistingReleaseIsKept(t *testing.T) {
	base, releasesPath := makeTree(t, "release-20240131093000")
	marker := testutil.CreateFile(t,
		filepath.Join(releasesPath, "release-20240131093000"), "app.bin", "payload")

	res, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240131093000",
		Symlink:   "current",
	})
	require.NoError(t, err)

	// Re-creating an existing release must not wipe its contents.
	assert.True(t, testutil.FileExists(t, marker))
	assert.True(t, res.Changed)
	testutil.AssertSymlink(t, filepath.Join(base, "current"),
		filepath.Join(releasesPath, "release-20240131093000"))
}

func TestCreate_RepointsSymlink(t *testing.T) {
	base, releasesPath := makeTree(t)

	_, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240101120000",
		Symlink:   "current",
	})
	require.NoError(t, err)

	res, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240102120000",
		Symlink:   "current",
	})
	require.NoError(t, err)

	testutil.AssertSymlink(t, filepath.Join(base, "current"),
		filepath.Join(releasesPath, "release-20240102120000"))
	assert.Equal(t, []string{
		"release-20240101120000",
		"release-20240102120000",
	}, res.Releases)
}

func TestCreate_ReplacesBrokenSymlink(t *testing.T) {
	base, releasesPath := makeTree(t)
	testutil.CreateSymlink(t,
		filepath.Join(releasesPath, "release-gone"),
		filepath.Join(base, "current"))

	_, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240102120000",
		Symlink:   "current",
	})
	require.NoError(t, err)

	testutil.AssertSymlink(t, filepath.Join(base, "current"),
		filepath.Join(releasesPath, "release-20240102120000"))
}

func TestCreate_SymlinkPathConflict(t *testing.T) {
	base, _ := makeTree(t)
	testutil.CreateFile(t, base, "current", "a real file")

	_, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240102120000",
		Symlink:   "current",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), filepath.Join(base, "current"))

	// The conflicting file survives.
	assert.True(t, testutil.FileExists(t, filepath.Join(base, "current")))
}

func TestCreate_ReleasePathConflict(t *testing.T) {
	base, releasesPath := makeTree(t)
	testutil.CreateFile(t, releasesPath, "release-20240102120000", "in the way")

	_, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240102120000",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConflict))
}

func TestCreate_WithoutSymlink(t *testing.T) {
	base, _ := makeTree(t)

	res, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240102120000",
	})
	require.NoError(t, err)

	testutil.AssertNoFile(t, filepath.Join(base, "current"))
	assert.Empty(t, res.SymlinkedFolders)
}

func TestCreate_DryRunTouchesNothing(t *testing.T) {
	base, releasesPath := makeTree(t, "release-20240101120000")
	testutil.CreateSymlink(t,
		filepath.Join(releasesPath, "release-20240101120000"),
		filepath.Join(base, "current"))
	before := testutil.SnapshotTree(t, base)

	res, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240102120000",
		Symlink:   "current",
		DryRun:    true,
	})
	require.NoError(t, err)

	testutil.AssertTreeUnchanged(t, base, before)

	// The report reflects the untouched disk, not the skipped work.
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"release-20240101120000"}, res.Releases)
	current := res.SymlinkedFolders["current"]
	require.NotNil(t, current)
	assert.Equal(t, filepath.Join(releasesPath, "release-20240101120000"), *current)
}

func TestCreate_DryRunStillDetectsConflicts(t *testing.T) {
	base, _ := makeTree(t)
	testutil.CreateFile(t, base, "current", "a real file")

	_, err := releases.Create(releases.CreateOptions{
		BasePath:  base,
		Timestamp: "20240102120000",
		Symlink:   "current",
		DryRun:    true,
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestCreate_RequiresTimestamp(t *testing.T) {
	base, _ := makeTree(t)

	_, err := releases.Create(releases.CreateOptions{BasePath: base})
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestCreate_ReportsAllWatchedSymlinks(t *testing.T) {
	base, _ := makeTree(t)

	res, err := releases.Create(releases.CreateOptions{
		BasePath:    base,
		Timestamp:   "20240102120000",
		Symlink:     "current",
		SymlinkDirs: []string{"production", "current"},
	})
	require.NoError(t, err)

	require.Len(t, res.SymlinkedFolders, 2)
	assert.NotNil(t, res.SymlinkedFolders["current"])
	assert.Nil(t, res.SymlinkedFolders["production"])
}
