package releases_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTree creates a base directory containing a releases subfolder
// with the given release directories. The base path is returned with
// symlinks resolved so assertions can compare reported paths literally.
func makeTree(t *testing.T, names ...string) (base, releasesPath string) {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	releasesPath = filepath.Join(base, "releases")
	require.NoError(t, os.MkdirAll(releasesPath, 0o755))
	for _, name := range names {
		require.NoError(t, os.Mkdir(filepath.Join(releasesPath, name), 0o755))
	}
	return base, releasesPath
}
