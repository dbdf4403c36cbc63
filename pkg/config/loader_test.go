// pkg/config/loader_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Temp config files, environment variables
// PURPOSE: Test layer precedence: defaults < file < environment < overrides

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbernath/releasedir/pkg/config"
	"github.com/mbernath/releasedir/pkg/errors"
)

// load runs config.Load against an isolated search directory so a
// developer's own config files cannot leak into assertions.
func load(t *testing.T, dir string, overrides map[string]interface{}) (*config.Config, error) {
	t.Helper()
	return config.Load(config.LoadOptions{
		SearchDirs: []string{dir},
		Overrides:  overrides,
	})
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Path)
	assert.Equal(t, "release-", cfg.Prefix)
	assert.Equal(t, "releases", cfg.Subfolder)
	assert.Equal(t, 5, cfg.Keep)
	assert.True(t, cfg.KeepSymlinked)
	assert.Empty(t, cfg.SymlinkDirs)
	assert.Equal(t, "%Y%m%d%H%M%S", cfg.Timestamp.Format)
	assert.Equal(t, "UTC", cfg.Timestamp.Timezone)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".releasedir.toml", `
path = "/srv/app"
keep = 10
symlink_dirs = ["current", "production"]

[timestamp]
timezone = "Europe/Berlin"
`)

	cfg, err := load(t, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/app", cfg.Path)
	assert.Equal(t, 10, cfg.Keep)
	assert.Equal(t, []string{"current", "production"}, cfg.SymlinkDirs)
	assert.Equal(t, "Europe/Berlin", cfg.Timestamp.Timezone)
	// Untouched keys keep their defaults.
	assert.Equal(t, "release-", cfg.Prefix)
	assert.Equal(t, "%Y%m%d%H%M%S", cfg.Timestamp.Format)
}

func TestLoad_DottedFileWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".releasedir.toml", "keep = 7\n")
	writeConfig(t, dir, "releasedir.toml", "keep = 9\n")

	cfg, err := load(t, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Keep)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "deploy.toml", "keep = 3\n")

	cfg, err := config.Load(config.LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Keep)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := config.Load(config.LoadOptions{
		File: filepath.Join(t.TempDir(), "nope.toml"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".releasedir.toml", "keep = [broken\n")

	_, err := load(t, dir, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".releasedir.toml", "keep = 10\n")
	t.Setenv("RELEASEDIR_KEEP", "2")
	t.Setenv("RELEASEDIR_KEEP_SYMLINKED", "false")
	t.Setenv("RELEASEDIR_TIMESTAMP__FORMAT", "%Y%m%d")
	t.Setenv("RELEASEDIR_SYMLINK_DIRS", "current,production")

	cfg, err := load(t, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Keep)
	assert.False(t, cfg.KeepSymlinked)
	assert.Equal(t, "%Y%m%d", cfg.Timestamp.Format)
	assert.Equal(t, []string{"current", "production"}, cfg.SymlinkDirs)
}

func TestLoad_OverridesBeatEverything(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".releasedir.toml", "keep = 10\n")
	t.Setenv("RELEASEDIR_KEEP", "2")

	cfg, err := load(t, dir, map[string]interface{}{
		"keep":             1,
		"timestamp.format": "%Y",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Keep)
	assert.Equal(t, "%Y", cfg.Timestamp.Format)
}

func TestLoad_RejectsNegativeKeep(t *testing.T) {
	t.Setenv("RELEASEDIR_KEEP", "-3")

	_, err := load(t, t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestLoad_RejectsEmptyTimestampFormat(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".releasedir.toml", "[timestamp]\nformat = \"\"\n")

	_, err := load(t, dir, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestDefaultConfigContent(t *testing.T) {
	content := config.DefaultConfigContent()
	assert.Contains(t, content, `prefix = "release-"`)
	assert.Contains(t, content, "[timestamp]")
}

func TestConfig_Marshal(t *testing.T) {
	cfg, err := load(t, t.TempDir(), map[string]interface{}{"path": "/srv/app"})
	require.NoError(t, err)

	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), `path = '/srv/app'`)
	assert.Contains(t, string(out), `keep = 5`)
}
