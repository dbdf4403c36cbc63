// pkg/display/renderer_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None (renders into buffers)
// PURPOSE: Test report rendering in text and JSON formats

package display_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbernath/releasedir/pkg/config"
	"github.com/mbernath/releasedir/pkg/display"
	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/releases"
	"github.com/mbernath/releasedir/pkg/ui"
)

func sampleResult() *releases.Result {
	target := "/srv/app/releases/release-20240102120000"
	return &releases.Result{
		Changed:         true,
		RemovedReleases: []string{"release-20240101120000"},
		AbsolutePath:    "/srv/app",
		ReleasesPath:    "/srv/app/releases",
		SymlinkedFolders: map[string]*string{
			"current":    &target,
			"production": nil,
		},
		Releases: []string{
			"release-20240102120000",
			"release-20240103120000",
		},
	}
}

func TestRenderResult_Text(t *testing.T) {
	var buf bytes.Buffer
	r := display.NewRenderer(&buf, ui.FormatText)

	require.NoError(t, r.RenderResult("clean", sampleResult(), false))
	out := buf.String()

	assert.Contains(t, out, "clean /srv/app")
	assert.Contains(t, out, "releases path: /srv/app/releases")
	assert.Contains(t, out, "releases (2):")
	// The release current points at is annotated.
	assert.Contains(t, out, "release-20240102120000 (current)")
	assert.Contains(t, out, "removed (1):")
	assert.Contains(t, out, "release-20240101120000")
	assert.Contains(t, out, "current -> /srv/app/releases/release-20240102120000")
	assert.Contains(t, out, "production: (unresolved)")
	assert.Contains(t, out, "changed: yes")
	assert.NotContains(t, out, "\x1b[", "text format must not contain ANSI escapes")
}

func TestRenderResult_TextDryRun(t *testing.T) {
	var buf bytes.Buffer
	r := display.NewRenderer(&buf, ui.FormatText)

	require.NoError(t, r.RenderResult("clean", sampleResult(), true))
	out := buf.String()

	assert.Contains(t, out, "(dry run)")
	assert.Contains(t, out, "would remove (1):")
	assert.Contains(t, out, "changed: yes (dry run)")
}

func TestRenderResult_EmptyTree(t *testing.T) {
	var buf bytes.Buffer
	r := display.NewRenderer(&buf, ui.FormatText)

	res := &releases.Result{
		AbsolutePath:     "/srv/app",
		ReleasesPath:     "/srv/app/releases",
		RemovedReleases:  []string{},
		Releases:         []string{},
		SymlinkedFolders: map[string]*string{},
	}
	require.NoError(t, r.RenderResult("status", res, false))
	out := buf.String()

	assert.Contains(t, out, "releases: none")
	assert.Contains(t, out, "changed: no")
	assert.NotContains(t, out, "removed")
	assert.NotContains(t, out, "symlinks:")
}

func TestRenderResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := display.NewRenderer(&buf, ui.FormatJSON)

	require.NoError(t, r.RenderResult("clean", sampleResult(), false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, true, decoded["changed"])
	assert.Equal(t, "/srv/app", decoded["absolute_path"])
	assert.Equal(t, "/srv/app/releases", decoded["releases_path"])

	removed, ok := decoded["removed_releases"].([]interface{})
	require.True(t, ok)
	assert.Len(t, removed, 1)

	linked, ok := decoded["symlinked_folders"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/srv/app/releases/release-20240102120000", linked["current"])
	assert.Nil(t, linked["production"])
}

func TestRenderTimestamp(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.NewRenderer(&buf, ui.FormatText).RenderTimestamp("20240131093000"))
	assert.Equal(t, "20240131093000\n", buf.String())

	buf.Reset()
	require.NoError(t, display.NewRenderer(&buf, ui.FormatJSON).RenderTimestamp("20240131093000"))
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "20240131093000", decoded["timestamp"])
}

func TestRenderConfig(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{
		SearchDirs: []string{t.TempDir()},
		Overrides:  map[string]interface{}{"path": "/srv/app"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, display.NewRenderer(&buf, ui.FormatText).RenderConfig(cfg))
	assert.Contains(t, buf.String(), "path = '/srv/app'")

	buf.Reset()
	require.NoError(t, display.NewRenderer(&buf, ui.FormatJSON).RenderConfig(cfg))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/srv/app", decoded["path"])
}

func TestRenderError(t *testing.T) {
	opErr := errors.New(errors.ErrConflict, "symlink path exists but is not a symlink: /srv/app/current")

	var buf bytes.Buffer
	require.NoError(t, display.NewRenderer(&buf, ui.FormatText).RenderError(opErr))
	assert.True(t, strings.HasPrefix(buf.String(), "Error: "))

	buf.Reset()
	require.NoError(t, display.NewRenderer(&buf, ui.FormatJSON).RenderError(opErr))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["failed"])
	assert.Equal(t, "CONFLICT", decoded["code"])
	assert.Contains(t, decoded["msg"], "not a symlink")
}
