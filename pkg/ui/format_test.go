// pkg/ui/format_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test output format parsing and resolution

package ui_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/ui"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
	}{
		{input: "", expected: ui.FormatAuto},
		{input: "auto", expected: ui.FormatAuto},
		{input: "term", expected: ui.FormatTerminal},
		{input: "terminal", expected: ui.FormatTerminal},
		{input: "TEXT", expected: ui.FormatText},
		{input: "plain", expected: ui.FormatText},
		{input: "json", expected: ui.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFormat_Unknown(t *testing.T) {
	_, err := ui.ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "term", ui.FormatTerminal.String())
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "json", ui.FormatJSON.String())
}

func TestResolve_ExplicitFormatsStay(t *testing.T) {
	assert.Equal(t, ui.FormatJSON, ui.FormatJSON.Resolve(os.Stdout))
	assert.Equal(t, ui.FormatText, ui.FormatText.Resolve(os.Stdout))
	assert.Equal(t, ui.FormatTerminal, ui.FormatTerminal.Resolve(os.Stdout))
}

func TestDetectFormat_PipedOutput(t *testing.T) {
	// A regular file is not a terminal, so detection falls back to
	// plain text.
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
}

func TestDetectFormat_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
}
