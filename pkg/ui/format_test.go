package ui_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/projman/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{format: ui.FormatAuto, expected: "auto"},
		{format: ui.FormatTerminal, expected: "term"},
		{format: ui.FormatText, expected: "text"},
		{format: ui.FormatJSON, expected: "json"},
		{format: ui.FormatYAML, expected: "yaml"},
		{format: ui.Format(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{input: "", expected: ui.FormatAuto},
		{input: "AUTO", expected: ui.FormatAuto},
		{input: "terminal", expected: ui.FormatTerminal},
		{input: "plain", expected: ui.FormatText},
		{input: "json", expected: ui.FormatJSON},
		{input: "yml", expected: ui.FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectFormat_PipeIsText(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	defer func() { _ = w.Close() }()

	assert.False(t, ui.IsTerminal(w))
	assert.Equal(t, ui.FormatText, ui.DetectFormat(w))
	assert.Equal(t, ui.FormatJSON, ui.Resolve(ui.FormatJSON, w, false))
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, w, false))
}

func TestDetectFormat_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
}

func TestResolve_NoColorDowngradesTerminal(t *testing.T) {
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatTerminal, os.Stdout, true))
	assert.Equal(t, ui.FormatYAML, ui.Resolve(ui.FormatYAML, os.Stdout, true))
}
