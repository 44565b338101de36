package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

func TestSettingsCmd_ShowPrintsSections(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[Materials]")
	assert.Contains(t, out, "[Chunking]")
	assert.Contains(t, out, "[Embedding]")
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "Ollama (local)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_ShowReportsValidationWarning(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = &mockSettingsService{
		validateErr: errors.New("embedding provider requires an API key"),
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Warning: embedding provider requires an API key")
}

func TestSettingsCmd_SetChunking(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockSettingsService{}
	settingsService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set-chunking", "300", "30"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Chunking set to 300 words with 30 overlap")

	settings, err := mock.Get()
	require.NoError(t, err)
	assert.Equal(t, 300, settings.Chunking.ChunkSize)
	assert.Equal(t, 30, settings.Chunking.ChunkOverlap)
}

func TestSettingsCmd_SetChunkingRejectsBadValues(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	tests := []struct {
		name string
		args []string
	}{
		{name: "non-numeric size", args: []string{"settings", "set-chunking", "abc", "30"}},
		{name: "zero size", args: []string{"settings", "set-chunking", "0", "30"}},
		{name: "negative overlap", args: []string{"settings", "set-chunking", "300", "-1"}},
		{name: "overlap not below size", args: []string{"settings", "set-chunking", "100", "100"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs(tc.args)
			defer func() {
				rootCmd.SetArgs(nil)
			}()

			err := rootCmd.Execute()

			assert.Error(t, err)
		})
	}
}

func TestSettingsCmd_PathsPrintsCurrent(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defaults := domain.DefaultAppSettings()
	defaults.Materials.Paths = []string{"/home/sam/uni/algorithms"}
	settingsService = &mockSettingsService{settings: &defaults}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "paths"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/home/sam/uni/algorithms")
}

func TestSettingsCmd_PathsSetsDirectories(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockSettingsService{}
	settingsService = mock

	dir := t.TempDir()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "paths", dir})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, mock.savedPaths, 1)
	assert.Equal(t, dir, mock.savedPaths[0])
	assert.Contains(t, buf.String(), "Run 'studymate refresh' to ingest them.")
}

func TestSettingsCmd_PathsRejectsMissingDirectory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "paths", "/does/not/exist"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "short key fully masked", key: "abc", expected: "****"},
		{name: "eight chars fully masked", key: "12345678", expected: "****"},
		{name: "long key keeps edges", key: "sk-abcdefghijklmnop", expected: "sk-a...mnop"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, maskAPIKey(tc.key))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "empty returns default", input: "", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "valid choice", input: "2", maxVal: 3, defaultVal: 1, expected: 2},
		{name: "out of range returns default", input: "9", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "non-numeric returns default", input: "x", maxVal: 3, defaultVal: 1, expected: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseChoice(tc.input, tc.maxVal, tc.defaultVal))
		})
	}
}
