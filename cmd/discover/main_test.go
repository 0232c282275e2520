package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadSources_Array(t *testing.T) {
	path := writeInput(t, `[{"email": "a@x.com"}, {"email": "b@x.com"}]`)

	sources, err := readSources(path, "upload")
	require.NoError(t, err)

	require.Len(t, sources, 1)
	assert.Len(t, sources["upload"], 2)
}

func TestReadSources_ObjectOfSources(t *testing.T) {
	path := writeInput(t, `{"pos": [{"email": "a@x.com"}], "web": [{"email": "a@x.com"}, {"phone": "4155550100"}]}`)

	sources, err := readSources(path, "upload")
	require.NoError(t, err)

	require.Len(t, sources, 2)
	assert.Len(t, sources["pos"], 1)
	assert.Len(t, sources["web"], 2)
}

func TestReadSources_InvalidShape(t *testing.T) {
	path := writeInput(t, `"just a string"`)

	_, err := readSources(path, "upload")
	assert.Error(t, err)
}

func TestReadSources_MissingFile(t *testing.T) {
	_, err := readSources(filepath.Join(t.TempDir(), "missing.json"), "upload")
	assert.Error(t, err)
}
