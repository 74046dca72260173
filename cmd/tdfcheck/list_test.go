package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_Table(t *testing.T) {
	isolate(t)
	root := tdfTree(t)

	out, _, err := execute(t, "list", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "Path")
	assert.Contains(t, lines[2], filepath.Join(root, "ATmega328P.atdf"))
	assert.Contains(t, lines[3], filepath.Join(root, "ATtiny85.atdf"))
	assert.Contains(t, lines[4], filepath.Join(root, "broken", "bad.atdf"))
	assert.NotContains(t, out, "README.md")
	assert.Contains(t, out, "3 file(s)")
}

func TestListCommand_JSON(t *testing.T) {
	isolate(t)
	root := tdfTree(t)

	out, _, err := execute(t, "list", root, "--format", "json", "--exclude", "^broken/")
	require.NoError(t, err)

	var got listing
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, root, got.Root)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []string{
		filepath.Join(root, "ATmega328P.atdf"),
		filepath.Join(root, "ATtiny85.atdf"),
	}, got.Files)
}

func TestListCommand_JSONEmpty(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "list", t.TempDir(), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"files": []`)
}

func TestListCommand_IgnoreFile(t *testing.T) {
	isolate(t)
	root := tdfTree(t)
	writeFile(t, filepath.Join(root, ".tdfignore"), "broken/\n")

	out, _, err := execute(t, "list", root)
	require.NoError(t, err)
	assert.NotContains(t, out, "bad.atdf")
	assert.Contains(t, out, "2 file(s)")
}

func TestListCommand_NoSourceNeeded(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "list", t.TempDir())
	assert.NoError(t, err)
}

func TestListCommand_UnknownFormat(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "list", t.TempDir(), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
