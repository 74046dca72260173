package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avr-tooling/tdfcheck/pkg/config"
	"github.com/avr-tooling/tdfcheck/pkg/tdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Flags(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"validate"})
	require.NoError(t, err)

	tests := []struct {
		name string
		def  string
	}{
		{"ext", "[.atdf]"},
		{"include", ""},
		{"exclude", ""},
		{"ignore-file", ".tdfignore"},
		{"include-hidden", "false"},
		{"exec", ""},
		{"timeout", "30s"},
		{"manifest", ""},
		{"format", "text"},
		{"color", "auto"},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "--%s flag should exist", tt.name)
		assert.Equal(t, tt.def, flag.DefValue, "--%s default", tt.name)
	}
}

func TestValidateCommand_AllPass(t *testing.T) {
	isolate(t)
	root := tdfTree(t)

	out, _, err := execute(t, "validate", root, "--exec", checkerScript(t), "--exclude", "^broken/")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Loading target description files.\n"))
	assert.Contains(t, out, "Validation for "+filepath.Join(root, "ATmega328P.atdf")+" passed.\n")
	assert.Contains(t, out, "Validation for "+filepath.Join(root, "ATtiny85.atdf")+" passed.\n")
	assert.NotContains(t, out, "README.md")
	assert.Contains(t, out, "\n\nValidated 2 TDFs. 0 failure(s).\n")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
}

func TestValidateCommand_Failure(t *testing.T) {
	isolate(t)
	root := tdfTree(t)

	out, _, err := execute(t, "validate", root, "--exec", checkerScript(t))
	require.ErrorIs(t, err, errValidationFailed)

	bad := filepath.Join(root, "broken", "bad.atdf")
	assert.Contains(t, out, "Validation for "+bad+" failed.\n2 error(s) found:\n")
	assert.Contains(t, out, "Missing register X\n")
	assert.Contains(t, out, "Invalid address range\n")
	assert.Contains(t, out, "Validated 3 TDFs. 1 failure(s).")
	assert.Equal(t, 3, strings.Count(out, "Validation for "))
}

func TestValidateCommand_Quiet(t *testing.T) {
	isolate(t)
	root := tdfTree(t)

	out, _, err := execute(t, "validate", root, "--exec", checkerScript(t), "-q")
	require.ErrorIs(t, err, errValidationFailed)

	assert.NotContains(t, out, "Loading target description files.")
	assert.NotContains(t, out, "passed.")
	assert.NotContains(t, out, "Done")
	assert.Contains(t, out, "bad.atdf failed.")
	assert.Contains(t, out, "Validated 3 TDFs. 1 failure(s).")
}

func TestValidateCommand_ManifestJSON(t *testing.T) {
	wd := isolate(t)
	manifest := filepath.Join(wd, "results.yaml")
	writeFile(t, manifest, `results:
  - file: atdf/ATmega328P.atdf
  - file: atdf/ATtiny85.atdf
    failures:
      - Missing register X
`)

	out, _, err := execute(t, "validate", "--manifest", manifest, "--format", "json")
	require.ErrorIs(t, err, errValidationFailed)
	assert.NotContains(t, out, "Loading", "progress lines are text-only")

	var doc struct {
		Total   int  `json:"total"`
		Failed  int  `json:"failed"`
		Passed  bool `json:"passed"`
		Results []struct {
			ID       string   `json:"id"`
			Failures []string `json:"failures"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Total)
	assert.Equal(t, 1, doc.Failed)
	assert.False(t, doc.Passed)
	require.Len(t, doc.Results, 2)
	assert.Equal(t, "atdf/ATtiny85.atdf", doc.Results[1].ID)
	assert.Equal(t, []string{"Missing register X"}, doc.Results[1].Failures)
}

func TestValidateCommand_ManifestFiltered(t *testing.T) {
	wd := isolate(t)
	manifest := filepath.Join(wd, "results.yaml")
	writeFile(t, manifest, `results:
  - file: atdf/ATmega328P.atdf
  - file: atdf/old/ATtiny85.atdf
    failures: [stale]
`)

	out, _, err := execute(t, "validate", "--manifest", manifest, "--exclude", "/old/")
	require.NoError(t, err)
	assert.Contains(t, out, "Validated 1 TDFs. 0 failure(s).")
}

func TestValidateCommand_Markdown(t *testing.T) {
	wd := isolate(t)
	manifest := filepath.Join(wd, "results.yaml")
	writeFile(t, manifest, "results:\n  - file: a.atdf\n")

	out, _, err := execute(t, "validate", "--manifest", manifest, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Target Description File Validation")
	assert.NotContains(t, out, "Done")
}

func TestValidateCommand_SARIF(t *testing.T) {
	wd := isolate(t)
	manifest := filepath.Join(wd, "results.yaml")
	writeFile(t, manifest, "results:\n  - file: a.atdf\n    failures: [Missing register X]\n")

	out, _, err := execute(t, "validate", "--manifest", manifest, "--format", "sarif")
	require.ErrorIs(t, err, errValidationFailed)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc["version"])
	assert.Contains(t, out, "Missing register X")
}

func TestValidateCommand_NoSource(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "validate", t.TempDir())
	assert.ErrorIs(t, err, config.ErrNoSource)
}

func TestValidateCommand_ConflictingSources(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "validate", "--exec", "true", "--manifest", "results.yaml")
	assert.ErrorIs(t, err, config.ErrConflictingSources)
}

func TestValidateCommand_InvalidFormat(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "validate", "--manifest", "results.yaml", "--format", "xml")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidateCommand_MissingRoot(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "missing")

	out, _, err := execute(t, "validate", missing, "--exec", "true")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errValidationFailed)
	assert.Contains(t, err.Error(), "loading target description files")
	assert.NotContains(t, out, "Validated", "no report is written when loading fails")
}

func TestValidateCommand_RootIsFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "ATtiny85.atdf")
	writeFile(t, file, "<avr/>")

	_, _, err := execute(t, "validate", file, "--exec", "true")
	assert.ErrorIs(t, err, tdf.ErrNotDirectory)
}

func TestValidateCommand_ConfigFile(t *testing.T) {
	wd := isolate(t)
	root := tdfTree(t)
	writeFile(t, filepath.Join(wd, config.DefaultConfigFile), "root: "+root+"\n"+
		"exclude: [\"^broken/\"]\n"+
		"validator:\n  command: ["+strings.Join(strings.Fields(checkerScript(t)), ", ")+"]\n")

	out, _, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Validated 2 TDFs. 0 failure(s).")
}

func TestValidateCommand_FlagOverridesConfigSource(t *testing.T) {
	wd := isolate(t)
	writeFile(t, filepath.Join(wd, config.DefaultConfigFile), "validator:\n  command: [false]\n")
	manifest := filepath.Join(wd, "results.yaml")
	writeFile(t, manifest, "results:\n  - file: a.atdf\n")

	out, _, err := execute(t, "validate", "--manifest", manifest)
	require.NoError(t, err, "--manifest replaces the configured validator command")
	assert.Contains(t, out, "Validated 1 TDFs. 0 failure(s).")
}

func TestValidateCommand_ExplicitConfigMissing(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "validate", "--config", "nope.yaml", "--exec", "true")
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}
