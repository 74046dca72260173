package sarif

import (
	"encoding/json"
	"testing"

	"github.com/avr-tooling/tdfcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	report := NewReport("1.2.3")

	assert.Equal(t, SchemaURI, report.Schema)
	assert.Equal(t, Version, report.Version)
	require.Len(t, report.Runs, 1)
	assert.Equal(t, ToolName, report.Runs[0].Tool.Driver.Name)
	assert.Equal(t, "1.2.3", report.Runs[0].Tool.Driver.Version)
	require.Len(t, report.Runs[0].Tool.Driver.Rules, 1)
	assert.Equal(t, RuleID, report.Runs[0].Tool.Driver.Rules[0].ID)
	assert.NotNil(t, report.Runs[0].Results)
	assert.Empty(t, report.Runs[0].Results)
}

func TestAddItem_Failed(t *testing.T) {
	report := NewReport("dev")
	report.AddItem(types.ItemResult{
		ID:       "atdf/ATtiny85.atdf",
		Failures: []types.Failure{"Missing register X", "Invalid address range"},
	})

	results := report.Runs[0].Results
	require.Len(t, results, 2)
	for i, want := range []string{"Missing register X", "Invalid address range"} {
		assert.Equal(t, RuleID, results[i].RuleID)
		assert.Equal(t, KindFail, results[i].Kind)
		assert.Equal(t, LevelError, results[i].Level)
		assert.Equal(t, want, results[i].Message.Text)
		assert.Equal(t, "atdf/ATtiny85.atdf", results[i].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	}
}

func TestAddItem_Passed(t *testing.T) {
	report := NewReport("dev")
	report.AddItem(types.ItemResult{ID: "a.atdf"})

	results := report.Runs[0].Results
	require.Len(t, results, 1)
	assert.Equal(t, KindPass, results[0].Kind)
	assert.Equal(t, LevelNone, results[0].Level)
	assert.Equal(t, "Validation for a.atdf passed.", results[0].Message.Text)
}

func TestFromBatch(t *testing.T) {
	b := types.NewBatchReport(3)
	b.Add(types.ItemResult{ID: "a.atdf"})
	b.Add(types.ItemResult{ID: "b.atdf", Failures: []types.Failure{"x", "y"}})
	b.Add(types.ItemResult{ID: "c.atdf"})

	report := FromBatch(b, "dev")
	run := report.Runs[0]

	require.Len(t, run.Results, 4)
	assert.Equal(t, "a.atdf", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "b.atdf", run.Results[1].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "b.atdf", run.Results[2].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "c.atdf", run.Results[3].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 3, run.Properties["total"])
	assert.Equal(t, 1, run.Properties["failed"])
	assert.Equal(t, false, run.Properties["passed"])
}

func TestToJSON(t *testing.T) {
	b := types.NewBatchReport(1)
	b.Add(types.ItemResult{ID: "b.atdf", Failures: []types.Failure{"Missing register X"}})

	data, err := FromBatch(b, "dev").ToJSON()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, SchemaURI, parsed["$schema"])
	assert.Equal(t, Version, parsed["version"])

	runs := parsed["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)
	results := run["results"].([]any)
	require.Len(t, results, 1)
	result := results[0].(map[string]any)
	assert.Equal(t, "fail", result["kind"])
	assert.Equal(t, "error", result["level"])
	assert.NotContains(t, string(data), "region")
}

func TestFormatFileURI(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative", "atdf/ATtiny85.atdf", "atdf/ATtiny85.atdf"},
		{"dot relative", "./a.atdf", "./a.atdf"},
		{"absolute", "/home/dev/atdf/a.atdf", "file:///home/dev/atdf/a.atdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFileURI(tt.path))
		})
	}
}
