// Package sarif converts batch validation results to SARIF 2.1.0, the format
// read by code-scanning dashboards.
package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "tdfcheck"
)

// RuleID identifies validation results. The validity rules themselves live
// in the external validator, so there is a single rule.
const RuleID = "tdf/validation"

// Result kinds and levels used by tdfcheck.
const (
	KindPass   = "pass"
	KindFail   = "fail"
	LevelError = "error"
	LevelNone  = "none"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool       Tool           `json:"tool"`
	Results    []Result       `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes what a result reports on
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result is one validation error, or one passed file
type Result struct {
	RuleID    string     `json:"ruleId"`
	Kind      string     `json:"kind"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes which file a result is about
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies the file. Validators report no positions, so
// there is no region.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// NewReport creates a report with a single run and the validation rule.
func NewReport(toolVersion string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules: []Rule{
							{
								ID:   RuleID,
								Name: "TargetDescriptionFileValidation",
								ShortDescription: ShortDescription{
									Text: "Target description file fails external validation",
								},
							},
						},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddItem adds the results for one item: one fail result per failure, or a
// single pass result when there are none.
func (r *Report) AddItem(res types.ItemResult) {
	loc := []Location{
		{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: formatFileURI(res.ID)},
			},
		},
	}

	run := &r.Runs[0]
	if res.Passed() {
		run.Results = append(run.Results, Result{
			RuleID:    RuleID,
			Kind:      KindPass,
			Level:     LevelNone,
			Message:   Message{Text: "Validation for " + res.ID + " passed."},
			Locations: loc,
		})
		return
	}

	for _, f := range res.Failures {
		run.Results = append(run.Results, Result{
			RuleID:    RuleID,
			Kind:      KindFail,
			Level:     LevelError,
			Message:   Message{Text: f.String()},
			Locations: loc,
		})
	}
}

// SetSummary records batch counts in the run's property bag.
func (r *Report) SetSummary(b *types.BatchReport) {
	r.Runs[0].Properties = map[string]any{
		"total":  b.Total,
		"failed": b.Failed,
		"passed": b.Passed(),
	}
}

// FromBatch builds a complete report from a batch.
func FromBatch(b *types.BatchReport, toolVersion string) *Report {
	r := NewReport(toolVersion)
	for _, res := range b.Results {
		r.AddItem(res)
	}
	r.SetSummary(b)
	return r
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
