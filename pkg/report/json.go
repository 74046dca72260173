package report

import (
	"encoding/json"
	"io"

	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// jsonReport is the document written by the json format.
type jsonReport struct {
	Total   int          `json:"total"`
	Failed  int          `json:"failed"`
	Passed  bool         `json:"passed"`
	Results []jsonResult `json:"results"`
}

type jsonResult struct {
	ID       string   `json:"id"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures"`
}

// jsonRenderer writes a single document once the batch is complete.
type jsonRenderer struct {
	out io.Writer
}

func (j *jsonRenderer) item(types.ItemResult) error {
	return nil
}

func (j *jsonRenderer) summary(b *types.BatchReport) error {
	doc := jsonReport{
		Total:   b.Total,
		Failed:  b.Failed,
		Passed:  b.Passed(),
		Results: make([]jsonResult, 0, len(b.Results)),
	}
	for _, r := range b.Results {
		doc.Results = append(doc.Results, jsonResult{
			ID:       r.ID,
			Passed:   r.Passed(),
			Failures: types.Strings(r.Failures),
		})
	}

	encoder := json.NewEncoder(j.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
