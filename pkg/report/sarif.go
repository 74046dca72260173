package report

import (
	"io"

	"github.com/avr-tooling/tdfcheck/pkg/sarif"
	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// sarifRenderer writes a SARIF log once the batch is complete.
type sarifRenderer struct {
	out         io.Writer
	toolVersion string
}

func (s *sarifRenderer) item(types.ItemResult) error {
	return nil
}

func (s *sarifRenderer) summary(b *types.BatchReport) error {
	data, err := sarif.FromBatch(b, s.toolVersion).ToJSON()
	if err != nil {
		return err
	}
	_, err = s.out.Write(append(data, '\n'))
	return err
}
