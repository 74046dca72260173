package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/avr-tooling/tdfcheck/pkg/types"
	"github.com/nao1215/markdown"
)

// markdownRenderer writes a GitHub-flavored summary, suitable for CI job
// summaries, once the batch is complete.
type markdownRenderer struct {
	out io.Writer
}

func (m *markdownRenderer) item(types.ItemResult) error {
	return nil
}

func (m *markdownRenderer) summary(b *types.BatchReport) error {
	md := markdown.NewMarkdown(m.out)

	md.H1("Target Description File Validation")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Result", "Count"},
		Rows: [][]string{
			{"Validated", strconv.Itoa(b.Total)},
			{"Passed", strconv.Itoa(b.Total - b.Failed)},
			{"Failed", strconv.Itoa(b.Failed)},
		},
	})
	md.PlainText("")

	if b.Failed > 0 {
		md.Cautionf("%d of %d TDFs failed validation.", b.Failed, b.Total)
	} else {
		md.Tip(fmt.Sprintf("All %d TDFs passed validation.", b.Total))
	}
	md.PlainText("")

	var passed []string
	failedHeading := false
	for _, r := range b.Results {
		if r.Passed() {
			passed = append(passed, "`"+r.ID+"`")
			continue
		}
		if !failedHeading {
			md.H2("Failures")
			md.PlainText("")
			failedHeading = true
		}
		md.H3(fmt.Sprintf("`%s` (%d error(s))", r.ID, len(r.Failures)))
		md.PlainText("")
		md.BulletList(types.Strings(r.Failures)...)
		md.PlainText("")
	}

	if len(passed) > 0 {
		md.H2("Passed")
		md.PlainText("")
		md.BulletList(passed...)
		md.PlainText("")
	}

	return md.Build()
}
