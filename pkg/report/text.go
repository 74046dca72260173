package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// textRenderer writes one colored block per item as it is validated,
// followed by a summary line.
type textRenderer struct {
	out    io.Writer
	styles *styles
	quiet  bool
}

func (t *textRenderer) item(r types.ItemResult) error {
	if r.Passed() {
		if t.quiet {
			return nil
		}
		_, err := fmt.Fprint(t.out, t.styles.pass.Sprintf("Validation for %s passed.\n", r.ID))
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Validation for %s failed.\n", r.ID)
	fmt.Fprintf(&b, "%d error(s) found:\n", len(r.Failures))
	b.WriteString(strings.Join(types.Strings(r.Failures), "\n"))
	b.WriteString("\n\n")

	_, err := fmt.Fprint(t.out, t.styles.fail.Sprint(b.String()))
	return err
}

func (t *textRenderer) summary(b *types.BatchReport) error {
	_, err := fmt.Fprintf(t.out, "\n\nValidated %d TDFs. %s\n",
		b.Total,
		t.styles.outcome(b.Failed).Sprintf("%d failure(s).", b.Failed))
	return err
}
