package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode selects when ANSI colors are written.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return ColorMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, always or never)", ErrUnknownColorMode, s)
	}
}

// fileDescriptor is satisfied by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

// ResolveColor decides whether output written to out should be colored.
// Auto enables color only for terminals, and never when NO_COLOR is set.
func ResolveColor(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(fileDescriptor)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// styles holds the color formatters for text output.
type styles struct {
	pass *color.Color
	fail *color.Color
}

// newStyles creates the formatters with color forced on or off, so the
// result does not depend on the global tty detection in the color package.
func newStyles(enabled bool) *styles {
	s := &styles{
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed),
	}

	for _, c := range []*color.Color{s.pass, s.fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// outcome picks the style for a failure count.
func (s *styles) outcome(failed int) *color.Color {
	if failed > 0 {
		return s.fail
	}
	return s.pass
}
