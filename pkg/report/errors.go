package report

import "errors"

var (
	// ErrUnknownFormat is returned by ParseFormat for unsupported output formats.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrUnknownColorMode is returned by ParseColorMode for values other than auto, always or never.
	ErrUnknownColorMode = errors.New("unknown color mode")
)
