package tdf

import "errors"

var (
	// ErrNoCommand is returned when a command validator is built without a program.
	ErrNoCommand = errors.New("validator command is empty")

	// ErrInvalidPattern is returned when an include or exclude pattern does not compile.
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrNotDirectory is returned when the loader root is not a directory.
	ErrNotDirectory = errors.New("root is not a directory")

	// ErrManifestEntryNoFile is returned for manifest entries without a file name.
	ErrManifestEntryNoFile = errors.New("manifest entry has no file")

	// ErrDuplicateManifestEntry is returned when a manifest lists the same file twice.
	ErrDuplicateManifestEntry = errors.New("duplicate manifest entry")
)
