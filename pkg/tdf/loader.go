// Package tdf discovers target description files and binds each one to an
// external validator.
//
// The package never interprets TDF contents. Whether a file is valid is
// decided by a Validator: an external program run per file, or a results
// manifest written by such a program.
package tdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/avr-tooling/tdfcheck/pkg/log"
	"github.com/avr-tooling/tdfcheck/pkg/types"
)

const (
	// DefaultIgnoreFile is read from the root, when present, with gitignore syntax.
	DefaultIgnoreFile = ".tdfignore"
)

// DefaultExtensions are the file extensions treated as TDFs.
var DefaultExtensions = []string{".atdf"}

// Config controls which files the loader selects.
type Config struct {
	// Extensions to select, compared case-insensitively. Empty means DefaultExtensions.
	Extensions []string

	// Filter holds include/exclude path patterns, matched against the
	// slash-separated path relative to the root.
	Filter FilterConfig

	// IgnoreFile is a gitignore-syntax file relative to the root.
	// Empty means DefaultIgnoreFile.
	IgnoreFile string

	// IncludeHidden selects hidden files and descends into hidden directories.
	IncludeHidden bool
}

// Validator checks one file and returns its failures.
// Implementations report faults as failures and never return errors.
type Validator interface {
	Validate(ctx context.Context, path string) []types.Failure
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(ctx context.Context, path string) []types.Failure

// Validate calls f.
func (f ValidatorFunc) Validate(ctx context.Context, path string) []types.Failure {
	return f(ctx, path)
}

// Loader discovers TDFs below a root directory.
type Loader struct {
	fs        fs.FS
	root      string
	onDisk    bool
	config    Config
	validator Validator
	logger    *slog.Logger
}

// NewLoader creates a loader for the directory root on disk.
func NewLoader(root string, config Config, v Validator) *Loader {
	l := NewLoaderWithFS(os.DirFS(root), root, config, v)
	l.onDisk = true
	return l
}

// NewLoaderWithFS creates a loader over fsys. Paths reported to the
// validator and used as item IDs are joined onto root.
func NewLoaderWithFS(fsys fs.FS, root string, config Config, v Validator) *Loader {
	return &Loader{
		fs:        fsys,
		root:      root,
		config:    config,
		validator: v,
		logger:    log.Discard(),
	}
}

// WithLogger sets the logger used for discovery diagnostics.
func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Discover returns the paths of all selected files in lexical order.
func (l *Loader) Discover(ctx context.Context) ([]string, error) {
	if err := l.checkRoot(); err != nil {
		return nil, err
	}

	filter, err := NewPathFilter(l.config.Filter)
	if err != nil {
		return nil, err
	}

	ignore, err := l.loadIgnore()
	if err != nil {
		return nil, err
	}

	extensions := normalizeExtensions(l.config.Extensions)

	var paths []string
	err = fs.WalkDir(l.fs, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p == "." {
			return nil
		}

		if d.IsDir() {
			if !l.config.IncludeHidden && isHidden(d.Name()) {
				return fs.SkipDir
			}
			if ignore != nil && ignore.MatchesPath(p) {
				l.logger.Debug("skipping ignored directory", "path", p)
				return fs.SkipDir
			}
			return nil
		}

		if !l.config.IncludeHidden && isHidden(d.Name()) {
			return nil
		}

		if !hasExtension(d.Name(), extensions) {
			return nil
		}

		if ignore != nil && ignore.MatchesPath(p) {
			l.logger.Debug("skipping ignored file", "path", p)
			return nil
		}

		ok, err := filter.Match(p)
		if err != nil {
			return err
		}
		if !ok {
			l.logger.Debug("skipping filtered file", "path", p)
			return nil
		}

		paths = append(paths, l.displayPath(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.root, err)
	}

	l.logger.Debug("discovered target description files", "root", l.root, "count", len(paths))
	return paths, nil
}

// Load discovers files and returns one item per file, bound to the
// loader's validator. ctx is used by the items when they are validated.
func (l *Loader) Load(ctx context.Context) ([]types.Item, error) {
	paths, err := l.Discover(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]types.Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, &File{
			Path:      p,
			validator: l.validator,
			ctx:       ctx,
		})
	}
	return items, nil
}

// File is a discovered TDF bound to a validator.
type File struct {
	Path string

	validator Validator
	// ctx is held because Validate takes no arguments; it only bounds the
	// external validator process.
	ctx context.Context
}

// ID returns the file path.
func (f *File) ID() string {
	return f.Path
}

// Validate runs the bound validator. A file with no validator passes.
func (f *File) Validate() []types.Failure {
	if f.validator == nil {
		return nil
	}
	ctx := f.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return f.validator.Validate(ctx, f.Path)
}

// =============================================================================
// HELPERS
// =============================================================================

func (l *Loader) checkRoot() error {
	var (
		info fs.FileInfo
		err  error
	)
	if l.onDisk {
		info, err = os.Stat(l.root)
	} else {
		info, err = fs.Stat(l.fs, ".")
	}
	if err != nil {
		return fmt.Errorf("reading root %s: %w", l.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, l.root)
	}
	return nil
}

func (l *Loader) loadIgnore() (*gitignore.GitIgnore, error) {
	name := l.config.IgnoreFile
	if name == "" {
		name = DefaultIgnoreFile
	}

	data, err := fs.ReadFile(l.fs, path.Clean(filepath.ToSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ignore file %s: %w", name, err)
	}

	l.logger.Debug("using ignore file", "path", name)
	return gitignore.CompileIgnoreLines(strings.Split(string(data), "\n")...), nil
}

func (l *Loader) displayPath(p string) string {
	if l.root == "" {
		return filepath.FromSlash(p)
	}
	return filepath.Join(l.root, filepath.FromSlash(p))
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, strings.ToLower(e))
	}
	return out
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// isHidden checks if a name is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
