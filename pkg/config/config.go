// Package config loads and validates the tdfcheck configuration file.
//
// The file is optional. Values from it are the base layer; command-line
// flags are applied on top by the caller before Validate is run.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "tdfcheck"

	// DefaultConfigFile is looked up in the current directory.
	DefaultConfigFile = ".tdfcheck.yaml"

	// xdgConfigFile is looked up in $XDG_CONFIG_HOME/tdfcheck.
	xdgConfigFile = "config.yaml"

	// DefaultValidatorTimeout bounds a single external validator run.
	DefaultValidatorTimeout = 30 * time.Second
)

//go:embed templates/tdfcheck.yaml
var template []byte

// Template returns the commented configuration written by `tdfcheck init`.
func Template() []byte {
	out := make([]byte, len(template))
	copy(out, template)
	return out
}

// File is the on-disk configuration.
type File struct {
	Root          string          `yaml:"root,omitempty"`
	Extensions    []string        `yaml:"extensions,omitempty" validate:"dive,required"`
	Include       []string        `yaml:"include,omitempty" validate:"dive,required"`
	Exclude       []string        `yaml:"exclude,omitempty" validate:"dive,required"`
	IgnoreFile    string          `yaml:"ignore_file,omitempty"`
	IncludeHidden bool            `yaml:"include_hidden,omitempty"`
	Validator     ValidatorConfig `yaml:"validator,omitempty"`
	Manifest      string          `yaml:"manifest,omitempty"`
	Format        string          `yaml:"format,omitempty" validate:"omitempty,oneof=text json markdown sarif"`
	Color         string          `yaml:"color,omitempty" validate:"omitempty,oneof=auto always never"`
}

// ValidatorConfig describes the external validator program.
type ValidatorConfig struct {
	Command []string      `yaml:"command,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *File {
	return &File{
		Root:       ".",
		Extensions: []string{".atdf"},
		IgnoreFile: ".tdfignore",
		Validator: ValidatorConfig{
			Timeout: DefaultValidatorTimeout,
		},
		Format: "text",
		Color:  "auto",
	}
}

// ApplyDefaults fills zero-valued fields from Default.
func (f *File) ApplyDefaults() {
	d := Default()
	if f.Root == "" {
		f.Root = d.Root
	}
	if len(f.Extensions) == 0 {
		f.Extensions = d.Extensions
	}
	if f.IgnoreFile == "" {
		f.IgnoreFile = d.IgnoreFile
	}
	if f.Validator.Timeout == 0 {
		f.Validator.Timeout = d.Validator.Timeout
	}
	if f.Format == "" {
		f.Format = d.Format
	}
	if f.Color == "" {
		f.Color = d.Color
	}
}

// Validate checks field values and that exactly one validation source is set.
func (f *File) Validate() error {
	if err := validator.New().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q (got %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	hasCommand := len(f.Validator.Command) > 0
	hasManifest := f.Manifest != ""
	switch {
	case hasCommand && hasManifest:
		return ErrConflictingSources
	case !hasCommand && !hasManifest:
		return ErrNoSource
	}

	return nil
}

// LoadConfigFile reads a configuration file.
// A missing file yields ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Relative paths in the file are relative to the file itself.
	base := filepath.Dir(path)
	f.Root = resolve(base, f.Root)
	f.Manifest = resolve(base, f.Manifest)

	return &f, nil
}

// FindConfigFile returns the configuration file to use:
//  1. explicit, when non-empty (whether or not it exists)
//  2. .tdfcheck.yaml in the current directory
//  3. config.yaml in the XDG config directory
//
// It returns "" when none exists.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(ConfigDir(), xdgConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return ""
}

// ConfigDir returns the XDG configuration directory for tdfcheck.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
