package tdf

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// FilterConfig specifies include and exclude patterns for TDF paths.
// Patterns are .NET-style regular expressions, so look-arounds are allowed.
type FilterConfig struct {
	Include []string // only matching paths are kept
	Exclude []string // matching paths are dropped
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// PathFilter decides whether a slash-separated path is selected.
// Include is applied first, then exclude. Empty include means "include all".
type PathFilter struct {
	include []*regexp2.Regexp
	exclude []*regexp2.Regexp
}

// NewPathFilter compiles the patterns in cfg.
func NewPathFilter(cfg FilterConfig) (*PathFilter, error) {
	include, err := compilePatterns(cfg.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	return &PathFilter{include: include, exclude: exclude}, nil
}

// Match reports whether path passes the filter.
func (f *PathFilter) Match(path string) (bool, error) {
	if len(f.include) > 0 {
		ok, err := matchesAny(path, f.include)
		if err != nil || !ok {
			return false, err
		}
	}

	if len(f.exclude) > 0 {
		excluded, err := matchesAny(path, f.exclude)
		if err != nil {
			return false, err
		}
		return !excluded, nil
	}

	return true, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func compilePatterns(patterns []string) ([]*regexp2.Regexp, error) {
	var out []*regexp2.Regexp
	for _, pattern := range patterns {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func matchesAny(path string, regexes []*regexp2.Regexp) (bool, error) {
	for _, re := range regexes {
		ok, err := re.MatchString(path)
		if err != nil {
			return false, fmt.Errorf("matching %q against %q: %w", path, re.String(), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
