package tdf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// yamlManifest is the results document written by an external validator.
// JSON documents parse too, since YAML is a superset.
//
//	results:
//	  - file: atdf/ATmega328P.atdf
//	  - file: atdf/ATtiny85.atdf
//	    failures:
//	      - Missing register X
type yamlManifest struct {
	Results []yamlManifestEntry `yaml:"results"`
}

type yamlManifestEntry struct {
	File     string   `yaml:"file"`
	Failures []string `yaml:"failures,omitempty"`
}

// ParseManifest parses a results manifest into items, in document order.
func ParseManifest(data []byte) ([]types.Item, error) {
	var m yamlManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	seen := make(map[string]bool, len(m.Results))
	items := make([]types.Item, 0, len(m.Results))
	for i, entry := range m.Results {
		if entry.File == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrManifestEntryNoFile, i+1)
		}
		if seen[entry.File] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateManifestEntry, entry.File)
		}
		seen[entry.File] = true

		item := types.StaticItem{Path: entry.File}
		for _, f := range entry.Failures {
			item.Failures = append(item.Failures, types.Failure(f))
		}
		items = append(items, item)
	}

	return items, nil
}

// LoadManifest reads and parses a results manifest file.
func LoadManifest(path string) ([]types.Item, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided manifest path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	items, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// FilterItems keeps the items whose ID passes the filter, preserving order.
func FilterItems(items []types.Item, cfg FilterConfig) ([]types.Item, error) {
	filter, err := NewPathFilter(cfg)
	if err != nil {
		return nil, err
	}

	out := make([]types.Item, 0, len(items))
	for _, item := range items {
		ok, err := filter.Match(item.ID())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}
