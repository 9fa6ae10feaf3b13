// Package testdata embeds scripted gesture sessions used by replay and
// end-to-end tests.
package testdata

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// LoadFixture returns the raw JSON of a fixture by name, without extension.
func LoadFixture(name string) ([]byte, error) {
	data, err := fixturesFS.ReadFile("fixtures/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", name, err)
	}
	return data, nil
}

// FixtureNames lists the embedded fixtures in sorted order.
func FixtureNames() ([]string, error) {
	entries, err := fixturesFS.ReadDir("fixtures")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names, nil
}
