// Package seed provides the default resource library used to populate a
// fresh database. The library ships embedded in the binary; a
// resources.yaml in the data directory overrides it wholesale.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretehq/arete/internal/types"
)

//go:embed resources.yaml
var defaultLibrary []byte

// OverrideFilename is looked up in the data directory before falling
// back to the embedded library.
const OverrideFilename = "resources.yaml"

type libraryFile struct {
	Resources []resourceEntry `yaml:"resources"`
}

type resourceEntry struct {
	Title             string   `yaml:"title"`
	Author            string   `yaml:"author"`
	Type              string   `yaml:"type"`
	Summary           string   `yaml:"summary"`
	KeyPrinciples     []string `yaml:"key_principles"`
	RelevantPillarIDs []int64  `yaml:"relevant_pillar_ids"`
}

// DefaultResources parses the embedded library. The embedded file is
// validated at build time by the tests, so a parse failure here means a
// broken build, not bad user input.
func DefaultResources() ([]types.Resource, error) {
	return parse(defaultLibrary)
}

// LoadResources returns the library for the given data directory: the
// user's override file if present, the embedded default otherwise.
func LoadResources(dataDir string) ([]types.Resource, error) {
	path := filepath.Join(dataDir, OverrideFilename)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultResources()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	resources, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return resources, nil
}

func parse(data []byte) ([]types.Resource, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse resource library: %w", err)
	}

	resources := make([]types.Resource, 0, len(file.Resources))
	for i, e := range file.Resources {
		r := types.Resource{
			Title:             e.Title,
			Author:            e.Author,
			Type:              types.ResourceType(e.Type),
			Summary:           e.Summary,
			KeyPrinciples:     e.KeyPrinciples,
			RelevantPillarIDs: e.RelevantPillarIDs,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("resource library entry %d: %w", i, err)
		}
		resources = append(resources, r)
	}
	return resources, nil
}
