package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML keys of the settings file.
const (
	keyWorkspace = "workspace"
	keyPager     = "pager"
	keyThumbnail = "thumbnail"
	keyNotebook  = "notebook"
	keyDataset   = "dataset"
	keyLogging   = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config sections.
// Other keys are ignored.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyWorkspace: true,
	keyPager:     true,
	keyThumbnail: true,
	keyNotebook:  true,
	keyDataset:   true,
	keyLogging:   true,
}

// MergeYAML loads a YAML file and applies each known top-level section onto
// target. Fields present in a section replace the current value; absent
// fields keep it, so a file only needs to list what it changes.
func MergeYAML(target *Config, path string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAML")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}

	// Empty or comment-only file.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes data onto the matching section of target.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyWorkspace:
		return yaml.Unmarshal(data, &target.Workspace)
	case keyPager:
		return yaml.Unmarshal(data, &target.Pager)
	case keyThumbnail:
		return yaml.Unmarshal(data, &target.Thumbnail)
	case keyNotebook:
		return yaml.Unmarshal(data, &target.Notebook)
	case keyDataset:
		return yaml.Unmarshal(data, &target.Dataset)
	case keyLogging:
		return yaml.Unmarshal(data, &target.Logging)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
