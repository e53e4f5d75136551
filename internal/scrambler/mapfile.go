package scrambler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// mapFileVersion tags exported identifier maps.
const mapFileVersion = "trash-code-map-v1"

// MapFile is the on-disk form of an exported identifier table.
type MapFile struct {
	Version     string    `yaml:"version"`
	Source      string    `yaml:"source,omitempty"`
	Identifiers []Mapping `yaml:"identifiers"`
}

// SaveMap writes mappings for source to filePath as YAML.
func SaveMap(filePath, source string, mappings []Mapping) error {
	if mappings == nil {
		mappings = []Mapping{}
	}
	data, err := yaml.Marshal(MapFile{
		Version:     mapFileVersion,
		Source:      source,
		Identifiers: mappings,
	})
	if err != nil {
		return fmt.Errorf("failed to encode identifier map: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write identifier map to file %s: %w", filePath, err)
	}
	return nil
}

// LoadMap reads an identifier map written by SaveMap.
func LoadMap(filePath string) (*MapFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read identifier map %s: %w", filePath, err)
	}

	var mf MapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to decode identifier map %s: %w", filePath, err)
	}
	if mf.Version != mapFileVersion {
		return nil, fmt.Errorf("incompatible identifier map version: file has '%s', expected '%s'", mf.Version, mapFileVersion)
	}
	return &mf, nil
}
