package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Metadata is the typed form of a package's metadata.json, used by the
// display commands. Validation works on the raw document instead so that
// missing fields are distinguishable from zero values.
type Metadata struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Homepage       string       `json:"homepage"`
	License        string       `json:"license"`
	Repository     Repository   `json:"repository"`
	DefaultVersion string       `json:"default_version"`
	Targets        []string     `json:"targets"`
	Maintainers    []string     `json:"maintainers"`
	Dependencies   []Dependency `json:"dependencies,omitempty"`
}

// Repository identifies where a package's sources live.
type Repository struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Dependency is a reference to another registry package.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Source is the typed form of a version's source.json. Tested is opaque:
// the schema only requires its presence.
type Source struct {
	GitTag       string         `json:"git_tag"`
	Tested       any            `json:"tested"`
	CMakeOptions map[string]any `json:"cmake_options,omitempty"`
}

// LoadMetadata reads and parses metadata.json from a package directory.
func LoadMetadata(pkgDir string) (*Metadata, error) {
	path := filepath.Join(pkgDir, MetadataFile)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}

	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", path, err)
	}

	return &md, nil
}

// LoadSource reads and parses source.json for one version of a package.
func LoadSource(pkgDir, version string) (*Source, error) {
	path := filepath.Join(pkgDir, version, SourceFile)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", path, err)
	}

	var src Source
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parsing source %s: %w", path, err)
	}

	return &src, nil
}
