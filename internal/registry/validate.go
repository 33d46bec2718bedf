package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"
)

// requiredMetadataFields must all be present in metadata.json before any
// deeper check runs.
var requiredMetadataFields = []string{
	"name", "description", "homepage", "license",
	"repository", "default_version", "targets", "maintainers",
}

// requiredSourceFields must all be present in every source.json.
var requiredSourceFields = []string{"git_tag", "tested"}

// validRepositoryTypes are the accepted repository.type values.
var validRepositoryTypes = map[string]bool{
	"github": true,
	"gitlab": true,
	"url":    true,
}

// validLicenses are the accepted SPDX license identifiers.
var validLicenses = map[string]bool{
	"MIT": true, "Apache-2.0": true, "BSD-2-Clause": true, "BSD-3-Clause": true,
	"BSL-1.0": true, "MPL-2.0": true, "LGPL-2.1": true, "LGPL-3.0": true,
	"GPL-2.0": true, "GPL-3.0": true, "Unlicense": true, "ISC": true,
	"Zlib": true, "CC0-1.0": true,
}

// namePattern constrains package names.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const maxDescriptionLength = 200

// ValidateMetadata checks a parsed metadata document against the schema and
// returns all errors found. pkgDir is the package directory; its base name
// must match the declared package name. A missing required field stops
// validation after the presence pass, since the remaining checks assume a
// complete document.
func ValidateMetadata(pkgDir string, doc map[string]any) []string {
	var errs []string

	for _, field := range requiredMetadataFields {
		if _, ok := doc[field]; !ok {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	if len(errs) > 0 {
		return errs
	}

	name, _ := doc["name"].(string)
	if !namePattern.MatchString(name) {
		errs = append(errs, fmt.Sprintf("Invalid name '%s': must be lowercase alphanumeric + underscore, starting with letter", name))
	}

	if base := filepath.Base(pkgDir); base != name {
		errs = append(errs, fmt.Sprintf("Directory '%s' doesn't match package name '%s'", base, name))
	}

	if desc, _ := doc["description"].(string); utf8.RuneCountInString(desc) > maxDescriptionLength {
		errs = append(errs, fmt.Sprintf("Description exceeds %d characters", maxDescriptionLength))
	}

	if license, _ := doc["license"].(string); !validLicenses[license] {
		errs = append(errs, fmt.Sprintf("Unknown license '%s'. Use SPDX identifier.", license))
	}

	errs = append(errs, validateRepository(doc["repository"])...)

	if targets, _ := doc["targets"].([]any); len(targets) == 0 {
		errs = append(errs, "At least one target must be specified")
	}

	if maintainers, _ := doc["maintainers"].([]any); len(maintainers) == 0 {
		errs = append(errs, "At least one maintainer is required")
	}

	if raw, ok := doc["dependencies"]; ok {
		deps, _ := raw.([]any)
		for _, dep := range deps {
			obj, _ := dep.(map[string]any)
			if _, ok := obj["name"]; !ok {
				errs = append(errs, "Dependency missing 'name' field")
			}
		}
	}

	return errs
}

func validateRepository(raw any) []string {
	repo, ok := raw.(map[string]any)
	if !ok {
		return []string{"Repository must have 'type' and 'url' fields"}
	}

	_, hasType := repo["type"]
	_, hasURL := repo["url"]

	if !hasType || !hasURL {
		return []string{"Repository must have 'type' and 'url' fields"}
	}

	if repoType, _ := repo["type"].(string); !validRepositoryTypes[repoType] {
		return []string{fmt.Sprintf("Invalid repository type: %s", repoType)}
	}

	return nil
}

// ValidateSource checks a parsed source document for one version and returns
// all errors found, each prefixed with the version identifier.
func ValidateSource(version string, doc map[string]any) []string {
	var errs []string

	for _, field := range requiredSourceFields {
		if _, ok := doc[field]; !ok {
			errs = append(errs, fmt.Sprintf("Version %s missing required field: %s", version, field))
		}
	}

	if raw, ok := doc["cmake_options"]; ok {
		if _, isObject := raw.(map[string]any); !isObject {
			errs = append(errs, fmt.Sprintf("Version %s: cmake_options must be an object", version))
		}
	}

	return errs
}

// ValidatePackage validates one package directory and returns all errors
// found: metadata errors first, then per-version errors in directory order,
// then the default_version cross-reference. An empty result means the
// package conforms to the schema.
func ValidatePackage(pkgDir string) []string {
	data, err := os.ReadFile(filepath.Clean(filepath.Join(pkgDir, MetadataFile)))
	if err != nil {
		return []string{fmt.Sprintf("Missing required file: %s", MetadataFile)}
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("Invalid JSON: %v", err)}
	}

	errs := ValidateMetadata(pkgDir, doc)

	versions, err := subdirs(pkgDir)
	if err != nil || len(versions) == 0 {
		// No versions means no default_version cross-check either.
		return append(errs, "At least one version directory is required")
	}

	found := make(map[string]bool, len(versions))

	for _, ver := range versions {
		srcData, err := os.ReadFile(filepath.Clean(filepath.Join(pkgDir, ver, SourceFile)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("Version %s missing required file: %s", ver, SourceFile))

			continue
		}

		var src map[string]any
		if err := json.Unmarshal(srcData, &src); err != nil {
			errs = append(errs, fmt.Sprintf("Version %s: invalid JSON: %v", ver, err))

			continue
		}

		errs = append(errs, ValidateSource(ver, src)...)
		found[ver] = true
	}

	if raw, ok := doc["default_version"]; ok {
		def, _ := raw.(string)
		if !found[def] {
			errs = append(errs, fmt.Sprintf("default_version '%s' not found in versions", def))
		}
	}

	return errs
}
