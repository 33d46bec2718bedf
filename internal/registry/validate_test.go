package registry_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cplusplus-lang/cmake-central-registry/internal/registry"
)

// metadataDoc returns a conformant metadata document for a package named
// "fmt" with default_version "1.0.0". Tests mutate or delete keys.
func metadataDoc() map[string]any {
	return map[string]any{
		"name":            "fmt",
		"description":     "A modern formatting library",
		"homepage":        "https://fmt.dev",
		"license":         "MIT",
		"repository":      map[string]any{"type": "github", "url": "https://github.com/fmtlib/fmt"},
		"default_version": "1.0.0",
		"targets":         []any{"fmt::fmt"},
		"maintainers":     []any{"CCR Maintainers <maintainers@example.org>"},
	}
}

// writePackage lays out a package directory with the given metadata.json
// body and one source.json body per version. Returns the package directory.
func writePackage(t *testing.T, root, name, metadata string, versions map[string]string) string {
	t.Helper()

	pkgDir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "metadata.json"), []byte(metadata), 0o644))

	for ver, source := range versions {
		verDir := filepath.Join(pkgDir, ver)
		require.NoError(t, os.MkdirAll(verDir, 0o755))

		if source != "" {
			require.NoError(t, os.WriteFile(filepath.Join(verDir, "source.json"), []byte(source), 0o644))
		}
	}

	return pkgDir
}

const validMetadata = `{
	"name": "fmt",
	"description": "A modern formatting library",
	"homepage": "https://fmt.dev",
	"license": "MIT",
	"repository": {"type": "github", "url": "https://github.com/fmtlib/fmt"},
	"default_version": "1.0.0",
	"targets": ["fmt::fmt"],
	"maintainers": ["CCR Maintainers <maintainers@example.org>"]
}`

const validSource = `{"git_tag": "v1.0.0", "tested": true}`

func TestValidateMetadata_Valid(t *testing.T) {
	t.Parallel()

	errs := registry.ValidateMetadata("/registry/fmt", metadataDoc())
	assert.Empty(t, errs)
}

func TestValidateMetadata_MissingFields(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	delete(doc, "license")
	delete(doc, "maintainers")
	doc["name"] = "NotTheDirName" // must not be reported: presence check short-circuits

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 2)
	assert.Contains(t, errs, "Missing required field: license")
	assert.Contains(t, errs, "Missing required field: maintainers")
}

func TestValidateMetadata_InvalidName(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["name"] = "Fmt"

	errs := registry.ValidateMetadata("/registry/Fmt", doc)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Invalid name 'Fmt'")
}

func TestValidateMetadata_DirectoryMismatch(t *testing.T) {
	t.Parallel()

	errs := registry.ValidateMetadata("/registry/fmtlib", metadataDoc())
	require.Len(t, errs, 1)
	assert.Equal(t, "Directory 'fmtlib' doesn't match package name 'fmt'", errs[0])
}

func TestValidateMetadata_DescriptionTooLong(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["description"] = strings.Repeat("x", 201)

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Description exceeds 200 characters", errs[0])
}

func TestValidateMetadata_UnknownLicense(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["license"] = "WTFPL"

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Unknown license 'WTFPL'. Use SPDX identifier.", errs[0])
}

func TestValidateMetadata_RepositoryMissingURL(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["repository"] = map[string]any{"type": "github"}

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Repository must have 'type' and 'url' fields", errs[0])
}

func TestValidateMetadata_RepositoryNotObject(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["repository"] = "github"

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Repository must have 'type' and 'url' fields", errs[0])
}

func TestValidateMetadata_InvalidRepositoryType(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["repository"] = map[string]any{"type": "svn", "url": "https://example.org"}

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid repository type: svn", errs[0])
}

func TestValidateMetadata_EmptyTargets(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["targets"] = []any{}

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "At least one target must be specified", errs[0])
}

func TestValidateMetadata_EmptyMaintainers(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["maintainers"] = []any{}

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "At least one maintainer is required", errs[0])
}

func TestValidateMetadata_DependencyWithoutName(t *testing.T) {
	t.Parallel()

	doc := metadataDoc()
	doc["dependencies"] = []any{
		map[string]any{"name": "zlib"},
		map[string]any{"version": "1.3.1"},
	}

	errs := registry.ValidateMetadata("/registry/fmt", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Dependency missing 'name' field", errs[0])
}

func TestValidateSource_Valid(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"git_tag":       "v1.2.3",
		"tested":        true,
		"cmake_options": map[string]any{"BUILD_SHARED_LIBS": "ON"},
	}

	assert.Empty(t, registry.ValidateSource("1.2.3", doc))
}

func TestValidateSource_MissingFields(t *testing.T) {
	t.Parallel()

	errs := registry.ValidateSource("1.2.3", map[string]any{})
	require.Len(t, errs, 2)
	assert.Contains(t, errs, "Version 1.2.3 missing required field: git_tag")
	assert.Contains(t, errs, "Version 1.2.3 missing required field: tested")
}

func TestValidateSource_CMakeOptionsNotObject(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"git_tag":       "v1.2.3",
		"tested":        true,
		"cmake_options": []any{"BUILD_SHARED_LIBS=ON"},
	}

	errs := registry.ValidateSource("1.2.3", doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Version 1.2.3: cmake_options must be an object", errs[0])
}

func TestValidatePackage_Valid(t *testing.T) {
	t.Parallel()

	pkgDir := writePackage(t, t.TempDir(), "fmt", validMetadata, map[string]string{"1.0.0": validSource})

	assert.Empty(t, registry.ValidatePackage(pkgDir))
}

func TestValidatePackage_MissingMetadata(t *testing.T) {
	t.Parallel()

	pkgDir := filepath.Join(t.TempDir(), "fmt")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))

	errs := registry.ValidatePackage(pkgDir)
	require.Len(t, errs, 1)
	assert.Equal(t, "Missing required file: metadata.json", errs[0])
}

func TestValidatePackage_InvalidMetadataJSON(t *testing.T) {
	t.Parallel()

	pkgDir := writePackage(t, t.TempDir(), "fmt", "{not json", map[string]string{"1.0.0": validSource})

	errs := registry.ValidatePackage(pkgDir)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Invalid JSON")
}

func TestValidatePackage_NoVersionDirectories(t *testing.T) {
	t.Parallel()

	pkgDir := writePackage(t, t.TempDir(), "fmt", validMetadata, nil)

	errs := registry.ValidatePackage(pkgDir)
	require.Len(t, errs, 1)
	assert.Equal(t, "At least one version directory is required", errs[0])
}

func TestValidatePackage_MissingSourceFile(t *testing.T) {
	t.Parallel()

	pkgDir := writePackage(t, t.TempDir(), "fmt", validMetadata, map[string]string{"1.0.0": ""})

	errs := registry.ValidatePackage(pkgDir)
	require.Len(t, errs, 2)
	assert.Equal(t, "Version 1.0.0 missing required file: source.json", errs[0])
	// A version without a readable source does not count as found.
	assert.Equal(t, "default_version '1.0.0' not found in versions", errs[1])
}

func TestValidatePackage_InvalidSourceJSON(t *testing.T) {
	t.Parallel()

	pkgDir := writePackage(t, t.TempDir(), "fmt", validMetadata, map[string]string{"1.0.0": "[not json"})

	errs := registry.ValidatePackage(pkgDir)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Version 1.0.0: invalid JSON")
	assert.Equal(t, "default_version '1.0.0' not found in versions", errs[1])
}

func TestValidatePackage_DefaultVersionNotFound(t *testing.T) {
	t.Parallel()

	metadata := strings.Replace(validMetadata, `"default_version": "1.0.0"`, `"default_version": "2.0"`, 1)
	pkgDir := writePackage(t, t.TempDir(), "fmt", metadata, map[string]string{"1.0.0": validSource})

	errs := registry.ValidatePackage(pkgDir)
	require.Len(t, errs, 1)
	assert.Equal(t, "default_version '2.0' not found in versions", errs[0])
}

func TestValidatePackage_VersionsCheckedDespiteMetadataErrors(t *testing.T) {
	t.Parallel()

	metadata := strings.Replace(validMetadata, `"license": "MIT",`, "", 1)
	pkgDir := writePackage(t, t.TempDir(), "fmt", metadata, map[string]string{"1.0.0": `{"tested": true}`})

	errs := registry.ValidatePackage(pkgDir)
	assert.Contains(t, errs, "Missing required field: license")
	assert.Contains(t, errs, "Version 1.0.0 missing required field: git_tag")
}

func TestValidatePackage_ErrorOrdering(t *testing.T) {
	t.Parallel()

	metadata := strings.Replace(validMetadata, `"license": "MIT"`, `"license": "WTFPL"`, 1)
	pkgDir := writePackage(t, t.TempDir(), "fmt", metadata, map[string]string{
		"1.0.0": validSource,
		"2.0.0": `{"tested": "manual"}`,
	})

	errs := registry.ValidatePackage(pkgDir)
	require.Len(t, errs, 2)
	// Metadata errors come first, then per-version errors in directory order.
	assert.Equal(t, "Unknown license 'WTFPL'. Use SPDX identifier.", errs[0])
	assert.Equal(t, "Version 2.0.0 missing required field: git_tag", errs[1])
}

func TestValidatePackage_Idempotent(t *testing.T) {
	t.Parallel()

	metadata := strings.Replace(validMetadata, `"license": "MIT"`, `"license": "WTFPL"`, 1)
	pkgDir := writePackage(t, t.TempDir(), "fmt", metadata, map[string]string{"1.0.0": validSource})

	first := registry.ValidatePackage(pkgDir)
	second := registry.ValidatePackage(pkgDir)
	assert.Equal(t, first, second)
}

func TestValidatePackage_MultipleVersions(t *testing.T) {
	t.Parallel()

	versions := map[string]string{
		"1.0.0": validSource,
		"1.1.0": `{"git_tag": "v1.1.0", "tested": "ci"}`,
	}
	pkgDir := writePackage(t, t.TempDir(), "fmt", validMetadata, versions)

	assert.Empty(t, registry.ValidatePackage(pkgDir))
}
