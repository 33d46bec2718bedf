// Package registry reads and validates CMake Central Registry package
// entries: one directory per package holding a metadata.json document and
// one sub-directory per published version holding a source.json document.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// Document file names within a package entry.
const (
	MetadataFile = "metadata.json"
	SourceFile   = "source.json"
)

// Registry is a handle on the registry packages directory.
type Registry struct {
	// Dir is the registry root: the directory holding one sub-directory
	// per package.
	Dir string
}

// New returns a Registry rooted at dir. The directory is not touched until
// a traversal or validation method is called.
func New(dir string) *Registry {
	return &Registry{Dir: dir}
}

// PackageDir returns the directory of the named package.
func (r *Registry) PackageDir(name string) string {
	return filepath.Join(r.Dir, name)
}

// HasPackage reports whether a directory for the named package exists.
func (r *Registry) HasPackage(name string) bool {
	fi, err := os.Stat(r.PackageDir(name))

	return err == nil && fi.IsDir()
}

// Packages returns the names of all packages in the registry, sorted.
// It fails if the registry root does not exist.
func (r *Registry) Packages() ([]string, error) {
	names, err := subdirs(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading registry directory %s: %w", r.Dir, err)
	}

	return names, nil
}

// Versions returns the version directory names of the given package, sorted
// lexically as on disk.
func (r *Registry) Versions(name string) ([]string, error) {
	versions, err := subdirs(r.PackageDir(name))
	if err != nil {
		return nil, fmt.Errorf("reading package directory %s: %w", r.PackageDir(name), err)
	}

	return versions, nil
}

// subdirs lists the immediate sub-directories of dir. os.ReadDir returns
// entries sorted by name, so the result is deterministic.
func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

// SortVersions orders version names semantically where they parse as
// versions, falling back to lexical order otherwise. Display ordering only;
// validation treats version names as opaque identifiers.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, errI := goversion.NewVersion(versions[i])
		vj, errJ := goversion.NewVersion(versions[j])

		if errI != nil || errJ != nil {
			return versions[i] < versions[j]
		}

		return vi.LessThan(vj)
	})
}
