// Package validate implements the ccr validate command: a single linting
// pass over one package or the whole registry, reporting every schema
// violation found.
package validate

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cplusplus-lang/cmake-central-registry/internal/registry"
	"github.com/cplusplus-lang/cmake-central-registry/internal/ui"
)

// ErrValidationFailed signals a non-zero exit after the report has already
// been printed. Callers should not print it again.
var ErrValidationFailed = errors.New("validation failed")

// Opts configures the validate operation.
type Opts struct {
	// RegistryDir is the registry packages directory.
	RegistryDir string
	// Package names a single package to validate. Ignored when All is set.
	Package string
	// All validates every package in the registry.
	All bool
	// UI is the report destination.
	UI *ui.Writer
}

// Result holds the validation outcome.
type Result struct {
	// Failures maps package names to their error lists. Valid packages
	// are omitted.
	Failures map[string][]string
	// Total is the number of packages checked.
	Total int
}

// Valid returns the number of packages that passed.
func (r *Result) Valid() int {
	return r.Total - len(r.Failures)
}

// Run executes the validation workflow and prints the report. It returns
// ErrValidationFailed when any package fails, and an environment error when
// the registry root is missing or the named package does not exist.
func Run(opts *Opts) (*Result, error) {
	reg := registry.New(opts.RegistryDir)

	if opts.All {
		return runAll(reg, opts.UI)
	}

	return runSingle(reg, opts.Package, opts.UI)
}

func runSingle(reg *registry.Registry, name string, out *ui.Writer) (*Result, error) {
	if !reg.HasPackage(name) {
		out.Failuref("Package '%s' not found", name)

		return nil, ErrValidationFailed
	}

	slog.Debug("validating package", "name", name, "dir", reg.PackageDir(name))

	result := &Result{Total: 1, Failures: map[string][]string{}}

	errs := registry.ValidatePackage(reg.PackageDir(name))
	if len(errs) == 0 {
		out.Successf("%s is valid", name)

		return result, nil
	}

	result.Failures[name] = errs

	out.Failuref("Validation errors for %s:", name)

	for _, e := range errs {
		out.Printf("  - %s\n", e)
	}

	return result, ErrValidationFailed
}

func runAll(reg *registry.Registry, out *ui.Writer) (*Result, error) {
	pkgs, err := reg.Packages()
	if err != nil {
		err = fmt.Errorf("registry directory not found: %w", err)
		out.Errorf("%v", err)

		return nil, err
	}

	slog.Debug("validating registry", "dir", reg.Dir, "packages", len(pkgs))

	result := &Result{Total: len(pkgs), Failures: map[string][]string{}}

	for _, name := range pkgs {
		if errs := registry.ValidatePackage(reg.PackageDir(name)); len(errs) > 0 {
			result.Failures[name] = errs
		}
	}

	if len(result.Failures) == 0 {
		out.Successf("All %d packages valid", result.Total)

		return result, nil
	}

	out.Failure("Validation errors found:")
	out.Printf("\n")

	// Report failing packages in name order regardless of traversal order.
	failed := make([]string, 0, len(result.Failures))
	for name := range result.Failures {
		failed = append(failed, name)
	}

	sort.Strings(failed)

	for _, name := range failed {
		out.Printf("  %s:\n", name)

		for _, e := range result.Failures[name] {
			out.Printf("    - %s\n", e)
		}
	}

	out.Printf("\n%d/%d packages valid\n", result.Valid(), result.Total)

	return result, ErrValidationFailed
}
