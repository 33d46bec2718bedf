// Package info displays detailed registry package information.
package info

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cplusplus-lang/cmake-central-registry/internal/registry"
)

// Opts configures the info command.
type Opts struct {
	// RegistryDir is the registry packages directory.
	RegistryDir string
	// Package is the package to inspect.
	Package string
	// OutputFormat is "text" or "json".
	OutputFormat string
	// Writer is the output destination.
	Writer io.Writer
}

// VersionInfo pairs a version identifier with its source document.
type VersionInfo struct {
	Version string `json:"version"`
	GitTag  string `json:"git_tag"`
	Tested  any    `json:"tested"`
}

// PackageDetail is the full view of one package.
type PackageDetail struct {
	Metadata *registry.Metadata `json:"metadata"`
	Versions []VersionInfo      `json:"versions"`
}

// Run displays package information.
func Run(opts *Opts) error {
	reg := registry.New(opts.RegistryDir)

	if !reg.HasPackage(opts.Package) {
		return fmt.Errorf("package %q not found in registry %s", opts.Package, opts.RegistryDir)
	}

	md, err := registry.LoadMetadata(reg.PackageDir(opts.Package))
	if err != nil {
		return fmt.Errorf("loading package metadata: %w", err)
	}

	versions, err := reg.Versions(opts.Package)
	if err != nil {
		return fmt.Errorf("listing versions: %w", err)
	}

	registry.SortVersions(versions)

	detail := &PackageDetail{Metadata: md, Versions: make([]VersionInfo, 0, len(versions))}

	for _, ver := range versions {
		vi := VersionInfo{Version: ver}

		if src, err := registry.LoadSource(reg.PackageDir(opts.Package), ver); err == nil {
			vi.GitTag = src.GitTag
			vi.Tested = src.Tested
		}

		detail.Versions = append(detail.Versions, vi)
	}

	switch opts.OutputFormat {
	case "json":
		return renderJSON(opts.Writer, detail)
	default:
		return renderText(opts.Writer, detail)
	}
}

func renderText(w io.Writer, detail *PackageDetail) error {
	md := detail.Metadata

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := [][2]string{
		{"Name:", md.Name},
		{"Description:", md.Description},
		{"Homepage:", md.Homepage},
		{"License:", md.License},
		{"Repository:", fmt.Sprintf("%s (%s)", md.Repository.URL, md.Repository.Type)},
		{"Default version:", md.DefaultVersion},
		{"Targets:", strings.Join(md.Targets, ", ")},
		{"Maintainers:", strings.Join(md.Maintainers, ", ")},
	}

	if len(md.Dependencies) > 0 {
		deps := make([]string, 0, len(md.Dependencies))
		for _, d := range md.Dependencies {
			if d.Version != "" {
				deps = append(deps, fmt.Sprintf("%s (%s)", d.Name, d.Version))
			} else {
				deps = append(deps, d.Name)
			}
		}

		rows = append(rows, [2]string{"Dependencies:", strings.Join(deps, ", ")})
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(tw, "\nVERSION\tGIT TAG\tTESTED"); err != nil {
		return err
	}

	for i := range detail.Versions {
		v := &detail.Versions[i]

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%v\n", v.Version, v.GitTag, v.Tested); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func renderJSON(w io.Writer, detail *PackageDetail) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(detail)
}
