// Package list implements the ccr list command for browsing registry packages.
package list

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cplusplus-lang/cmake-central-registry/internal/registry"
)

// Opts configures the list operation.
type Opts struct {
	// RegistryDir is the registry packages directory.
	RegistryDir string
	// OutputFormat is "table" or "json".
	OutputFormat string
	// Writer is the output destination.
	Writer io.Writer
}

// PackageInfo represents a package in list output.
type PackageInfo struct {
	Name           string `json:"name"`
	DefaultVersion string `json:"default_version,omitempty"`
	License        string `json:"license,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Run lists packages from the registry.
func Run(opts *Opts) error {
	reg := registry.New(opts.RegistryDir)

	pkgs, err := reg.Packages()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	infos := make([]PackageInfo, 0, len(pkgs))

	for _, name := range pkgs {
		md, err := registry.LoadMetadata(reg.PackageDir(name))
		if err != nil {
			// Broken entries still get a row; ccr validate explains them.
			infos = append(infos, PackageInfo{Name: name})

			continue
		}

		infos = append(infos, PackageInfo{
			Name:           name,
			DefaultVersion: md.DefaultVersion,
			License:        md.License,
			Description:    md.Description,
		})
	}

	switch opts.OutputFormat {
	case "json":
		return renderJSON(opts.Writer, infos)
	default:
		return renderTable(opts.Writer, infos)
	}
}

func renderTable(w io.Writer, infos []PackageInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "NAME\tDEFAULT\tLICENSE\tDESCRIPTION"); err != nil {
		return err
	}

	for i := range infos {
		p := &infos[i]

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.DefaultVersion, p.License, p.Description); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func renderJSON(w io.Writer, infos []PackageInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(infos)
}
