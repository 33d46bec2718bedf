package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cplusplus-lang/cmake-central-registry/internal/ui"
	"github.com/cplusplus-lang/cmake-central-registry/internal/validate"
)

var validateAll bool

var validateCmd = &cobra.Command{
	Use:   "validate [package]",
	Short: "Validate registry package entries",
	Long: `Check package entries against the registry schema: required metadata
fields, name and license constraints, per-version source documents, and the
default_version cross-reference. Pass a package name to validate one entry,
or --all to validate the whole registry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "validate every package in the registry")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if !validateAll && len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Usage: ccr validate [package | --all]")

		return errors.New("a package name or --all is required")
	}

	root, err := registryRoot()
	if err != nil {
		return fmt.Errorf("resolving registry directory: %w", err)
	}

	opts := &validate.Opts{
		RegistryDir: root,
		All:         validateAll,
		UI:          ui.NewWriter(noColor),
	}
	if len(args) > 0 {
		opts.Package = args[0]
	}

	_, err = validate.Run(opts)

	return err
}
