package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cplusplus-lang/cmake-central-registry/internal/info"
)

var infoOutputFormat string

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show detailed package information",
	Long: `Display detailed information about a registry package: its metadata,
licensing, CMake targets, maintainers, and the source document of every
published version.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoOutputFormat, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	root, err := registryRoot()
	if err != nil {
		return fmt.Errorf("resolving registry directory: %w", err)
	}

	opts := &info.Opts{
		RegistryDir:  root,
		Package:      args[0],
		OutputFormat: infoOutputFormat,
		Writer:       os.Stdout,
	}

	return info.Run(opts)
}
