package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cplusplus-lang/cmake-central-registry/internal/list"
)

var listOutputFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry packages",
	Long: `List all packages in the registry with their default version, license,
and description. Use --output to change the format.`,
	Aliases: []string{"ls"},
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "output format (table, json)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	root, err := registryRoot()
	if err != nil {
		return fmt.Errorf("resolving registry directory: %w", err)
	}

	opts := &list.Opts{
		RegistryDir:  root,
		OutputFormat: listOutputFormat,
		Writer:       os.Stdout,
	}

	return list.Run(opts)
}
