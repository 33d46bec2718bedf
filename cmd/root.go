// Package cmd defines the CLI commands for ccr.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cplusplus-lang/cmake-central-registry/internal/config"
)

var (
	verbose     bool
	noColor     bool
	cfgFile     string
	registryDir string
)

// rootCmd is the base command for the ccr CLI.
var rootCmd = &cobra.Command{
	Use:   "ccr",
	Short: "Lint CMake Central Registry package entries",
	Long: `ccr validates package entries in the CMake Central Registry — JSON
metadata and per-version source documents laid out as one directory per
package. Registry maintainers and CI run it to gate changes before they
are accepted into the registry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ccr/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&registryDir, "registry", "", "path to the registry packages directory")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// registryRoot resolves the registry packages directory from the --registry
// flag, the CCR_REGISTRY environment variable, and the config file.
func registryRoot() (string, error) {
	return config.ResolveRegistryDir(registryDir, cfgFile)
}
