// Package commands implements the bakelite CLI command tree.
package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// FS is the filesystem every command reads and writes through. Tests
// substitute afero.NewMemMapFs() so CLI commands never touch the real disk.
var FS afero.Fs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "bakelite",
	Short: "Schema compiler for embedded communication protocols",
	Long: `bakelite compiles a .bakelite IDL file describing messages, enums, and a
protocol block into target-language source that serializes messages to a
well-defined byte stream, frames them with Consistent Overhead Byte Stuffing,
and optionally protects them with a CRC trailer.

Use "bakelite [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(runtimeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
