package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the cargo-arch release, overridden via ldflags
var Version = "0.1.0"

// cargoSubcommand is the name cargo passes as first argument when
// cargo-arch is invoked as `cargo arch`
const cargoSubcommand = "arch"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := NewBuildCmd()
	rootCmd.Use = "cargo-arch"
	rootCmd.Short = "Build Arch Linux packages from a Cargo project"
	rootCmd.Long = `cargo-arch reads Cargo.toml, generates a PKGBUILD from the [package]
section and the optional [package.metadata.archlinux_pkgbuild] overrides,
and runs makepkg on it.

The PKGBUILD is written to target/<pkgver>-<pkgrel>/ next to Cargo.toml,
or to the current directory with --in-place.`
	rootCmd.Version = Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Setup logging
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewResolveCmd())

	return rootCmd
}

// CargoArgs drops the subcommand name cargo inserts in front of the
// user's arguments
func CargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == cargoSubcommand {
		return args[1:]
	}
	return args
}
