// Package cli provides the command-line interface for pokepalette.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pokepalette/internal/version"
)

// NewRootCmd builds the command tree. Each call returns an independent tree,
// so tests can execute commands without sharing flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pokepalette",
		Short: "Themed colour palettes from creature sprites",
		Long: `pokepalette derives a small, coherent colour palette from a sprite image and
expands it with complementary and monochromatic variants for use as a UI theme.

The sprite is clustered into eight colours, the darkest two (outlines, shading)
and the brightest one (highlights) are dropped, and each of the remaining five
yields one complementary and one monochromatic variant.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output on stderr")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newPaletteCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newHarmoniseCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// newLogger returns a Debug logger on the command's stderr under --verbose,
// otherwise a logger that discards everything.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "pokepalette",
			Output: cmd.ErrOrStderr(),
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "pokepalette",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}
