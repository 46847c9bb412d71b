package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/stagepatch/internal/cli"
	"github.com/example/stagepatch/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "stagepatch",
		Short:   "stagepatch - festival patch planning",
		Version: version.String(),
		Long: `stagepatch plans the audio patch of multi-band events.

It keeps a reusable channel catalog, lets every band pick the channels
it needs, and maintains one shared numbered patch per event that all
bands play over.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.CategoryCmd())
	rootCmd.AddCommand(cli.ChannelCmd())
	rootCmd.AddCommand(cli.EventCmd())
	rootCmd.AddCommand(cli.BandCmd())
	rootCmd.AddCommand(cli.PatchCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.DbCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
