// Package cli wires configuration, storage and the board service into the
// askboard commands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Backend string
	Verbose bool
}

// NewRootCommand creates the root command for the askboard CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "askboard",
		Short: "A local question and answer board",
		Long: `askboard keeps a small Q&A board on this machine: anonymous identity,
questions, answers and up/down votes, persisted in a key-value store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to read before the environment")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "override STORE_BACKEND (sqlite|memory|redis|mongo)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewRecountCommand(opts))
	cmd.AddCommand(NewAbandonCommand(opts))

	return cmd
}
