package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRecountCommand creates the recount command.
func NewRecountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recount",
		Short: "Rebuild vote counters from every known user's recorded votes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.shutdown(cmd.Context())

			if err := a.service.Recount(cmd.Context()); err != nil {
				return fmt.Errorf("recount: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "vote counters rebuilt")
			return err
		},
	}
}

// NewAbandonCommand creates the abandon command.
func NewAbandonCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Replace the current identity with a fresh anonymous one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.shutdown(cmd.Context())

			u, err := a.service.AbandonProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("abandon: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u.ID)
			return err
		},
	}
}
