package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/askanything/board/internal/core/domain"
)

// snapshot mirrors the four persisted keys.
type snapshot struct {
	User      domain.User       `json:"user"`
	Users     []domain.User     `json:"users"`
	Questions []domain.Question `json:"questions"`
	Answers   []domain.Answer   `json:"answers"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the persisted board as one JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.shutdown(cmd.Context())

			u, _ := a.store.User()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snapshot{
				User:      u,
				Users:     a.store.Users(),
				Questions: a.store.Questions(),
				Answers:   a.store.Answers(),
			})
		},
	}
}
