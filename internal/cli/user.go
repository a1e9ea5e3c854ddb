package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Administrative user operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete USERNAME",
		Short: "Delete a user together with all their threads and projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			deleted, err := a.Store.DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if deleted == 0 {
				return fmt.Errorf("user %q not found", args[0])
			}

			cmd.Printf("Deleted user %s\n", args[0])
			return nil
		},
	})

	return cmd
}
