package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stitchbook-dev/stitchbook/internal/csvio"
	"github.com/stitchbook-dev/stitchbook/internal/store"
	"github.com/stitchbook-dev/stitchbook/internal/types"
)

func newImportCommand(opts *options) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a CSV thread catalogue for a user",
		Long: `Import reads a CSV thread catalogue (for example a full DMC colour chart)
and adds every row as a new thread owned by --user. The user is created with
--password when it does not exist yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--user is required")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := csvio.LineParser{}.Parse(f)
			if err != nil {
				return err
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()

			user, err := a.Store.FindUserByUsername(ctx, username)
			if errors.Is(err, store.ErrNotFound) {
				if password == "" {
					return fmt.Errorf("user %q does not exist; pass --password to create it", username)
				}
				user, err = a.Store.CreateUser(ctx, username, password)
				if err == nil {
					cmd.Printf("Created user %s (id %d)\n", user.Username, user.ID)
				}
			}
			if err != nil {
				return err
			}

			imported, err := a.Store.ImportThreads(ctx, user.ID, records)
			if err != nil {
				return err
			}

			cmd.Printf("Imported %d threads for %s\n", imported, describe(user))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "username that will own the threads")
	cmd.Flags().StringVar(&password, "password", "", "password for the user if it has to be created")

	return cmd
}

func describe(u types.UserResponse) string {
	return fmt.Sprintf("%s (id %d)", u.Username, u.ID)
}
