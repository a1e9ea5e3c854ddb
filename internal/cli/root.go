package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stitchbook-dev/stitchbook/internal/app"
	"github.com/stitchbook-dev/stitchbook/internal/config"
	"github.com/stitchbook-dev/stitchbook/internal/logging"
)

type options struct {
	configFile string
	cfg        *config.Config
	log        zerolog.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "stitchbook",
		Short: "Stitchbook - cross-stitch thread and project catalogue",
		Long: `Stitchbook keeps a personal catalogue of embroidery floss, the projects
that use it and their pattern documents, behind a small REST API.

Running without a subcommand starts the API server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logging.New(cfg.Log)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (environment variables still override it)")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newMigrateCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newUserCommand(opts))

	return rootCmd
}

func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}

// openApp connects to the database and brings the schema up to date.
func openApp(opts *options) (*app.App, error) {
	a, err := app.Open(opts.cfg, opts.log)
	if err != nil {
		return nil, err
	}

	if err := a.Migrate(); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}
