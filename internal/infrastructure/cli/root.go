package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/sqai-go/internal/app"
	"github.com/doeshing/sqai-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. The container is built once flags
// are parsed and is filled into the value every subcommand holds.
func NewRootCmd(opts Options) (*cobra.Command, *app.Container) {
	container := &app.Container{}
	var askOpts commands.AskOptions

	root := &cobra.Command{
		Use:   "sqai [question]",
		Short: "SQAI - natural language to SQL",
		Long: "SQAI turns a question into SQL for your database using a local model,\n" +
			"runs it and shows the result. Without a question the default example is asked.",
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := app.BuildContainer(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigPath,
				Verbose:    opts.Verbose,
			})
			if err != nil {
				return fmt.Errorf("failed to initialise: %w", err)
			}
			*container = *built
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunAsk(cmd.Context(), cmd.OutOrStdout(), container, args, askOpts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file (default ~/.sqai/config.yaml or $SQAI_CONFIG)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")
	commands.BindAskFlags(root, &askOpts)

	root.AddCommand(
		commands.NewAskCommand(container),
		commands.NewExamplesCommand(),
		commands.NewSchemaCommand(container),
		commands.NewGlossaryCommand(container),
		commands.NewPromptCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewModelsCommand(container),
		commands.NewConfigCommand(container),
		commands.NewCacheCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, container
}

// Execute runs the command tree and releases the container afterwards.
func Execute(ctx context.Context, opts Options, args []string) (err error) {
	root, container := NewRootCmd(opts)
	if args != nil {
		root.SetArgs(args)
	}
	defer func() {
		if container.Metrics == nil {
			return
		}
		if closeErr := container.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return root.ExecuteContext(ctx)
}
