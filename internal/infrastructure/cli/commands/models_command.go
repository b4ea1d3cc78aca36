package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/doeshing/sqai-go/internal/app"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/extract"
	"github.com/doeshing/sqai-go/internal/infrastructure/ai"
	"github.com/doeshing/sqai-go/internal/infrastructure/cli/helpers"
)

// modelTestPrompt asks for a trivially checkable answer in the tagged layout
const modelTestPrompt = "Reply with exactly this and nothing else:\n```sql\nSELECT 1;\n```"

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage generation backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	modelsCmd.AddCommand(
		newModelsListCommand(container),
		newModelsTestCommand(container),
		newModelsUseCommand(container),
		newModelsAddCommand(container),
		newModelsRemoveCommand(container),
	)

	return modelsCmd
}

// newModelsListCommand creates the 'models list' subcommand
func newModelsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newModelsTestCommand creates the 'models test' subcommand
func newModelsTestCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Send a short prompt to a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return testModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

// newModelsUseCommand creates the 'models use' subcommand
func newModelsUseCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set default model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setDefaultModel(cmd.Context(), container, args[0])
		},
	}
}

// newModelsAddCommand creates the 'models add' subcommand
func newModelsAddCommand(container *app.Container) *cobra.Command {
	var opts modelAddOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new model definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return addModel(cmd.Context(), container, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Model name (identifier)")
	cmd.Flags().StringVar(&opts.Backend, "backend", domain.BackendCommand, "Backend kind: command|http")
	cmd.Flags().StringVar(&opts.ModelID, "model-id", "", "Model run by the backend (defaults to --name)")
	cmd.Flags().StringVar(&opts.Binary, "binary", "", "Runner executable for the command backend")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Base URL for the http backend")
	cmd.Flags().IntVar(&opts.Retries, "retries", 0, "Extra attempts after a failed call")
	cmd.Flags().StringVar(&opts.RetryDelay, "retry-delay", "", "Delay between attempts (e.g. 2s)")

	return cmd
}

// newModelsRemoveCommand creates the 'models remove' subcommand
func newModelsRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove model definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return removeModel(cmd.Context(), container, args[0])
		},
	}
}

// modelAddOptions holds options for adding a new model
type modelAddOptions struct {
	Name       string
	Backend    string
	ModelID    string
	Binary     string
	Endpoint   string
	Retries    int
	RetryDelay string
}

// listModels lists all configured models
func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data := [][]string{{"NAME", "BACKEND", "MODEL ID", "TARGET", "RETRIES", "DEFAULT"}}
	for _, model := range cfg.Models {
		defaultMarker := ""
		if cfg.Preferences.DefaultModel == model.Name {
			defaultMarker = "*"
		}
		data = append(data, []string{
			model.Name,
			model.GetBackend(),
			model.GetModelID(),
			modelTarget(model),
			strconv.Itoa(model.Retries),
			defaultMarker,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render models: %w", err)
	}
	fmt.Fprintln(out, table)
	return nil
}

// modelTarget describes where a backend sends prompts
func modelTarget(model domain.ModelDefinition) string {
	if model.GetBackend() == domain.BackendHTTP {
		return model.GetEndpoint()
	}
	return model.GetBinary()
}

// testModel sends a short prompt to the named model
func testModel(ctx context.Context, out io.Writer, container *app.Container, modelName string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	model, exists := cfg.FindModelByName(modelName)
	if !exists {
		return fmt.Errorf("model %s not found", modelName)
	}

	generator, err := ai.NewFactory().ForModel(model)
	if err != nil {
		return fmt.Errorf("failed to create backend for model %s: %w", modelName, err)
	}

	testCtx, cancel := context.WithTimeout(ctx, domain.DefaultModelTestTimeout)
	defer cancel()

	spinner := helpers.StderrSpinner("Waiting for " + modelName + "...")
	spinner.Start()
	text, err := generator.Generate(testCtx, modelTestPrompt)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("model %s test failed: %w", modelName, err)
	}

	fmt.Fprintf(out, "Model %s responded via %s.\n", modelName, generator.Name())
	if sql := extract.SQL(text); sql != "" {
		fmt.Fprintf(out, "Extracted SQL: %s\n", sql)
	} else {
		fmt.Fprintf(out, "No SQL block found in response:\n%s\n", strings.TrimSpace(text))
	}
	return nil
}

// setDefaultModel sets the default model
func setDefaultModel(ctx context.Context, container *app.Container, modelName string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.SetDefaultModel(modelName); err != nil {
		return err
	}

	return helpers.SaveConfigWithValidation(container, cfg)
}

// addModel adds a new model definition
func addModel(ctx context.Context, container *app.Container, opts modelAddOptions) error {
	if opts.Name == "" {
		return errors.New(ErrModelNameRequired)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	model := domain.ModelDefinition{
		Name:       opts.Name,
		Backend:    opts.Backend,
		ModelID:    opts.ModelID,
		Binary:     opts.Binary,
		Endpoint:   opts.Endpoint,
		Retries:    opts.Retries,
		RetryDelay: opts.RetryDelay,
	}

	if err := cfg.AddModel(model); err != nil {
		return err
	}

	return helpers.SaveConfigWithValidation(container, cfg)
}

// removeModel removes a model definition
func removeModel(ctx context.Context, container *app.Container, modelName string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.RemoveModel(modelName); err != nil {
		return err
	}

	return helpers.SaveConfigWithValidation(container, cfg)
}
