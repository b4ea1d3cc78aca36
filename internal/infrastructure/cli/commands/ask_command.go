package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/doeshing/sqai-go/internal/app"
	"github.com/doeshing/sqai-go/internal/application/query"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/sqai-go/internal/infrastructure/database"
)

// AskOptions holds flags shared by the ask command and the root command.
type AskOptions struct {
	Model         string
	DryRun        bool
	Raw           bool
	CSVPath       string
	MaxRows       int
	Timeout       time.Duration
	RefreshSchema bool
	Example       int
}

// BindAskFlags registers the ask flags on cmd.
func BindAskFlags(cmd *cobra.Command, opts *AskOptions) {
	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Generate SQL without executing it")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Also print the full model response")
	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "Write result rows to a CSV file")
	cmd.Flags().IntVar(&opts.MaxRows, "max-rows", 0, "Override preferences.max_rows")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Override preferences.timeout (e.g. 90s)")
	cmd.Flags().BoolVar(&opts.RefreshSchema, "refresh-schema", false, "Describe the schema again instead of using the cache")
	cmd.Flags().IntVarP(&opts.Example, "example", "e", 0, "Ask example question N (see `sqai examples`)")
}

// NewAskCommand creates the ask command
func NewAskCommand(container *app.Container) *cobra.Command {
	var opts AskOptions

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Translate a question into SQL and run it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAsk(cmd.Context(), cmd.OutOrStdout(), container, args, opts)
		},
	}

	BindAskFlags(cmd, &opts)
	return cmd
}

// NewExamplesCommand creates the examples command
func NewExamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "examples",
		Short:             "List example questions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, q := range ExampleQuestions {
				fmt.Fprintf(out, "%d. %s\n", i+1, q)
			}
			fmt.Fprintf(out, "\nDefault: %s\n", DefaultQuestion)
			return nil
		},
	}
}

// ResolveQuestion picks the question from args, an example index or the default.
func ResolveQuestion(args []string, example int) (string, error) {
	if example != 0 {
		if example < 1 || example > len(ExampleQuestions) {
			return "", fmt.Errorf("--example must be between 1 and %d", len(ExampleQuestions))
		}
		return ExampleQuestions[example-1], nil
	}
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return DefaultQuestion, nil
	}
	return question, nil
}

// RunAsk answers one question and renders the outcome.
func RunAsk(ctx context.Context, out io.Writer, container *app.Container, args []string, opts AskOptions) error {
	if container.QueryService == nil {
		return errors.New(ErrQueryServiceUnavailable)
	}

	question, err := ResolveQuestion(args, opts.Example)
	if err != nil {
		return err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Duration(container.Config.Preferences.TimeoutSeconds) * time.Second
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	svc := *container.QueryService
	if opts.RefreshSchema {
		svc.Schema = container.SchemaSource(true)
	}
	if !container.Config.Preferences.AutoExecute {
		// Without auto_execute the SQL is only shown
		opts.DryRun = true
	}

	fmt.Fprintln(out, pterm.NewStyle(pterm.FgLightCyan).Sprint("Question: ")+question)

	spinner := helpers.StderrSpinner("Generating SQL...")
	spinner.Start()
	resp, err := svc.Ask(ctx, domain.QueryRequest{
		Question:      question,
		ModelOverride: opts.Model,
		DryRun:        opts.DryRun,
		MaxRows:       opts.MaxRows,
	})
	spinner.Stop()

	if err != nil && resp.Prompt == "" {
		if errors.Is(err, query.ErrSchemaUnavailable) {
			return fmt.Errorf("Error connecting to database: %w\n%s", err, MsgDatabaseHint)
		}
		return err
	}

	helpers.RenderResponse(out, resp)
	if opts.Raw {
		fmt.Fprintln(out)
		helpers.RenderRaw(out, resp)
	}

	if errors.Is(err, query.ErrNoSQL) {
		return errors.New(MsgNoSQLGenerated)
	}
	if err != nil {
		return err
	}
	if resp.GenerationFailed {
		return errors.New("generation failed")
	}

	if opts.CSVPath != "" && resp.Result != nil {
		if err := writeResultCSV(opts.CSVPath, *resp.Result); err != nil {
			return err
		}
		fmt.Fprintln(out, pterm.Success.Sprintf("Results written to %s", opts.CSVPath))
	}
	return nil
}

func writeResultCSV(path string, result domain.ResultSet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	if err := database.WriteCSV(file, result); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
