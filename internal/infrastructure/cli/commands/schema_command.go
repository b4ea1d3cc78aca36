package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/sqai-go/assets"
	"github.com/doeshing/sqai-go/internal/app"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/infrastructure/glossary"
)

// NewSchemaCommand creates the schema command
func NewSchemaCommand(container *app.Container) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema description sent to the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSchema(cmd.Context(), cmd.OutOrStdout(), container, refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Describe the database again and update the cache")
	return cmd
}

// NewGlossaryCommand creates the glossary command
func NewGlossaryCommand(container *app.Container) *cobra.Command {
	var (
		initFile bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Print or create the KPI definitions document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if initFile {
				return initGlossary(cmd.OutOrStdout(), container.Config.Glossary.Path, force)
			}
			return printGlossary(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the example KPI definitions to glossary.path")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing glossary with --init")
	return cmd
}

// NewPromptCommand creates the prompt command
func NewPromptCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [question]",
		Short: "Print the prompt that would be sent for a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.QueryService == nil {
				return errors.New(ErrQueryServiceUnavailable)
			}
			question, err := ResolveQuestion(args, 0)
			if err != nil {
				return err
			}
			text, err := container.QueryService.Prompt(cmd.Context(), question)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

// printSchema writes the schema description
func printSchema(ctx context.Context, out io.Writer, container *app.Container, refresh bool) error {
	ddl, err := container.SchemaSource(refresh).Describe(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe schema: %w", err)
	}
	fmt.Fprintln(out, ddl)
	return nil
}

// printGlossary writes the glossary, or the placeholder when it is missing
func printGlossary(ctx context.Context, out io.Writer, container *app.Container) error {
	text, err := glossary.NewFileSource(container.Config.Glossary.Path).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load glossary: %w", err)
	}
	fmt.Fprintln(out, text)
	return nil
}

// initGlossary writes the bundled KPI definitions to path
func initGlossary(out io.Writer, path string, force bool) error {
	if glossary.NewFileSource(path).Exists() && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("failed to create glossary directory: %w", err)
	}
	if err := os.WriteFile(path, assets.ExampleGlossaryMarkdown, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("failed to write glossary: %w", err)
	}
	fmt.Fprintf(out, "Wrote KPI definitions to %s\n", path)
	return nil
}
