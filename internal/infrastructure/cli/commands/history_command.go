package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doeshing/sqai-go/internal/app"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/sqai-go/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and reuse previous questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, domain.DefaultHistoryLimit)
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRerunCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search questions and SQL for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && len(args) > 0 {
				query = args[0]
			}
			if query == "" {
				return errors.New(ErrQueryRequired)
			}
			return searchHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, query, searchLimit)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !helpers.PromptForConfirmation(cmd.OutOrStdout(), cmd.InOrStdin(), "Delete all history?") {
				fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
				return nil
			}
			return clearHistory(cmd.Context(), container)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(cmd.Context(), container, args[0])
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show top questions and model usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newHistoryRerunCommand creates the 'history rerun' subcommand
func newHistoryRerunCommand(container *app.Container) *cobra.Command {
	var opts AskOptions

	cmd := &cobra.Command{
		Use:   "rerun <n>",
		Short: "Ask the n-th most recent question again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := recordedQuestion(cmd.Context(), container, args[0])
			if err != nil {
				return err
			}
			opts.Example = 0
			return RunAsk(cmd.Context(), cmd.OutOrStdout(), container, []string{question}, opts)
		},
	}

	BindAskFlags(cmd, &opts)
	return cmd
}

// historyStore returns the history store or a descriptive error
func historyStore(container *app.Container) (ports.HistoryRepository, error) {
	if container.HistoryStore == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.HistoryStore, nil
}

// listHistoryEntries lists recent history entries
func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	records, err := store.Records(ctx, limit, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for i, rec := range records {
		fmt.Fprintf(out, "%3d  %s\n", i+1, formatHistoryLine(rec))
	}

	return nil
}

// searchHistoryEntries searches history for a keyword
func searchHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, query string, limit int) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	records, err := store.Records(ctx, limit, query)
	if err != nil {
		return fmt.Errorf("failed to search history: %w", err)
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s\n    %s\n", formatHistoryLine(rec), rec.SQL)
	}

	return nil
}

// clearHistory deletes all entries
func clearHistory(ctx context.Context, container *app.Container) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// exportHistory exports history to a JSONL file
func exportHistory(ctx context.Context, container *app.Container, path string) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	if err := store.ExportJSON(ctx, path); err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}

	return nil
}

// showHistoryStats displays top questions and per-model counts
func showHistoryStats(ctx context.Context, out io.Writer, container *app.Container) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	records, err := store.Records(ctx, MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	stats := helpers.AnalyzeHistory(records, TopQuestionsShown)
	displayHistoryStatistics(out, stats)

	return nil
}

// displayHistoryStatistics displays formatted history statistics
func displayHistoryStatistics(out io.Writer, stats helpers.HistoryStatistics) {
	fmt.Fprintf(out, "Entries analyzed: %d\nRows returned: %d (avg %.1f)\n",
		stats.Entries,
		stats.TotalRows,
		stats.AverageRows())

	fmt.Fprintln(out, "Top questions:")
	for _, stat := range stats.TopQuestions {
		fmt.Fprintf(out, "  %s (%d)\n", helpers.TruncateText(stat.Question, domain.HistoryQuestionWidth), stat.Count)
	}

	fmt.Fprintln(out, "Models:")
	counts := helpers.CalculateTopQuestions(stats.ModelCounts, 0)
	for _, stat := range counts {
		fmt.Fprintf(out, "  %s: %d\n", stat.Question, stat.Count)
	}
}

// recordedQuestion resolves a 1-based index from `history list` to its question
func recordedQuestion(ctx context.Context, container *app.Container, arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return "", fmt.Errorf("history index must be a positive number, got %q", arg)
	}
	store, err := historyStore(container)
	if err != nil {
		return "", err
	}
	records, err := store.Records(ctx, n, "")
	if err != nil {
		return "", fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) < n {
		return "", fmt.Errorf("history has only %d entries", len(records))
	}
	return records[n-1].Question, nil
}

// formatHistoryLine renders "HH:MM:SS - question" with long questions cut
func formatHistoryLine(rec domain.HistoryRecord) string {
	return fmt.Sprintf("%s - %s", rec.Timestamp.Format(domain.ClockFormat), helpers.TruncateText(rec.Question, domain.HistoryQuestionWidth))
}
