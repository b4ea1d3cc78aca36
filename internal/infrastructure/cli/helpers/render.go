package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/doeshing/sqai-go/internal/domain"
)

var (
	titleStyle = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	labelStyle = pterm.NewStyle(pterm.FgLightCyan)
	dimStyle   = pterm.NewStyle(pterm.FgGray)
)

// RenderResponse writes the generated SQL, its explanation and any result rows.
func RenderResponse(out io.Writer, resp domain.QueryResponse) {
	if resp.GenerationFailed {
		fmt.Fprintln(out, pterm.Error.Sprint(resp.Explanation))
		return
	}

	if resp.SQL != "" {
		fmt.Fprintln(out, pterm.DefaultBox.
			WithTitle(titleStyle.Sprint("Generated SQL")).
			WithPadding(1).
			Sprint(resp.SQL))
	}

	if resp.Explanation != "" {
		fmt.Fprintln(out, labelStyle.Sprint("Explanation: ")+resp.Explanation)
	}

	if resp.Model != "" {
		fmt.Fprintln(out, dimStyle.Sprintf("model %s via %s", resp.Model, resp.Backend))
	}

	if resp.Result != nil {
		fmt.Fprintln(out)
		RenderResultSet(out, *resp.Result)
	}
}

// RenderRaw writes the unprocessed model output.
func RenderRaw(out io.Writer, resp domain.QueryResponse) {
	fmt.Fprintln(out, titleStyle.Sprint("Raw response"))
	fmt.Fprintln(out, resp.RawResponse)
}

// RenderResultSet writes result rows as a table.
func RenderResultSet(out io.Writer, result domain.ResultSet) {
	if len(result.Rows) == 0 {
		fmt.Fprintln(out, pterm.Info.Sprint("Query returned no rows."))
		return
	}

	data := make([][]string, 0, len(result.Rows)+1)
	data = append(data, result.Columns)
	data = append(data, result.Rows...)

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Fall back to tab separated output
		for _, row := range data {
			fmt.Fprintln(out, strings.Join(row, "\t"))
		}
	} else {
		fmt.Fprintln(out, table)
	}

	if result.Truncated {
		fmt.Fprintln(out, pterm.Warning.Sprintf("Showing first %d rows.", len(result.Rows)))
	} else {
		fmt.Fprintln(out, dimStyle.Sprintf("%d row(s)", len(result.Rows)))
	}
}

// RenderHealthReport writes doctor checks as a table.
func RenderHealthReport(out io.Writer, report domain.HealthReport) {
	data := [][]string{{"STATUS", "CHECK", "DETAILS"}}
	for _, check := range report.Checks {
		data = append(data, []string{statusLabel(check.Status), check.Name, check.Details})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		for _, check := range report.Checks {
			fmt.Fprintf(out, "[%s] %s - %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Details)
		}
		return
	}
	fmt.Fprintln(out, table)
}

// TruncateText shortens text to width runes, appending "..." when cut.
func TruncateText(text string, width int) string {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}
	return string(runes[:width]) + "..."
}

func statusLabel(status domain.HealthStatus) string {
	label := strings.ToUpper(string(status))
	switch status {
	case domain.HealthOK:
		return pterm.FgGreen.Sprint(label)
	case domain.HealthWarn:
		return pterm.FgYellow.Sprint(label)
	default:
		return pterm.FgRed.Sprint(label)
	}
}
