package cli

import (
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/services"
)

// parseCmd shows how descriptions resolve without starting the TUI.
// Useful for checking what the date heuristics make of a phrase.
var parseCmd = &cobra.Command{
	Use:   "parse [description]...",
	Short: "Show how descriptions resolve to titles and years",
	Long: `Run the local title fallback and date heuristics over one or more
descriptions and print the result. No model is consulted; this shows
exactly what plotline falls back to when inference is unavailable.

Examples:
  plotline parse "We moved to Lisbon in 2019"
  plotline parse "Born March 1987" "Graduated 14/07/2009"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	header := color.New(color.Bold, color.Underline)
	yearColour := color.New(color.FgHiYellow)
	noneColour := color.New(color.Faint, color.Italic)

	tbl := uitable.New()
	tbl.MaxColWidth = 50
	tbl.Wrap = true
	tbl.AddRow(header.Sprint("DESCRIPTION"), header.Sprint("TITLE"), header.Sprint("YEAR"), header.Sprint("TIMESTAMP"))

	for _, text := range args {
		title := domain.FallbackTitle(text)

		year := noneColour.Sprint("none")
		timestamp := ""
		if d := services.ParseDate(text); d != nil {
			year = yearColour.Sprint(d.Year)
			timestamp = d.Timestamp.Format("2006-01-02")
		}
		tbl.AddRow(text, title, year, timestamp)
	}

	cmd.Println(tbl.String())
	return nil
}
