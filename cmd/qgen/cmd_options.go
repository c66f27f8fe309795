package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/futig/question-generator/internal/entity"
	"github.com/spf13/cobra"
)

var (
	optDomains      []string
	optStakeholders []string
	optMetrics      []string
)

// optionsCmd lists the candidates of every step
var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the options offered at each selection step",
	Long: `Lists the candidates of each step for the given prior choices. A step
whose prior choice is empty lists every value of the table.

Example:
  qgen options --domain "Funding Organisation"`,
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().StringSliceVar(&optDomains, "domain", nil, "Chosen domains")
	optionsCmd.Flags().StringSliceVar(&optStakeholders, "stakeholder", nil, "Chosen stakeholders")
	optionsCmd.Flags().StringSliceVar(&optMetrics, "metric", nil, "Chosen metric areas")
}

func runOptions(cmd *cobra.Command, args []string) error {
	candidates := core.Generator.Candidates(entity.Selection{
		Domains:      optDomains,
		Stakeholders: optStakeholders,
		Metrics:      optMetrics,
	})

	out := cmd.OutOrStdout()
	for _, cat := range entity.Categories {
		options, err := core.Generator.Describe(cat, candidates.Values(cat))
		if err != nil {
			return err
		}
		printOptions(out, cat, options)
	}

	return nil
}

func printOptions(out io.Writer, cat entity.Category, options []entity.Option) {
	fmt.Fprintf(out, "%s (%d)\n", cat, len(options))
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, opt := range options {
		fmt.Fprintf(out, "  %s\n      %s\n", opt.Value, opt.Description)
	}
	fmt.Fprintln(out)
}
