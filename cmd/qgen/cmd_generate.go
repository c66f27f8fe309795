package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/futig/question-generator/internal/entity"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	genDomains      []string
	genStakeholders []string
	genMetrics      []string
	genTypes        []string
	genTimeline     int
	genEditRow      int
	genEditText     string
	genPersonal     bool
	genFormats      []string
	genOutDir       string
)

// generateCmd runs the whole waterfall and writes the exports
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the questionnaire and write the exports",
	Long: `Applies the choices in waterfall order, generates the question table and
writes finalQuestions and finalQuestionsModified in every requested format.
Without --type all question types offered for the chosen metrics are kept.

Example:
  qgen generate --domain "Funding Organisation" --timeline 12 \
    --stakeholder "Grant Recipients" --metric "Funding Impact" \
    --edit-row 0 --edit-text "Describe the funded activities." --out ./out`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceVar(&genDomains, "domain", nil, "Domains (at most 3)")
	generateCmd.Flags().IntVar(&genTimeline, "timeline", entity.TimelineDefault, "Project timeline in months (3-60)")
	generateCmd.Flags().StringSliceVar(&genStakeholders, "stakeholder", nil, "Stakeholders")
	generateCmd.Flags().StringSliceVar(&genMetrics, "metric", nil, "Metric areas")
	generateCmd.Flags().StringSliceVar(&genTypes, "type", nil, "Question types (default: all offered)")
	generateCmd.Flags().IntVar(&genEditRow, "edit-row", -1, "Row number to override in the modified export")
	generateCmd.Flags().StringVar(&genEditText, "edit-text", "", "Replacement question text for --edit-row")
	generateCmd.Flags().BoolVar(&genPersonal, "personal", false, "Also write the personal questions")
	generateCmd.Flags().StringSliceVar(&genFormats, "format", []string{string(entity.FormatCSV)}, "Export formats (csv, json, xlsx, pdf, markdown; docx needs UNIDOC_LICENSE_KEY)")
	generateCmd.Flags().StringVar(&genOutDir, "out", ".", "Output directory")

	generateCmd.MarkFlagsRequiredTogether("edit-row", "edit-text")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	uc := core.SessionUC

	formats, err := parseFormats(genFormats, core.Formats)
	if err != nil {
		return err
	}

	st, err := uc.StartSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := uc.CancelSession(ctx, st.ID); err != nil {
			logger.Warn("failed to cancel session", zap.Error(err))
		}
	}()

	if _, err := uc.SetDomains(ctx, st.ID, genDomains); err != nil {
		return fmt.Errorf("domains: %w", err)
	}
	if _, err := uc.SetTimeline(ctx, st.ID, genTimeline); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if _, err := uc.SetStakeholders(ctx, st.ID, genStakeholders); err != nil {
		return fmt.Errorf("stakeholders: %w", err)
	}
	if _, err := uc.SetMetrics(ctx, st.ID, genMetrics); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if len(genTypes) > 0 {
		if _, err := uc.SetQuestionTypes(ctx, st.ID, genTypes); err != nil {
			return fmt.Errorf("question types: %w", err)
		}
	}

	questions, err := uc.Generate(ctx, st.ID)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("edit-row") {
		row := genEditRow
		if _, err := uc.SetOverride(ctx, st.ID, &entity.OverrideRequest{Row: &row, Question: genEditText}); err != nil {
			return fmt.Errorf("edit: %w", err)
		}
	}

	kinds := []entity.ExportKind{entity.ExportFinal, entity.ExportModified}
	if genPersonal {
		if _, err := uc.SetIncludePersonal(ctx, st.ID, true); err != nil {
			return err
		}
		kinds = append(kinds, entity.ExportPersonal)
	}

	if err := os.MkdirAll(genOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %d questions\n", len(questions.Rows))

	for _, kind := range kinds {
		for _, format := range formats {
			name := entity.ExportName{Kind: kind, Format: format}.String()

			file, err := uc.Export(ctx, st.ID, name)
			if err != nil {
				return fmt.Errorf("export %s: %w", name, err)
			}

			path := filepath.Join(genOutDir, file.Name)
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(out, "  wrote %s (%d bytes)\n", path, len(file.Data))
		}
	}

	return nil
}

func parseFormats(values []string, enabled []entity.ResultFormat) ([]entity.ResultFormat, error) {
	formats := make([]entity.ResultFormat, 0, len(values))
	for _, v := range values {
		f := entity.ResultFormat(v)
		if !slices.Contains(enabled, f) {
			return nil, fmt.Errorf("%w: format %q", entity.ErrUnknownExport, v)
		}
		formats = append(formats, f)
	}
	return formats, nil
}
