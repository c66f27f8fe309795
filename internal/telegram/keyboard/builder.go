package keyboard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/futig/question-generator/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TimelineDeltas are the month steps offered on the timeline keyboard
var TimelineDeltas = []int{-12, -1, 1, 12}

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Start session", EncodeCallback(ActionAction, "start")),
		),
	)
}

// StepKeyboard lists the candidates of a step, marking the chosen ones
func (b *Builder) StepKeyboard(step *entity.StepState) tgbotapi.InlineKeyboardMarkup {
	selected := make([]string, 0, len(step.Selected))
	for _, opt := range step.Selected {
		selected = append(selected, opt.Value)
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i, candidate := range step.Candidates {
		label := "▫️ " + candidate
		if slices.Contains(selected, candidate) {
			label = "✅ " + candidate
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, EncodeOption(step.Category, i, step.Candidates)),
		))
	}

	rows = append(rows, b.navRow(step.Category != entity.CategoryDomain, len(selected) > 0))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// TimelineKeyboard creates the +/- month buttons
func (b *Builder) TimelineKeyboard(tl entity.TimelineState) tgbotapi.InlineKeyboardMarkup {
	buttons := []tgbotapi.InlineKeyboardButton{}
	for _, delta := range TimelineDeltas {
		if (delta < 0 && tl.Months <= tl.Min) || (delta > 0 && tl.Months >= tl.Max) {
			continue
		}
		label := strconv.Itoa(delta)
		if delta > 0 {
			label = "+" + label
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback(ActionTimeline, label)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(buttons...),
		b.navRow(true, true),
	)
}

// ResultsKeyboard creates the edit, personal and download buttons
func (b *Builder) ResultsKeyboard(st *entity.SessionState) tgbotapi.InlineKeyboardMarkup {
	editRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✏️ Edit a question", EncodeCallback(ActionAction, "edit")),
	)
	if st.Override != nil {
		editRow = append(editRow,
			tgbotapi.NewInlineKeyboardButtonData("↩️ Undo edit", EncodeCallback(ActionAction, "reset_edit")),
		)
	}

	personalLabel := "👤 Add personal questions"
	if st.IncludePersonal {
		personalLabel = "👤 Remove personal questions"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		editRow,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(personalLabel, EncodeCallback(ActionAction, "personal")),
		),
	}

	for _, kind := range exportKinds(st) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(downloadLabel(kind), EncodeCallback(ActionExports, string(kind))),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", EncodeCallback(ActionNav, "back")),
		tgbotapi.NewInlineKeyboardButtonData("🏁 Finish", EncodeCallback(ActionAction, "finish")),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// FormatKeyboard creates one download button per offered format of kind
func (b *Builder) FormatKeyboard(kind entity.ExportKind, exports []string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}

	for _, name := range exports {
		parsed, err := entity.ParseExportName(name, entity.ResultFormats)
		if err != nil || parsed.Kind != kind {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(formatLabel(parsed.Format), EncodeCallback(ActionDownload, parsed.String())))
		if len(row) == 3 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ConfirmCancelKeyboard asks before the session is dropped
func (b *Builder) ConfirmCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, finish", EncodeCallback(ActionConfirm, "cancel")),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, continue", EncodeCallback(ActionConfirm, "continue")),
		),
	)
}

func (b *Builder) navRow(back, next bool) []tgbotapi.InlineKeyboardButton {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", EncodeCallback(ActionNav, "back")))
	}
	if next {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", EncodeCallback(ActionNav, "next")))
	}
	return row
}

// exportKinds returns the kinds with at least one available file, in order
func exportKinds(st *entity.SessionState) []entity.ExportKind {
	kinds := []entity.ExportKind{}
	for _, kind := range entity.ExportKinds {
		for _, name := range st.Exports {
			parsed, err := entity.ParseExportName(name, entity.ResultFormats)
			if err == nil && parsed.Kind == kind {
				kinds = append(kinds, kind)
				break
			}
		}
	}
	return kinds
}

func downloadLabel(kind entity.ExportKind) string {
	switch kind {
	case entity.ExportFinal:
		return "📥 Download questionnaire"
	case entity.ExportModified:
		return "📥 Download edited questionnaire"
	case entity.ExportPersonal:
		return "📥 Download personal questions"
	default:
		return fmt.Sprintf("📥 %s", kind)
	}
}

func formatLabel(format entity.ResultFormat) string {
	switch format {
	case entity.FormatMarkdown:
		return "Markdown"
	case entity.FormatDOCX:
		return "Word"
	case entity.FormatXLSX:
		return "Excel"
	default:
		return strings.ToUpper(string(format))
	}
}
