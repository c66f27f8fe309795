package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/futig/question-generator/internal/entity"
)

// PreviewLimit is how many generated questions the results message lists
const PreviewLimit = 10

const (
	// Welcome messages
	MsgWelcome = `👋 Hi! I help you assemble a survey questionnaire for a funded project.

You will pick:
• Up to 3 domains
• The project timeline
• Stakeholders, metric areas and question types

Then I build the question list and send it in the format you like.`

	MsgHelp = `🤖 Bot commands:

/start - Start a new session
/help - Show this help
/cancel - Finish the current session

How it works:
1. Choose the domains of the project
2. Set the timeline in months
3. Choose stakeholders, metric areas and question types
4. Review the generated questions and edit one if needed
5. Download the questionnaire

Start with /start`

	// Steps
	MsgDomains       = "🌐 Step 1 of 5. Choose the project domains (up to %d)."
	MsgTimeline      = "📅 Step 2 of 5. Project timeline: %d months (%d to %d)."
	MsgStakeholders  = "👥 Step 3 of 5. Choose the stakeholders."
	MsgMetrics       = "📊 Step 4 of 5. Choose the metric areas."
	MsgQuestionTypes = "❓ Step 5 of 5. Choose the question types."

	MsgNothingSelected = "Nothing selected yet."
	MsgNoCandidates    = "No options available. Go back and change an earlier step."

	// Results
	MsgResultsHeader = "✅ Generated %d questions."
	MsgResultsEmpty  = "⚠️ No question matches the current selection. Go back and widen it."
	MsgResultsMore   = "…and %d more in the downloads."
	MsgOverride      = "✏️ Row %d edited: %s"
	MsgPersonalOn    = "👤 Personal questions are included."

	MsgEditPrompt = `✏️ Send the row number and the new question text, for example:

3 How many people did the project reach?`
	MsgEditSaved    = "✅ Row %d updated. It will appear in the modified export."
	MsgEditCleared  = "↩️ The edit was removed."
	MsgChooseFormat = "📥 Choose a format for %s:"
	MsgSelectHint   = "👆 Use the buttons above to choose options."

	MsgConfirmCancel = "⚠️ Are you sure? The current selection will be lost."

	// Session finished
	MsgSessionFinished = `👋 Session finished.

To start a new one, press /start`

	// Errors
	ErrGeneric          = `❌ Something went wrong. Try again or press /start`
	ErrSessionNotFound  = `❌ Session not found. Start a new one with /start`
	ErrNoSession        = `No active session. Use /start`
	ErrInvalidState     = `❌ This action is not available now. Press /start to begin again.`
	ErrTooManyDomains   = `❌ You can choose at most 3 domains. Remove one first.`
	ErrTimelineRange    = `❌ The timeline must be between 3 and 60 months.`
	ErrRowOutOfRange    = `❌ There is no row with that number.`
	ErrEditFormat       = `❌ Send the row number, a space and the new question text.`
	ErrNotGenerated     = `❌ Generate the questions first.`
	ErrPersonalExcluded = `❌ Turn on personal questions first.`
	ErrUnknownOption    = `❌ That option is no longer available.`
	ErrNetworkIssue     = `❌ Connection problem. Try again a bit later.`
	ErrTimeout          = `❌ The operation took too long. Try again.`
	ErrUnknownCommand   = `❌ Unknown command. Use /start`
)

// StepTitles are the prompts of the selection steps
var StepTitles = map[entity.Category]string{
	entity.CategoryStakeholder:  MsgStakeholders,
	entity.CategoryMetric:       MsgMetrics,
	entity.CategoryQuestionType: MsgQuestionTypes,
}

// RenderStep formats a selection step with the descriptions of the chosen values
func RenderStep(step *entity.StepState) string {
	var sb strings.Builder

	if step.Category == entity.CategoryDomain {
		sb.WriteString(fmt.Sprintf(MsgDomains, entity.MaxDomains))
	} else {
		sb.WriteString(StepTitles[step.Category])
	}
	sb.WriteString("\n\n")

	switch {
	case len(step.Candidates) == 0:
		sb.WriteString(MsgNoCandidates)
	case len(step.Selected) == 0:
		sb.WriteString(MsgNothingSelected)
	default:
		for _, opt := range step.Selected {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", opt.Value, opt.Description))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RenderTimeline formats the timeline step
func RenderTimeline(tl entity.TimelineState) string {
	return fmt.Sprintf(MsgTimeline, tl.Months, tl.Min, tl.Max)
}

// RenderResults formats the first generated questions
func RenderResults(q *entity.QuestionsResponse, includePersonal bool) string {
	if len(q.Rows) == 0 {
		return MsgResultsEmpty
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(MsgResultsHeader, len(q.Rows)))
	sb.WriteString("\n\n")

	for i, row := range q.Rows {
		if i == PreviewLimit {
			sb.WriteString(fmt.Sprintf(MsgResultsMore, len(q.Rows)-PreviewLimit))
			sb.WriteString("\n")
			break
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", row.RowNumber, row.Question))
	}

	if q.Override != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(MsgOverride, q.Override.Row, q.Override.Question))
		sb.WriteString("\n")
	}
	if includePersonal {
		sb.WriteString("\n")
		sb.WriteString(MsgPersonalOn)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// ExportLabel is the human name of an export kind
func ExportLabel(kind entity.ExportKind) string {
	switch kind {
	case entity.ExportFinal:
		return "the questionnaire"
	case entity.ExportModified:
		return "the edited questionnaire"
	case entity.ExportPersonal:
		return "the personal questions"
	default:
		return string(kind)
	}
}

// ClassifyError maps an error to a user-friendly message
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, entity.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, entity.ErrTooManyDomains):
		return ErrTooManyDomains
	case errors.Is(err, entity.ErrTimelineOutOfRange):
		return ErrTimelineRange
	case errors.Is(err, entity.ErrRowOutOfRange):
		return ErrRowOutOfRange
	case errors.Is(err, entity.ErrNotGenerated):
		return ErrNotGenerated
	case errors.Is(err, entity.ErrPersonalExcluded):
		return ErrPersonalExcluded
	case errors.Is(err, entity.ErrUnknownOption):
		return ErrUnknownOption
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
		return ErrEditFormat
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	return ErrGeneric
}
