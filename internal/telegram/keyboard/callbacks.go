package keyboard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/question-generator/internal/entity"
)

// Callback actions
const (
	ActionAction   = "action"  // start, finish, edit, reset_edit, personal
	ActionOption   = "opt"     // <category>.<candidate index>.<fingerprint>
	ActionTimeline = "tl"      // signed month delta
	ActionNav      = "nav"     // next, back
	ActionExports  = "dlk"     // export kind, opens the format menu
	ActionDownload = "dl"      // export file name
	ActionConfirm  = "confirm" // cancel, continue
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}

// OptionRef points at one candidate of the keyboard it was drawn on
type OptionRef struct {
	Category    entity.Category
	Index       int
	Fingerprint string
}

// Fingerprint identifies a candidate list. A button whose fingerprint no
// longer matches the step was drawn for another list.
func Fingerprint(candidates []string) string {
	h := sha256.New()
	for _, c := range candidates {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:4])
}

// EncodeOption refers to a candidate by position. Telegram caps callback
// data at 64 bytes, which a candidate value may exceed.
func EncodeOption(cat entity.Category, index int, candidates []string) string {
	return EncodeCallback(ActionOption, fmt.Sprintf("%s.%d.%s", cat, index, Fingerprint(candidates)))
}

// ParseOption decodes the value of an option callback
func ParseOption(value string) (OptionRef, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 || parts[2] == "" {
		return OptionRef{}, fmt.Errorf("invalid option callback: %s", value)
	}

	cat := entity.Category(parts[0])
	if err := cat.Validate(); err != nil {
		return OptionRef{}, err
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return OptionRef{}, fmt.Errorf("invalid option index: %s", value)
	}

	return OptionRef{Category: cat, Index: index, Fingerprint: parts[2]}, nil
}

// Resolve returns the candidate the button was drawn for, or
// ErrUnknownOption when the step's candidates changed since.
func (r OptionRef) Resolve(step *entity.StepState) (string, error) {
	if step == nil || step.Category != r.Category {
		return "", fmt.Errorf("%w: %s option %d", entity.ErrUnknownOption, r.Category, r.Index)
	}
	if r.Index >= len(step.Candidates) || Fingerprint(step.Candidates) != r.Fingerprint {
		return "", fmt.Errorf("%w: %s option %d from a stale keyboard", entity.ErrUnknownOption, r.Category, r.Index)
	}
	return step.Candidates[r.Index], nil
}
