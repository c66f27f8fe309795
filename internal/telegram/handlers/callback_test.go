package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/telegram/keyboard"
	"github.com/futig/question-generator/internal/telegram/render"
	"github.com/futig/question-generator/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelegram struct {
	sent []tgbotapi.Chattable
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeTelegram) texts() []string {
	var texts []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			texts = append(texts, m.Text)
		case tgbotapi.EditMessageTextConfig:
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// fakeSessionUC serves a fixed metrics step and records toggles
type fakeSessionUC struct {
	SessionUsecase
	state   *entity.SessionState
	toggled []string
}

func (f *fakeSessionUC) GetSession(context.Context, string) (*entity.SessionState, error) {
	return f.state, nil
}

func (f *fakeSessionUC) ToggleOption(_ context.Context, _ string, _ entity.Category, value string) (*entity.SessionState, error) {
	f.toggled = append(f.toggled, value)
	return f.state, nil
}

func newCallbackFixture(t *testing.T, metrics []string) (*CallbackHandler, *fakeSessionUC, *fakeTelegram) {
	t.Helper()

	uc := &fakeSessionUC{state: &entity.SessionState{
		ID: "s-1",
		Steps: []entity.StepState{
			{Category: entity.CategoryMetric, Candidates: metrics},
		},
	}}
	tg := &fakeTelegram{}
	sender := NewMessageSender(tg, nil)
	mgr := state.NewManager(state.NewMemoryStorage(time.Hour))
	kb := keyboard.NewBuilder()

	_, err := mgr.StartSession(context.Background(), 7, "s-1")
	require.NoError(t, err)

	h := NewCallbackHandler(sender, mgr, uc, kb, NewScreen(uc, mgr, kb, sender))
	return h, uc, tg
}

func optionPress(data string) *Message {
	return &Message{ChatID: 70, UserID: 7, MessageID: 5, CallbackData: data}
}

func TestCallbackHandler_OptionTogglesDrawnCandidate(t *testing.T) {
	metrics := []string{"Funding Impact", "Application Process", "Program Experience"}
	h, uc, _ := newCallbackFixture(t, metrics)

	err := h.Handle(context.Background(), optionPress(keyboard.EncodeOption(entity.CategoryMetric, 2, metrics)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Program Experience"}, uc.toggled)
}

func TestCallbackHandler_StaleOptionIsRejected(t *testing.T) {
	drawn := []string{"Funding Impact", "Application Process", "Program Experience"}
	h, uc, tg := newCallbackFixture(t, []string{"Funding Impact", "Learning Outcomes", "Application Process"})

	err := h.Handle(context.Background(), optionPress(keyboard.EncodeOption(entity.CategoryMetric, 2, drawn)))
	require.NoError(t, err)

	assert.Empty(t, uc.toggled)
	assert.Equal(t, []string{render.ErrUnknownOption}, tg.texts())
}
