package handlers

import (
	"context"

	"github.com/futig/question-generator/internal/entity"
)

// SessionUsecase is the part of the session flow the bot drives
type SessionUsecase interface {
	StartSession(ctx context.Context) (*entity.SessionState, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionState, error)
	ToggleOption(ctx context.Context, sessionID string, cat entity.Category, value string) (*entity.SessionState, error)
	SetTimeline(ctx context.Context, sessionID string, months int) (*entity.SessionState, error)
	Generate(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error)
	GetQuestions(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error)
	SetOverride(ctx context.Context, sessionID string, req *entity.OverrideRequest) (*entity.QuestionsResponse, error)
	ClearOverride(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error)
	SetIncludePersonal(ctx context.Context, sessionID string, include bool) (*entity.SessionState, error)
	Export(ctx context.Context, sessionID, fileName string) (*entity.ExportFile, error)
	CancelSession(ctx context.Context, sessionID string) error
}
