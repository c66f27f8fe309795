package session

import (
	"context"

	"github.com/futig/question-generator/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context) (*entity.SessionState, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionState, error)
	SetSelection(ctx context.Context, sessionID string, cat entity.Category, values []string) (*entity.SessionState, error)
	SetTimeline(ctx context.Context, sessionID string, months int) (*entity.SessionState, error)
	Generate(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error)
	GetQuestions(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error)
	SetRelevant(ctx context.Context, sessionID string, row int, relevant bool) (*entity.QuestionsResponse, error)
	SetOverride(ctx context.Context, sessionID string, req *entity.OverrideRequest) (*entity.QuestionsResponse, error)
	ClearOverride(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error)
	SetIncludePersonal(ctx context.Context, sessionID string, include bool) (*entity.SessionState, error)
	PersonalQuestions(ctx context.Context, sessionID string) (*entity.PersonalTable, error)
	Export(ctx context.Context, sessionID, fileName string) (*entity.ExportFile, error)
	CancelSession(ctx context.Context, sessionID string) error
}
