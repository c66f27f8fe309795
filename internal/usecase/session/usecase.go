package session

import (
	"context"
	"fmt"

	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/formatter"
	"github.com/futig/question-generator/internal/pkg/validator"
	"github.com/futig/question-generator/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SessionUsecase implements session business logic
type SessionUsecase struct {
	sessionRepo repository.SessionRepository
	generator   QuestionGenerator
	exporter    Exporter
	personal    *entity.PersonalTable
	validator   *validator.Validator
	logger      *zap.Logger
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	generator QuestionGenerator,
	exporter Exporter,
	personal *entity.PersonalTable,
	validator *validator.Validator,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo: sessionRepo,
		generator:   generator,
		exporter:    exporter,
		personal:    personal,
		validator:   validator,
		logger:      logger,
	}
}

// StartSession creates a session with the default selection. Every question
// type is preselected.
func (uc *SessionUsecase) StartSession(ctx context.Context) (*entity.SessionState, error) {
	session := entity.Session{
		ID:        uuid.New().String(),
		Selection: entity.NewSelection(),
	}
	session.Selection.QuestionTypes = uc.generator.QuestionTypeCandidates(session.Selection.Metrics)

	created, err := uc.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session started", zap.String("session_id", created.ID))

	return uc.sessionToState(created)
}

// GetSession returns the current state of a session
func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionState, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return uc.sessionToState(session)
}

func (uc *SessionUsecase) SetDomains(ctx context.Context, sessionID string, values []string) (*entity.SessionState, error) {
	return uc.SetSelection(ctx, sessionID, entity.CategoryDomain, values)
}

func (uc *SessionUsecase) SetStakeholders(ctx context.Context, sessionID string, values []string) (*entity.SessionState, error) {
	return uc.SetSelection(ctx, sessionID, entity.CategoryStakeholder, values)
}

func (uc *SessionUsecase) SetMetrics(ctx context.Context, sessionID string, values []string) (*entity.SessionState, error) {
	return uc.SetSelection(ctx, sessionID, entity.CategoryMetric, values)
}

func (uc *SessionUsecase) SetQuestionTypes(ctx context.Context, sessionID string, values []string) (*entity.SessionState, error) {
	return uc.SetSelection(ctx, sessionID, entity.CategoryQuestionType, values)
}

// SetSelection replaces the chosen values of one step. Values must be current
// candidates; on any violation the session is left unchanged.
func (uc *SessionUsecase) SetSelection(
	ctx context.Context,
	sessionID string,
	cat entity.Category,
	values []string,
) (*entity.SessionState, error) {
	session, err := uc.sessionRepo.UpdateSession(ctx, sessionID, func(s *entity.Session) error {
		candidates := uc.generator.Candidates(s.Selection)

		chosen, err := uc.validator.ValidateSelection(cat, values, candidates.Values(cat))
		if err != nil {
			return err
		}

		previousTypes := candidates.QuestionTypes
		setValues(&s.Selection, cat, chosen)
		uc.reconcile(s, previousTypes)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", cat, err)
	}

	ctxzap.Debug(ctx, "selection updated",
		zap.String("session_id", sessionID),
		zap.String("category", string(cat)),
		zap.Strings("values", session.Selection.Values(cat)),
	)

	return uc.sessionToState(session)
}

// ToggleOption adds value to the step when absent and removes it otherwise
func (uc *SessionUsecase) ToggleOption(
	ctx context.Context,
	sessionID string,
	cat entity.Category,
	value string,
) (*entity.SessionState, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	current := session.Selection.Values(cat)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, v := range current {
		if v == value {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, value)
	}

	return uc.SetSelection(ctx, sessionID, cat, next)
}

// SetTimeline sets the project timeline in months
func (uc *SessionUsecase) SetTimeline(ctx context.Context, sessionID string, months int) (*entity.SessionState, error) {
	if err := uc.validator.ValidateTimeline(months); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.UpdateSession(ctx, sessionID, func(s *entity.Session) error {
		s.Selection.Timeline = months
		uc.reconcile(s, uc.generator.QuestionTypeCandidates(s.Selection.Metrics))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set timeline: %w", err)
	}

	return uc.sessionToState(session)
}

// Generate turns generation on and computes the table for the current selection
func (uc *SessionUsecase) Generate(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error) {
	session, err := uc.sessionRepo.UpdateSession(ctx, sessionID, func(s *entity.Session) error {
		s.Generated = true
		s.Questions = uc.generator.Generate(s.Selection)
		s.Override = nil
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	ctxzap.Info(ctx, "questions generated",
		zap.String("session_id", sessionID),
		zap.Int("rows", session.Questions.Len()),
	)

	return questionsToResponse(session), nil
}

// GetQuestions returns the current generated table
func (uc *SessionUsecase) GetQuestions(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !session.Generated {
		return nil, entity.ErrNotGenerated
	}
	return questionsToResponse(session), nil
}

// SetRelevant marks one generated row as relevant or not
func (uc *SessionUsecase) SetRelevant(ctx context.Context, sessionID string, row int, relevant bool) (*entity.QuestionsResponse, error) {
	session, err := uc.sessionRepo.UpdateSession(ctx, sessionID, func(s *entity.Session) error {
		if !s.Generated {
			return entity.ErrNotGenerated
		}
		table, err := s.Questions.WithRelevant(row, relevant)
		if err != nil {
			return err
		}
		s.Questions = table
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set relevant: %w", err)
	}

	return questionsToResponse(session), nil
}

// SetOverride records the single manual question edit used by the modified
// export. A new override replaces the previous one.
func (uc *SessionUsecase) SetOverride(ctx context.Context, sessionID string, req *entity.OverrideRequest) (*entity.QuestionsResponse, error) {
	if err := uc.validator.ValidateOverride(req); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.UpdateSession(ctx, sessionID, func(s *entity.Session) error {
		if !s.Generated {
			return entity.ErrNotGenerated
		}
		if err := s.Questions.CheckRow(*req.Row); err != nil {
			return err
		}
		s.Override = &entity.RowOverride{Row: *req.Row, Question: req.Question}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set override: %w", err)
	}

	ctxzap.Debug(ctx, "row override set",
		zap.String("session_id", sessionID),
		zap.Int("row", *req.Row),
	)

	return questionsToResponse(session), nil
}

// ClearOverride drops the manual question edit
func (uc *SessionUsecase) ClearOverride(ctx context.Context, sessionID string) (*entity.QuestionsResponse, error) {
	session, err := uc.sessionRepo.UpdateSession(ctx, sessionID, func(s *entity.Session) error {
		if !s.Generated {
			return entity.ErrNotGenerated
		}
		s.Override = nil
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clear override: %w", err)
	}

	return questionsToResponse(session), nil
}

// SetIncludePersonal toggles the personal-questions download
func (uc *SessionUsecase) SetIncludePersonal(ctx context.Context, sessionID string, include bool) (*entity.SessionState, error) {
	session, err := uc.sessionRepo.UpdateSession(ctx, sessionID, func(s *entity.Session) error {
		s.IncludePersonal = include
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set include personal: %w", err)
	}

	return uc.sessionToState(session)
}

// PersonalQuestions returns the personal table when the session includes it
func (uc *SessionUsecase) PersonalQuestions(ctx context.Context, sessionID string) (*entity.PersonalTable, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !session.IncludePersonal {
		return nil, entity.ErrPersonalExcluded
	}
	return uc.personal, nil
}

// Export renders one of the session's downloads by file name
func (uc *SessionUsecase) Export(ctx context.Context, sessionID, fileName string) (*entity.ExportFile, error) {
	name, err := entity.ParseExportName(fileName, uc.exporter.Formats())
	if err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	table, err := uc.exportTable(session, name.Kind)
	if err != nil {
		return nil, err
	}

	file, err := uc.exporter.Export(name, table)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", name, err)
	}

	ctxzap.Info(ctx, "export rendered",
		zap.String("session_id", sessionID),
		zap.String("file", file.Name),
		zap.Int("bytes", len(file.Data)),
	)

	return file, nil
}

func (uc *SessionUsecase) exportTable(s *entity.Session, kind entity.ExportKind) (*formatter.Table, error) {
	switch kind {
	case entity.ExportFinal:
		if !s.Generated {
			return nil, entity.ErrNotGenerated
		}
		return formatter.FromOutput(kind, s.Questions), nil

	case entity.ExportModified:
		if !s.Generated {
			return nil, entity.ErrNotGenerated
		}
		table := s.Questions
		if s.Override != nil {
			modified, err := table.WithQuestion(s.Override.Row, s.Override.Question)
			if err != nil {
				return nil, err
			}
			table = modified
		}
		return formatter.FromOutput(kind, table), nil

	case entity.ExportPersonal:
		if !s.IncludePersonal {
			return nil, entity.ErrPersonalExcluded
		}
		return formatter.FromPersonal(uc.personal), nil

	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownExport, kind)
	}
}

// CancelSession discards all session state
func (uc *SessionUsecase) CancelSession(ctx context.Context, sessionID string) error {
	if err := uc.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	ctxzap.Info(ctx, "session cancelled", zap.String("session_id", sessionID))
	return nil
}
