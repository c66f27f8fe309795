package builder

import (
	"context"
	"fmt"

	"github.com/futig/question-generator/internal/config"
	"github.com/futig/question-generator/internal/entity"
	"github.com/futig/question-generator/internal/pkg/formatter"
	"github.com/futig/question-generator/internal/pkg/validator"
	"github.com/futig/question-generator/internal/reference"
	"github.com/futig/question-generator/internal/repository"
	"github.com/futig/question-generator/internal/usecase/generator"
	"github.com/futig/question-generator/internal/usecase/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Core is the transport-independent part of the application
type Core struct {
	Catalog   *reference.Catalog
	Generator *generator.Generator
	SessionUC *session.SessionUsecase
	// Formats the exporter can render
	Formats []entity.ResultFormat
}

// BuildCore loads the reference data and source tables and wires the use
// cases. Any load or consistency failure is returned and must be fatal.
func BuildCore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Core, error) {
	ctx = ctxzap.ToContext(ctx, logger)

	catalog, err := reference.Load(cfg.DataCfg.ReferenceFile)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	logger.Info("Reference data loaded",
		zap.Int("domains", len(catalog.Domains)),
		zap.Int("stakeholders", len(catalog.Stakeholders)),
		zap.Int("metrics", len(catalog.Metrics)),
		zap.Int("question_types", len(catalog.QuestionTypes)),
	)

	// Initialize repositories
	questionRepo := repository.NewQuestionFile()
	sessionRepo := repository.NewSessionMemory(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)
	logger.Info("Repositories initialized")

	rows, err := questionRepo.LoadQuestions(ctx, cfg.DataCfg.QuestionsFile)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	personal, err := questionRepo.LoadPersonalQuestions(ctx, cfg.DataCfg.PersonalQuestionsFile)
	if err != nil {
		return nil, fmt.Errorf("load personal questions: %w", err)
	}

	gen, err := generator.New(rows, catalog, generator.Options{
		NarrowStakeholdersByDomain: cfg.SessionCfg.NarrowStakeholdersByDomain,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Question tables loaded",
		zap.Int("questions", gen.RowCount()),
		zap.Int("personal_questions", len(personal.Rows)),
		zap.Bool("narrow_stakeholders_by_domain", cfg.SessionCfg.NarrowStakeholdersByDomain),
	)

	factory, err := newFormatterFactory(cfg, logger)
	if err != nil {
		return nil, err
	}
	exporter := formatter.NewExporter(factory, cfg.ExportCacheTTL)
	inputValidator := validator.NewValidator(cfg.SessionCfg)

	sessionUC := session.NewUsecase(
		sessionRepo,
		gen,
		exporter,
		personal,
		inputValidator,
		logger,
	)
	logger.Info("Use cases initialized")

	return &Core{
		Catalog:   catalog,
		Generator: gen,
		SessionUC: sessionUC,
		Formats:   factory.Formats(),
	}, nil
}

func newFormatterFactory(cfg *config.Config, logger *zap.Logger) (*formatter.Factory, error) {
	if cfg.UnidocLicenseKey == "" {
		logger.Warn("UNIDOC_LICENSE_KEY is not set, DOCX export disabled")
		return formatter.NewFactory(), nil
	}

	if err := formatter.SetDOCXLicense(cfg.UnidocLicenseKey); err != nil {
		return nil, fmt.Errorf("set unioffice license: %w", err)
	}
	return formatter.NewFactory(formatter.WithDOCX()), nil
}
