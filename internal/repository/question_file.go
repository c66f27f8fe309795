package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/futig/question-generator/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// QuestionRepository defines the interface for reading the source question tables
type QuestionRepository interface {
	LoadQuestions(ctx context.Context, path string) ([]entity.QuestionRow, error)
	LoadPersonalQuestions(ctx context.Context, path string) (*entity.PersonalTable, error)
}

var _ QuestionRepository = &QuestionFile{}

// QuestionFile implements QuestionRepository over flat files. Loads are
// memoized by file identity, so an unchanged file is read once.
type QuestionFile struct {
	cache *gocache.Cache
}

func NewQuestionFile() *QuestionFile {
	return &QuestionFile{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// LoadQuestions reads the primary question table
func (r *QuestionFile) LoadQuestions(ctx context.Context, path string) ([]entity.QuestionRow, error) {
	key, err := fileKey("questions", path)
	if err != nil {
		return nil, err
	}

	if cached, ok := r.cache.Get(key); ok {
		ctxzap.Debug(ctx, "question table served from cache", zap.String("path", path))
		return cloneRows(cached.([]entity.QuestionRow)), nil
	}

	table, err := readTable(path, true)
	if err != nil {
		return nil, fmt.Errorf("read question table: %w", err)
	}

	rows, err := toQuestionRows(table)
	if err != nil {
		return nil, fmt.Errorf("parse question table %s: %w", path, err)
	}

	r.cache.Set(key, rows, gocache.NoExpiration)

	ctxzap.Info(ctx, "question table loaded",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)

	return cloneRows(rows), nil
}

// LoadPersonalQuestions reads the personal-questions table verbatim
func (r *QuestionFile) LoadPersonalQuestions(ctx context.Context, path string) (*entity.PersonalTable, error) {
	key, err := fileKey("personal", path)
	if err != nil {
		return nil, err
	}

	if cached, ok := r.cache.Get(key); ok {
		ctxzap.Debug(ctx, "personal table served from cache", zap.String("path", path))
		return clonePersonal(cached.(*entity.PersonalTable)), nil
	}

	table, err := readTable(path, false)
	if err != nil {
		return nil, fmt.Errorf("read personal questions table: %w", err)
	}

	personal := toPersonalTable(table)
	r.cache.Set(key, personal, gocache.NoExpiration)

	ctxzap.Info(ctx, "personal questions table loaded",
		zap.String("path", path),
		zap.Int("rows", len(personal.Rows)),
	)

	return clonePersonal(personal), nil
}

// fileKey identifies a file by path, size and modification time
func fileKey(kind, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", entity.ErrUnsupportedFile, path)
	}
	return fmt.Sprintf("%s|%s|%d|%d", kind, path, info.Size(), info.ModTime().UnixNano()), nil
}
