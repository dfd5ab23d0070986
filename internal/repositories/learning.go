package repositories

import (
	"context"
	"log/slog"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/models"
	"github.com/myrjola/biosecure/internal/sqlite"
)

type LearningRepository struct {
	repository
}

func NewLearningRepository(dbs *sqlite.Database, logger *slog.Logger) *LearningRepository {
	return &LearningRepository{repository: newRepository(dbs, logger, "LearningRepository")}
}

// List returns the learning modules in curriculum order.
func (r *LearningRepository) List(ctx context.Context) ([]models.LearningModule, error) {
	var modules []models.LearningModule
	if err := r.dbs.ReadOnly.SelectContext(ctx, &modules, `SELECT id, title, description, duration, level
FROM learning_modules
ORDER BY position`); err != nil {
		return nil, errors.Wrap(err, "select learning modules")
	}
	topics, err := r.selectTexts(ctx, `SELECT module_id AS owner_id, topic AS text
FROM learning_topics
ORDER BY module_id, position`)
	if err != nil {
		return nil, errors.Wrap(err, "select learning topics")
	}
	for i := range modules {
		modules[i].Topics = topics[modules[i].ID]
	}
	return modules, nil
}

// Get returns a single module or ErrNotFound.
func (r *LearningRepository) Get(ctx context.Context, id string) (models.LearningModule, error) {
	var module models.LearningModule
	if err := r.dbs.ReadOnly.GetContext(ctx, &module, `SELECT id, title, description, duration, level
FROM learning_modules
WHERE id = ?`, id); err != nil {
		return models.LearningModule{}, notFoundOr(err, "get learning module", slog.String("id", id))
	}
	topics, err := r.selectTexts(ctx, `SELECT module_id AS owner_id, topic AS text
FROM learning_topics
WHERE module_id = ?
ORDER BY position`, id)
	if err != nil {
		return models.LearningModule{}, errors.Wrap(err, "select learning topics", slog.String("id", id))
	}
	module.Topics = topics[id]
	return module, nil
}
