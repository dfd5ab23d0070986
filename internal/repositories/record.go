package repositories

import (
	"context"
	"log/slog"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/models"
	"github.com/myrjola/biosecure/internal/sqlite"
)

type RecordRepository struct {
	repository
}

func NewRecordRepository(dbs *sqlite.Database, logger *slog.Logger) *RecordRepository {
	return &RecordRepository{repository: newRepository(dbs, logger, "RecordRepository")}
}

func (r *RecordRepository) ListLivestock(ctx context.Context) ([]models.LivestockGroup, error) {
	var groups []models.LivestockGroup
	if err := r.dbs.ReadOnly.SelectContext(ctx, &groups,
		`SELECT id, name, unit, head_count, status FROM livestock_groups ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "select livestock groups")
	}
	return groups, nil
}

// ListVaccinations returns the vaccination schedule with upcoming doses first.
func (r *RecordRepository) ListVaccinations(ctx context.Context) ([]models.Vaccination, error) {
	var vaccinations []models.Vaccination
	if err := r.dbs.ReadOnly.SelectContext(ctx, &vaccinations, `SELECT id, vaccine, target, status, due_on
FROM vaccinations
ORDER BY status = 'Completed', due_on DESC`); err != nil {
		return nil, errors.Wrap(err, "select vaccinations")
	}
	return vaccinations, nil
}

func (r *RecordRepository) ListHealthChecks(ctx context.Context) ([]models.HealthCheck, error) {
	var checks []models.HealthCheck
	if err := r.dbs.ReadOnly.SelectContext(ctx, &checks,
		`SELECT id, location, note, status FROM health_checks ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "select health checks")
	}
	return checks, nil
}

// Metrics returns the named farm metrics in the order asked for. Unknown names are skipped.
func (r *RecordRepository) Metrics(ctx context.Context, names ...string) ([]models.Metric, error) {
	var all []models.Metric
	if err := r.dbs.ReadOnly.SelectContext(ctx, &all,
		`SELECT name, label, value, unit, trend FROM farm_metrics`); err != nil {
		return nil, errors.Wrap(err, "select farm metrics")
	}
	byName := make(map[string]models.Metric, len(all))
	for _, m := range all {
		byName[m.Name] = m
	}
	metrics := make([]models.Metric, 0, len(names))
	for _, name := range names {
		if m, ok := byName[name]; ok {
			metrics = append(metrics, m)
		} else {
			r.logger.LogAttrs(ctx, slog.LevelDebug, "unknown metric", slog.String("name", name))
		}
	}
	return metrics, nil
}

func (r *RecordRepository) Summary(ctx context.Context) (models.RecordSummary, error) {
	var summary models.RecordSummary
	if err := r.dbs.ReadOnly.QueryRowxContext(ctx, `SELECT
    (SELECT COUNT(*) FROM livestock_groups),
    (SELECT COALESCE(SUM(head_count), 0) FROM livestock_groups),
    (SELECT COALESCE(SUM(head_count), 0) FROM livestock_groups WHERE status = 'Monitoring'),
    (SELECT COUNT(*) FROM vaccinations WHERE status <> 'Completed'),
    (SELECT COUNT(*) FROM health_checks)`).Scan(
		&summary.Groups,
		&summary.Animals,
		&summary.Monitoring,
		&summary.VaccinesDue,
		&summary.HealthChecks,
	); err != nil {
		return models.RecordSummary{}, errors.Wrap(err, "query record summary")
	}
	return summary, nil
}
