package repositories

import (
	"context"
	"log/slog"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/models"
	"github.com/myrjola/biosecure/internal/sqlite"
)

type AlertRepository struct {
	repository
}

func NewAlertRepository(dbs *sqlite.Database, logger *slog.Logger) *AlertRepository {
	return &AlertRepository{repository: newRepository(dbs, logger, "AlertRepository")}
}

// ListActive returns the unresolved alerts, newest first, with their recommended actions.
func (r *AlertRepository) ListActive(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := r.dbs.ReadOnly.SelectContext(ctx, &alerts, `SELECT id, title, description, severity, status, issued_on
FROM alerts
WHERE status <> 'resolved'
ORDER BY issued_on DESC, id`); err != nil {
		return nil, errors.Wrap(err, "select alerts")
	}

	actions, err := r.selectTexts(ctx, `SELECT alert_id AS owner_id, action AS text
FROM alert_actions
JOIN alerts ON alerts.id = alert_actions.alert_id
WHERE alerts.status <> 'resolved'
ORDER BY alert_id, position`)
	if err != nil {
		return nil, errors.Wrap(err, "select alert actions")
	}
	for i := range alerts {
		alerts[i].Actions = actions[alerts[i].ID]
	}
	return alerts, nil
}

// CountActive counts the unresolved alerts.
func (r *AlertRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.dbs.ReadOnly.GetContext(ctx, &count, `SELECT COUNT(*) FROM alerts WHERE status <> 'resolved'`); err != nil {
		return 0, errors.Wrap(err, "count alerts")
	}
	return count, nil
}

func (r *AlertRepository) ListContacts(ctx context.Context) ([]models.EmergencyContact, error) {
	var contacts []models.EmergencyContact
	if err := r.dbs.ReadOnly.SelectContext(ctx, &contacts,
		`SELECT id, name, phone FROM emergency_contacts ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "select emergency contacts")
	}
	return contacts, nil
}
