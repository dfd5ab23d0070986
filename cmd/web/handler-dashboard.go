package main

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/models"
	"github.com/myrjola/biosecure/internal/repositories"
)

type learningModule struct {
	models.LearningModule
	Done bool
}

type learningTemplateData struct {
	BaseTemplateData
	Modules   []learningModule
	Completed int
}

func (app *application) learningCenter(w http.ResponseWriter, r *http.Request) {
	modules, err := app.learning.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	completed := app.completedModules(r)
	data := learningTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Modules:          make([]learningModule, 0, len(modules)),
		Completed:        0,
	}
	for _, m := range modules {
		done := slices.Contains(completed, m.ID)
		if done {
			data.Completed++
		}
		data.Modules = append(data.Modules, learningModule{LearningModule: m, Done: done})
	}
	app.render(w, r, http.StatusOK, "learning", data)
}

func (app *application) completeModule(w http.ResponseWriter, r *http.Request) {
	module, err := app.learning.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	completed := app.completedModules(r)
	if !slices.Contains(completed, module.ID) {
		completed = append(slices.Clone(completed), module.ID)
		app.sessionManager.Put(r.Context(), string(completedSessionKey), completed)
		app.logger.LogAttrs(r.Context(), slog.LevelInfo, "module completed", slog.String("module", module.ID))
	}
	redirect(w, r, "/learning")
}

type recordsTemplateData struct {
	BaseTemplateData
	Metrics      []models.Metric
	Livestock    []models.LivestockGroup
	Vaccinations []models.Vaccination
	HealthChecks []models.HealthCheck
	Summary      models.RecordSummary
}

func (app *application) farmRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := recordsTemplateData{BaseTemplateData: newBaseTemplateData(r)} //nolint:exhaustruct // filled below
	var err error
	if data.Metrics, err = app.records.Metrics(ctx,
		"health_records", "vaccination_rate", "monthly_feed", "feed_cost_per_animal"); err != nil {
		app.serverError(w, r, err)
		return
	}
	if data.Livestock, err = app.records.ListLivestock(ctx); err != nil {
		app.serverError(w, r, err)
		return
	}
	if data.Vaccinations, err = app.records.ListVaccinations(ctx); err != nil {
		app.serverError(w, r, err)
		return
	}
	if data.HealthChecks, err = app.records.ListHealthChecks(ctx); err != nil {
		app.serverError(w, r, err)
		return
	}
	if data.Summary, err = app.records.Summary(ctx); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "records", data)
}

type analyticsTemplateData struct {
	BaseTemplateData
	Latest       *savedReport
	History      []savedReport
	Metrics      []models.Metric
	Animals      []models.Metric
	ActiveAlerts int
}

// analytics combines the latest saved report of this session with the farm-wide figures.
func (app *application) analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history := app.savedReports(r)
	data := analyticsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Latest:           nil,
		History:          history,
		Metrics:          nil,
		Animals:          nil,
		ActiveAlerts:     0,
	}
	if len(history) > 0 {
		data.Latest = &history[len(history)-1]
	}
	var err error
	if data.Metrics, err = app.records.Metrics(ctx,
		"risk_score", "compliance_rate", "productivity_index"); err != nil {
		app.serverError(w, r, err)
		return
	}
	if data.Animals, err = app.records.Metrics(ctx,
		"animals_total", "animals_healthy", "animals_diseased", "animals_quarantined", "animals_new"); err != nil {
		app.serverError(w, r, err)
		return
	}
	if data.ActiveAlerts, err = app.alerts.CountActive(ctx); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "analytics", data)
}

type alertsTemplateData struct {
	BaseTemplateData
	Alerts   []models.Alert
	Contacts []models.EmergencyContact
}

func (app *application) diseaseAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := app.alerts.ListActive(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	contacts, err := app.alerts.ListContacts(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "alerts", alertsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Alerts:           alerts,
		Contacts:         contacts,
	})
}
