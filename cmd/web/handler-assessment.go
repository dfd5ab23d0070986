package main

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/myrjola/biosecure/internal/assessment"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/risk"
)

type assessmentTemplateData struct {
	BaseTemplateData
	Title    string
	Number   int
	Total    int
	Progress int
	Question risk.Question
	Selected string
	Error    string
	Report   *risk.Report
}

func (app *application) engine() *risk.Engine {
	return app.engines[app.defaultCatalog]
}

func (app *application) assessmentData(r *http.Request, s assessment.Session) assessmentTemplateData {
	q := app.engine().Questionnaire()
	data := assessmentTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Title:            app.catalogs[app.defaultCatalog].Title,
		Number:           s.Index + 1,
		Total:            q.Len(),
		Progress:         s.Progress(q),
		Question:         risk.Question{}, //nolint:exhaustruct // set below
		Selected:         s.Selected(q),
		Error:            "",
		Report:           nil,
	}
	if s.Completed {
		report := app.engine().Score(r.Context(), s.Answers)
		data.Report = &report
		return data
	}
	data.Question, _ = s.Current(q)
	return data
}

func (app *application) assessment(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "assessment", app.assessmentData(r, app.assessmentSession(r)))
}

// answerQuestion records the selected option and moves in the submitted direction.
func (app *application) answerQuestion(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	q := app.engine().Questionnaire()
	s := app.assessmentSession(r)
	if s.Completed {
		redirect(w, r, "/assessment")
		return
	}

	var err error
	if value := r.PostForm.Get("value"); value != "" {
		if s, err = s.Answer(q, r.PostForm.Get("question"), value); err != nil {
			if errors.Is(err, assessment.ErrUnknownQuestion) || errors.Is(err, assessment.ErrUnknownOption) {
				app.clientError(w, r, http.StatusBadRequest)
				return
			}
			app.serverError(w, r, err)
			return
		}
	}

	switch r.PostForm.Get("direction") {
	case "previous":
		s = s.Previous()
	default:
		if s, err = s.Next(q); err != nil {
			if !errors.Is(err, assessment.ErrUnanswered) {
				app.serverError(w, r, err)
				return
			}
			data := app.assessmentData(r, s)
			data.Error = "Please select an option before continuing."
			app.render(w, r, http.StatusUnprocessableEntity, "assessment", data)
			return
		}
		if s.Completed {
			report := app.engine().Score(r.Context(), s.Answers)
			app.metrics.assessmentsScored.WithLabelValues("web", string(report.Tier)).Inc()
			app.logger.LogAttrs(r.Context(), slog.LevelInfo, "assessment completed",
				slog.Int("percentage", report.Percentage), slog.String("tier", string(report.Tier)))
		}
	}

	app.putAssessmentSession(r, s)
	redirect(w, r, "/assessment")
}

func (app *application) retakeAssessment(w http.ResponseWriter, r *http.Request) {
	app.putAssessmentSession(r, app.assessmentSession(r).Retake())
	redirect(w, r, "/assessment")
}

// saveReport appends the finished report to the session history shown on the analytics page.
func (app *application) saveReport(w http.ResponseWriter, r *http.Request) {
	s := app.assessmentSession(r)
	if !s.Completed {
		app.clientError(w, r, http.StatusConflict)
		return
	}
	saved := savedReport{
		ID:      uuid.NewString(),
		Report:  app.engine().Score(r.Context(), s.Answers),
		SavedAt: app.now(),
	}
	reports := append(app.savedReports(r), saved)
	app.sessionManager.Put(r.Context(), string(reportsSessionKey), reports)
	app.metrics.reportsSaved.Inc()
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "saved report", slog.String("report_id", saved.ID))
	redirect(w, r, "/analytics")
}
