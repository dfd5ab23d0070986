package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/myrjola/biosecure/internal/risk"
)

const maxRequestBytes = 1 << 16

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // caches struct info

type questionsResponse struct {
	Questionnaire string          `json:"questionnaire"`
	Title         string          `json:"title"`
	MaxScore      int             `json:"maxScore"`
	Questions     []risk.Question `json:"questions"`
}

func (app *application) apiQuestions(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("questionnaire")
	if name == "" {
		name = app.defaultCatalog
	}
	engine, ok := app.engines[name]
	if !ok {
		app.jsonError(w, r, http.StatusNotFound, "unknown questionnaire")
		return
	}
	app.writeJSON(w, r, http.StatusOK, questionsResponse{
		Questionnaire: name,
		Title:         app.catalogs[name].Title,
		MaxScore:      engine.Questionnaire().MaxScore(),
		Questions:     engine.Questionnaire().Questions(),
	})
}

type scoreRequest struct {
	Questionnaire string         `json:"questionnaire"`
	Answers       risk.AnswerSet `json:"answers"     validate:"required"`
}

// apiScore scores a complete answer set in one request.
func (app *application) apiScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		app.jsonError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		app.jsonError(w, r, http.StatusBadRequest, "answers are required")
		return
	}
	if req.Questionnaire == "" {
		req.Questionnaire = app.defaultCatalog
	}
	engine, ok := app.engines[req.Questionnaire]
	if !ok {
		app.jsonError(w, r, http.StatusNotFound, "unknown questionnaire")
		return
	}

	report := engine.Score(r.Context(), req.Answers)
	app.metrics.assessmentsScored.WithLabelValues("api", string(report.Tier)).Inc()
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "scored answers",
		slog.String("questionnaire", req.Questionnaire), slog.Int("percentage", report.Percentage))
	app.writeJSON(w, r, http.StatusOK, report)
}
