package main

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/myrjola/biosecure/internal/assessment"
	"github.com/myrjola/biosecure/internal/mira"
	"github.com/myrjola/biosecure/internal/risk"
)

type sessionKey string

const (
	assessmentSessionKey = sessionKey("assessment")
	reportsSessionKey    = sessionKey("reports")
	completedSessionKey  = sessionKey("completedModules")
	transcriptSessionKey = sessionKey("miraTranscript")
)

// savedReport is an assessment result the farmer chose to keep for the analytics page.
type savedReport struct {
	ID      string
	Report  risk.Report
	SavedAt time.Time
}

func init() {
	gob.Register(assessment.Session{}) //nolint:exhaustruct // type registration
	gob.Register([]savedReport{})
	gob.Register(mira.Transcript{}) //nolint:exhaustruct // type registration
	gob.Register([]string{})
}

func (app *application) assessmentSession(r *http.Request) assessment.Session {
	s, ok := app.sessionManager.Get(r.Context(), string(assessmentSessionKey)).(assessment.Session)
	if !ok {
		return assessment.New()
	}
	return s
}

func (app *application) putAssessmentSession(r *http.Request, s assessment.Session) {
	app.sessionManager.Put(r.Context(), string(assessmentSessionKey), s)
}

func (app *application) savedReports(r *http.Request) []savedReport {
	reports, _ := app.sessionManager.Get(r.Context(), string(reportsSessionKey)).([]savedReport)
	return reports
}

func (app *application) completedModules(r *http.Request) []string {
	ids, _ := app.sessionManager.Get(r.Context(), string(completedSessionKey)).([]string)
	return ids
}

func (app *application) transcript(r *http.Request) mira.Transcript {
	t, ok := app.sessionManager.Get(r.Context(), string(transcriptSessionKey)).(mira.Transcript)
	if !ok {
		return mira.NewTranscript(app.assistant, app.now())
	}
	return t
}

func (app *application) putTranscript(r *http.Request, t mira.Transcript) {
	app.sessionManager.Put(r.Context(), string(transcriptSessionKey), t)
}
