package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/myrjola/biosecure/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err) // the static directory is embedded at compile time
	}
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", http.FileServerFS(static))))

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)
	chat := session.Append(app.rateLimit(app.chatLimiter))

	mux.Handle("GET /{$}", session.ThenFunc(app.home))

	mux.Handle("GET /assessment", session.ThenFunc(app.assessment))
	mux.Handle("POST /assessment/answer", session.ThenFunc(app.answerQuestion))
	mux.Handle("POST /assessment/retake", session.ThenFunc(app.retakeAssessment))
	mux.Handle("POST /assessment/save", session.ThenFunc(app.saveReport))

	mux.Handle("GET /learning", session.ThenFunc(app.learningCenter))
	mux.Handle("POST /learning/{id}/complete", session.ThenFunc(app.completeModule))
	mux.Handle("GET /records", session.ThenFunc(app.farmRecords))
	mux.Handle("GET /analytics", session.ThenFunc(app.analytics))
	mux.Handle("GET /alerts", session.ThenFunc(app.diseaseAlerts))

	mux.Handle("GET /mira", session.ThenFunc(app.miraChat))
	mux.Handle("POST /mira/messages", chat.ThenFunc(app.sendMiraMessage))
	mux.Handle("POST /mira/language", session.ThenFunc(app.setMiraLanguage))

	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.HandleFunc("GET /api/assessment/questions", app.apiQuestions)
	mux.HandleFunc("POST /api/assessment/score", app.apiScore)

	mux.Handle("/", session.ThenFunc(app.notFound))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
