package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/mira"
)

type miraTemplateData struct {
	BaseTemplateData
	Messages []mira.Message
	Language mira.Language
	Error    string
}

func (app *application) miraData(r *http.Request, t mira.Transcript) miraTemplateData {
	return miraTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Messages:         t.Messages,
		Language:         t.Language,
		Error:            "",
	}
}

func (app *application) miraChat(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "mira", app.miraData(r, app.transcript(r)))
}

// sendMiraMessage answers with the messages fragment for htmx and redirects plain form posts.
func (app *application) sendMiraMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	partial := app.htmx.NewHandler(w, r).IsHxRequest()

	t := app.transcript(r)
	next, reply, err := t.Ask(app.assistant, r.PostForm.Get("message"), app.now())
	if err != nil {
		if !errors.Is(err, mira.ErrEmptyMessage) {
			app.serverError(w, r, err)
			return
		}
		data := app.miraData(r, t)
		data.Error = "Please type a question first."
		if partial {
			app.renderTemplate(w, r, http.StatusUnprocessableEntity, "mira", "messages", data)
			return
		}
		app.render(w, r, http.StatusUnprocessableEntity, "mira", data)
		return
	}

	app.putTranscript(r, next)
	app.metrics.chatReplies.WithLabelValues(reply.Topic).Inc()
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, "mira replied", slog.String("topic", reply.Topic))

	if partial {
		app.renderTemplate(w, r, http.StatusOK, "mira", "messages", app.miraData(r, next))
		return
	}
	redirect(w, r, "/mira")
}

func (app *application) setMiraLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	lang := mira.ParseLanguage(r.PostForm.Get("language"))
	app.putTranscript(r, app.transcript(r).WithLanguage(lang))
	redirect(w, r, "/mira")
}
