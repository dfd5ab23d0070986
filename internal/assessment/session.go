// Package assessment tracks a caller-owned walk through a questionnaire.
//
// A Session is a plain value: every transition returns a new Session and leaves its receiver and
// answer map untouched, so it can be stored in an HTTP session or a TUI model as is.
package assessment

import (
	"log/slog"
	"maps"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/risk"
)

var (
	ErrUnknownQuestion = errors.NewSentinel("unknown question")
	ErrUnknownOption   = errors.NewSentinel("unknown option")
	ErrUnanswered      = errors.NewSentinel("current question is unanswered")
)

type Session struct {
	Index     int            `json:"index"`
	Answers   risk.AnswerSet `json:"answers"`
	Completed bool           `json:"completed"`
}

// New starts answering the first question.
func New() Session {
	return Session{Index: 0, Answers: risk.AnswerSet{}, Completed: false}
}

// Answer records value for the question questionID.
func (s Session) Answer(q *risk.Questionnaire, questionID, value string) (Session, error) {
	question, ok := q.Lookup(questionID)
	if !ok {
		return s, errors.Wrap(ErrUnknownQuestion, "answer", slog.String("question", questionID))
	}
	if _, ok = question.Option(value); !ok {
		return s, errors.Wrap(ErrUnknownOption, "answer",
			slog.String("question", questionID), slog.String("value", value))
	}
	next := s
	next.Answers = maps.Clone(s.Answers)
	if next.Answers == nil {
		next.Answers = risk.AnswerSet{}
	}
	next.Answers[questionID] = value
	return next, nil
}

// Next advances to the following question, or completes the session after the last one.
func (s Session) Next(q *risk.Questionnaire) (Session, error) {
	if s.Completed {
		return s, nil
	}
	current, ok := s.Current(q)
	if !ok {
		return s, errors.Wrap(ErrUnknownQuestion, "next", slog.Int("index", s.Index))
	}
	if _, answered := s.Answers[current.ID]; !answered {
		return s, errors.Wrap(ErrUnanswered, "next", slog.String("question", current.ID))
	}
	next := s
	next.Answers = maps.Clone(s.Answers)
	if s.Index >= q.Len()-1 {
		next.Completed = true
		return next, nil
	}
	next.Index++
	return next, nil
}

// Previous steps back one question. It is a no-op on the first question and once completed.
func (s Session) Previous() Session {
	if s.Completed || s.Index == 0 {
		return s
	}
	prev := s
	prev.Answers = maps.Clone(s.Answers)
	prev.Index--
	return prev
}

// Retake discards all answers and starts over.
func (s Session) Retake() Session {
	return New()
}

// Current returns the question being answered.
func (s Session) Current(q *risk.Questionnaire) (risk.Question, bool) {
	return q.Question(s.Index)
}

// Selected returns the answer given to the current question, if any.
func (s Session) Selected(q *risk.Questionnaire) string {
	current, ok := s.Current(q)
	if !ok {
		return ""
	}
	return s.Answers[current.ID]
}

// Progress is the share of the questionnaire reached, counting the current question, in percent.
func (s Session) Progress(q *risk.Questionnaire) int {
	if s.Completed {
		return 100 //nolint:mnd // percent
	}
	return risk.Percentage(s.Index+1, q.Len())
}
