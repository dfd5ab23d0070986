// Package risk scores answers to a biosecurity questionnaire into a percentage, a tier and the
// actions recommended for that tier.
package risk

import (
	"context"
	"log/slog"
	"slices"

	"github.com/myrjola/biosecure/internal/errors"
)

// ErrConfiguration is returned when a questionnaire or its action table is malformed.
var ErrConfiguration = errors.NewSentinel("invalid risk configuration")

type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// Tiers lists the tiers from least to most risky.
var Tiers = []Tier{TierLow, TierMedium, TierHigh} //nolint:gochecknoglobals // read-only enumeration

const (
	lowCeiling    = 30
	mediumCeiling = 60
)

type Option struct {
	Value string `json:"value" yaml:"value" validate:"required"`
	Label string `json:"label" yaml:"label" validate:"required"`
	Score int    `json:"score" yaml:"score" validate:"gte=0"`
}

type Question struct {
	ID       string   `json:"id"       yaml:"id"       validate:"required"`
	Prompt   string   `json:"prompt"   yaml:"prompt"   validate:"required"`
	Category string   `json:"category" yaml:"category"`
	Options  []Option `json:"options"  yaml:"options"  validate:"required,min=1,dive"`
}

// Option returns the option of q with the given value.
func (q Question) Option(value string) (Option, bool) {
	idx := slices.IndexFunc(q.Options, func(o Option) bool { return o.Value == value })
	if idx < 0 {
		return Option{}, false
	}
	return q.Options[idx], true
}

func (q Question) maxScore() int {
	highest := 0
	for _, o := range q.Options {
		highest = max(highest, o.Score)
	}
	return highest
}

// Questionnaire is an ordered, validated set of questions. It is never mutated after construction and
// is safe to share between goroutines.
type Questionnaire struct {
	questions []Question
	index     map[string]int
	maxScore  int
}

// NewQuestionnaire validates questions and precomputes the maximum achievable score.
func NewQuestionnaire(questions []Question) (*Questionnaire, error) {
	if len(questions) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "questionnaire has no questions")
	}

	q := &Questionnaire{
		questions: make([]Question, len(questions)),
		index:     make(map[string]int, len(questions)),
		maxScore:  0,
	}
	for i, question := range questions {
		if question.ID == "" {
			return nil, errors.Wrap(ErrConfiguration, "question without id", slog.Int("position", i))
		}
		if _, ok := q.index[question.ID]; ok {
			return nil, errors.Wrap(ErrConfiguration, "duplicate question id", slog.String("question", question.ID))
		}
		if len(question.Options) == 0 {
			return nil, errors.Wrap(ErrConfiguration, "question has no options", slog.String("question", question.ID))
		}
		seen := make(map[string]struct{}, len(question.Options))
		for _, o := range question.Options {
			if _, ok := seen[o.Value]; ok {
				return nil, errors.Wrap(ErrConfiguration, "duplicate option value",
					slog.String("question", question.ID), slog.String("value", o.Value))
			}
			if o.Score < 0 {
				return nil, errors.Wrap(ErrConfiguration, "negative option score",
					slog.String("question", question.ID), slog.String("value", o.Value), slog.Int("score", o.Score))
			}
			seen[o.Value] = struct{}{}
		}

		question.Options = slices.Clone(question.Options)
		q.questions[i] = question
		q.index[question.ID] = i
		q.maxScore += question.maxScore()
	}
	return q, nil
}

// Questions returns a copy of the questions in presentation order.
func (q *Questionnaire) Questions() []Question {
	out := make([]Question, len(q.questions))
	for i, question := range q.questions {
		question.Options = slices.Clone(question.Options)
		out[i] = question
	}
	return out
}

// Question returns the question at position i.
func (q *Questionnaire) Question(i int) (Question, bool) {
	if i < 0 || i >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[i], true
}

// Lookup returns the question with the given id.
func (q *Questionnaire) Lookup(id string) (Question, bool) {
	i, ok := q.index[id]
	if !ok {
		return Question{}, false
	}
	return q.questions[i], true
}

func (q *Questionnaire) Len() int { return len(q.questions) }

// MaxScore is the total of the riskiest option of every question.
func (q *Questionnaire) MaxScore() int { return q.maxScore }

// AnswerSet maps a question id to the chosen option value. It may be partial.
type AnswerSet map[string]string

// Actions maps every tier to its ordered list of recommended actions.
type Actions map[Tier][]string

type Report struct {
	Percentage int      `json:"percentage"`
	Tier       Tier     `json:"tier"`
	Actions    []string `json:"actions"`
	TotalScore int      `json:"totalScore"`
	MaxScore   int      `json:"maxScore"`
}

// Engine scores answer sets against a single questionnaire.
type Engine struct {
	questionnaire *Questionnaire
	actions       Actions
	logger        *slog.Logger
}

// NewEngine creates an engine. Every tier must have at least one action.
func NewEngine(q *Questionnaire, actions Actions, logger *slog.Logger) (*Engine, error) {
	if q == nil {
		return nil, errors.Wrap(ErrConfiguration, "nil questionnaire")
	}
	table := make(Actions, len(Tiers))
	for _, tier := range Tiers {
		list := actions[tier]
		if len(list) == 0 {
			return nil, errors.Wrap(ErrConfiguration, "tier has no actions", slog.String("tier", string(tier)))
		}
		table[tier] = slices.Clone(list)
	}
	return &Engine{
		questionnaire: q,
		actions:       table,
		logger:        logger.With(slog.String("source", "risk")),
	}, nil
}

func (e *Engine) Questionnaire() *Questionnaire { return e.questionnaire }

// Score computes the report for answers. Unanswered questions and values that match no option of
// their question contribute nothing.
func (e *Engine) Score(ctx context.Context, answers AnswerSet) Report {
	total := 0
	for _, question := range e.questionnaire.questions {
		value, ok := answers[question.ID]
		if !ok {
			continue
		}
		option, ok := question.Option(value)
		if !ok {
			e.logger.LogAttrs(ctx, slog.LevelDebug, "unrecognized answer scored as zero",
				slog.String("question", question.ID), slog.String("value", value))
			continue
		}
		total += option.Score
	}

	percentage := Percentage(total, e.questionnaire.maxScore)
	tier := Classify(percentage)
	return Report{
		Percentage: percentage,
		Tier:       tier,
		Actions:    slices.Clone(e.actions[tier]),
		TotalScore: total,
		MaxScore:   e.questionnaire.maxScore,
	}
}

// Percentage returns 100*total/maxScore rounded half up, or 0 when maxScore is 0.
func Percentage(total, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return (200*total + maxScore) / (2 * maxScore) //nolint:mnd // integer round half up
}

// Classify maps a percentage to its tier. The thresholds are inclusive.
func Classify(percentage int) Tier {
	switch {
	case percentage <= lowCeiling:
		return TierLow
	case percentage <= mediumCeiling:
		return TierMedium
	default:
		return TierHigh
	}
}
