package risk_test

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/biosecure/internal/risk"
	"github.com/myrjola/biosecure/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

var testActions = risk.Actions{ //nolint:gochecknoglobals // test fixture
	risk.TierLow:    {"keep going"},
	risk.TierMedium: {"tighten up"},
	risk.TierHigh:   {"call the vet"},
}

func newEngine(t *testing.T, questions []risk.Question) *risk.Engine {
	t.Helper()
	q, err := risk.NewQuestionnaire(questions)
	require.NoError(t, err)
	engine, err := risk.NewEngine(q, testActions, testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	return engine
}

func defaultEngine(t *testing.T) *risk.Engine {
	t.Helper()
	engine, err := risk.DefaultCatalog().Engine(testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	return engine
}

func question(id string, scores ...int) risk.Question {
	options := make([]risk.Option, len(scores))
	for i, s := range scores {
		value := string(rune('a' + i))
		options[i] = risk.Option{Value: value, Label: value, Score: s}
	}
	return risk.Question{ID: id, Prompt: id + "?", Category: "Test", Options: options}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		percentage int
		want       risk.Tier
	}{
		{0, risk.TierLow},
		{30, risk.TierLow},
		{31, risk.TierMedium},
		{60, risk.TierMedium},
		{61, risk.TierHigh},
		{100, risk.TierHigh},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, risk.Classify(tt.percentage), "percentage %d", tt.percentage)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		maxScore int
		want     int
	}{
		{name: "zero", total: 0, maxScore: 47, want: 0},
		{name: "all", total: 47, maxScore: 47, want: 100},
		{name: "rounds down", total: 10, maxScore: 47, want: 21},
		{name: "rounds half up", total: 1, maxScore: 8, want: 13},
		{name: "degenerate", total: 0, maxScore: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, risk.Percentage(tt.total, tt.maxScore))
		})
	}
}

func TestEngine_Score_tierBoundaries(t *testing.T) {
	// A single question with scores 0..100 makes the percentage equal to the chosen score.
	scores := make([]int, 101)
	for i := range scores {
		scores[i] = i
	}
	q := risk.Question{ID: "q", Prompt: "q?", Category: "Test", Options: make([]risk.Option, 0, len(scores))}
	for _, s := range scores {
		v := string(rune('0' + s))
		q.Options = append(q.Options, risk.Option{Value: v, Label: v, Score: s})
	}
	engine := newEngine(t, []risk.Question{q})

	tests := []struct {
		score int
		want  risk.Tier
	}{
		{30, risk.TierLow},
		{31, risk.TierMedium},
		{60, risk.TierMedium},
		{61, risk.TierHigh},
	}
	for _, tt := range tests {
		report := engine.Score(context.Background(), risk.AnswerSet{"q": string(rune('0' + tt.score))})
		require.Equal(t, tt.score, report.Percentage)
		require.Equal(t, tt.want, report.Tier)
	}
}

func TestEngine_Score_referenceCatalog(t *testing.T) {
	engine := defaultEngine(t)
	q := engine.Questionnaire()
	require.Equal(t, 10, q.Len())
	require.Equal(t, 47, q.MaxScore())

	highest := risk.AnswerSet{}
	lowest := risk.AnswerSet{}
	for _, question := range q.Questions() {
		hi, lo := question.Options[0], question.Options[0]
		for _, o := range question.Options {
			if o.Score > hi.Score {
				hi = o
			}
			if o.Score < lo.Score {
				lo = o
			}
		}
		highest[question.ID] = hi.Value
		lowest[question.ID] = lo.Value
	}

	report := engine.Score(context.Background(), highest)
	require.Equal(t, 100, report.Percentage)
	require.Equal(t, risk.TierHigh, report.Tier)
	require.Equal(t, []string{
		"Implement emergency biosecurity protocols",
		"Establish immediate quarantine zones",
		"Contact veterinary services urgently",
		"Restrict all non-essential farm access",
		"Review and test water sources immediately",
	}, report.Actions)

	report = engine.Score(context.Background(), lowest)
	require.Equal(t, 11, report.TotalScore)
	require.Equal(t, 23, report.Percentage)
	require.Equal(t, risk.TierLow, report.Tier)
	require.Len(t, report.Actions, 3)

	medium := risk.AnswerSet{
		"farm_type": "mixed", "farm_size": "medium", "location_risk": "rural", "visitor_control": "basic",
		"quarantine": "sometimes", "vaccination": "mostly", "feed_source": "mixed", "water_source": "well",
		"waste_management": "basic", "disease_history": "minor",
	}
	report = engine.Score(context.Background(), medium)
	require.Equal(t, 23, report.TotalScore)
	require.Equal(t, 49, report.Percentage)
	require.Equal(t, risk.TierMedium, report.Tier)
	require.Len(t, report.Actions, 4)
}

func TestEngine_Score_emptyAnswers(t *testing.T) {
	engine := defaultEngine(t)
	report := engine.Score(context.Background(), risk.AnswerSet{})
	require.Equal(t, 0, report.Percentage)
	require.Equal(t, risk.TierLow, report.Tier)

	report = engine.Score(context.Background(), nil)
	require.Equal(t, 0, report.Percentage)
}

func TestEngine_Score_deterministicAndPure(t *testing.T) {
	engine := defaultEngine(t)
	answers := risk.AnswerSet{"farm_type": "integrated", "quarantine": "never", "water_source": "surface"}
	before := map[string]string{"farm_type": "integrated", "quarantine": "never", "water_source": "surface"}

	first := engine.Score(context.Background(), answers)
	second := engine.Score(context.Background(), answers)
	require.Equal(t, first, second)
	require.Equal(t, before, map[string]string(answers))

	first.Actions[0] = "mutated"
	require.NotEqual(t, "mutated", engine.Score(context.Background(), answers).Actions[0])
}

func TestEngine_Score_monotonic(t *testing.T) {
	engine := defaultEngine(t)
	q := engine.Questionnaire()
	base := risk.AnswerSet{}
	for _, question := range q.Questions() {
		base[question.ID] = question.Options[0].Value
	}

	for _, question := range q.Questions() {
		for _, from := range question.Options {
			for _, to := range question.Options {
				if to.Score <= from.Score {
					continue
				}
				lower, higher := risk.AnswerSet{}, risk.AnswerSet{}
				for k, v := range base {
					lower[k], higher[k] = v, v
				}
				lower[question.ID] = from.Value
				higher[question.ID] = to.Value
				lo := engine.Score(context.Background(), lower)
				hi := engine.Score(context.Background(), higher)
				require.GreaterOrEqual(t, hi.Percentage, lo.Percentage, "question %s %s->%s", question.ID, from.Value, to.Value)
				require.GreaterOrEqual(t, hi.Percentage, 0)
				require.LessOrEqual(t, hi.Percentage, 100)
			}
		}
	}
}

func TestEngine_Score_unrecognizedAnswer(t *testing.T) {
	engine := newEngine(t, []risk.Question{question("a", 1, 3), question("b", 0, 1)})

	report := engine.Score(context.Background(), risk.AnswerSet{"a": "b", "b": "nonsense", "unknown": "a"})
	require.Equal(t, 3, report.TotalScore)
	require.Equal(t, 4, report.MaxScore)
	require.Equal(t, 75, report.Percentage)
	require.Equal(t, risk.TierHigh, report.Tier)
}

func TestEngine_Score_degenerateQuestionnaire(t *testing.T) {
	engine := newEngine(t, []risk.Question{question("a", 0, 0), question("b", 0)})
	for _, answers := range []risk.AnswerSet{{}, {"a": "a", "b": "a"}, {"a": "z"}} {
		report := engine.Score(context.Background(), answers)
		require.Equal(t, 0, report.Percentage)
		require.Equal(t, risk.TierLow, report.Tier)
	}
}

func TestNewQuestionnaire_configurationErrors(t *testing.T) {
	tests := []struct {
		name      string
		questions []risk.Question
	}{
		{name: "empty", questions: nil},
		{name: "no options", questions: []risk.Question{{ID: "a", Prompt: "a?", Category: "", Options: nil}}},
		{name: "missing id", questions: []risk.Question{question("", 1)}},
		{name: "duplicate id", questions: []risk.Question{question("a", 1), question("a", 2)}},
		{name: "duplicate option", questions: []risk.Question{{ID: "a", Prompt: "a?", Category: "", Options: []risk.Option{
			{Value: "x", Label: "x", Score: 1}, {Value: "x", Label: "y", Score: 2},
		}}}},
		{name: "negative score", questions: []risk.Question{question("a", -1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := risk.NewQuestionnaire(tt.questions)
			require.ErrorIs(t, err, risk.ErrConfiguration)
		})
	}
}

func TestNewEngine_missingActions(t *testing.T) {
	q, err := risk.NewQuestionnaire([]risk.Question{question("a", 1)})
	require.NoError(t, err)
	_, err = risk.NewEngine(q, risk.Actions{risk.TierLow: {"x"}, risk.TierMedium: {"y"}}, testhelpers.NewLogger(io.Discard))
	require.ErrorIs(t, err, risk.ErrConfiguration)
}
