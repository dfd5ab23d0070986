package assessment_test

import (
	"testing"

	"github.com/myrjola/biosecure/internal/assessment"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/stretchr/testify/require"
)

func questionnaire(t *testing.T) *risk.Questionnaire {
	t.Helper()
	opts := []risk.Option{{Value: "lo", Label: "Low", Score: 1}, {Value: "hi", Label: "High", Score: 5}}
	q, err := risk.NewQuestionnaire([]risk.Question{
		{ID: "first", Prompt: "First?", Category: "A", Options: opts},
		{ID: "second", Prompt: "Second?", Category: "A", Options: opts},
		{ID: "third", Prompt: "Third?", Category: "B", Options: opts},
	})
	require.NoError(t, err)
	return q
}

func TestSession_walkthrough(t *testing.T) {
	q := questionnaire(t)
	s := assessment.New()
	require.Equal(t, 33, s.Progress(q))

	_, err := s.Next(q)
	require.ErrorIs(t, err, assessment.ErrUnanswered)

	for _, id := range []string{"first", "second", "third"} {
		current, ok := s.Current(q)
		require.True(t, ok)
		require.Equal(t, id, current.ID)
		s, err = s.Answer(q, id, "hi")
		require.NoError(t, err)
		require.Equal(t, "hi", s.Selected(q))
		s, err = s.Next(q)
		require.NoError(t, err)
	}
	require.True(t, s.Completed)
	require.Equal(t, 2, s.Index)
	require.Equal(t, 100, s.Progress(q))
	require.Len(t, s.Answers, 3)

	s = s.Retake()
	require.Equal(t, assessment.New(), s)
}

func TestSession_Previous(t *testing.T) {
	q := questionnaire(t)
	s := assessment.New()
	require.Equal(t, s, s.Previous())

	s, err := s.Answer(q, "first", "lo")
	require.NoError(t, err)
	s, err = s.Next(q)
	require.NoError(t, err)
	require.Equal(t, 1, s.Index)
	require.Equal(t, 67, s.Progress(q))

	s = s.Previous()
	require.Equal(t, 0, s.Index)
	require.Equal(t, "lo", s.Selected(q), "answers survive backward navigation")
}

func TestSession_Answer_errors(t *testing.T) {
	q := questionnaire(t)
	s := assessment.New()

	_, err := s.Answer(q, "missing", "lo")
	require.ErrorIs(t, err, assessment.ErrUnknownQuestion)

	got, err := s.Answer(q, "first", "medium")
	require.ErrorIs(t, err, assessment.ErrUnknownOption)
	require.Equal(t, s, got)
}

func TestSession_immutable(t *testing.T) {
	q := questionnaire(t)
	s, err := assessment.New().Answer(q, "first", "lo")
	require.NoError(t, err)

	changed, err := s.Answer(q, "first", "hi")
	require.NoError(t, err)
	require.Equal(t, "lo", s.Answers["first"])
	require.Equal(t, "hi", changed.Answers["first"])

	advanced, err := s.Next(q)
	require.NoError(t, err)
	advanced.Answers["second"] = "hi"
	require.NotContains(t, s.Answers, "second")
}
