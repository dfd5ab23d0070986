package assess

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/myrjola/biosecure/internal/risk"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    risk.AnswerSet
		wantErr error
	}{
		{name: "empty", raw: nil, want: risk.AnswerSet{}},
		{
			name: "pairs",
			raw:  []string{"farm_type=mixed", " farm_size = large "},
			want: risk.AnswerSet{"farm_type": "mixed", "farm_size": "large"},
		},
		{name: "later wins", raw: []string{"farm_type=mixed", "farm_type=pig_only"}, want: risk.AnswerSet{"farm_type": "pig_only"}},
		{name: "missing value", raw: []string{"farm_type="}, wantErr: ErrInvalidAnswer},
		{name: "no separator", raw: []string{"farm_type"}, wantErr: ErrInvalidAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnswers(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func executeScore(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "biosecure-cli"} //nolint:exhaustruct // cobra defaults
	root.PersistentFlags().String("log-level", "error", "")
	root.AddGroup(Group)
	root.AddCommand(NewScoreCommand())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"score"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := executeScore(t)
	require.NoError(t, err)
	require.Contains(t, out, "Farm Biosecurity Risk Assessment")
	require.Contains(t, out, "Risk score: 0% (Low), 0 of 47 points")
	require.Contains(t, out, "  1. ")

	out, err = executeScore(t, "--json",
		"-a", "farm_type=integrated", "-a", "farm_size=commercial", "-a", "location_risk=dense")
	require.NoError(t, err)
	var report risk.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, 13, report.TotalScore)
	require.Equal(t, risk.Percentage(13, 47), report.Percentage)
	require.Equal(t, risk.TierLow, report.Tier)

	_, err = executeScore(t, "-a", "farm_type")
	require.ErrorIs(t, err, ErrInvalidAnswer)
}
