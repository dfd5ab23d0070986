// Package assess holds the commands that score a farm, either from flags or interactively.
package assess

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/myrjola/biosecure/cmd/cli/catalog"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/spf13/cobra"
)

var ErrInvalidAnswer = errors.NewSentinel("answers must look like question=value")

var Group = &cobra.Group{ //nolint:gochecknoglobals // registered once on the root command
	ID:    "assess",
	Title: "Risk assessment",
}

// parseAnswers turns repeated question=value flags into an answer set. Later flags win.
func parseAnswers(raw []string) (risk.AnswerSet, error) {
	answers := make(risk.AnswerSet, len(raw))
	for _, pair := range raw {
		id, value, ok := strings.Cut(pair, "=")
		if !ok || id == "" || value == "" {
			return nil, errors.Wrap(ErrInvalidAnswer, "parse answer", slog.String("answer", pair))
		}
		answers[strings.TrimSpace(id)] = strings.TrimSpace(value)
	}
	return answers, nil
}

func writeReport(w io.Writer, title string, report risk.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Risk score: %d%% (%s), %d of %d points\n",
		report.Percentage, report.Tier, report.TotalScore, report.MaxScore)
	b.WriteString("Immediate actions:\n")
	for i, action := range report.Actions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, action)
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "write report")
}

func NewScoreCommand() *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // cobra defaults
		Use:     "score",
		GroupID: Group.ID,
		Short:   "Score a complete set of answers",
		Example: "biosecure-cli score --answer farm_type=mixed --answer visitor_control=none",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("catalog")
			rawAnswers, _ := cmd.Flags().GetStringArray("answer")
			asJSON, _ := cmd.Flags().GetBool("json")

			answers, err := parseAnswers(rawAnswers)
			if err != nil {
				return err
			}
			c, err := catalog.Load(path)
			if err != nil {
				return err
			}
			engine, err := c.Engine(catalog.Logger(cmd))
			if err != nil {
				return errors.Wrap(err, "build engine")
			}
			report := engine.Score(cmd.Context(), answers)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return errors.Wrap(enc.Encode(report), "encode report")
			}
			return writeReport(cmd.OutOrStdout(), c.Title, report)
		},
	}
	cmd.Flags().StringArrayP("answer", "a", nil, "answer as question=value, repeatable")
	cmd.Flags().String("catalog", "", "path to a catalog YAML file, defaults to the built-in farm catalog")
	cmd.Flags().Bool("json", false, "print the report as JSON")
	return cmd
}
