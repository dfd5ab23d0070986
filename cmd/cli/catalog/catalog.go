// Package catalog holds the commands for inspecting questionnaire catalogs.
package catalog

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/logging"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{ //nolint:gochecknoglobals // registered once on the root command
	ID:    "catalog",
	Title: "Questionnaire catalogs",
}

// Load reads the catalog at path, or returns the built-in farm catalog when path is empty.
func Load(path string) (risk.Catalog, error) {
	if path == "" {
		return risk.DefaultCatalog(), nil
	}
	c, err := risk.LoadCatalogFile(path)
	if err != nil {
		return risk.Catalog{}, errors.Wrap(err, "load catalog file")
	}
	return c, nil
}

// Logger writes to the command's stderr at the level of the persistent --log-level flag.
func Logger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(cmd.ErrOrStderr(), logging.ParseLevel(level), nil)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // cobra defaults
		Use:     "catalog",
		GroupID: Group.ID,
		Short:   "Inspect questionnaire catalogs",
	}
	cmd.AddCommand(newValidateCommand(), newListCommand())
	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct // cobra defaults
		Use:   "validate [path]",
		Short: "Check a catalog file, or the built-in catalog without a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			c, err := Load(path)
			if err != nil {
				return err
			}
			engine, err := c.Engine(Logger(cmd))
			if err != nil {
				return errors.Wrap(err, "build engine", slog.String("catalog", c.Name))
			}
			q := engine.Questionnaire()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions, max score %d\n", c.Name, q.Len(), q.MaxScore())
			return errors.Wrap(err, "write output")
		},
	}
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // cobra defaults
		Use:   "list",
		Short: "List the questions and options of a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("catalog")
			c, err := Load(path)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // column padding
			_, _ = fmt.Fprintf(w, "%s\n\n", c.Title)
			for _, q := range c.Questions {
				_, _ = fmt.Fprintf(w, "%s\t%s\t[%s]\n", q.ID, q.Prompt, q.Category)
				for _, o := range q.Options {
					_, _ = fmt.Fprintf(w, "\t  %s\t%s (%d)\n", o.Value, o.Label, o.Score)
				}
			}
			return errors.Wrap(w.Flush(), "flush output")
		},
	}
	cmd.Flags().String("catalog", "", "path to a catalog YAML file, defaults to the built-in farm catalog")
	return cmd
}
