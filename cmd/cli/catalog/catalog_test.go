package catalog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/myrjola/biosecure/cmd/cli/catalog"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "biosecure-cli"} //nolint:exhaustruct // cobra defaults
	root.PersistentFlags().String("log-level", "error", "")
	root.AddGroup(catalog.Group)
	root.AddCommand(catalog.NewCommand())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`name: tiny
title: Tiny
questions:
  - id: fence
    prompt: Is the farm fenced?
    options:
      - { value: "yes", label: "Yes", score: 0 }
      - { value: "no", label: "No", score: 3 }
actions:
  Low: [Keep it up]
  Medium: [Check the gates]
  High: [Build a fence]
`), 0o600))
	duplicate := filepath.Join(dir, "duplicate.yaml")
	require.NoError(t, os.WriteFile(duplicate, []byte(`name: broken
title: Broken
questions:
  - id: fence
    prompt: Is the farm fenced?
    options: [{ value: "yes", label: "Yes", score: 0 }]
  - id: fence
    prompt: Again?
    options: [{ value: "yes", label: "Yes", score: 0 }]
actions:
  Low: [a]
  Medium: [b]
  High: [c]
`), 0o600))

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "built-in", args: []string{"catalog", "validate"}, want: "farm-biosecurity: 10 questions, max score 47"},
		{name: "file", args: []string{"catalog", "validate", valid}, want: "tiny: 1 questions, max score 3"},
		{name: "duplicate IDs", args: []string{"catalog", "validate", duplicate}, wantErr: risk.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Contains(t, out, tt.want)
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	out, err := execute(t, "catalog", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Farm Biosecurity Risk Assessment")
	require.Contains(t, out, "farm_type")
	require.Contains(t, out, "integrated")
}
