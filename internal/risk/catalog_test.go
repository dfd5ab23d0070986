package risk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/myrjola/biosecure/internal/risk"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()
	c := risk.DefaultCatalog()
	require.Equal(t, risk.DefaultCatalogName, c.Name)
	require.Len(t, c.Questions, 10)
	require.Len(t, c.Actions[risk.TierLow], 3)
	require.Len(t, c.Actions[risk.TierMedium], 4)
	require.Len(t, c.Actions[risk.TierHigh], 5)

	c.Questions[0].ID = "mutated"
	require.Equal(t, "farm_type", risk.DefaultCatalog().Questions[0].ID)
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: `
name: tiny
questions:
  - id: a
    prompt: A?
    options: [{value: x, label: X, score: 1}]
actions: {Low: [l], Medium: [m], High: [h]}
`,
		},
		{name: "malformed yaml", yaml: "name: [", wantErr: true},
		{
			name: "missing name",
			yaml: `
questions:
  - id: a
    prompt: A?
    options: [{value: x, label: X, score: 1}]
actions: {Low: [l], Medium: [m], High: [h]}
`,
			wantErr: true,
		},
		{
			name:    "no questions",
			yaml:    "name: empty\nactions: {Low: [l], Medium: [m], High: [h]}\n",
			wantErr: true,
		},
		{
			name: "question without options",
			yaml: `
name: tiny
questions:
  - id: a
    prompt: A?
actions: {Low: [l], Medium: [m], High: [h]}
`,
			wantErr: true,
		},
		{
			name: "duplicate option value",
			yaml: `
name: tiny
questions:
  - id: a
    prompt: A?
    options: [{value: x, label: X, score: 1}, {value: x, label: Y, score: 2}]
actions: {Low: [l], Medium: [m], High: [h]}
`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := risk.LoadCatalog([]byte(tt.yaml))
			if tt.wantErr {
				require.ErrorIs(t, err, risk.ErrConfiguration)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	t.Parallel()
	_, err := risk.LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: file
questions:
  - id: a
    prompt: A?
    options: [{value: x, label: X, score: 2}]
actions: {Low: [l], Medium: [m], High: [h]}
`), 0o600))
	c, err := risk.LoadCatalogFile(path)
	require.NoError(t, err)
	require.Equal(t, "file", c.Name)
}
