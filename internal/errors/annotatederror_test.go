package errors_test

import (
	"log/slog"
	"slices"
	"testing"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	attr := errors.SlogError(err)
	require.Equal(t, "error", attr.Key)
	group := attr.Value.Resolve().Group()
	require.Contains(t, group, slog.String("id", "123"))

	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.GreaterOrEqual(t, sourceIdx, 0, "source attribute missing")
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")
}

func TestWrap(t *testing.T) {
	sentinel := errors.NewSentinel("sentinel")
	require.NotErrorIs(t, errors.New("sentinel"), sentinel)

	wrapped := errors.Wrap(sentinel, "load catalog", slog.String("path", "farm.yaml"))
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "load catalog: sentinel", wrapped.Error())

	twice := errors.Wrap(wrapped, "start server", slog.Int("attempt", 2))
	require.ErrorIs(t, twice, sentinel)
	group := errors.SlogError(twice).Value.Resolve().Group()
	require.Contains(t, group, slog.String("path", "farm.yaml"))
	require.Contains(t, group, slog.Int("attempt", 2))

	require.NoError(t, errors.Wrap(nil, "nothing happened"))
}

func TestSlogError_plainError(t *testing.T) {
	attr := errors.SlogError(errors.NewSentinel("plain"))
	require.Equal(t, slog.String("error", "plain"), attr)
}
