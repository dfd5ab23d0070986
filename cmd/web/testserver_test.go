package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/biosecure/internal/e2etest"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "BIOSECURE_ADDR":
		return "localhost:0", true
	case "BIOSECURE_SQLITE_URL":
		return ":memory:", true
	case "BIOSECURE_PPROF_ADDR":
		return "", true
	case "BIOSECURE_CHAT_RATE":
		return "0", true
	default:
		return "", false
	}
}

// startTestServer runs the application until the test finishes.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}

// pickByScore returns an option chooser favouring the highest or lowest scoring option of each question.
func pickByScore(t *testing.T, highest bool) func(string, []string) string {
	t.Helper()
	catalog := risk.DefaultCatalog()
	byID := make(map[string]risk.Question, len(catalog.Questions))
	for _, q := range catalog.Questions {
		byID[q.ID] = q
	}
	return func(questionID string, values []string) string {
		q, ok := byID[questionID]
		require.True(t, ok, "unknown question %s", questionID)
		best := values[0]
		bestOpt, _ := q.Option(best)
		for _, v := range values[1:] {
			opt, _ := q.Option(v)
			if (highest && opt.Score > bestOpt.Score) || (!highest && opt.Score < bestOpt.Score) {
				best, bestOpt = v, opt
			}
		}
		return best
	}
}

func readDoc(t *testing.T, resp *http.Response, wantStatus int) *goquery.Document {
	t.Helper()
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, wantStatus, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func decodeJSONBody(resp *http.Response, v any) error {
	defer func() {
		_ = resp.Body.Close()
	}()
	return json.NewDecoder(resp.Body).Decode(v) //nolint:wrapcheck // test helper
}
