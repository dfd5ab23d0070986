package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/biosecure/internal/e2etest"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/logging"
)

// testAssessment answers every question with its first option and checks a tier is reported.
func testAssessment(ctx context.Context, client *e2etest.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if _, err := client.GetDoc(ctx, "/"); err != nil {
		return "", errors.Wrap(err, "get home page")
	}
	doc, err := client.CompleteAssessment(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "complete assessment")
	}
	tier := doc.Find("section.report .tier").Text()
	if tier == "" {
		return "", errors.New("report without tier")
	}
	if _, err = client.SubmitForm(ctx, "/assessment", "/assessment/retake", nil); err != nil {
		return "", errors.Wrap(err, "retake assessment")
	}
	return tier, nil
}

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug, nil)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}
	var tier string
	if tier, err = testAssessment(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing assessment", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.String("tier", tier))
	os.Exit(0)
}
